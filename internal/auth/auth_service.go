package auth

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	autherrors "github.com/meharshjain/leave-approval-system/internal/auth/errors"
	"github.com/meharshjain/leave-approval-system/internal/employee"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	GetMe(ctx context.Context, employeeID string) (AuthResponse, error)
}

type service struct {
	employeeRepo employee.Repository
}

func NewService(employeeRepo employee.Repository) Service {
	return &service{employeeRepo: employeeRepo}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	e, err := s.employeeRepo.FindByEmail(ctx, email)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(password)); err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !e.Active {
		return TokenPair{}, AuthResponse{}, autherrors.ErrAccountInactive
	}

	pair, err := s.generateTokenPair(e.ID.String(), e.Role)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return pair, mapToAuthResponse(e), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidToken
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidToken
	}

	e, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if !e.Active {
		return TokenPair{}, AuthResponse{}, autherrors.ErrAccountInactive
	}

	pair, err := s.generateTokenPair(e.ID.String(), e.Role)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return pair, mapToAuthResponse(e), nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (AuthResponse, error) {
	e, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrInvalidToken
		}
		return AuthResponse{}, err
	}
	return mapToAuthResponse(e), nil
}

func (s *service) generateTokenPair(employeeID, role string) (TokenPair, error) {
	access, err := generateToken(employeeID, role, 15*time.Minute)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := generateToken(employeeID, role, 7*24*time.Hour)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func generateToken(employeeID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"role":        role,
		"exp":         time.Now().Add(ttl).Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(e *employee.Employee) AuthResponse {
	return AuthResponse{
		EmployeeID: e.ID.String(),
		Email:      e.Email,
		FullName:   e.FullName,
		Role:       e.Role,
	}
}
