package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	employeeerrors "github.com/meharshjain/leave-approval-system/internal/employee/errors"
)

const directoryCacheKey = "employees:directory"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetDirectory(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("create employee requested",
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	managerID, departmentID, err := parseReferences(req.ManagerID, req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if managerID != nil {
		if _, err := qtx.FindByID(ctx, managerID.String()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return EmployeeResponse{}, employeeerrors.ErrManagerNotFound
			}
			return EmployeeResponse{}, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e := &Employee{
		ID:           uuid.New(),
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     string(hashed),
		Role:         req.Role,
		ManagerID:    managerID,
		DepartmentID: departmentID,
		Active:       true,
	}

	if err := qtx.Create(ctx, e); err != nil {
		if isUniqueViolation(err) {
			return EmployeeResponse{}, employeeerrors.ErrEmailTaken
		}
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateDirectory(ctx)
	s.logger.Info("create employee success",
		zap.String("employee_id", e.ID.String()),
		zap.String("role", e.Role),
	)

	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(employees), nil
}

// GetDirectory serves the employee directory from redis, collapsing
// concurrent cache misses through singleflight so the database only sees
// one query per expiry.
func (s *service) GetDirectory(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, directoryCacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(directoryCacheKey, func() (any, error) {
		employees, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(employees)

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, directoryCacheKey, payload, 5*time.Minute)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	managerID, departmentID, err := parseReferences(req.ManagerID, req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e.FullName = req.FullName
	e.Email = req.Email
	e.Role = req.Role
	e.ManagerID = managerID
	e.DepartmentID = departmentID
	if req.Active != nil {
		e.Active = *req.Active
	}

	if err := qtx.Update(ctx, e); err != nil {
		if isUniqueViolation(err) {
			return EmployeeResponse{}, employeeerrors.ErrEmailTaken
		}
		s.logger.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateDirectory(ctx)
	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateDirectory(ctx)
	return nil
}

func (s *service) invalidateDirectory(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, directoryCacheKey).Err(); err != nil {
		s.logger.Warn("invalidate directory cache failed", zap.Error(err))
	}
}

func parseReferences(managerID, departmentID *string) (*uuid.UUID, *uuid.UUID, error) {
	var mgr, dept *uuid.UUID
	if managerID != nil && *managerID != "" {
		id, err := uuid.Parse(*managerID)
		if err != nil {
			return nil, nil, employeeerrors.ErrInvalidManagerID
		}
		mgr = &id
	}
	if departmentID != nil && *departmentID != "" {
		id, err := uuid.Parse(*departmentID)
		if err != nil {
			return nil, nil, employeeerrors.ErrInvalidDepartmentID
		}
		dept = &id
	}
	return mgr, dept, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:       e.ID.String(),
		FullName: e.FullName,
		Email:    e.Email,
		Role:     e.Role,
		Active:   e.Active,
	}
	if e.ManagerID != nil {
		resp.ManagerID = e.ManagerID.String()
	}
	if e.DepartmentID != nil {
		resp.DepartmentID = e.DepartmentID.String()
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}
