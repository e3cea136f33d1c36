package department

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meharshjain/leave-approval-system/internal/shared/apperror"
)

var ErrDepartmentNotFound = apperror.New(
	apperror.CodeNotFound,
	"department not found",
	http.StatusNotFound,
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:   uuid.New(),
		Name: req.Name,
	}
	if req.CoordinatorID != nil && *req.CoordinatorID != "" {
		id, err := uuid.Parse(*req.CoordinatorID)
		if err != nil {
			return DepartmentResponse{}, apperror.InvalidField("Coordinator Id")
		}
		dept.CoordinatorID = &id
	}

	if err := qtx.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(depts), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}

	dept.Name = req.Name
	dept.CoordinatorID = nil
	if req.CoordinatorID != nil && *req.CoordinatorID != "" {
		cid, err := uuid.Parse(*req.CoordinatorID)
		if err != nil {
			return DepartmentResponse{}, apperror.InvalidField("Coordinator Id")
		}
		dept.CoordinatorID = &cid
	}

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
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
	return tx.Commit()
}

func mapToResponse(dept Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:   dept.ID.String(),
		Name: dept.Name,
	}
	if dept.CoordinatorID != nil {
		resp.CoordinatorID = dept.CoordinatorID.String()
	}
	return resp
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	resp := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		resp[i] = mapToResponse(d)
	}
	return resp
}
