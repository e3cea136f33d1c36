package balance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	balanceerrors "github.com/meharshjain/leave-approval-system/internal/balance/errors"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	Allocate(ctx context.Context, req AllocateBalanceRequest) (BalanceResponse, error)
	GetFor(ctx context.Context, employeeID, academicYear, leaveType string) (BalanceResponse, error)
	ListFor(ctx context.Context, employeeID, academicYear string) ([]BalanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{db: db, repo: repo, sf: &singleflight.Group{}, logger: l}
}

// Allocate provisions a ledger entry for one (employee, year, type) triple.
// Re-allocating an existing triple adjusts the allocation and recomputes
// remaining against what was already used.
func (s *service) Allocate(ctx context.Context, req AllocateBalanceRequest) (BalanceResponse, error) {
	s.logger.Debug("allocate balance requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("academic_year", req.AcademicYear),
		zap.String("leave_type", req.LeaveType),
		zap.Int("total_allocated", req.TotalAllocated),
	)

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("allocate balance begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindFor(ctx, req.EmployeeID, req.AcademicYear, req.LeaveType)
	if err != nil && !errors.Is(err, ErrNoRows) {
		return BalanceResponse{}, err
	}

	var b *LeaveBalance
	if existing != nil {
		if req.TotalAllocated < existing.Used {
			return BalanceResponse{}, balanceerrors.ErrBalanceOverdrawn
		}
		existing.TotalAllocated = req.TotalAllocated
		existing.Remaining = req.TotalAllocated - existing.Used
		if err := qtx.Update(ctx, existing); err != nil {
			return BalanceResponse{}, err
		}
		b = existing
	} else {
		b = &LeaveBalance{
			ID:             uuid.New(),
			EmployeeID:     employeeUUID,
			AcademicYear:   req.AcademicYear,
			LeaveType:      req.LeaveType,
			TotalAllocated: req.TotalAllocated,
			Used:           0,
			Remaining:      req.TotalAllocated,
		}
		if err := qtx.Create(ctx, b); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return BalanceResponse{}, balanceerrors.ErrBalanceExists
			}
			s.logger.Error("allocate balance persist failed", zap.Error(err))
			return BalanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("allocate balance commit failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	s.logger.Info("allocate balance success",
		zap.String("balance_id", b.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*b), nil
}

func (s *service) GetFor(ctx context.Context, employeeID, academicYear, leaveType string) (BalanceResponse, error) {
	b, err := s.repo.FindFor(ctx, employeeID, academicYear, leaveType)
	if err != nil {
		if errors.Is(err, ErrNoRows) {
			return BalanceResponse{}, balanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}
	return mapToResponse(*b), nil
}

// ListFor collapses concurrent identical reads through singleflight; the
// balance page is the hottest read in the app right after a decision lands.
func (s *service) ListFor(ctx context.Context, employeeID, academicYear string) ([]BalanceResponse, error) {
	key := "balances:" + employeeID + ":" + academicYear
	v, err, _ := s.sf.Do(key, func() (any, error) {
		balances, err := s.repo.FindAllFor(ctx, employeeID, academicYear)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(balances), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]BalanceResponse), nil
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:             b.ID.String(),
		EmployeeID:     b.EmployeeID.String(),
		AcademicYear:   b.AcademicYear,
		LeaveType:      b.LeaveType,
		TotalAllocated: b.TotalAllocated,
		Used:           b.Used,
		Remaining:      b.Remaining,
	}
}

func mapToListResponse(balances []LeaveBalance) []BalanceResponse {
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp
}
