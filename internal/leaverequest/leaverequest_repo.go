package leaverequest

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrStaleVersion is returned when an optimistic update matched no row:
// either the request vanished or another writer got there first.
var ErrStaleVersion = errors.New("leaverequest: stale version")

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindPendingOwned(ctx context.Context, id, employeeID string) (*LeaveRequest, error)
	UpdateWithVersion(ctx context.Context, l *LeaveRequest) error
	FindAllByEmployee(ctx context.Context, employeeID, academicYear, status string, offset, limit int) ([]LeaveRequest, int64, error)
	FindPendingForManager(ctx context.Context) ([]LeaveRequest, error)
	FindPendingForCoordinator(ctx context.Context) ([]LeaveRequest, error)
	FindRecords(ctx context.Context, academicYear, employeeID string) ([]LeaveRequest, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Create inserts the request through the caller's transaction so the row
// commits or rolls back together with the outbox event written beside it.
func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	if r.tx == nil {
		return errors.New("leaverequest: Create requires a transaction")
	}

	query := `
INSERT INTO leave_requests (
	id, employee_id, leave_type, start_date, end_date, total_days, reason,
	academic_year, status, manager_status, coordinator_status, version,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
`
	now := time.Now().UTC()
	_, err := r.tx.ExecContext(ctx, query,
		l.ID, l.EmployeeID, l.LeaveType, l.StartDate, l.EndDate, l.TotalDays,
		l.Reason, l.AcademicYear, l.Status, l.ManagerApproval.Status,
		l.CoordinatorApproval.Status, l.Version, now,
	)
	if err != nil {
		return err
	}
	l.CreatedAt = now
	l.UpdatedAt = now
	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	return &l, err
}

// FindPendingOwned is the combined ownership+state guard for cancellation:
// a miss on any of id, owner or pending status looks identical to the
// request not existing.
func (r *repository) FindPendingOwned(ctx context.Context, id, employeeID string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusPending).
		First(&l, "id = ?", id).Error
	return &l, err
}

// UpdateWithVersion persists every mutable field conditioned on the version
// the caller read, through the caller's transaction: the status flip must
// sit in the same commit as the balance deduction and the outbox event.
// Zero rows affected means a concurrent writer won; the caller maps that
// to a retryable conflict.
func (r *repository) UpdateWithVersion(ctx context.Context, l *LeaveRequest) error {
	if r.tx == nil {
		return errors.New("leaverequest: UpdateWithVersion requires a transaction")
	}

	query := `
UPDATE leave_requests
SET status = $1,
	manager_status = $2,
	manager_by = $3,
	manager_at = $4,
	manager_comments = $5,
	coordinator_status = $6,
	coordinator_by = $7,
	coordinator_at = $8,
	coordinator_comments = $9,
	version = version + 1,
	updated_at = NOW()
WHERE id = $10
	AND version = $11
`
	res, err := r.tx.ExecContext(ctx, query,
		l.Status,
		l.ManagerApproval.Status, l.ManagerApproval.By, l.ManagerApproval.At, l.ManagerApproval.Comments,
		l.CoordinatorApproval.Status, l.CoordinatorApproval.By, l.CoordinatorApproval.At, l.CoordinatorApproval.Comments,
		l.ID, l.Version,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStaleVersion
	}
	l.Version++
	return nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID, academicYear, status string, offset, limit int) ([]LeaveRequest, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID)
	if academicYear != "" {
		q = q.Where("academic_year = ?", academicYear)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []LeaveRequest
	err := q.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error
	return requests, total, err
}

// FindPendingForManager returns the manager triage queue: every request
// still pending overall with either side undecided.
func (r *repository) FindPendingForManager(ctx context.Context) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("status = ?", StatusPending).
		Where("manager_status = ? OR coordinator_status = ?", StatusPending, StatusPending).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

// FindPendingForCoordinator is narrower on purpose: coordinators only see
// requests whose coordinator side is still open.
func (r *repository) FindPendingForCoordinator(ctx context.Context) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("status = ?", StatusPending).
		Where("coordinator_status = ?", StatusPending).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindRecords(ctx context.Context, academicYear, employeeID string) ([]LeaveRequest, error) {
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Where("academic_year = ?", academicYear)
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}

	var requests []LeaveRequest
	err := q.Order("created_at DESC").Find(&requests).Error
	return requests, err
}
