package balance

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// ErrNoRows distinguishes "no ledger entry" from persistence faults so
// callers can treat a missing entry as an unlimited balance.
var ErrNoRows = errors.New("balance: no matching row")

// ErrInsufficientRemaining means the ledger row exists but no longer
// covers the requested days. Callers must fail the surrounding
// transaction instead of approving without a deduction.
var ErrInsufficientRemaining = errors.New("balance: insufficient remaining")

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	FindFor(ctx context.Context, employeeID, academicYear, leaveType string) (*LeaveBalance, error)
	FindAllFor(ctx context.Context, employeeID, academicYear string) ([]LeaveBalance, error)
	Update(ctx context.Context, b *LeaveBalance) error
	Consume(ctx context.Context, employeeID, academicYear, leaveType string, days int) error
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

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindFor(ctx context.Context, employeeID, academicYear, leaveType string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("academic_year = ?", academicYear).
		Where("leave_type = ?", leaveType).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindAllFor(ctx context.Context, employeeID, academicYear string) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	q := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if academicYear != "" {
		q = q.Where("academic_year = ?", academicYear)
	}
	err := q.Order("academic_year DESC, leave_type ASC").Find(&balances).Error
	return balances, err
}

func (r *repository) Update(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// Consume deducts days from the matching ledger row inside the caller's
// transaction. The guard on remaining keeps the row from going negative
// under concurrent approvals. A missing row is a no-op, mirroring the
// permissive submission check; a row that exists but cannot cover the
// days returns ErrInsufficientRemaining so the caller rolls back.
func (r *repository) Consume(ctx context.Context, employeeID, academicYear, leaveType string, days int) error {
	if r.tx == nil {
		return errors.New("balance: Consume requires a transaction")
	}

	query := `
UPDATE leave_balances
SET used = used + $4,
	remaining = remaining - $4,
	updated_at = NOW()
WHERE employee_id = $1
	AND academic_year = $2
	AND leave_type = $3
	AND remaining >= $4
`
	res, err := r.tx.ExecContext(ctx, query, employeeID, academicYear, leaveType, days)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// Zero rows: either no ledger entry at all, or one with too few
	// remaining days. Only the former is allowed through.
	existsQuery := `
SELECT 1
FROM leave_balances
WHERE employee_id = $1
	AND academic_year = $2
	AND leave_type = $3
`
	var one int
	err = r.tx.QueryRowContext(ctx, existsQuery, employeeID, academicYear, leaveType).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	return ErrInsufficientRemaining
}
