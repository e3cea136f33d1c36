package leaverequest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newRepoHarness(t *testing.T) (Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	assert.NoError(t, err)

	return NewRepository(gdb), mock, db
}

func TestRepository_CreateRequiresTransaction(t *testing.T) {
	repo, _, _ := newRepoHarness(t)

	err := repo.Create(context.Background(), pendingRequest(uuid.New()))
	assert.ErrorContains(t, err, "requires a transaction")
}

func TestRepository_Create(t *testing.T) {
	repo, mock, db := newRepoHarness(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO leave_requests").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	assert.NoError(t, err)

	l := pendingRequest(uuid.New())
	assert.NoError(t, repo.WithTx(tx).Create(ctx, l))
	assert.False(t, l.CreatedAt.IsZero())
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateWithVersionRequiresTransaction(t *testing.T) {
	repo, _, _ := newRepoHarness(t)

	err := repo.UpdateWithVersion(context.Background(), pendingRequest(uuid.New()))
	assert.ErrorContains(t, err, "requires a transaction")
}

// The status update must ride the caller's transaction so it commits or
// rolls back together with the balance deduction and the outbox event.
func TestRepository_UpdateWithVersionRunsOnTransaction(t *testing.T) {
	repo, mock, db := newRepoHarness(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE leave_requests").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	assert.NoError(t, err)

	l := pendingRequest(uuid.New())
	l.Version = 2
	assert.NoError(t, repo.WithTx(tx).UpdateWithVersion(ctx, l))
	assert.Equal(t, 3, l.Version)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateWithVersionAfterRollbackFails(t *testing.T) {
	repo, mock, db := newRepoHarness(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := db.BeginTx(ctx, nil)
	assert.NoError(t, err)
	qtx := repo.WithTx(tx)
	assert.NoError(t, tx.Rollback())

	l := pendingRequest(uuid.New())
	err = qtx.UpdateWithVersion(ctx, l)
	assert.Error(t, err)
	assert.Equal(t, 0, l.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateWithVersionStale(t *testing.T) {
	repo, mock, db := newRepoHarness(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE leave_requests").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := db.BeginTx(ctx, nil)
	assert.NoError(t, err)
	defer tx.Rollback()

	err = repo.WithTx(tx).UpdateWithVersion(ctx, pendingRequest(uuid.New()))
	assert.ErrorIs(t, err, ErrStaleVersion)
}

func TestRepository_FindPendingOwnedLoadsEmployee(t *testing.T) {
	repo, mock, _ := newRepoHarness(t)
	ctx := context.Background()

	id := uuid.New()
	employeeID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "leave_requests" WHERE employee_id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "status", "version"}).
			AddRow(id.String(), employeeID.String(), StatusPending, 0))
	mock.ExpectQuery(`SELECT (.+) FROM "employees"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name"}).
			AddRow(employeeID.String(), "Jordan Fields"))

	l, err := repo.FindPendingOwned(ctx, id.String(), employeeID.String())
	assert.NoError(t, err)
	if assert.NotNil(t, l.Employee) {
		assert.Equal(t, "Jordan Fields", l.Employee.FullName)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
