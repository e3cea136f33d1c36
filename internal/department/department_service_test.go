package department

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn   func(ctx context.Context, dept *Department) error
	findByIDFn func(ctx context.Context, id string) (*Department, error)
	updateFn   func(ctx context.Context, dept *Department) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, dept *Department) error {
	return f.createFn(ctx, dept)
}
func (f *fakeRepo) FindAll(context.Context) ([]Department, error) { return nil, nil }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Department, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, dept *Department) error {
	return f.updateFn(ctx, dept)
}
func (f *fakeRepo) Delete(context.Context, string) error { return nil }

func TestService_CreateAndUpdate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	var saved Department
	repo := &fakeRepo{
		createFn: func(ctx context.Context, dept *Department) error { saved = *dept; return nil },
		findByIDFn: func(ctx context.Context, id string) (*Department, error) {
			cp := saved
			return &cp, nil
		},
		updateFn: func(ctx context.Context, dept *Department) error { saved = *dept; return nil },
	}
	svc := NewService(db, repo)

	coordinatorID := uuid.New().String()
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(ctx, CreateDepartmentRequest{Name: "Mathematics", CoordinatorID: &coordinatorID})
	assert.NoError(t, err)
	assert.Equal(t, "Mathematics", resp.Name)
	assert.Equal(t, coordinatorID, resp.CoordinatorID)

	// Updating without a coordinator clears the assignment.
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.Update(ctx, resp.ID, UpdateDepartmentRequest{Name: "Applied Mathematics"})
	assert.NoError(t, err)
	assert.Equal(t, "Applied Mathematics", resp.Name)
	assert.Empty(t, resp.CoordinatorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Department, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(db, repo)

	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrDepartmentNotFound)
}
