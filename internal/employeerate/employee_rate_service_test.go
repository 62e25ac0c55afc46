package employeerate

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                  func(tx *sql.Tx) Repository
	createFn                  func(ctx context.Context, rate *EmployeeRate) error
	updateFn                  func(ctx context.Context, rate *EmployeeRate) error
	deleteFn                  func(ctx context.Context, id string) error
	findByIDFn                func(ctx context.Context, id string) (*EmployeeRate, error)
	findAllFn                 func(ctx context.Context) ([]EmployeeRate, error)
	findByWorkerAndLocationFn func(ctx context.Context, workerID, locationID string) (*EmployeeRate, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, rate *EmployeeRate) error {
	return f.createFn(ctx, rate)
}
func (f *fakeRepo) Update(ctx context.Context, rate *EmployeeRate) error {
	return f.updateFn(ctx, rate)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*EmployeeRate, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]EmployeeRate, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindByWorkerAndLocation(ctx context.Context, workerID, locationID string) (*EmployeeRate, error) {
	return f.findByWorkerAndLocationFn(ctx, workerID, locationID)
}

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved EmployeeRate
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, rate *EmployeeRate) error { saved = *rate; return nil }

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateRateRequest{
		WorkerID:   "W1",
		LocationID: uuid.New().String(),
		Rate:       "150",
	})
	assert.NoError(t, err)
	assert.Equal(t, "150.00", resp.Rate)
	assert.Equal(t, "W1", saved.WorkerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_InvalidRate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	for _, raw := range []string{"abc", "-10", "12.345"} {
		_, err := svc.Create(context.Background(), CreateRateRequest{
			WorkerID:   "W1",
			LocationID: uuid.New().String(),
			Rate:       raw,
		})
		assert.Error(t, err, raw)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, 400, httpErr.Status, raw)
	}
}

func TestService_Create_ZeroRateAllowed(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved EmployeeRate
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, rate *EmployeeRate) error { saved = *rate; return nil }

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateRateRequest{
		WorkerID:   "W1",
		LocationID: uuid.New().String(),
		Rate:       "0",
	})
	assert.NoError(t, err)
	assert.Equal(t, "0.00", resp.Rate)
	assert.True(t, saved.Rate.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_DuplicatePair(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, rate *EmployeeRate) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_worker_location"}
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreateRateRequest{
		WorkerID:   "W1",
		LocationID: uuid.New().String(),
		Rate:       "150.00",
	})
	assert.Error(t, err)
	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, 409, httpErr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Update(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	stored := EmployeeRate{ID: id, WorkerID: "W1", LocationID: uuid.New()}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, lookup string) (*EmployeeRate, error) {
		cp := stored
		return &cp, nil
	}
	repo.updateFn = func(ctx context.Context, rate *EmployeeRate) error { stored = *rate; return nil }

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), id.String(), UpdateRateRequest{Rate: "175.50"})
	assert.NoError(t, err)
	assert.Equal(t, "175.50", resp.Rate)
	assert.Equal(t, "175.5", stored.Rate.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*EmployeeRate, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)
	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.Error(t, err)
	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, 404, httpErr.Status)
}
