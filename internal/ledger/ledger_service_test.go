package ledger

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/payperiod"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn          func(tx *sql.Tx) Repository
	mergeJobFn        func(ctx context.Context, workerID string, workerName *string, period payperiod.Period, job JobEntry, updatedBy string) error
	mergeAdjustmentFn func(ctx context.Context, workerID string, period payperiod.Period, adj AdjustmentEntry, updatedBy string) error
	findByIDFn        func(ctx context.Context, id string) (*LedgerRecord, error)
	findAllByPeriodFn func(ctx context.Context, periodID string) ([]LedgerRecord, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) MergeJob(ctx context.Context, workerID string, workerName *string, period payperiod.Period, job JobEntry, updatedBy string) error {
	return f.mergeJobFn(ctx, workerID, workerName, period, job, updatedBy)
}
func (f *fakeRepo) MergeAdjustment(ctx context.Context, workerID string, period payperiod.Period, adj AdjustmentEntry, updatedBy string) error {
	return f.mergeAdjustmentFn(ctx, workerID, period, adj, updatedBy)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*LedgerRecord, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAllByPeriod(ctx context.Context, periodID string) ([]LedgerRecord, error) {
	return f.findAllByPeriodFn(ctx, periodID)
}

func TestService_AddAdjustment_Negative(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var merged AdjustmentEntry
	var mergedPeriod payperiod.Period
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.mergeAdjustmentFn = func(ctx context.Context, workerID string, period payperiod.Period, adj AdjustmentEntry, updatedBy string) error {
		merged = adj
		mergedPeriod = period
		return nil
	}
	repo.findByIDFn = func(ctx context.Context, id string) (*LedgerRecord, error) {
		return &LedgerRecord{
			ID:            "W1_2025-04-13",
			WorkerID:      "W1",
			PeriodID:      "2025-04-13",
			TotalEarnings: decimal.NewFromInt(125),
			Status:        StatusPending,
			Adjustments:   AdjustmentList{merged},
		}, nil
	}

	svc := NewService(db, repo).(*service)
	svc.now = func() time.Time { return time.Date(2025, 4, 20, 12, 0, 0, 0, time.UTC) }

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.AddAdjustment(context.Background(), "admin-1", AddAdjustmentRequest{
		WorkerID: "W1",
		PeriodID: "2025-04-13",
		Amount:   "-25.00",
		Reason:   "broken supply closet key",
	})
	assert.NoError(t, err)
	assert.Equal(t, "W1_2025-04-13", resp.ID)
	assert.Equal(t, "125.00", resp.TotalEarnings)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, "-25.00", merged.Amount.StringFixed(2))
	assert.Equal(t, "admin-1", merged.AddedBy)
	assert.Equal(t, "2025-04-13", mergedPeriod.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_AddAdjustment_ZeroAmountAccepted(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var merged AdjustmentEntry
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.mergeAdjustmentFn = func(ctx context.Context, workerID string, period payperiod.Period, adj AdjustmentEntry, updatedBy string) error {
		merged = adj
		return nil
	}
	repo.findByIDFn = func(ctx context.Context, id string) (*LedgerRecord, error) {
		return &LedgerRecord{
			ID:            "W1_2025-04-13",
			WorkerID:      "W1",
			PeriodID:      "2025-04-13",
			TotalEarnings: decimal.NewFromInt(125),
			Status:        StatusPending,
			Adjustments:   AdjustmentList{merged},
		}, nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.AddAdjustment(context.Background(), "admin-1", AddAdjustmentRequest{
		WorkerID: "W1",
		PeriodID: "2025-04-13",
		Amount:   "0",
		Reason:   "disputed hours, resolved without change",
	})
	assert.NoError(t, err)
	assert.Equal(t, "0.00", merged.Amount.StringFixed(2))
	assert.Equal(t, "125.00", resp.TotalEarnings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_AddAdjustment_Validation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	cases := []struct {
		name string
		req  AddAdjustmentRequest
	}{
		{"blank worker", AddAdjustmentRequest{WorkerID: "  ", PeriodID: "2025-04-13", Amount: "10", Reason: "bonus pay"}},
		{"malformed period", AddAdjustmentRequest{WorkerID: "W1", PeriodID: "04/13/2025", Amount: "10", Reason: "bonus pay"}},
		{"non-boundary period", AddAdjustmentRequest{WorkerID: "W1", PeriodID: "2025-04-14", Amount: "10", Reason: "bonus pay"}},
		{"short reason", AddAdjustmentRequest{WorkerID: "W1", PeriodID: "2025-04-13", Amount: "10", Reason: "ok"}},
		{"bad amount", AddAdjustmentRequest{WorkerID: "W1", PeriodID: "2025-04-13", Amount: "ten", Reason: "bonus pay"}},
	}

	for _, tc := range cases {
		_, err := svc.AddAdjustment(context.Background(), "admin-1", tc.req)
		assert.Error(t, err, tc.name)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, 400, httpErr.Status, tc.name)
	}
}

func TestService_GetByWorkerAndPeriod_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*LedgerRecord, error) {
		assert.Equal(t, "W9_2025-04-13", id)
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)
	_, err := svc.GetByWorkerAndPeriod(context.Background(), "W9", "2025-04-13")
	assert.Error(t, err)
	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, 404, httpErr.Status)
}

func TestService_GetAllByPeriod(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findAllByPeriodFn = func(ctx context.Context, periodID string) ([]LedgerRecord, error) {
		return []LedgerRecord{
			{
				ID:            "W1_2025-04-13",
				WorkerID:      "W1",
				PeriodID:      periodID,
				TotalEarnings: decimal.NewFromInt(150),
				Jobs: JobList{{
					JobID:  "occ-1",
					Amount: decimal.NewFromInt(150),
				}},
			},
		}, nil
	}

	svc := NewService(db, repo)
	rows, err := svc.GetAllByPeriod(context.Background(), "2025-04-13")
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "150.00", rows[0].TotalEarnings)
	assert.Len(t, rows[0].Jobs, 1)
	assert.Equal(t, "150.00", rows[0].Jobs[0].Amount)
}
