package ledger

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/payperiod"

	"gorm.io/gorm"
)

//go:generate mockgen -source=ledger_repo.go -destination=mock/ledger_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	MergeJob(ctx context.Context, workerID string, workerName *string, period payperiod.Period, job JobEntry, updatedBy string) error
	MergeAdjustment(ctx context.Context, workerID string, period payperiod.Period, adj AdjustmentEntry, updatedBy string) error
	FindByID(ctx context.Context, id string) (*LedgerRecord, error)
	FindAllByPeriod(ctx context.Context, periodID string) ([]LedgerRecord, error)
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

// MergeJob upserts a ledger row and folds one job into it. The ON CONFLICT
// arithmetic runs inside Postgres, so concurrent merges for the same worker
// and period serialize on the row instead of losing increments.
func (r *repository) MergeJob(ctx context.Context, workerID string, workerName *string, period payperiod.Period, job JobEntry, updatedBy string) error {
	entry, err := json.Marshal([]JobEntry{job})
	if err != nil {
		return err
	}

	query := `
INSERT INTO payroll_ledgers (
	id, worker_id, worker_name, period_id, period_start, period_end,
	total_earnings, status, jobs, adjustments, last_updated_by, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, '[]'::jsonb, $10, NOW(), NOW())
ON CONFLICT (id) DO UPDATE SET
	total_earnings = payroll_ledgers.total_earnings + EXCLUDED.total_earnings,
	jobs = payroll_ledgers.jobs || EXCLUDED.jobs,
	worker_name = COALESCE(EXCLUDED.worker_name, payroll_ledgers.worker_name),
	last_updated_by = EXCLUDED.last_updated_by,
	updated_at = NOW()
`
	_, err = r.execer().ExecContext(ctx, query,
		RecordID(workerID, period.ID),
		workerID,
		workerName,
		period.ID,
		period.Start,
		period.End,
		job.Amount,
		StatusPending,
		entry,
		updatedBy,
	)
	return err
}

// MergeAdjustment is the same upsert for manual adjustments. Amounts may be
// negative, so total_earnings can decrease.
func (r *repository) MergeAdjustment(ctx context.Context, workerID string, period payperiod.Period, adj AdjustmentEntry, updatedBy string) error {
	entry, err := json.Marshal([]AdjustmentEntry{adj})
	if err != nil {
		return err
	}

	query := `
INSERT INTO payroll_ledgers (
	id, worker_id, worker_name, period_id, period_start, period_end,
	total_earnings, status, jobs, adjustments, last_updated_by, created_at, updated_at
)
VALUES ($1, $2, NULL, $3, $4, $5, $6, $7, '[]'::jsonb, $8::jsonb, $9, NOW(), NOW())
ON CONFLICT (id) DO UPDATE SET
	total_earnings = payroll_ledgers.total_earnings + EXCLUDED.total_earnings,
	adjustments = payroll_ledgers.adjustments || EXCLUDED.adjustments,
	last_updated_by = EXCLUDED.last_updated_by,
	updated_at = NOW()
`
	_, err = r.execer().ExecContext(ctx, query,
		RecordID(workerID, period.ID),
		workerID,
		period.ID,
		period.Start,
		period.End,
		adj.Amount,
		StatusPending,
		entry,
		updatedBy,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LedgerRecord, error) {
	var rec LedgerRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&rec).Error
	return &rec, err
}

func (r *repository) FindAllByPeriod(ctx context.Context, periodID string) ([]LedgerRecord, error) {
	var rows []LedgerRecord
	err := r.db.WithContext(ctx).
		Where("period_id = ?", periodID).
		Order("worker_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	if db, err := r.db.DB(); err == nil {
		return db
	}
	return noExec{}
}

type noExec struct{}

func (noExec) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, sql.ErrConnDone
}
