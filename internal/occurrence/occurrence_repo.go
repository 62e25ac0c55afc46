package occurrence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=occurrence_repo.go -destination=mock/occurrence_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, o *ServiceOccurrence) error
	InsertScheduled(ctx context.Context, o *ServiceOccurrence) error
	Update(ctx context.Context, o *ServiceOccurrence) error
	FindByID(ctx context.Context, id string) (*ServiceOccurrence, error)
	FindAllByFilter(ctx context.Context, filter ListFilter) ([]ServiceOccurrence, int64, error)
	FindCompletedForPayroll(ctx context.Context, limit int) ([]ServiceOccurrence, error)
	ClaimForPayroll(ctx context.Context, id uuid.UUID, status string, processedAt time.Time) (bool, error)
}

type ListFilter struct {
	LocationID string
	Status     string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
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

func (r *repository) Create(ctx context.Context, o *ServiceOccurrence) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// InsertScheduled writes a generated occurrence through the raw executor so
// the generator can place it in the same transaction as the schedule advance
// and outbox event. Only the generator may call this.
func (r *repository) InsertScheduled(ctx context.Context, o *ServiceOccurrence) error {
	query := `
INSERT INTO service_occurrences (
	id, location_id, client_id, client_name, location_name,
	service_date, service_type, status, employee_assignments,
	payroll_processed, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '[]'::jsonb, false, NOW(), NOW())
`
	_, err := r.execer().ExecContext(ctx, query,
		o.ID, o.LocationID, o.ClientID, o.ClientName, o.LocationName,
		o.ServiceDate, o.ServiceType, o.Status,
	)
	return err
}

func (r *repository) Update(ctx context.Context, o *ServiceOccurrence) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*ServiceOccurrence, error) {
	var o ServiceOccurrence
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&o).Error
	return &o, err
}

func (r *repository) FindAllByFilter(ctx context.Context, filter ListFilter) ([]ServiceOccurrence, int64, error) {
	q := r.db.WithContext(ctx).Model(&ServiceOccurrence{})
	if filter.LocationID != "" {
		q = q.Where("location_id = ?", filter.LocationID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("service_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("service_date <= ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var rows []ServiceOccurrence
	err := q.Order("service_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

// FindCompletedForPayroll returns completed occurrences oldest first. It does
// not filter on payroll_processed; callers filter in memory and rows already
// claimed are rejected again by ClaimForPayroll.
func (r *repository) FindCompletedForPayroll(ctx context.Context, limit int) ([]ServiceOccurrence, error) {
	var rows []ServiceOccurrence
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusCompleted).
		Order("service_date ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ClaimForPayroll marks the occurrence processed with a terminal status. The
// conditional WHERE makes the claim atomic: exactly one caller sees rows
// affected = 1 for a given occurrence, concurrent runs see 0 and skip it.
func (r *repository) ClaimForPayroll(ctx context.Context, id uuid.UUID, status string, processedAt time.Time) (bool, error) {
	query := `
UPDATE service_occurrences
SET
	payroll_processed = true,
	payroll_processing_status = $2,
	payroll_processed_at = $3,
	updated_at = NOW()
WHERE id = $1 AND payroll_processed = false
`
	res, err := r.execer().ExecContext(ctx, query, id, status, processedAt)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
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
