package location

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/recurrence"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=location_repo.go -destination=mock/location_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Location) error
	Update(ctx context.Context, l *Location) error
	FindByID(ctx context.Context, id string) (*Location, error)
	FindAll(ctx context.Context) ([]Location, error)
	FindDueRecurring(ctx context.Context, cutoff time.Time) ([]Location, error)
	AdvanceSchedule(ctx context.Context, id uuid.UUID, next time.Time, served *time.Time) error
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

func (r *repository) Create(ctx context.Context, l *Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) Update(ctx context.Context, l *Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Location, error) {
	var l Location
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&l).Error
	return &l, err
}

func (r *repository) FindAll(ctx context.Context) ([]Location, error) {
	var rows []Location
	err := r.db.WithContext(ctx).
		Order("location_name ASC").
		Find(&rows).Error
	return rows, err
}

// FindDueRecurring returns locations on a recurring frequency whose next due
// date is at or before cutoff.
func (r *repository) FindDueRecurring(ctx context.Context, cutoff time.Time) ([]Location, error) {
	var rows []Location
	err := r.db.WithContext(ctx).
		Where("service_frequency IN ?", recurrence.RecurringFrequencies()).
		Where("next_service_date IS NOT NULL").
		Where("next_service_date <= ?", cutoff).
		Where("active = ?", true).
		Order("next_service_date ASC").
		Find(&rows).Error
	return rows, err
}

// AdvanceSchedule moves the location's schedule forward. It runs through the
// raw executor so the generator can place it in the same transaction as the
// occurrence it creates. Only the generator may call this.
func (r *repository) AdvanceSchedule(ctx context.Context, id uuid.UUID, next time.Time, served *time.Time) error {
	query := `
UPDATE locations
SET
	next_service_date = $2,
	last_service_date = COALESCE($3, last_service_date),
	updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL
`
	_, err := r.execer().ExecContext(ctx, query, id, next, served)
	return err
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
