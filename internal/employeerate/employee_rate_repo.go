package employeerate

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_rate_repo.go -destination=mock/employee_rate_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rate *EmployeeRate) error
	Update(ctx context.Context, rate *EmployeeRate) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*EmployeeRate, error)
	FindAll(ctx context.Context) ([]EmployeeRate, error)
	FindByWorkerAndLocation(ctx context.Context, workerID, locationID string) (*EmployeeRate, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, rate *EmployeeRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *repository) Update(ctx context.Context, rate *EmployeeRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&EmployeeRate{}).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*EmployeeRate, error) {
	var rate EmployeeRate
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&rate).Error
	return &rate, err
}

func (r *repository) FindAll(ctx context.Context) ([]EmployeeRate, error) {
	var rates []EmployeeRate
	err := r.db.WithContext(ctx).
		Order("worker_id ASC").
		Find(&rates).Error
	return rates, err
}

func (r *repository) FindByWorkerAndLocation(ctx context.Context, workerID, locationID string) (*EmployeeRate, error) {
	var rate EmployeeRate
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Where("location_id = ?", locationID).
		First(&rate).Error
	return &rate, err
}
