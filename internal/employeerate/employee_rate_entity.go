package employeerate

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EmployeeRate is the flat per-service pay rate for one worker at one
// location. At most one active rate exists per (worker, location) pair.
type EmployeeRate struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	WorkerID   string          `gorm:"column:worker_id;type:varchar(100);not null;uniqueIndex:uq_worker_location"`
	WorkerName *string         `gorm:"column:worker_name;type:varchar(200)"`
	LocationID uuid.UUID       `gorm:"column:location_id;type:uuid;not null;uniqueIndex:uq_worker_location"`
	Rate       decimal.Decimal `gorm:"column:rate;type:numeric(12,2);not null"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"column:deleted_at;index"`
}

func (EmployeeRate) TableName() string {
	return "employee_rates"
}
