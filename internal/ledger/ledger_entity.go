package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StatusPending marks a ledger record that has not been paid out yet. Every
// merge writes it on first insert and leaves it alone afterwards.
const StatusPending = "Pending"

// LedgerRecord accumulates one worker's earnings for one pay period. The
// primary key is "<workerID>_<periodID>" so every merge for the same worker
// and period lands on the same row.
type LedgerRecord struct {
	ID            string          `gorm:"column:id;type:varchar(160);primaryKey"`
	WorkerID      string          `gorm:"column:worker_id;type:varchar(100);not null;index"`
	WorkerName    *string         `gorm:"column:worker_name;type:varchar(200)"`
	PeriodID      string          `gorm:"column:period_id;type:varchar(10);not null;index"`
	PeriodStart   time.Time       `gorm:"column:period_start;type:timestamptz;not null"`
	PeriodEnd     time.Time       `gorm:"column:period_end;type:timestamptz;not null"`
	TotalEarnings decimal.Decimal `gorm:"column:total_earnings;type:numeric(14,2);not null"`
	Status        string          `gorm:"column:status;type:varchar(30);not null;default:Pending"`
	Jobs          JobList         `gorm:"column:jobs;type:jsonb"`
	Adjustments   AdjustmentList  `gorm:"column:adjustments;type:jsonb"`
	LastUpdatedBy *string         `gorm:"column:last_updated_by;type:varchar(100)"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (LedgerRecord) TableName() string {
	return "payroll_ledgers"
}

// RecordID builds the ledger primary key for a worker and period.
func RecordID(workerID, periodID string) string {
	return fmt.Sprintf("%s_%s", workerID, periodID)
}

type JobEntry struct {
	JobID        string          `json:"job_id"`
	LocationID   string          `json:"location_id,omitempty"`
	LocationName string          `json:"location_name,omitempty"`
	ServiceDate  time.Time       `json:"service_date"`
	Amount       decimal.Decimal `json:"amount"`
}

type AdjustmentEntry struct {
	Amount  decimal.Decimal `json:"amount"`
	Reason  string          `json:"reason"`
	AddedBy string          `json:"added_by,omitempty"`
	AddedAt time.Time       `json:"added_at"`
}

type JobList []JobEntry

func (j JobList) Value() (driver.Value, error) {
	if j == nil {
		return json.Marshal([]JobEntry{})
	}
	return json.Marshal([]JobEntry(j))
}

func (j *JobList) Scan(value interface{}) error {
	return scanJSON(value, (*[]JobEntry)(j))
}

type AdjustmentList []AdjustmentEntry

func (a AdjustmentList) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal([]AdjustmentEntry{})
	}
	return json.Marshal([]AdjustmentEntry(a))
}

func (a *AdjustmentList) Scan(value interface{}) error {
	return scanJSON(value, (*[]AdjustmentEntry)(a))
}

func scanJSON(value interface{}, target any) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, target)
	case string:
		return json.Unmarshal([]byte(v), target)
	default:
		return errors.New("unsupported type for jsonb column")
	}
}
