package occurrence

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
)

// Terminal payroll processing labels. Once one is written the occurrence is
// never picked up by a later payroll run.
const (
	PayrollStatusProcessed          = "Processed"
	PayrollStatusSkippedMissingData = "Skipped - Missing Critical Data"
	PayrollStatusSkippedPeriodError = "Skipped - Pay Period Calculation Error"
	PayrollStatusSkippedNoRates     = "Skipped - No Rates Applied"
)

type Assignment struct {
	WorkerID   string `json:"worker_id"`
	WorkerName string `json:"worker_name,omitempty"`
}

// AssignmentList is stored as a jsonb array in document order.
type AssignmentList []Assignment

func (a AssignmentList) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal([]Assignment{})
	}
	return json.Marshal([]Assignment(a))
}

func (a *AssignmentList) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]Assignment)(a))
	case string:
		return json.Unmarshal([]byte(v), (*[]Assignment)(a))
	default:
		return errors.New("unsupported type for AssignmentList")
	}
}

type ServiceOccurrence struct {
	ID                      uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	LocationID              uuid.UUID      `gorm:"column:location_id;type:uuid;not null;index"`
	ClientID                *uuid.UUID     `gorm:"column:client_id;type:uuid"`
	ClientName              *string        `gorm:"column:client_name;type:varchar(200)"`
	LocationName            *string        `gorm:"column:location_name;type:varchar(200)"`
	ServiceDate             time.Time      `gorm:"column:service_date;type:timestamptz;not null;index"`
	ServiceType             string         `gorm:"column:service_type;type:varchar(50);not null"`
	Status                  string         `gorm:"column:status;type:varchar(20);not null;default:Scheduled;index"`
	EmployeeAssignments     AssignmentList `gorm:"column:employee_assignments;type:jsonb"`
	ServiceNotes            *string        `gorm:"column:service_notes;type:text"`
	PayrollProcessed        bool           `gorm:"column:payroll_processed;not null;default:false"`
	PayrollProcessingStatus *string        `gorm:"column:payroll_processing_status;type:varchar(60)"`
	PayrollProcessedAt      *time.Time     `gorm:"column:payroll_processed_at;type:timestamptz"`
	CreatedAt               time.Time      `gorm:"column:created_at"`
	UpdatedAt               time.Time      `gorm:"column:updated_at"`
}

func (ServiceOccurrence) TableName() string {
	return "service_occurrences"
}
