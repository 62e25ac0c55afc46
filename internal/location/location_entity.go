package location

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeekdaySet is a set of weekday indices (0=Sunday..6=Saturday) stored as a
// jsonb array. Only meaningful when the frequency is CustomWeekly.
type WeekdaySet []int

func (s WeekdaySet) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal([]int(s))
}

func (s *WeekdaySet) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]int)(s))
	case string:
		return json.Unmarshal([]byte(v), (*[]int)(s))
	default:
		return errors.New("unsupported type for WeekdaySet")
	}
}

func (s WeekdaySet) Contains(day int) bool {
	for _, d := range s {
		if d == day {
			return true
		}
	}
	return false
}

type Location struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	ClientID         *uuid.UUID     `gorm:"column:client_id;type:uuid;index"`
	ClientName       *string        `gorm:"column:client_name;type:varchar(200)"`
	LocationName     string         `gorm:"column:location_name;type:varchar(200);not null"`
	Address          *string        `gorm:"column:address;type:text"`
	ServiceFrequency *string        `gorm:"column:service_frequency;type:varchar(30);index"`
	ServiceDays      WeekdaySet     `gorm:"column:service_days;type:jsonb"`
	NextServiceDate  *time.Time     `gorm:"column:next_service_date;type:date;index"`
	LastServiceDate  *time.Time     `gorm:"column:last_service_date;type:date"`
	Active           bool           `gorm:"column:active;not null;default:true"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Location) TableName() string {
	return "locations"
}
