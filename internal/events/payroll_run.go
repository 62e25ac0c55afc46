package events

import "time"

const (
	PayrollRunRequestedTopic = "ops.payroll.run.requested.v1"
	PayrollRunCompletedTopic = "ops.payroll.run.completed.v1"
)

type PayrollRunRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type PayrollRunCompletedEvent struct {
	EventType               string    `json:"event_type"`
	RequestedBy             string    `json:"requested_by"`
	Processed               int       `json:"processed"`
	SkippedMissingData      int       `json:"skipped_missing_data"`
	SkippedNoRates          int       `json:"skipped_no_rates"`
	SkippedAlreadyProcessed int       `json:"skipped_already_processed"`
	OccurredAt              time.Time `json:"occurred_at"`
}
