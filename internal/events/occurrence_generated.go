package events

import "time"

const OccurrenceGeneratedTopic = "ops.service.occurrence.generated.v1"

type OccurrenceGeneratedEvent struct {
	EventType    string    `json:"event_type"`
	OccurrenceID string    `json:"occurrence_id"`
	LocationID   string    `json:"location_id"`
	ServiceDate  time.Time `json:"service_date"`
	OccurredAt   time.Time `json:"occurred_at"`
}
