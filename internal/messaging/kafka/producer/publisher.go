package producer

import (
	"context"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// publishEvent writes one outbox row to its topic. AggregateID keys the
// message so events for the same aggregate stay ordered within a partition.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	return writer.WriteMessages(ctx, kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
		},
	})
}
