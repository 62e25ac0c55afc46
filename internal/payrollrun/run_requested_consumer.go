package payrollrun

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/events"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunRequestedConsumer listens for payroll run requests and executes them.
// Re-delivered requests are harmless: a rerun finds nothing left to claim.
type RunRequestedConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewRunRequestedConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *RunRequestedConsumer {
	l := zap.L().Named("payrollrun.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollrun.consumer")
	}

	return &RunRequestedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.PayrollRunRequestedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *RunRequestedConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume payroll run request failed", zap.Error(err))
				continue
			}

			var event events.PayrollRunRequestedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode payroll run request failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid payroll run request failed", zap.Error(commitErr))
				}
				continue
			}

			requestedBy := event.RequestedBy
			if requestedBy == "" {
				requestedBy = "system"
			}

			summary, err := c.service.Run(ctx, requestedBy)
			if err != nil {
				// Leave the message uncommitted so the run is retried.
				c.logger.Error("payroll run from event failed",
					zap.String("requested_by", requestedBy),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit payroll run request failed", zap.Error(err))
				continue
			}

			c.logger.Info("payroll run from event finished",
				zap.String("requested_by", requestedBy),
				zap.Int("processed", summary.Processed),
				zap.Int("skipped_no_rates", summary.SkippedNoRates),
			)
		}
	}()
}
