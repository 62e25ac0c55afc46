package generation

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/events"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/location"
	kafkaoutbox "github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/messaging/kafka"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/occurrence"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/recurrence"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// chunkSize bounds one transaction. Chunks commit independently: a failure in
// one chunk is logged and the generator moves on, so one bad location cannot
// stall the whole schedule.
const chunkSize = 200

// Summary reports what one generation pass did.
type Summary struct {
	Generated        int `json:"generated"`
	Advanced         int `json:"advanced"`
	SkippedCustomDay int `json:"skipped_custom_day"`
	FailedChunks     int `json:"failed_chunks"`
}

//go:generate mockgen -source=generation_service.go -destination=mock/generation_service_mock.go -package=mock
type Service interface {
	Run(ctx context.Context, today time.Time) (Summary, error)
}

type service struct {
	db             *sql.DB
	locationRepo   location.Repository
	occurrenceRepo occurrence.Repository
	outboxRepo     kafkaoutbox.OutboxRepository
	log            *zap.Logger
	now            func() time.Time
	group          singleflight.Group
}

func NewService(
	db *sql.DB,
	locationRepo location.Repository,
	occurrenceRepo occurrence.Repository,
	outboxRepo kafkaoutbox.OutboxRepository,
) Service {
	return &service{
		db:             db,
		locationRepo:   locationRepo,
		occurrenceRepo: occurrenceRepo,
		outboxRepo:     outboxRepo,
		log:            zap.L().Named("generation.service"),
		now:            time.Now,
	}
}

// plan is the decided work for one due location.
type plan struct {
	loc      location.Location
	due      time.Time
	next     time.Time
	generate bool
}

// Run creates occurrences for every recurring location due on or before
// today and advances each location's schedule. Running it twice for the same
// day is safe: the first pass moves every due date into the future.
func (s *service) Run(ctx context.Context, today time.Time) (Summary, error) {
	v, err, _ := s.group.Do("generation-run", func() (interface{}, error) {
		return s.run(ctx, today)
	})
	if err != nil {
		return Summary{}, err
	}
	return v.(Summary), nil
}

func (s *service) run(ctx context.Context, today time.Time) (Summary, error) {
	log := s.log
	if reqID := contextutil.GetRequestID(ctx); reqID != "" {
		log = log.With(zap.String("request_id", reqID))
	}

	u := today.UTC()
	cutoff := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)

	due, err := s.locationRepo.FindDueRecurring(ctx, cutoff)
	if err != nil {
		return Summary{}, err
	}

	log.Info("generation pass started",
		zap.Time("cutoff", cutoff),
		zap.Int("due_locations", len(due)))

	plans := make([]plan, 0, len(due))
	for _, loc := range due {
		if loc.NextServiceDate == nil || loc.ServiceFrequency == nil {
			continue
		}

		dueDate := loc.NextServiceDate.UTC()
		freq := recurrence.Frequency(*loc.ServiceFrequency)

		next, fellBack := recurrence.Next(dueDate, freq, loc.ServiceDays)
		if fellBack {
			log.Warn("recurrence fell back to weekly advance",
				zap.String("location_id", loc.ID.String()),
				zap.String("frequency", string(freq)))
		}

		generate := true
		if freq == recurrence.FreqCustomWeekly && !loc.ServiceDays.Contains(int(dueDate.Weekday())) {
			// Off-plan day: advance the schedule without a visit.
			generate = false
		}

		plans = append(plans, plan{loc: loc, due: dueDate, next: next, generate: generate})
	}

	var summary Summary
	for start := 0; start < len(plans); start += chunkSize {
		end := start + chunkSize
		if end > len(plans) {
			end = len(plans)
		}

		chunkSummary, err := s.commitChunk(ctx, plans[start:end])
		if err != nil {
			log.Error("generation chunk failed, continuing with next chunk",
				zap.Int("chunk_start", start),
				zap.Error(err))
			summary.FailedChunks++
			continue
		}

		summary.Generated += chunkSummary.Generated
		summary.Advanced += chunkSummary.Advanced
		summary.SkippedCustomDay += chunkSummary.SkippedCustomDay
	}

	log.Info("generation pass finished",
		zap.Int("generated", summary.Generated),
		zap.Int("advanced", summary.Advanced),
		zap.Int("skipped_custom_day", summary.SkippedCustomDay),
		zap.Int("failed_chunks", summary.FailedChunks))

	return summary, nil
}

// commitChunk writes one batch of occurrences and schedule advances in a
// single transaction, each occurrence together with its outbox event.
func (s *service) commitChunk(ctx context.Context, plans []plan) (Summary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Summary{}, err
	}
	defer tx.Rollback()

	locationTx := s.locationRepo.WithTx(tx)
	occurrenceTx := s.occurrenceRepo.WithTx(tx)
	outboxTx := s.outboxRepo.WithTx(tx)

	var summary Summary
	requestID := contextutil.GetRequestID(ctx)

	for _, p := range plans {
		if p.generate {
			occ := &occurrence.ServiceOccurrence{
				ID:           uuid.New(),
				LocationID:   p.loc.ID,
				ClientID:     p.loc.ClientID,
				ClientName:   p.loc.ClientName,
				LocationName: &p.loc.LocationName,
				ServiceDate:  p.due,
				ServiceType:  "Standard Cleaning",
				Status:       occurrence.StatusScheduled,
			}

			if err := occurrenceTx.InsertScheduled(ctx, occ); err != nil {
				return Summary{}, err
			}

			payload, err := json.Marshal(events.OccurrenceGeneratedEvent{
				EventType:    "service.occurrence.generated",
				OccurrenceID: occ.ID.String(),
				LocationID:   p.loc.ID.String(),
				ServiceDate:  p.due,
				OccurredAt:   s.now().UTC(),
			})
			if err != nil {
				return Summary{}, err
			}

			err = outboxTx.Create(ctx, kafkaoutbox.OutboxEvent{
				ID:            uuid.New().String(),
				RequestID:     requestID,
				AggregateType: "service_occurrence",
				AggregateID:   occ.ID.String(),
				EventType:     "service.occurrence.generated",
				Topic:         events.OccurrenceGeneratedTopic,
				Payload:       payload,
				Status:        kafkaoutbox.OutboxStatusPending,
			})
			if err != nil {
				return Summary{}, err
			}

			summary.Generated++
		} else {
			summary.SkippedCustomDay++
		}

		if err := locationTx.AdvanceSchedule(ctx, p.loc.ID, p.next, nil); err != nil {
			return Summary{}, err
		}
		summary.Advanced++
	}

	if err := tx.Commit(); err != nil {
		return Summary{}, err
	}
	return summary, nil
}
