package payrollrun

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/employeerate"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/events"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/ledger"
	kafkaoutbox "github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/messaging/kafka"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/occurrence"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/payperiod"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/shared/apperror"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	// pageLimit bounds one run. Anything left over is picked up by the next
	// run because terminal statuses keep processed rows out of the filter.
	pageLimit = 200

	// chunkSize bounds one transaction. Chunks commit independently so a
	// failure late in the run does not roll back earlier chunks.
	chunkSize = 100
)

//go:generate mockgen -source=payroll_run_service.go -destination=mock/payroll_run_service_mock.go -package=mock
type Service interface {
	Run(ctx context.Context, actorID string) (Summary, error)
	RequestRun(ctx context.Context, actorID string) error
}

type service struct {
	db             *sql.DB
	occurrenceRepo occurrence.Repository
	rateRepo       employeerate.Repository
	ledgerRepo     ledger.Repository
	outboxRepo     kafkaoutbox.OutboxRepository
	log            *zap.Logger
	now            func() time.Time
	group          singleflight.Group
}

func NewService(
	db *sql.DB,
	occurrenceRepo occurrence.Repository,
	rateRepo employeerate.Repository,
	ledgerRepo ledger.Repository,
	outboxRepo kafkaoutbox.OutboxRepository,
) Service {
	return &service{
		db:             db,
		occurrenceRepo: occurrenceRepo,
		rateRepo:       rateRepo,
		ledgerRepo:     ledgerRepo,
		outboxRepo:     outboxRepo,
		log:            zap.L().Named("payrollrun.service"),
		now:            time.Now,
	}
}

// jobMerge is one resolved ledger write for a processed occurrence.
type jobMerge struct {
	workerID   string
	workerName *string
	period     payperiod.Period
	entry      ledger.JobEntry
}

// evaluation is the payroll decision for one occurrence, computed before any
// write happens. The status is terminal either way.
type evaluation struct {
	occ    occurrence.ServiceOccurrence
	status string
	merges []jobMerge
}

// Run examines completed occurrences and posts earnings to the ledger.
// Concurrent callers in the same process collapse into one run; across
// processes the per-occurrence claim keeps double posting out.
func (s *service) Run(ctx context.Context, actorID string) (Summary, error) {
	v, err, _ := s.group.Do("payroll-run", func() (interface{}, error) {
		return s.run(ctx, actorID)
	})
	if err != nil {
		return Summary{}, err
	}
	return v.(Summary), nil
}

func (s *service) run(ctx context.Context, actorID string) (Summary, error) {
	log := s.log
	if reqID := contextutil.GetRequestID(ctx); reqID != "" {
		log = log.With(zap.String("request_id", reqID))
	}

	rows, err := s.occurrenceRepo.FindCompletedForPayroll(ctx, pageLimit)
	if err != nil {
		return Summary{}, err
	}

	var candidates []occurrence.ServiceOccurrence
	for _, occ := range rows {
		if occ.PayrollProcessed {
			continue
		}
		candidates = append(candidates, occ)
	}

	log.Info("payroll run started",
		zap.String("actor_id", actorID),
		zap.Int("fetched", len(rows)),
		zap.Int("candidates", len(candidates)))

	if len(candidates) == 0 {
		return Summary{}, s.publishRunCompleted(ctx, actorID, Summary{})
	}

	evaluations := make([]evaluation, 0, len(candidates))
	for _, occ := range candidates {
		evaluations = append(evaluations, s.evaluate(ctx, log, occ))
	}

	var summary Summary
	for start := 0; start < len(evaluations); start += chunkSize {
		end := start + chunkSize
		if end > len(evaluations) {
			end = len(evaluations)
		}

		chunkSummary, err := s.commitChunk(ctx, evaluations[start:end])
		if err != nil {
			log.Error("payroll chunk failed, aborting run",
				zap.Int("chunk_start", start),
				zap.Error(err))
			return summary, apperror.Wrap(err, apperror.CodeInternalError, "payroll run failed part way; re-run to finish remaining occurrences", 500)
		}

		summary.Processed += chunkSummary.Processed
		summary.SkippedMissingData += chunkSummary.SkippedMissingData
		summary.SkippedPeriodError += chunkSummary.SkippedPeriodError
		summary.SkippedNoRates += chunkSummary.SkippedNoRates
		summary.SkippedAlreadyProcessed += chunkSummary.SkippedAlreadyProcessed
	}

	log.Info("payroll run finished",
		zap.Int("examined", summary.Examined()),
		zap.Int("processed", summary.Processed),
		zap.Int("skipped_missing_data", summary.SkippedMissingData),
		zap.Int("skipped_period_error", summary.SkippedPeriodError),
		zap.Int("skipped_no_rates", summary.SkippedNoRates),
		zap.Int("skipped_already_processed", summary.SkippedAlreadyProcessed))

	return summary, s.publishRunCompleted(ctx, actorID, summary)
}

// evaluate decides what to do with one occurrence. It only reads; the
// decision is applied later inside a chunk transaction.
func (s *service) evaluate(ctx context.Context, log *zap.Logger, occ occurrence.ServiceOccurrence) evaluation {
	if len(occ.EmployeeAssignments) == 0 || occ.ServiceDate.IsZero() {
		log.Warn("occurrence missing payroll data",
			zap.String("occurrence_id", occ.ID.String()))
		return evaluation{occ: occ, status: occurrence.PayrollStatusSkippedMissingData}
	}

	period := payperiod.Resolve(occ.ServiceDate)
	day := occ.ServiceDate.UTC().Truncate(24 * time.Hour)
	if !payperiod.ValidID(period.ID) || day.Before(period.Start) || day.After(period.End) {
		log.Error("resolved period does not contain service date",
			zap.String("occurrence_id", occ.ID.String()),
			zap.Time("service_date", occ.ServiceDate),
			zap.String("period_id", period.ID))
		return evaluation{occ: occ, status: occurrence.PayrollStatusSkippedPeriodError}
	}

	locationName := ""
	if occ.LocationName != nil {
		locationName = *occ.LocationName
	}

	var merges []jobMerge
	for _, assignment := range occ.EmployeeAssignments {
		rate, err := s.rateRepo.FindByWorkerAndLocation(ctx, assignment.WorkerID, occ.LocationID.String())
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn("rate lookup failed",
					zap.String("occurrence_id", occ.ID.String()),
					zap.String("worker_id", assignment.WorkerID),
					zap.Error(err))
			}
			continue
		}
		// Zero rates still post a zero-earnings job. Only negative values,
		// which should never survive rate validation, are dropped.
		if rate.Rate.IsNegative() {
			continue
		}

		var workerName *string
		if assignment.WorkerName != "" {
			name := assignment.WorkerName
			workerName = &name
		} else {
			workerName = rate.WorkerName
		}

		merges = append(merges, jobMerge{
			workerID:   assignment.WorkerID,
			workerName: workerName,
			period:     period,
			entry: ledger.JobEntry{
				JobID:        occ.ID.String(),
				LocationID:   occ.LocationID.String(),
				LocationName: locationName,
				ServiceDate:  occ.ServiceDate,
				Amount:       rate.Rate,
			},
		})
	}

	if len(merges) == 0 {
		return evaluation{occ: occ, status: occurrence.PayrollStatusSkippedNoRates}
	}
	return evaluation{occ: occ, status: occurrence.PayrollStatusProcessed, merges: merges}
}

// commitChunk applies one batch of evaluations in a single transaction. The
// claim on each occurrence and its ledger merges commit or roll back
// together, so a row is never marked Processed without its earnings.
func (s *service) commitChunk(ctx context.Context, evaluations []evaluation) (Summary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Summary{}, err
	}
	defer tx.Rollback()

	occurrenceTx := s.occurrenceRepo.WithTx(tx)
	ledgerTx := s.ledgerRepo.WithTx(tx)

	var summary Summary
	processedAt := s.now().UTC()

	for _, eval := range evaluations {
		claimed, err := occurrenceTx.ClaimForPayroll(ctx, eval.occ.ID, eval.status, processedAt)
		if err != nil {
			return Summary{}, err
		}
		if !claimed {
			summary.SkippedAlreadyProcessed++
			continue
		}

		switch eval.status {
		case occurrence.PayrollStatusProcessed:
			for _, merge := range eval.merges {
				if err := ledgerTx.MergeJob(ctx, merge.workerID, merge.workerName, merge.period, merge.entry, "payroll-run"); err != nil {
					return Summary{}, err
				}
			}
			summary.Processed++
		case occurrence.PayrollStatusSkippedMissingData:
			summary.SkippedMissingData++
		case occurrence.PayrollStatusSkippedPeriodError:
			summary.SkippedPeriodError++
		case occurrence.PayrollStatusSkippedNoRates:
			summary.SkippedNoRates++
		}
	}

	if err := tx.Commit(); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

// RequestRun queues a payroll run for the consumer instead of executing it in
// the request path. The outbox row is the whole operation; delivery and
// execution happen out of band.
func (s *service) RequestRun(ctx context.Context, actorID string) error {
	payload, err := json.Marshal(events.PayrollRunRequestedEvent{
		EventType:   "payroll.run.requested",
		RequestedBy: actorID,
		OccurredAt:  s.now().UTC(),
	})
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = s.outboxRepo.WithTx(tx).Create(ctx, kafkaoutbox.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_run",
		AggregateID:   actorID,
		EventType:     "payroll.run.requested",
		Topic:         events.PayrollRunRequestedTopic,
		Payload:       payload,
		Status:        kafkaoutbox.OutboxStatusPending,
	})
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) publishRunCompleted(ctx context.Context, actorID string, summary Summary) error {
	payload, err := json.Marshal(events.PayrollRunCompletedEvent{
		EventType:               "payroll.run.completed",
		RequestedBy:             actorID,
		Processed:               summary.Processed,
		SkippedMissingData:      summary.SkippedMissingData + summary.SkippedPeriodError,
		SkippedNoRates:          summary.SkippedNoRates,
		SkippedAlreadyProcessed: summary.SkippedAlreadyProcessed,
		OccurredAt:              s.now().UTC(),
	})
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = s.outboxRepo.WithTx(tx).Create(ctx, kafkaoutbox.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_run",
		AggregateID:   actorID,
		EventType:     "payroll.run.completed",
		Topic:         events.PayrollRunCompletedTopic,
		Payload:       payload,
		Status:        kafkaoutbox.OutboxStatusPending,
	})
	if err != nil {
		return err
	}

	return tx.Commit()
}
