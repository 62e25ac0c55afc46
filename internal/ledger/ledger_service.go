package ledger

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/payperiod"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/shared/apperror"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=ledger_service.go -destination=mock/ledger_service_mock.go -package=mock
type Service interface {
	AddAdjustment(ctx context.Context, actorID string, req AddAdjustmentRequest) (LedgerRecordResponse, error)
	GetByWorkerAndPeriod(ctx context.Context, workerID, periodID string) (LedgerRecordResponse, error)
	GetAllByPeriod(ctx context.Context, periodID string) ([]LedgerRecordResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{
		db:   db,
		repo: repo,
		log:  zap.L().Named("ledger.service"),
		now:  time.Now,
	}
}

// AddAdjustment applies a manual correction to a worker's ledger for a
// period. The period must be a real period boundary, not an arbitrary date.
func (s *service) AddAdjustment(ctx context.Context, actorID string, req AddAdjustmentRequest) (LedgerRecordResponse, error) {
	workerID := strings.TrimSpace(req.WorkerID)
	if workerID == "" {
		return LedgerRecordResponse{}, apperror.RequiredField("worker_id")
	}

	periodID := strings.TrimSpace(req.PeriodID)
	period, ok := payperiod.ResolveID(periodID)
	if !ok || period.ID != periodID {
		return LedgerRecordResponse{}, apperror.New(apperror.CodeInvalidInput, "period_id must be a pay period start date (YYYY-MM-DD)", http.StatusBadRequest)
	}

	reason := strings.TrimSpace(req.Reason)
	if len(reason) < 3 {
		return LedgerRecordResponse{}, apperror.New(apperror.CodeInvalidInput, "reason must be at least 3 characters", http.StatusBadRequest)
	}

	// Zero is allowed: a zero-amount adjustment still records its reason in
	// the audit trail without moving the total.
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return LedgerRecordResponse{}, apperror.New(apperror.CodeInvalidInput, "amount must be a decimal number", http.StatusBadRequest)
	}

	adj := AdjustmentEntry{
		Amount:  amount,
		Reason:  reason,
		AddedBy: actorID,
		AddedAt: s.now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LedgerRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.MergeAdjustment(ctx, workerID, period, adj, actorID); err != nil {
		return LedgerRecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LedgerRecordResponse{}, err
	}

	s.log.Info("payroll adjustment applied",
		zap.String("worker_id", workerID),
		zap.String("period_id", period.ID),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("added_by", actorID))

	rec, err := s.repo.FindByID(ctx, RecordID(workerID, period.ID))
	if err != nil {
		return LedgerRecordResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*rec), nil
}

func (s *service) GetByWorkerAndPeriod(ctx context.Context, workerID, periodID string) (LedgerRecordResponse, error) {
	if !payperiod.ValidID(periodID) {
		return LedgerRecordResponse{}, apperror.InvalidField("period_id")
	}

	rec, err := s.repo.FindByID(ctx, RecordID(workerID, periodID))
	if err != nil {
		return LedgerRecordResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*rec), nil
}

func (s *service) GetAllByPeriod(ctx context.Context, periodID string) ([]LedgerRecordResponse, error) {
	if !payperiod.ValidID(periodID) {
		return nil, apperror.InvalidField("period_id")
	}

	rows, err := s.repo.FindAllByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	res := make([]LedgerRecordResponse, len(rows))
	for i, rec := range rows {
		res[i] = mapToResponse(rec)
	}
	return res, nil
}

func mapToResponse(rec LedgerRecord) LedgerRecordResponse {
	jobs := make([]JobEntryResponse, len(rec.Jobs))
	for i, j := range rec.Jobs {
		jobs[i] = JobEntryResponse{
			JobID:        j.JobID,
			LocationID:   j.LocationID,
			LocationName: j.LocationName,
			ServiceDate:  j.ServiceDate,
			Amount:       j.Amount.StringFixed(2),
		}
	}

	adjustments := make([]AdjustmentEntryResponse, len(rec.Adjustments))
	for i, a := range rec.Adjustments {
		adjustments[i] = AdjustmentEntryResponse{
			Amount:  a.Amount.StringFixed(2),
			Reason:  a.Reason,
			AddedBy: a.AddedBy,
			AddedAt: a.AddedAt,
		}
	}

	return LedgerRecordResponse{
		ID:            rec.ID,
		WorkerID:      rec.WorkerID,
		WorkerName:    rec.WorkerName,
		PeriodID:      rec.PeriodID,
		PeriodStart:   rec.PeriodStart,
		PeriodEnd:     rec.PeriodEnd,
		TotalEarnings: rec.TotalEarnings.StringFixed(2),
		Status:        rec.Status,
		Jobs:          jobs,
		Adjustments:   adjustments,
		LastUpdatedBy: rec.LastUpdatedBy,
		UpdatedAt:     rec.UpdatedAt,
	}
}
