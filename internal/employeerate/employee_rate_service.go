package employeerate

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=employee_rate_service.go -destination=mock/employee_rate_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateRateRequest) (RateResponse, error)
	GetAll(ctx context.Context) ([]RateResponse, error)
	GetByID(ctx context.Context, id string) (RateResponse, error)
	Update(ctx context.Context, id string, req UpdateRateRequest) (RateResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRateRequest) (RateResponse, error) {
	workerID := strings.TrimSpace(req.WorkerID)
	if workerID == "" {
		return RateResponse{}, apperror.RequiredField("worker_id")
	}

	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return RateResponse{}, apperror.InvalidField("location_id")
	}

	rate, err := parseRate(req.Rate)
	if err != nil {
		return RateResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r := &EmployeeRate{
		ID:         uuid.New(),
		WorkerID:   workerID,
		WorkerName: req.WorkerName,
		LocationID: locationID,
		Rate:       rate,
	}

	if err := qtx.Create(ctx, r); err != nil {
		return RateResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return RateResponse{}, err
	}

	return mapToResponse(*r), nil
}

func (s *service) GetAll(ctx context.Context) ([]RateResponse, error) {
	rates, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]RateResponse, len(rates))
	for i, r := range rates {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (RateResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RateResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*r), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRateRequest) (RateResponse, error) {
	rate, err := parseRate(req.Rate)
	if err != nil {
		return RateResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := qtx.FindByID(ctx, id)
	if err != nil {
		return RateResponse{}, mapRepositoryError(err)
	}

	r.Rate = rate
	if req.WorkerName != nil {
		r.WorkerName = req.WorkerName
	}

	if err := qtx.Update(ctx, r); err != nil {
		return RateResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return RateResponse{}, err
	}

	return mapToResponse(*r), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

// parseRate accepts a decimal string and requires a non-negative amount with
// at most two fractional digits. Zero is a valid rate: an unpaid training
// assignment still posts a zero-earnings job to the ledger.
func parseRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, apperror.New(apperror.CodeInvalidInput, "rate must be a decimal number", http.StatusBadRequest)
	}
	if rate.IsNegative() {
		return decimal.Zero, apperror.New(apperror.CodeInvalidInput, "rate must not be negative", http.StatusBadRequest)
	}
	if rate.Exponent() < -2 {
		return decimal.Zero, apperror.New(apperror.CodeInvalidInput, "rate supports at most two decimal places", http.StatusBadRequest)
	}
	return rate, nil
}

func mapToResponse(r EmployeeRate) RateResponse {
	return RateResponse{
		ID:         r.ID.String(),
		WorkerID:   r.WorkerID,
		WorkerName: r.WorkerName,
		LocationID: r.LocationID.String(),
		Rate:       r.Rate.StringFixed(2),
	}
}
