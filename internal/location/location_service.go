package location

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/recurrence"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/shared/apperror"

	"github.com/google/uuid"
)

//go:generate mockgen -source=location_service.go -destination=mock/location_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLocationRequest) (LocationResponse, error)
	GetAll(ctx context.Context) ([]LocationResponse, error)
	GetByID(ctx context.Context, id string) (LocationResponse, error)
	Update(ctx context.Context, id string, req UpdateLocationRequest) (LocationResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateLocationRequest) (LocationResponse, error) {
	freq, days, next, err := validateSchedule(req.ServiceFrequency, req.ServiceDays, req.NextServiceDate)
	if err != nil {
		return LocationResponse{}, err
	}

	var clientID *uuid.UUID
	if req.ClientID != nil && *req.ClientID != "" {
		parsed, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return LocationResponse{}, apperror.New(apperror.CodeInvalidInput, "invalid client id", 400)
		}
		clientID = &parsed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LocationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &Location{
		ID:               uuid.New(),
		ClientID:         clientID,
		ClientName:       req.ClientName,
		LocationName:     req.LocationName,
		Address:          req.Address,
		ServiceFrequency: freq,
		ServiceDays:      days,
		NextServiceDate:  next,
		Active:           true,
	}

	if err := qtx.Create(ctx, l); err != nil {
		return LocationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LocationResponse{}, err
	}

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LocationResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]LocationResponse, len(rows))
	for i, l := range rows {
		res[i] = mapToResponse(l)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LocationResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LocationResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLocationRequest) (LocationResponse, error) {
	freq, days, next, err := validateSchedule(req.ServiceFrequency, req.ServiceDays, req.NextServiceDate)
	if err != nil {
		return LocationResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LocationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LocationResponse{}, mapRepositoryError(err)
	}

	if req.ClientID != nil && *req.ClientID != "" {
		parsed, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return LocationResponse{}, apperror.New(apperror.CodeInvalidInput, "invalid client id", 400)
		}
		l.ClientID = &parsed
	}

	l.ClientName = req.ClientName
	l.LocationName = req.LocationName
	l.Address = req.Address
	l.ServiceFrequency = freq
	l.ServiceDays = days
	if next != nil {
		l.NextServiceDate = next
	}
	if req.Active != nil {
		l.Active = *req.Active
	}

	if err := qtx.Update(ctx, l); err != nil {
		return LocationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LocationResponse{}, err
	}

	return mapToResponse(*l), nil
}

// validateSchedule checks the recurrence fields as a unit: a recurring
// frequency needs a starting due date, and CustomWeekly needs at least one
// valid weekday.
func validateSchedule(freq *string, days []int, nextDate *string) (*string, WeekdaySet, *time.Time, error) {
	if freq == nil || *freq == "" {
		return nil, nil, nil, nil
	}

	f := recurrence.Frequency(*freq)
	if !recurrence.Known(f) {
		return nil, nil, nil, apperror.New(apperror.CodeInvalidInput, "unknown service frequency", 400)
	}

	var set WeekdaySet
	if f == recurrence.FreqCustomWeekly {
		if len(days) == 0 {
			return nil, nil, nil, apperror.New(apperror.CodeInvalidInput, "service_days is required for CustomWeekly", 400)
		}
		seen := map[int]bool{}
		for _, d := range days {
			if d < 0 || d > 6 {
				return nil, nil, nil, apperror.New(apperror.CodeInvalidInput, "service_days entries must be 0-6", 400)
			}
			if !seen[d] {
				seen[d] = true
				set = append(set, d)
			}
		}
	}

	var next *time.Time
	if nextDate != nil && *nextDate != "" {
		t, err := time.Parse("2006-01-02", *nextDate)
		if err != nil {
			return nil, nil, nil, apperror.New(apperror.CodeInvalidInput, "invalid next_service_date, expected YYYY-MM-DD", 400)
		}
		next = &t
	}
	if next == nil {
		return nil, nil, nil, apperror.New(apperror.CodeInvalidInput, "next_service_date is required for recurring locations", 400)
	}

	return freq, set, next, nil
}

func mapToResponse(l Location) LocationResponse {
	resp := LocationResponse{
		ID:               l.ID.String(),
		ClientName:       l.ClientName,
		LocationName:     l.LocationName,
		Address:          l.Address,
		ServiceFrequency: l.ServiceFrequency,
		ServiceDays:      l.ServiceDays,
		Active:           l.Active,
	}
	if l.ClientID != nil {
		v := l.ClientID.String()
		resp.ClientID = &v
	}
	if l.NextServiceDate != nil {
		v := l.NextServiceDate.Format("2006-01-02")
		resp.NextServiceDate = &v
	}
	if l.LastServiceDate != nil {
		v := l.LastServiceDate.Format("2006-01-02")
		resp.LastServiceDate = &v
	}
	return resp
}
