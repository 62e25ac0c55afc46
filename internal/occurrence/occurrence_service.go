package occurrence

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=occurrence_service.go -destination=mock/occurrence_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateOccurrenceRequest) (OccurrenceResponse, error)
	GetAll(ctx context.Context, q ListOccurrencesQuery) ([]OccurrenceResponse, int64, error)
	GetByID(ctx context.Context, id string) (OccurrenceResponse, error)
	Complete(ctx context.Context, id string, req CompleteOccurrenceRequest) (OccurrenceResponse, error)
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
		log:  zap.L().Named("occurrence.service"),
		now:  time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateOccurrenceRequest) (OccurrenceResponse, error) {
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return OccurrenceResponse{}, apperror.InvalidField("location_id")
	}

	serviceDate, err := time.Parse("2006-01-02", req.ServiceDate)
	if err != nil {
		return OccurrenceResponse{}, apperror.New(apperror.CodeInvalidInput, "service_date must be YYYY-MM-DD", 400)
	}

	serviceType := strings.TrimSpace(req.ServiceType)
	if serviceType == "" {
		serviceType = "Standard Cleaning"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OccurrenceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	o := &ServiceOccurrence{
		ID:                  uuid.New(),
		LocationID:          locationID,
		ServiceDate:         serviceDate.UTC(),
		ServiceType:         serviceType,
		Status:              StatusScheduled,
		EmployeeAssignments: mapAssignments(req.EmployeeAssignments),
		ServiceNotes:        req.ServiceNotes,
	}

	if err := qtx.Create(ctx, o); err != nil {
		return OccurrenceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return OccurrenceResponse{}, err
	}

	return mapToResponse(*o), nil
}

func (s *service) GetAll(ctx context.Context, q ListOccurrencesQuery) ([]OccurrenceResponse, int64, error) {
	filter := ListFilter{
		LocationID: q.LocationID,
		Status:     q.Status,
		Page:       q.Page,
		Limit:      q.Limit,
	}
	if q.From != "" {
		t, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			return nil, 0, apperror.New(apperror.CodeInvalidInput, "from must be YYYY-MM-DD", 400)
		}
		filter.From = &t
	}
	if q.To != "" {
		t, err := time.Parse("2006-01-02", q.To)
		if err != nil {
			return nil, 0, apperror.New(apperror.CodeInvalidInput, "to must be YYYY-MM-DD", 400)
		}
		filter.To = &t
	}

	rows, total, err := s.repo.FindAllByFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	res := make([]OccurrenceResponse, len(rows))
	for i, o := range rows {
		res[i] = mapToResponse(o)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (OccurrenceResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return OccurrenceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*o), nil
}

// Complete transitions a scheduled occurrence to Completed. Assignments and
// notes supplied here replace whatever the generator seeded.
func (s *service) Complete(ctx context.Context, id string, req CompleteOccurrenceRequest) (OccurrenceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OccurrenceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	o, err := qtx.FindByID(ctx, id)
	if err != nil {
		return OccurrenceResponse{}, mapRepositoryError(err)
	}

	if o.Status != StatusScheduled {
		return OccurrenceResponse{}, apperror.New(apperror.CodeConflict, "occurrence is not in Scheduled status", 409)
	}

	o.Status = StatusCompleted
	if len(req.EmployeeAssignments) > 0 {
		o.EmployeeAssignments = mapAssignments(req.EmployeeAssignments)
	}
	if req.ServiceNotes != nil {
		o.ServiceNotes = req.ServiceNotes
	}

	if err := qtx.Update(ctx, o); err != nil {
		return OccurrenceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return OccurrenceResponse{}, err
	}

	s.log.Info("occurrence completed",
		zap.String("occurrence_id", o.ID.String()),
		zap.Int("assignments", len(o.EmployeeAssignments)))

	return mapToResponse(*o), nil
}

func mapAssignments(in []AssignmentRequest) AssignmentList {
	out := make(AssignmentList, 0, len(in))
	for _, a := range in {
		workerID := strings.TrimSpace(a.WorkerID)
		if workerID == "" {
			continue
		}
		out = append(out, Assignment{
			WorkerID:   workerID,
			WorkerName: strings.TrimSpace(a.WorkerName),
		})
	}
	return out
}

func mapToResponse(o ServiceOccurrence) OccurrenceResponse {
	res := OccurrenceResponse{
		ID:                      o.ID.String(),
		LocationID:              o.LocationID.String(),
		ClientName:              o.ClientName,
		LocationName:            o.LocationName,
		ServiceDate:             o.ServiceDate,
		ServiceType:             o.ServiceType,
		Status:                  o.Status,
		EmployeeAssignments:     o.EmployeeAssignments,
		ServiceNotes:            o.ServiceNotes,
		PayrollProcessed:        o.PayrollProcessed,
		PayrollProcessingStatus: o.PayrollProcessingStatus,
		PayrollProcessedAt:      o.PayrollProcessedAt,
	}
	if res.EmployeeAssignments == nil {
		res.EmployeeAssignments = []Assignment{}
	}
	if o.ClientID != nil {
		id := o.ClientID.String()
		res.ClientID = &id
	}
	return res
}
