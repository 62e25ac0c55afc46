package generation

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/location"
	kafkaoutbox "github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/messaging/kafka"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/occurrence"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLocationRepo struct {
	location.Repository
	findDueRecurringFn func(ctx context.Context, cutoff time.Time) ([]location.Location, error)
	advances           map[uuid.UUID]time.Time
	advanceErr         error
}

func (f *fakeLocationRepo) WithTx(tx *sql.Tx) location.Repository { return f }
func (f *fakeLocationRepo) FindDueRecurring(ctx context.Context, cutoff time.Time) ([]location.Location, error) {
	return f.findDueRecurringFn(ctx, cutoff)
}
func (f *fakeLocationRepo) AdvanceSchedule(ctx context.Context, id uuid.UUID, next time.Time, served *time.Time) error {
	if f.advanceErr != nil {
		return f.advanceErr
	}
	if f.advances == nil {
		f.advances = map[uuid.UUID]time.Time{}
	}
	f.advances[id] = next
	return nil
}

type fakeOccurrenceRepo struct {
	occurrence.Repository
	inserted []occurrence.ServiceOccurrence
}

func (f *fakeOccurrenceRepo) WithTx(tx *sql.Tx) occurrence.Repository { return f }
func (f *fakeOccurrenceRepo) InsertScheduled(ctx context.Context, o *occurrence.ServiceOccurrence) error {
	f.inserted = append(f.inserted, *o)
	return nil
}

type fakeOutboxRepo struct {
	kafkaoutbox.OutboxRepository
	created []kafkaoutbox.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafkaoutbox.OutboxRepository { return f }
func (f *fakeOutboxRepo) Create(ctx context.Context, event kafkaoutbox.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func datePtr(t time.Time) *time.Time { return &t }
func strPtr(s string) *string        { return &s }

func dueLocation(freq string, next time.Time, days location.WeekdaySet) location.Location {
	return location.Location{
		ID:               uuid.New(),
		LocationName:     "Downtown Office",
		ServiceFrequency: strPtr(freq),
		ServiceDays:      days,
		NextServiceDate:  datePtr(next),
		Active:           true,
	}
}

func TestService_Run_BiWeekly(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	due := time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC)
	loc := dueLocation("Bi-Weekly", due, nil)

	locationRepo := &fakeLocationRepo{}
	locationRepo.findDueRecurringFn = func(ctx context.Context, cutoff time.Time) ([]location.Location, error) {
		return []location.Location{loc}, nil
	}
	occurrenceRepo := &fakeOccurrenceRepo{}
	outboxRepo := &fakeOutboxRepo{}

	svc := NewService(db, locationRepo, occurrenceRepo, outboxRepo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	summary, err := svc.Run(context.Background(), time.Date(2025, 4, 13, 5, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Generated)
	assert.Equal(t, 1, summary.Advanced)
	assert.Equal(t, 0, summary.FailedChunks)

	assert.Len(t, occurrenceRepo.inserted, 1)
	occ := occurrenceRepo.inserted[0]
	assert.Equal(t, loc.ID, occ.LocationID)
	assert.Equal(t, due, occ.ServiceDate)
	assert.Equal(t, occurrence.StatusScheduled, occ.Status)
	assert.False(t, occ.PayrollProcessed)

	assert.Equal(t, time.Date(2025, 4, 27, 0, 0, 0, 0, time.UTC), locationRepo.advances[loc.ID])

	assert.Len(t, outboxRepo.created, 1)
	assert.Equal(t, "service.occurrence.generated", outboxRepo.created[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Run_NothingDue(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	locationRepo := &fakeLocationRepo{}
	locationRepo.findDueRecurringFn = func(ctx context.Context, cutoff time.Time) ([]location.Location, error) {
		assert.Equal(t, time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC), cutoff)
		return nil, nil
	}

	svc := NewService(db, locationRepo, &fakeOccurrenceRepo{}, &fakeOutboxRepo{})

	summary, err := svc.Run(context.Background(), time.Date(2025, 4, 14, 5, 30, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Run_CustomWeeklyOffDayAdvancesOnly(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	// Due on a Sunday (0) but the plan covers Tue/Thu only.
	due := time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC)
	loc := dueLocation("CustomWeekly", due, location.WeekdaySet{2, 4})

	locationRepo := &fakeLocationRepo{}
	locationRepo.findDueRecurringFn = func(ctx context.Context, cutoff time.Time) ([]location.Location, error) {
		return []location.Location{loc}, nil
	}
	occurrenceRepo := &fakeOccurrenceRepo{}
	outboxRepo := &fakeOutboxRepo{}

	svc := NewService(db, locationRepo, occurrenceRepo, outboxRepo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	summary, err := svc.Run(context.Background(), time.Date(2025, 4, 13, 5, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.Generated)
	assert.Equal(t, 1, summary.SkippedCustomDay)
	assert.Equal(t, 1, summary.Advanced)

	assert.Empty(t, occurrenceRepo.inserted)
	assert.Empty(t, outboxRepo.created)
	// Next plan day after Sunday is Tuesday.
	assert.Equal(t, time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), locationRepo.advances[loc.ID])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Run_CustomWeeklyEmptyDaysFallsBack(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	due := time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC)
	loc := dueLocation("CustomWeekly", due, nil)

	locationRepo := &fakeLocationRepo{}
	locationRepo.findDueRecurringFn = func(ctx context.Context, cutoff time.Time) ([]location.Location, error) {
		return []location.Location{loc}, nil
	}
	occurrenceRepo := &fakeOccurrenceRepo{}

	svc := NewService(db, locationRepo, occurrenceRepo, &fakeOutboxRepo{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	summary, err := svc.Run(context.Background(), time.Date(2025, 4, 13, 5, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	// No plan days: nothing to visit, but the schedule still moves so the
	// location does not come back every day.
	assert.Equal(t, 0, summary.Generated)
	assert.Equal(t, 1, summary.Advanced)
	assert.Empty(t, occurrenceRepo.inserted)
	assert.Equal(t, due.AddDate(0, 0, 7), locationRepo.advances[loc.ID])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Run_ChunkFailureDoesNotAbort(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	due := time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC)
	loc := dueLocation("Weekly", due, nil)

	locationRepo := &fakeLocationRepo{advanceErr: errors.New("advance failed")}
	locationRepo.findDueRecurringFn = func(ctx context.Context, cutoff time.Time) ([]location.Location, error) {
		return []location.Location{loc}, nil
	}

	svc := NewService(db, locationRepo, &fakeOccurrenceRepo{}, &fakeOutboxRepo{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	summary, err := svc.Run(context.Background(), time.Date(2025, 4, 13, 5, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.FailedChunks)
	assert.Equal(t, 0, summary.Advanced)
	assert.NoError(t, mock.ExpectationsWereMet())
}
