package payrollrun_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/payrollrun"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	runFn        func(ctx context.Context, actorID string) (payrollrun.Summary, error)
	requestRunFn func(ctx context.Context, actorID string) error
}

func (f *fakeService) Run(ctx context.Context, actorID string) (payrollrun.Summary, error) {
	return f.runFn(ctx, actorID)
}

func (f *fakeService) RequestRun(ctx context.Context, actorID string) error {
	return f.requestRunFn(ctx, actorID)
}

func TestHandler_Run(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		runFn: func(ctx context.Context, actorID string) (payrollrun.Summary, error) {
			assert.Equal(t, "admin-1", actorID)
			return payrollrun.Summary{Processed: 3, SkippedNoRates: 1}, nil
		},
	}

	h := payrollrun.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id_validated", "admin-1")
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll/runs", nil)
	h.Run(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"processed\":3")
	assert.Contains(t, w.Body.String(), "\"skipped_no_rates\":1")
}

func TestHandler_RequestRun(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		requestRunFn: func(ctx context.Context, actorID string) error {
			assert.Equal(t, "admin-1", actorID)
			return nil
		},
	}

	h := payrollrun.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id_validated", "admin-1")
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll/runs/async", nil)
	h.RequestRun(c)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "\"queued\":true")
}

func TestHandler_Run_Failure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		runFn: func(ctx context.Context, actorID string) (payrollrun.Summary, error) {
			return payrollrun.Summary{}, errors.New("db down")
		},
	}

	h := payrollrun.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll/runs", nil)
	h.Run(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "\"ok\":false")
}
