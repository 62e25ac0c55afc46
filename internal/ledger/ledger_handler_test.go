package ledger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/ledger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	addAdjustmentFn        func(ctx context.Context, actorID string, req ledger.AddAdjustmentRequest) (ledger.LedgerRecordResponse, error)
	getByWorkerAndPeriodFn func(ctx context.Context, workerID, periodID string) (ledger.LedgerRecordResponse, error)
	getAllByPeriodFn       func(ctx context.Context, periodID string) ([]ledger.LedgerRecordResponse, error)
}

func (f *fakeService) AddAdjustment(ctx context.Context, actorID string, req ledger.AddAdjustmentRequest) (ledger.LedgerRecordResponse, error) {
	return f.addAdjustmentFn(ctx, actorID, req)
}
func (f *fakeService) GetByWorkerAndPeriod(ctx context.Context, workerID, periodID string) (ledger.LedgerRecordResponse, error) {
	return f.getByWorkerAndPeriodFn(ctx, workerID, periodID)
}
func (f *fakeService) GetAllByPeriod(ctx context.Context, periodID string) ([]ledger.LedgerRecordResponse, error) {
	return f.getAllByPeriodFn(ctx, periodID)
}

func TestHandler_AddAdjustment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		addAdjustmentFn: func(ctx context.Context, actorID string, req ledger.AddAdjustmentRequest) (ledger.LedgerRecordResponse, error) {
			assert.Equal(t, "admin-1", actorID)
			assert.Equal(t, "W1", req.WorkerID)
			assert.Equal(t, "-25.00", req.Amount)
			return ledger.LedgerRecordResponse{ID: "W1_2025-04-13", TotalEarnings: "125.00"}, nil
		},
	}

	h := ledger.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id_validated", "admin-1")
	body := `{"worker_id":"W1","period_id":"2025-04-13","amount":"-25.00","reason":"damaged supplies"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll/adjustments", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.AddAdjustment(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "W1_2025-04-13")
}

func TestHandler_AddAdjustment_MissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := ledger.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll/adjustments", strings.NewReader(`{"worker_id":"W1"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.AddAdjustment(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "\"ok\":false")
}

func TestHandler_GetAllByPeriod(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getAllByPeriodFn: func(ctx context.Context, periodID string) ([]ledger.LedgerRecordResponse, error) {
			assert.Equal(t, "2025-04-13", periodID)
			return []ledger.LedgerRecordResponse{{ID: "W1_2025-04-13"}, {ID: "W2_2025-04-13"}}, nil
		},
	}

	h := ledger.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ledgers?period_id=2025-04-13", nil)
	h.GetAllByPeriod(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "W2_2025-04-13")
}

func TestHandler_GetByWorkerAndPeriod(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getByWorkerAndPeriodFn: func(ctx context.Context, workerID, periodID string) (ledger.LedgerRecordResponse, error) {
			assert.Equal(t, "W1", workerID)
			assert.Equal(t, "2025-04-13", periodID)
			return ledger.LedgerRecordResponse{ID: "W1_2025-04-13", TotalEarnings: "150.00"}, nil
		},
	}

	h := ledger.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "worker_id", Value: "W1"}, {Key: "period_id", Value: "2025-04-13"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/ledgers/W1/2025-04-13", nil)
	h.GetByWorkerAndPeriod(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "150.00")
}
