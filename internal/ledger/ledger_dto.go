package ledger

import "time"

type AddAdjustmentRequest struct {
	WorkerID string `json:"worker_id" binding:"required"`
	PeriodID string `json:"period_id" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}

type JobEntryResponse struct {
	JobID        string    `json:"job_id"`
	LocationID   string    `json:"location_id,omitempty"`
	LocationName string    `json:"location_name,omitempty"`
	ServiceDate  time.Time `json:"service_date"`
	Amount       string    `json:"amount"`
}

type AdjustmentEntryResponse struct {
	Amount  string    `json:"amount"`
	Reason  string    `json:"reason"`
	AddedBy string    `json:"added_by,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

type LedgerRecordResponse struct {
	ID            string                    `json:"id"`
	WorkerID      string                    `json:"worker_id"`
	WorkerName    *string                   `json:"worker_name,omitempty"`
	PeriodID      string                    `json:"period_id"`
	PeriodStart   time.Time                 `json:"period_start"`
	PeriodEnd     time.Time                 `json:"period_end"`
	TotalEarnings string                    `json:"total_earnings"`
	Status        string                    `json:"status"`
	Jobs          []JobEntryResponse        `json:"jobs"`
	Adjustments   []AdjustmentEntryResponse `json:"adjustments"`
	LastUpdatedBy *string                   `json:"last_updated_by,omitempty"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}
