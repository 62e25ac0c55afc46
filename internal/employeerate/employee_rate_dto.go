package employeerate

type CreateRateRequest struct {
	WorkerID   string  `json:"worker_id" binding:"required"`
	WorkerName *string `json:"worker_name"`
	LocationID string  `json:"location_id" binding:"required,uuid"`
	Rate       string  `json:"rate" binding:"required"`
}

type UpdateRateRequest struct {
	WorkerName *string `json:"worker_name"`
	Rate       string  `json:"rate" binding:"required"`
}

type RateResponse struct {
	ID         string  `json:"id"`
	WorkerID   string  `json:"worker_id"`
	WorkerName *string `json:"worker_name,omitempty"`
	LocationID string  `json:"location_id"`
	Rate       string  `json:"rate"`
}
