package occurrence

import "time"

type AssignmentRequest struct {
	WorkerID   string `json:"worker_id" binding:"required"`
	WorkerName string `json:"worker_name"`
}

type CreateOccurrenceRequest struct {
	LocationID          string              `json:"location_id" binding:"required,uuid"`
	ServiceDate         string              `json:"service_date" binding:"required"`
	ServiceType         string              `json:"service_type"`
	EmployeeAssignments []AssignmentRequest `json:"employee_assignments"`
	ServiceNotes        *string             `json:"service_notes"`
}

type CompleteOccurrenceRequest struct {
	EmployeeAssignments []AssignmentRequest `json:"employee_assignments"`
	ServiceNotes        *string             `json:"service_notes"`
}

type ListOccurrencesQuery struct {
	LocationID string `form:"location_id"`
	Status     string `form:"status"`
	From       string `form:"from"`
	To         string `form:"to"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
}

type OccurrenceResponse struct {
	ID                      string       `json:"id"`
	LocationID              string       `json:"location_id"`
	ClientID                *string      `json:"client_id,omitempty"`
	ClientName              *string      `json:"client_name,omitempty"`
	LocationName            *string      `json:"location_name,omitempty"`
	ServiceDate             time.Time    `json:"service_date"`
	ServiceType             string       `json:"service_type"`
	Status                  string       `json:"status"`
	EmployeeAssignments     []Assignment `json:"employee_assignments"`
	ServiceNotes            *string      `json:"service_notes,omitempty"`
	PayrollProcessed        bool         `json:"payroll_processed"`
	PayrollProcessingStatus *string      `json:"payroll_processing_status,omitempty"`
	PayrollProcessedAt      *time.Time   `json:"payroll_processed_at,omitempty"`
}
