package models

import "time"

// ErrorResponse is the generic API error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WorkPeriod bounds the tasks considered for invoice automation (inclusive).
type WorkPeriod struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required,gtefield=Start"`
}

// OptimizeProposalRequest is the input to proposal optimization.
type OptimizeProposalRequest struct {
	ClientID    string  `json:"client_id" validate:"required"`
	ProjectType string  `json:"project_type" validate:"required"`
	BudgetRange float64 `json:"budget_range" validate:"omitempty,gte=0"`
	Industry    string  `json:"industry"`
}

// DraftProposalRequest is the input to proposal draft generation.
type DraftProposalRequest struct {
	ClientName   string  `json:"client_name" validate:"required"`
	ProjectType  string  `json:"project_type" validate:"required"`
	BudgetRange  float64 `json:"budget_range" validate:"omitempty,gte=0"`
	Requirements string  `json:"requirements"`
}

// AutomateInvoiceRequest is the input to invoice automation.
type AutomateInvoiceRequest struct {
	ProjectID       string     `json:"project_id" validate:"required"`
	ClientID        string     `json:"client_id" validate:"required"`
	WorkPeriod      WorkPeriod `json:"work_period" validate:"required"`
	IncludeExpenses bool       `json:"include_expenses"`
}

// InvoiceContentRequest is the input to invoice content generation.
type InvoiceContentRequest struct {
	ClientName    string   `json:"client_name" validate:"required"`
	ProjectName   string   `json:"project_name"`
	WorkCompleted []string `json:"work_completed"`
	HoursWorked   float64  `json:"hours_worked" validate:"omitempty,gte=0"`
	HourlyRate    float64  `json:"hourly_rate" validate:"omitempty,gte=0"`
}

// TrackEventRequest is the input to the event tracker.
type TrackEventRequest struct {
	Type       string                 `json:"type" validate:"required"`
	EntityType string                 `json:"entity_type"`
	EntityID   string                 `json:"entity_id"`
	Properties map[string]interface{} `json:"properties"`
	UserID     string                 `json:"user_id"`
}
