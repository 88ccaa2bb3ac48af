package models

import "time"

// LeadSource enumerates where a lead came from.
type LeadSource string

const (
	SourceReferral     LeadSource = "Referral"
	SourceLinkedIn     LeadSource = "LinkedIn"
	SourceWebsiteForm  LeadSource = "Website Contact Form"
	SourceColdOutreach LeadSource = "Cold Outreach"
	SourceOther        LeadSource = "Other"
)

// LeadStatus enumerates pipeline stages. Transitions are driven by the UI;
// the engine only reads status.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusProposal  LeadStatus = "proposal"
	LeadStatusWon       LeadStatus = "won"
	LeadStatusLost      LeadStatus = "lost"
)

// Lead represents a prospective client tracked through the sales pipeline.
type Lead struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	Company       string     `json:"company,omitempty"`
	Source        LeadSource `json:"source"`
	Status        LeadStatus `json:"status"`
	ExpectedValue float64    `json:"expected_value,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	AIScore       *int       `json:"ai_score,omitempty"`
	AIInsights    string     `json:"ai_insights,omitempty"`
	WorkspaceID   string     `json:"workspace_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Client represents a paying customer of the workspace.
type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Company     string    `json:"company,omitempty"`
	Status      string    `json:"status"`
	WorkspaceID string    `json:"workspace_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectStatus enumerates project lifecycle stages.
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// Project represents a client engagement with its work breakdown.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Status      ProjectStatus `json:"status"`
	Budget      float64       `json:"budget,omitempty"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	ClientID    string        `json:"client_id"`
	WorkspaceID string        `json:"workspace_id"`
	CreatedAt   time.Time     `json:"created_at"`

	// Loaded relations; nil slices are treated as empty, never fatal.
	Tasks    []Task    `json:"tasks,omitempty"`
	Invoices []Invoice `json:"invoices,omitempty"`
}

// TaskStatus enumerates kanban columns.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// TaskPriority enumerates task priorities.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Task represents a unit of project work. ActualHours is only meaningful
// once status is done.
type Task struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Status         TaskStatus   `json:"status"`
	Priority       TaskPriority `json:"priority"`
	DueDate        *time.Time   `json:"due_date,omitempty"`
	EstimatedHours float64      `json:"estimated_hours,omitempty"`
	ActualHours    float64      `json:"actual_hours,omitempty"`
	ProjectID      string       `json:"project_id"`
	WorkspaceID    string       `json:"workspace_id"`
	CreatedAt      time.Time    `json:"created_at"`
}

// InvoiceStatus enumerates invoice states.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Invoice represents a billing document. PaidAt is set iff status is paid.
type Invoice struct {
	ID          string        `json:"id"`
	TotalAmount float64       `json:"total_amount"`
	Status      InvoiceStatus `json:"status"`
	DueDate     time.Time     `json:"due_date"`
	PaidAt      *time.Time    `json:"paid_at,omitempty"`
	ClientID    string        `json:"client_id"`
	ProjectID   string        `json:"project_id,omitempty"`
	WorkspaceID string        `json:"workspace_id"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ProposalTemplate represents a reusable proposal with usage statistics.
type ProposalTemplate struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	UsageCount     int     `json:"usage_count"`
	ConversionRate float64 `json:"conversion_rate"`
	IsActive       bool    `json:"is_active"`
	WorkspaceID    string  `json:"workspace_id"`
}

// ABTestStatus enumerates A/B test states.
type ABTestStatus string

const (
	ABTestStatusActive    ABTestStatus = "active"
	ABTestStatusPaused    ABTestStatus = "paused"
	ABTestStatusCompleted ABTestStatus = "completed"
)

// ABTestVariantResult holds per-template outcomes of a completed test.
type ABTestVariantResult struct {
	Views          int     `json:"views"`
	Conversions    int     `json:"conversions"`
	ConversionRate float64 `json:"conversion_rate"`
}

// ABTest represents a controlled comparison of two proposal templates.
type ABTest struct {
	ID                      string               `json:"id"`
	TemplateAID             string               `json:"template_a_id"`
	TemplateBID             string               `json:"template_b_id"`
	TrafficSplit            float64              `json:"traffic_split"`
	Status                  ABTestStatus         `json:"status"`
	ResultA                 *ABTestVariantResult `json:"result_a,omitempty"`
	ResultB                 *ABTestVariantResult `json:"result_b,omitempty"`
	StatisticalSignificance float64              `json:"statistical_significance"`
	WorkspaceID             string               `json:"workspace_id"`
}

// AnalyticsEvent is an append-only usage event.
type AnalyticsEvent struct {
	ID          string                 `json:"id"`
	EventType   string                 `json:"event_type"`
	EntityType  string                 `json:"entity_type,omitempty"`
	EntityID    string                 `json:"entity_id,omitempty"`
	Properties  map[string]interface{} `json:"properties,omitempty"`
	UserID      string                 `json:"user_id,omitempty"`
	SessionID   string                 `json:"session_id"`
	WorkspaceID string                 `json:"workspace_id"`
	CreatedAt   time.Time              `json:"created_at"`
}
