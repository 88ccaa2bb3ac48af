package domain

import (
	"context"
	"time"

	"github.com/jordanlanch/freelanceflow/pkg/models"
)

// RecordStore is the narrow query interface the engine depends on. All reads
// and aggregates are scoped by workspace; the engine never touches storage
// internals and only writes back its own computed annotations.
type RecordStore interface {
	LeadStore
	ProjectStore
	ClientStore
	ProposalStore
	EventStore
}

// LeadStore supplies leads and persists cached scores.
type LeadStore interface {
	GetLead(ctx context.Context, workspaceID, leadID string) (*models.Lead, error)
	// ListLeadCohort returns a bounded sample of won/lost leads from the
	// same workspace, newest first.
	ListLeadCohort(ctx context.Context, workspaceID string, limit int) ([]models.Lead, error)
	// UpdateLeadScore writes the computed score and insights back onto the
	// lead as an advisory cache. Last writer wins.
	UpdateLeadScore(ctx context.Context, workspaceID, leadID string, score int, insights string) error
	// ListStaleScoredLeads returns open leads whose cached score is older
	// than maxAge, for background re-scoring.
	ListStaleScoredLeads(ctx context.Context, maxAge time.Duration, limit int) ([]models.Lead, error)
}

// ProjectStore supplies projects with their tasks and invoices loaded.
type ProjectStore interface {
	GetProject(ctx context.Context, workspaceID, projectID string) (*models.Project, error)
}

// ClientStore supplies clients and their invoice history.
type ClientStore interface {
	GetClient(ctx context.Context, workspaceID, clientID string) (*models.Client, error)
	// ListClientInvoices returns the client's most recent invoices, bounded.
	ListClientInvoices(ctx context.Context, workspaceID, clientID string, limit int) ([]models.Invoice, error)
}

// ProposalStore supplies proposal templates and experiment history.
type ProposalStore interface {
	// ListActiveTemplates returns active templates ordered by conversion
	// rate descending.
	ListActiveTemplates(ctx context.Context, workspaceID string) ([]models.ProposalTemplate, error)
	ListCompletedABTests(ctx context.Context, workspaceID string) ([]models.ABTest, error)
}

// EventStore appends analytics events.
type EventStore interface {
	InsertEvent(ctx context.Context, event models.AnalyticsEvent) error
}
