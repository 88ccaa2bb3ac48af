package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jordanlanch/freelanceflow/pkg/domain"
	"github.com/jordanlanch/freelanceflow/pkg/models"
)

// Interface conformance for both adapters.
var (
	_ domain.RecordStore = (*Postgres)(nil)
	_ domain.RecordStore = (*Memory)(nil)
)

// Memory is an in-memory record store for tests and local development.
type Memory struct {
	mu sync.RWMutex

	leads     map[string]models.Lead
	clients   map[string]models.Client
	projects  map[string]models.Project
	templates map[string]models.ProposalTemplate
	abTests   map[string]models.ABTest
	invoices  map[string]models.Invoice
	events    []models.AnalyticsEvent
}

// NewMemory creates an empty in-memory record store.
func NewMemory() *Memory {
	return &Memory{
		leads:     make(map[string]models.Lead),
		clients:   make(map[string]models.Client),
		projects:  make(map[string]models.Project),
		templates: make(map[string]models.ProposalTemplate),
		abTests:   make(map[string]models.ABTest),
		invoices:  make(map[string]models.Invoice),
	}
}

// Seed helpers. Each overwrites by id.

func (m *Memory) PutLead(lead models.Lead) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads[lead.ID] = lead
}

func (m *Memory) PutClient(client models.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[client.ID] = client
}

func (m *Memory) PutProject(project models.Project) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[project.ID] = project
}

func (m *Memory) PutTemplate(template models.ProposalTemplate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[template.ID] = template
}

func (m *Memory) PutABTest(test models.ABTest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.abTests[test.ID] = test
}

func (m *Memory) PutInvoice(invoice models.Invoice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[invoice.ID] = invoice
}

// Events returns a copy of the tracked events, for assertions.
func (m *Memory) Events() []models.AnalyticsEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.AnalyticsEvent, len(m.events))
	copy(out, m.events)
	return out
}

func (m *Memory) GetLead(_ context.Context, workspaceID, leadID string) (*models.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lead, ok := m.leads[leadID]
	if !ok || lead.WorkspaceID != workspaceID {
		return nil, domain.NewNotFoundError("lead")
	}
	return &lead, nil
}

func (m *Memory) ListLeadCohort(_ context.Context, workspaceID string, limit int) ([]models.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var cohort []models.Lead
	for _, l := range m.leads {
		if l.WorkspaceID != workspaceID {
			continue
		}
		if l.Status != models.LeadStatusWon && l.Status != models.LeadStatusLost {
			continue
		}
		cohort = append(cohort, l)
	}

	sort.Slice(cohort, func(i, j int) bool {
		return cohort[i].CreatedAt.After(cohort[j].CreatedAt)
	})
	if len(cohort) > limit {
		cohort = cohort[:limit]
	}
	return cohort, nil
}

func (m *Memory) UpdateLeadScore(_ context.Context, workspaceID, leadID string, score int, insights string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lead, ok := m.leads[leadID]
	if !ok || lead.WorkspaceID != workspaceID {
		return domain.NewNotFoundError("lead")
	}
	lead.AIScore = &score
	lead.AIInsights = insights
	lead.UpdatedAt = time.Now().UTC()
	m.leads[leadID] = lead
	return nil
}

func (m *Memory) ListStaleScoredLeads(_ context.Context, maxAge time.Duration, limit int) ([]models.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cutoff := time.Now().UTC().Add(-maxAge)
	var leads []models.Lead
	for _, l := range m.leads {
		if l.Status == models.LeadStatusWon || l.Status == models.LeadStatusLost {
			continue
		}
		if l.AIScore == nil || l.UpdatedAt.Before(cutoff) {
			leads = append(leads, l)
		}
	}

	sort.Slice(leads, func(i, j int) bool {
		return leads[i].UpdatedAt.Before(leads[j].UpdatedAt)
	})
	if len(leads) > limit {
		leads = leads[:limit]
	}
	return leads, nil
}

func (m *Memory) GetProject(_ context.Context, workspaceID, projectID string) (*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	project, ok := m.projects[projectID]
	if !ok || project.WorkspaceID != workspaceID {
		return nil, domain.NewNotFoundError("project")
	}

	invoices := append([]models.Invoice(nil), project.Invoices...)
	for _, inv := range m.invoices {
		if inv.WorkspaceID == workspaceID && inv.ProjectID == projectID {
			invoices = append(invoices, inv)
		}
	}
	project.Invoices = invoices
	return &project, nil
}

func (m *Memory) GetClient(_ context.Context, workspaceID, clientID string) (*models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	client, ok := m.clients[clientID]
	if !ok || client.WorkspaceID != workspaceID {
		return nil, domain.NewNotFoundError("client")
	}
	return &client, nil
}

func (m *Memory) ListClientInvoices(_ context.Context, workspaceID, clientID string, limit int) ([]models.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var invoices []models.Invoice
	for _, inv := range m.invoices {
		if inv.WorkspaceID == workspaceID && inv.ClientID == clientID {
			invoices = append(invoices, inv)
		}
	}

	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
	})
	if len(invoices) > limit {
		invoices = invoices[:limit]
	}
	return invoices, nil
}

func (m *Memory) ListActiveTemplates(_ context.Context, workspaceID string) ([]models.ProposalTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var templates []models.ProposalTemplate
	for _, t := range m.templates {
		if t.WorkspaceID == workspaceID && t.IsActive {
			templates = append(templates, t)
		}
	}

	sort.Slice(templates, func(i, j int) bool {
		if templates[i].ConversionRate != templates[j].ConversionRate {
			return templates[i].ConversionRate > templates[j].ConversionRate
		}
		return strings.Compare(templates[i].ID, templates[j].ID) < 0
	})
	return templates, nil
}

func (m *Memory) ListCompletedABTests(_ context.Context, workspaceID string) ([]models.ABTest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var tests []models.ABTest
	for _, t := range m.abTests {
		if t.WorkspaceID == workspaceID && t.Status == models.ABTestStatusCompleted {
			tests = append(tests, t)
		}
	}

	sort.Slice(tests, func(i, j int) bool { return tests[i].ID < tests[j].ID })
	return tests, nil
}

func (m *Memory) InsertEvent(_ context.Context, event models.AnalyticsEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}
