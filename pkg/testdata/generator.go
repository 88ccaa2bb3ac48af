// Package testdata generates realistic fixture records for tests and local
// seeding. Generation is seeded, so a fixed seed gives a reproducible dataset.
package testdata

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/jordanlanch/freelanceflow/pkg/models"
)

// GeneratorConfig configures fixture generation parameters.
type GeneratorConfig struct {
	WorkspaceID   string
	Seed          int64
	CompanyChance float64 // 0.0-1.0 probability of a lead having a company
	PhoneChance   float64
	WonChance     float64 // probability a generated lead is already won
}

// DefaultGeneratorConfig returns sensible defaults for a single workspace.
func DefaultGeneratorConfig(workspaceID string) GeneratorConfig {
	return GeneratorConfig{
		WorkspaceID:   workspaceID,
		Seed:          1,
		CompanyChance: 0.7,
		PhoneChance:   0.6,
		WonChance:     0.3,
	}
}

// Generator produces fake CRM records.
type Generator struct {
	cfg  GeneratorConfig
	rand *rand.Rand
	fake *gofakeit.Faker
}

// NewGenerator creates a generator with the given config.
func NewGenerator(cfg GeneratorConfig) *Generator {
	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
		fake: gofakeit.New(cfg.Seed),
	}
}

var leadSources = []models.LeadSource{
	models.SourceReferral,
	models.SourceLinkedIn,
	models.SourceWebsiteForm,
	models.SourceColdOutreach,
	models.SourceOther,
}

// Lead generates a single lead.
func (g *Generator) Lead() models.Lead {
	name := g.fake.Name()
	lead := models.Lead{
		ID:            uuid.NewString(),
		Name:          name,
		Email:         g.fake.Email(),
		Source:        leadSources[g.rand.Intn(len(leadSources))],
		Status:        models.LeadStatusNew,
		ExpectedValue: float64(g.rand.Intn(90) * 1000),
		WorkspaceID:   g.cfg.WorkspaceID,
		CreatedAt:     time.Now().UTC().Add(-time.Duration(g.rand.Intn(90*24)) * time.Hour),
	}
	lead.UpdatedAt = lead.CreatedAt
	if g.rand.Float64() < g.cfg.CompanyChance {
		lead.Company = g.fake.Company()
	}
	if g.rand.Float64() < g.cfg.PhoneChance {
		lead.Phone = "+1" + g.fake.Numerify("212#######")
	}
	if g.rand.Float64() < g.cfg.WonChance {
		lead.Status = models.LeadStatusWon
	}
	return lead
}

// Leads generates n leads.
func (g *Generator) Leads(n int) []models.Lead {
	leads := make([]models.Lead, 0, n)
	for i := 0; i < n; i++ {
		leads = append(leads, g.Lead())
	}
	return leads
}

// Client generates a single client.
func (g *Generator) Client() models.Client {
	return models.Client{
		ID:          uuid.NewString(),
		Name:        g.fake.Name(),
		Email:       g.fake.Email(),
		Company:     g.fake.Company(),
		Status:      "active",
		WorkspaceID: g.cfg.WorkspaceID,
		CreatedAt:   time.Now().UTC(),
	}
}

// Project generates a project for a client, with tasks spread across its
// timeline and some already completed.
func (g *Generator) Project(clientID string, taskCount int) models.Project {
	start := time.Now().UTC().Add(-30 * 24 * time.Hour)
	end := start.Add(90 * 24 * time.Hour)
	project := models.Project{
		ID:          uuid.NewString(),
		Name:        fmt.Sprintf("%s %s", g.fake.BuzzWord(), g.fake.RandomString([]string{"Platform", "Redesign", "Migration", "Portal"})),
		ClientID:    clientID,
		Status:      models.ProjectStatusActive,
		Budget:      float64(10+g.rand.Intn(90)) * 1000,
		StartDate:   &start,
		EndDate:     &end,
		WorkspaceID: g.cfg.WorkspaceID,
		CreatedAt:   start,
	}
	for i := 0; i < taskCount; i++ {
		project.Tasks = append(project.Tasks, g.task(project.ID, start))
	}
	return project
}

func (g *Generator) task(projectID string, projectStart time.Time) models.Task {
	created := projectStart.Add(time.Duration(g.rand.Intn(30*24)) * time.Hour)
	task := models.Task{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Title:       g.fake.Sentence(4),
		Status:      models.TaskStatusTodo,
		Priority:    models.TaskPriorityMedium,
		WorkspaceID: g.cfg.WorkspaceID,
		CreatedAt:   created,
	}
	switch g.rand.Intn(3) {
	case 0:
		task.Status = models.TaskStatusDone
	case 1:
		due := created.Add(14 * 24 * time.Hour)
		task.DueDate = &due
	}
	if g.rand.Float64() < 0.2 {
		task.Priority = models.TaskPriorityUrgent
	}
	return task
}

// Invoice generates an invoice for a client, optionally already paid.
func (g *Generator) Invoice(clientID string, paid bool) models.Invoice {
	created := time.Now().UTC().Add(-time.Duration(g.rand.Intn(180*24)) * time.Hour)
	due := created.Add(30 * 24 * time.Hour)
	inv := models.Invoice{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		TotalAmount: float64(1+g.rand.Intn(20)) * 500,
		Status:      models.InvoiceStatusSent,
		DueDate:     due,
		WorkspaceID: g.cfg.WorkspaceID,
		CreatedAt:   created,
	}
	if paid {
		paidAt := due.Add(time.Duration(g.rand.Intn(20)-5) * 24 * time.Hour)
		inv.Status = models.InvoiceStatusPaid
		inv.PaidAt = &paidAt
	}
	return inv
}

// ProposalTemplate generates a proposal template with plausible usage stats.
func (g *Generator) ProposalTemplate(category string) models.ProposalTemplate {
	return models.ProposalTemplate{
		ID:             uuid.NewString(),
		Name:           fmt.Sprintf("%s %s Template", g.fake.BuzzWord(), category),
		Category:       category,
		UsageCount:     g.rand.Intn(40),
		ConversionRate: 0.2 + g.rand.Float64()*0.6,
		IsActive:       true,
		WorkspaceID:    g.cfg.WorkspaceID,
	}
}
