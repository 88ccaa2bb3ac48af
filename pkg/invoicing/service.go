// Package invoicing derives suggested invoice line items, payment terms and
// follow-up schedules from completed project work and client payment
// history.
package invoicing

import (
	"context"
	"fmt"
	"math"

	"github.com/jordanlanch/freelanceflow/pkg/domain"
	"github.com/jordanlanch/freelanceflow/pkg/logger"
	"github.com/jordanlanch/freelanceflow/pkg/models"
)

const (
	// DefaultHoursPerTask is assumed for done tasks with no logged hours.
	DefaultHoursPerTask = 8
	// DefaultHourlyRate applies when the project has no budget to derive a
	// rate from.
	DefaultHourlyRate = 150
	// MilestoneFraction of the budget is billed when no work falls inside
	// the period.
	MilestoneFraction = 0.3
	// DefaultMilestoneAmount applies when the project has no budget at all.
	DefaultMilestoneAmount = 5000
	// ExpenseAmount is the flat expenses line.
	ExpenseAmount = 500

	// Payment term bounds.
	DefaultDueDays = 30
	MinDueDays     = 15
	MaxDueDays     = 45
	DueDaysBuffer  = 5

	// DefaultHistoryLimit bounds how many past invoices inform payment terms.
	DefaultHistoryLimit = 10
)

// Store defines the project and client data access this service needs.
type Store interface {
	GetProject(ctx context.Context, workspaceID, projectID string) (*models.Project, error)
	GetClient(ctx context.Context, workspaceID, clientID string) (*models.Client, error)
	ListClientInvoices(ctx context.Context, workspaceID, clientID string, limit int) ([]models.Invoice, error)
}

// Service computes invoice automation suggestions.
type Service struct {
	store        Store
	historyLimit int
	log          logger.Logger
}

// NewService creates a new invoice automation service.
func NewService(store Store, log logger.Logger) *Service {
	return NewServiceWithHistoryLimit(store, log, DefaultHistoryLimit)
}

// NewServiceWithHistoryLimit creates a service with a custom payment history
// window.
func NewServiceWithHistoryLimit(store Store, log logger.Logger, historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Service{store: store, historyLimit: historyLimit, log: log}
}

// Automate derives line items, payment terms, automation rules and a
// follow-up sequence for a project/client pair. Missing project or client is
// a hard failure; missing invoice history degrades to default terms.
func (s *Service) Automate(ctx context.Context, workspaceID string, req models.AutomateInvoiceRequest) (*models.InvoiceAutomation, error) {
	project, err := s.store.GetProject(ctx, workspaceID, req.ProjectID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	if _, err := s.store.GetClient(ctx, workspaceID, req.ClientID); err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}

	history, err := s.store.ListClientInvoices(ctx, workspaceID, req.ClientID, s.historyLimit)
	if err != nil {
		s.log.Warn("invoice history fetch failed, using default payment terms",
			"workspace_id", workspaceID, "client_id", req.ClientID, "error", err)
		history = nil
	}

	terms := paymentTerms(history)

	return &models.InvoiceAutomation{
		SuggestedItems:   lineItems(project, req.WorkPeriod, req.IncludeExpenses),
		PaymentTerms:     terms,
		AutomationRules:  automationRules(),
		FollowUpSequence: followUpSequence(terms),
	}, nil
}

// lineItems bills completed work inside the period by the hour, falling
// back to milestone billing when no task qualifies.
func lineItems(project *models.Project, period models.WorkPeriod, includeExpenses bool) []models.InvoiceLineItem {
	totalHours := 0.0
	matched := false
	for _, task := range project.Tasks {
		if task.Status != models.TaskStatusDone {
			continue
		}
		if task.CreatedAt.Before(period.Start) || task.CreatedAt.After(period.End) {
			continue
		}
		matched = true
		if task.ActualHours > 0 {
			totalHours += task.ActualHours
		} else {
			totalHours += DefaultHoursPerTask
		}
	}

	items := []models.InvoiceLineItem{}

	if matched && totalHours > 0 {
		rate := float64(DefaultHourlyRate)
		if project.Budget > 0 {
			rate = project.Budget / totalHours
		}
		items = append(items, models.InvoiceLineItem{
			Description: fmt.Sprintf("%s - Development Work", project.Name),
			Quantity:    totalHours,
			Rate:        rate,
			Amount:      totalHours * rate,
		})
	} else {
		amount := float64(DefaultMilestoneAmount)
		if project.Budget > 0 {
			amount = project.Budget * MilestoneFraction
		}
		items = append(items, models.InvoiceLineItem{
			Description: fmt.Sprintf("%s - Milestone Payment", project.Name),
			Quantity:    1,
			Rate:        amount,
			Amount:      amount,
		})
	}

	if includeExpenses {
		items = append(items, models.InvoiceLineItem{
			Description: "Project Expenses",
			Quantity:    1,
			Rate:        ExpenseAmount,
			Amount:      ExpenseAmount,
		})
	}

	return items
}

// paymentTerms derives due days from how late the client paid past
// invoices. Lateness below zero (early payment) counts as zero.
func paymentTerms(history []models.Invoice) models.PaymentTerms {
	avgDays := DefaultDueDays

	paid := 0
	totalDays := 0.0
	for _, inv := range history {
		if inv.PaidAt == nil {
			continue
		}
		paid++
		lateness := inv.PaidAt.Sub(inv.DueDate).Hours() / 24
		if lateness > 0 {
			totalDays += lateness
		}
	}
	if paid > 0 {
		avgDays = int(math.Ceil(totalDays / float64(paid)))
	}

	dueDays := avgDays + DueDaysBuffer
	if dueDays < MinDueDays {
		dueDays = MinDueDays
	}
	if dueDays > MaxDueDays {
		dueDays = MaxDueDays
	}

	discount := 0.0
	if avgDays > 30 {
		discount = 2
	}

	return models.PaymentTerms{
		DueDays:              dueDays,
		EarlyPaymentDiscount: discount,
		LateFeePercentage:    1.5,
	}
}

func automationRules() []models.AutomationRule {
	return []models.AutomationRule{
		{
			Trigger: "Task completion milestone reached",
			Action:  "Generate invoice automatically",
			Timing:  "Immediately",
		},
		{
			Trigger: "Invoice due date approaching",
			Action:  "Send payment reminder email",
			Timing:  "3 days before due date",
		},
		{
			Trigger: "Payment overdue",
			Action:  "Send follow-up email and apply late fee",
			Timing:  "1 day after due date",
		},
	}
}

func followUpSequence(terms models.PaymentTerms) []models.FollowUpStep {
	return []models.FollowUpStep{
		{Day: terms.DueDays - 3, Type: "email", Template: "Friendly payment reminder"},
		{Day: terms.DueDays + 1, Type: "email", Template: "Payment overdue notice"},
		{Day: terms.DueDays + 7, Type: "call", Template: "Personal follow-up call"},
		{Day: terms.DueDays + 14, Type: "email", Template: "Final notice before collections"},
	}
}
