// Package projectrisk analyzes a project's tasks and invoices to produce a
// risk score, completion forecast, budget projection and resource
// bottleneck list.
package projectrisk

import (
	"context"
	"fmt"
	"time"

	"github.com/jordanlanch/freelanceflow/pkg/domain"
	"github.com/jordanlanch/freelanceflow/pkg/logger"
	"github.com/jordanlanch/freelanceflow/pkg/models"
)

// DefaultHourlyRate is assumed when no actual hours have been logged yet.
const DefaultHourlyRate = 100

// Store defines the project data access this service needs. GetProject must
// return the project with its tasks and invoices loaded; missing collections
// are treated as empty.
type Store interface {
	GetProject(ctx context.Context, workspaceID, projectID string) (*models.Project, error)
}

// Service computes project risk analyses.
type Service struct {
	store Store
	log   logger.Logger
	now   func() time.Time
}

// NewService creates a new project risk service.
func NewService(store Store, log logger.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// Analyze computes a RiskAnalysis for a project. A missing project is a hard
// failure; missing task or invoice collections degrade to empty.
func (s *Service) Analyze(ctx context.Context, workspaceID, projectID string) (*models.RiskAnalysis, error) {
	project, err := s.store.GetProject(ctx, workspaceID, projectID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	now := s.now()
	tasks := project.Tasks

	completion := completionPercentage(tasks)
	overdue := countOverdue(tasks, now)

	factors, recommendations := s.detectRiskFactors(project, tasks, completion, overdue, now)

	riskScore := 0
	for _, f := range factors {
		riskScore += f.Impact
	}
	if riskScore > 100 {
		riskScore = 100
	}

	return &models.RiskAnalysis{
		RiskScore:               riskScore,
		CompletionPercentage:    completion,
		RiskFactors:             factors,
		Recommendations:         recommendations,
		Confidence:              predictionConfidence(len(tasks), overdue, completion),
		PredictedCompletionDate: predictCompletion(project, completion, now),
		BudgetForecast:          budgetForecast(project),
		ResourceOptimization:    resourceOptimization(tasks, overdue),
	}, nil
}

func completionPercentage(tasks []models.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}

	done := 0
	for _, t := range tasks {
		if t.Status == models.TaskStatusDone {
			done++
		}
	}
	return float64(done) / float64(len(tasks)) * 100
}

func countOverdue(tasks []models.Task, now time.Time) int {
	overdue := 0
	for _, t := range tasks {
		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != models.TaskStatusDone {
			overdue++
		}
	}
	return overdue
}

func (s *Service) detectRiskFactors(project *models.Project, tasks []models.Task, completion float64, overdue int, now time.Time) ([]models.RiskFactor, []string) {
	factors := []models.RiskFactor{}
	recommendations := []string{}

	if overdue > 0 {
		severity, impact := overdueSeverity(overdue)
		factors = append(factors, models.RiskFactor{
			Type:        "overdue_tasks",
			Severity:    severity,
			Description: fmt.Sprintf("%d overdue tasks", overdue),
			Impact:      impact,
		})
		recommendations = append(recommendations, "Address overdue tasks immediately")
	}

	start := projectStart(project)
	duration := plannedDuration(project, now)
	if completion < 25 && duration > 0 && now.After(start.Add(duration/2)) {
		factors = append(factors, models.RiskFactor{
			Type:        "schedule",
			Severity:    models.SeverityHigh,
			Description: "Project significantly behind schedule",
			Impact:      30,
		})
		recommendations = append(recommendations, "Consider additional resources or scope adjustment")
	}

	if len(tasks) == 0 {
		factors = append(factors, models.RiskFactor{
			Type:        "planning",
			Severity:    models.SeverityLow,
			Description: "No tasks defined",
			Impact:      10,
		})
		recommendations = append(recommendations, "Break down project into actionable tasks")
	}

	return factors, recommendations
}

// overdueSeverity scales with the overdue count.
func overdueSeverity(overdue int) (models.RiskSeverity, int) {
	switch {
	case overdue > 5:
		return models.SeverityCritical, 40
	case overdue > 2:
		return models.SeverityHigh, 25
	default:
		return models.SeverityMedium, 15
	}
}

// predictCompletion extrapolates linearly: the remaining fraction of work is
// assumed to take the same share of the originally planned duration. Without
// an end date there is nothing to extrapolate from.
func predictCompletion(project *models.Project, completion float64, now time.Time) *time.Time {
	if project.EndDate == nil {
		return nil
	}

	duration := project.EndDate.Sub(projectStart(project))
	if duration <= 0 {
		return nil
	}

	remaining := (100 - completion) / 100
	predicted := now.Add(time.Duration(remaining * float64(duration)))
	return &predicted
}

func predictionConfidence(totalTasks, overdue int, completion float64) int {
	confidence := 70
	if overdue == 0 {
		confidence += 15
	}
	if completion > 50 {
		confidence += 10
	}
	if totalTasks > 5 {
		confidence += 5
	}
	if confidence > 95 {
		confidence = 95
	}
	return confidence
}

// budgetForecast sums every linked invoice regardless of status. That
// mirrors the observed production behavior; restricting to paid invoices is
// a pending product decision.
func budgetForecast(project *models.Project) models.BudgetForecast {
	spend := 0.0
	for _, inv := range project.Invoices {
		spend += inv.TotalAmount
	}

	actualHours, estimatedHours := 0.0, 0.0
	for _, t := range project.Tasks {
		actualHours += t.ActualHours
		estimatedHours += t.EstimatedHours
	}

	hourlyRate := float64(DefaultHourlyRate)
	if actualHours > 0 {
		hourlyRate = spend / actualHours
	}

	projected := estimatedHours * hourlyRate

	variance := 0.0
	if project.Budget > 0 {
		variance = (projected - project.Budget) / project.Budget * 100
	}

	return models.BudgetForecast{
		CurrentSpend:       spend,
		ProjectedTotal:     projected,
		VariancePercentage: variance,
	}
}

func resourceOptimization(tasks []models.Task, overdue int) models.ResourceOptimization {
	bottlenecks := []string{}
	suggestions := []string{}

	if overdue > 0 {
		bottlenecks = append(bottlenecks, fmt.Sprintf("%d overdue tasks", overdue))
		suggestions = append(suggestions, "Prioritize overdue tasks and reassign if necessary")
	}

	urgent := 0
	for _, t := range tasks {
		if t.Priority == models.TaskPriorityUrgent {
			urgent++
		}
	}
	if len(tasks) > 0 && float64(urgent) > float64(len(tasks))*0.3 {
		bottlenecks = append(bottlenecks, "Too many urgent tasks")
		suggestions = append(suggestions, "Review task prioritization and planning process")
	}

	return models.ResourceOptimization{
		Bottlenecks: bottlenecks,
		Suggestions: suggestions,
	}
}

func projectStart(project *models.Project) time.Time {
	if project.StartDate != nil {
		return *project.StartDate
	}
	return project.CreatedAt
}

func plannedDuration(project *models.Project, now time.Time) time.Duration {
	end := now
	if project.EndDate != nil {
		end = *project.EndDate
	}
	return end.Sub(projectStart(project))
}
