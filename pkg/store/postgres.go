// Package store implements the record store adapter the engine reads
// entity records through. The Postgres implementation is the production
// adapter; the in-memory implementation backs tests and local development.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/jordanlanch/freelanceflow/pkg/domain"
	"github.com/jordanlanch/freelanceflow/pkg/models"
)

// Postgres is the lib/pq backed record store.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a Postgres-backed record store and verifies the
// connection.
func NewPostgres(databaseURL string) (*Postgres, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Postgres{db: db}, nil
}

// NewPostgresWithDB wraps an existing connection, used by tests.
func NewPostgresWithDB(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Ping verifies the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// GetLead returns a workspace's lead by id.
func (p *Postgres) GetLead(ctx context.Context, workspaceID, leadID string) (*models.Lead, error) {
	row := p.db.QueryRowContext(ctx, `
SELECT id, name, email, phone, company, source, status, expected_value, notes,
       ai_score, ai_insights, workspace_id, created_at, updated_at
FROM leads
WHERE workspace_id = $1 AND id = $2
`, workspaceID, leadID)

	var (
		l        models.Lead
		phone    sql.NullString
		company  sql.NullString
		value    sql.NullFloat64
		notes    sql.NullString
		aiScore  sql.NullInt64
		insights sql.NullString
	)
	err := row.Scan(&l.ID, &l.Name, &l.Email, &phone, &company, &l.Source, &l.Status,
		&value, &notes, &aiScore, &insights, &l.WorkspaceID, &l.CreatedAt, &l.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("lead")
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}

	l.Phone = phone.String
	l.Company = company.String
	l.ExpectedValue = value.Float64
	l.Notes = notes.String
	l.AIInsights = insights.String
	if aiScore.Valid {
		score := int(aiScore.Int64)
		l.AIScore = &score
	}
	return &l, nil
}

// ListLeadCohort returns the workspace's most recent won/lost leads.
func (p *Postgres) ListLeadCohort(ctx context.Context, workspaceID string, limit int) ([]models.Lead, error) {
	rows, err := p.db.QueryContext(ctx, `
SELECT id, name, email, COALESCE(company, ''), source, status, COALESCE(expected_value, 0), workspace_id, created_at
FROM leads
WHERE workspace_id = $1 AND status IN ('won', 'lost')
ORDER BY created_at DESC
LIMIT $2
`, workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("list lead cohort: %w", err)
	}
	defer rows.Close()

	var cohort []models.Lead
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Company, &l.Source, &l.Status,
			&l.ExpectedValue, &l.WorkspaceID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cohort lead: %w", err)
		}
		cohort = append(cohort, l)
	}
	return cohort, rows.Err()
}

// UpdateLeadScore writes the computed score and insights back onto the lead.
func (p *Postgres) UpdateLeadScore(ctx context.Context, workspaceID, leadID string, score int, insights string) error {
	res, err := p.db.ExecContext(ctx, `
UPDATE leads
SET ai_score = $3, ai_insights = $4, updated_at = $5
WHERE workspace_id = $1 AND id = $2
`, workspaceID, leadID, score, insights, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update lead score: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lead score: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("lead")
	}
	return nil
}

// ListStaleScoredLeads returns open leads whose cached score predates the
// cutoff, across workspaces, for background re-scoring.
func (p *Postgres) ListStaleScoredLeads(ctx context.Context, maxAge time.Duration, limit int) ([]models.Lead, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	rows, err := p.db.QueryContext(ctx, `
SELECT id, name, email, COALESCE(company, ''), source, status, COALESCE(expected_value, 0), workspace_id, created_at
FROM leads
WHERE status NOT IN ('won', 'lost')
  AND (ai_score IS NULL OR updated_at < $1)
ORDER BY updated_at ASC
LIMIT $2
`, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("list stale leads: %w", err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Company, &l.Source, &l.Status,
			&l.ExpectedValue, &l.WorkspaceID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stale lead: %w", err)
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// GetProject returns a workspace's project with tasks and invoices loaded.
func (p *Postgres) GetProject(ctx context.Context, workspaceID, projectID string) (*models.Project, error) {
	row := p.db.QueryRowContext(ctx, `
SELECT id, name, status, COALESCE(budget, 0), start_date, end_date, client_id, workspace_id, created_at
FROM projects
WHERE workspace_id = $1 AND id = $2
`, workspaceID, projectID)

	var proj models.Project
	err := row.Scan(&proj.ID, &proj.Name, &proj.Status, &proj.Budget,
		&proj.StartDate, &proj.EndDate, &proj.ClientID, &proj.WorkspaceID, &proj.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("project")
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	if proj.Tasks, err = p.listProjectTasks(ctx, workspaceID, projectID); err != nil {
		return nil, err
	}
	if proj.Invoices, err = p.listProjectInvoices(ctx, workspaceID, projectID); err != nil {
		return nil, err
	}
	return &proj, nil
}

func (p *Postgres) listProjectTasks(ctx context.Context, workspaceID, projectID string) ([]models.Task, error) {
	rows, err := p.db.QueryContext(ctx, `
SELECT id, title, status, priority, due_date, COALESCE(estimated_hours, 0), COALESCE(actual_hours, 0),
       project_id, workspace_id, created_at
FROM tasks
WHERE workspace_id = $1 AND project_id = $2
ORDER BY created_at ASC
`, workspaceID, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Status, &t.Priority, &t.DueDate,
			&t.EstimatedHours, &t.ActualHours, &t.ProjectID, &t.WorkspaceID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (p *Postgres) listProjectInvoices(ctx context.Context, workspaceID, projectID string) ([]models.Invoice, error) {
	rows, err := p.db.QueryContext(ctx, `
SELECT id, total_amount, status, due_date, paid_at, client_id, COALESCE(project_id, ''), workspace_id, created_at
FROM invoices
WHERE workspace_id = $1 AND project_id = $2
`, workspaceID, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project invoices: %w", err)
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.TotalAmount, &inv.Status, &inv.DueDate, &inv.PaidAt,
			&inv.ClientID, &inv.ProjectID, &inv.WorkspaceID, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// GetClient returns a workspace's client by id.
func (p *Postgres) GetClient(ctx context.Context, workspaceID, clientID string) (*models.Client, error) {
	row := p.db.QueryRowContext(ctx, `
SELECT id, name, email, COALESCE(phone, ''), COALESCE(company, ''), status, workspace_id, created_at
FROM clients
WHERE workspace_id = $1 AND id = $2
`, workspaceID, clientID)

	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Status, &c.WorkspaceID, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("client")
	}
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// ListClientInvoices returns the client's most recent invoices.
func (p *Postgres) ListClientInvoices(ctx context.Context, workspaceID, clientID string, limit int) ([]models.Invoice, error) {
	rows, err := p.db.QueryContext(ctx, `
SELECT id, total_amount, status, due_date, paid_at, client_id, COALESCE(project_id, ''), workspace_id, created_at
FROM invoices
WHERE workspace_id = $1 AND client_id = $2
ORDER BY created_at DESC
LIMIT $3
`, workspaceID, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list client invoices: %w", err)
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.TotalAmount, &inv.Status, &inv.DueDate, &inv.PaidAt,
			&inv.ClientID, &inv.ProjectID, &inv.WorkspaceID, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// ListActiveTemplates returns active proposal templates ordered by
// conversion rate descending.
func (p *Postgres) ListActiveTemplates(ctx context.Context, workspaceID string) ([]models.ProposalTemplate, error) {
	rows, err := p.db.QueryContext(ctx, `
SELECT id, name, category, usage_count, conversion_rate, is_active, workspace_id
FROM proposal_templates
WHERE workspace_id = $1 AND is_active = TRUE
ORDER BY conversion_rate DESC
`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list active templates: %w", err)
	}
	defer rows.Close()

	var templates []models.ProposalTemplate
	for rows.Next() {
		var t models.ProposalTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.UsageCount,
			&t.ConversionRate, &t.IsActive, &t.WorkspaceID); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// ListCompletedABTests returns the workspace's completed proposal
// experiments.
func (p *Postgres) ListCompletedABTests(ctx context.Context, workspaceID string) ([]models.ABTest, error) {
	rows, err := p.db.QueryContext(ctx, `
SELECT id, template_a_id, template_b_id, traffic_split, status, results, statistical_significance, workspace_id
FROM proposal_ab_tests
WHERE workspace_id = $1 AND status = 'completed'
`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list completed ab tests: %w", err)
	}
	defer rows.Close()

	var tests []models.ABTest
	for rows.Next() {
		var (
			t       models.ABTest
			results sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.TemplateAID, &t.TemplateBID, &t.TrafficSplit,
			&t.Status, &results, &t.StatisticalSignificance, &t.WorkspaceID); err != nil {
			return nil, fmt.Errorf("scan ab test: %w", err)
		}
		if results.Valid && results.String != "" {
			var parsed struct {
				A *models.ABTestVariantResult `json:"a"`
				B *models.ABTestVariantResult `json:"b"`
			}
			if err := json.Unmarshal([]byte(results.String), &parsed); err == nil {
				t.ResultA = parsed.A
				t.ResultB = parsed.B
			}
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

// InsertEvent appends an analytics event.
func (p *Postgres) InsertEvent(ctx context.Context, event models.AnalyticsEvent) error {
	properties, err := json.Marshal(event.Properties)
	if err != nil {
		return fmt.Errorf("encode event properties: %w", err)
	}

	_, err = p.db.ExecContext(ctx, `
INSERT INTO analytics_events (id, event_type, entity_type, entity_id, properties, user_id, session_id, workspace_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, event.ID, event.EventType, nullable(event.EntityType), nullable(event.EntityID),
		string(properties), nullable(event.UserID), event.SessionID, event.WorkspaceID, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
