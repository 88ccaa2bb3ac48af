package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/freelanceflow/pkg/domain"
	"github.com/jordanlanch/freelanceflow/pkg/models"
)

func setupPostgres(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresWithDB(db), mock
}

func TestGetLead(t *testing.T) {
	pg, mock := setupPostgres(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "company", "source", "status",
		"expected_value", "notes", "ai_score", "ai_insights", "workspace_id", "created_at", "updated_at",
	}).AddRow("lead-1", "Jo Smith", "jo@acme.com", nil, "Acme", "Referral", "new",
		60000.0, nil, nil, nil, "ws-1", now, now)

	mock.ExpectQuery("SELECT id, name, email, phone, company").
		WithArgs("ws-1", "lead-1").
		WillReturnRows(rows)

	lead, err := pg.GetLead(context.Background(), "ws-1", "lead-1")
	require.NoError(t, err)
	assert.Equal(t, "Jo Smith", lead.Name)
	assert.Equal(t, "Acme", lead.Company)
	assert.Equal(t, models.SourceReferral, lead.Source)
	assert.Equal(t, 60000.0, lead.ExpectedValue)
	assert.Nil(t, lead.AIScore)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLeadNotFound(t *testing.T) {
	pg, mock := setupPostgres(t)

	mock.ExpectQuery("SELECT id, name, email, phone, company").
		WithArgs("ws-1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := pg.GetLead(context.Background(), "ws-1", "missing")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListLeadCohort(t *testing.T) {
	pg, mock := setupPostgres(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "company", "source", "status", "expected_value", "workspace_id", "created_at",
	}).
		AddRow("l-1", "A", "a@x.com", "X", "Referral", "won", 1000.0, "ws-1", now).
		AddRow("l-2", "B", "b@y.com", "", "LinkedIn", "lost", 0.0, "ws-1", now.Add(-time.Hour))

	mock.ExpectQuery("WHERE workspace_id = \\$1 AND status IN \\('won', 'lost'\\)").
		WithArgs("ws-1", 100).
		WillReturnRows(rows)

	cohort, err := pg.ListLeadCohort(context.Background(), "ws-1", 100)
	require.NoError(t, err)
	require.Len(t, cohort, 2)
	assert.Equal(t, models.LeadStatusWon, cohort[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLeadScore(t *testing.T) {
	pg, mock := setupPostgres(t)

	mock.ExpectExec("UPDATE leads").
		WithArgs("ws-1", "lead-1", 87, `{"confidence":0.9}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := pg.UpdateLeadScore(context.Background(), "ws-1", "lead-1", 87, `{"confidence":0.9}`)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLeadScoreNotFound(t *testing.T) {
	pg, mock := setupPostgres(t)

	mock.ExpectExec("UPDATE leads").
		WithArgs("ws-1", "missing", 87, `{}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := pg.UpdateLeadScore(context.Background(), "ws-1", "missing", 87, `{}`)
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListStaleScoredLeads(t *testing.T) {
	pg, mock := setupPostgres(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "company", "source", "status", "expected_value", "workspace_id", "created_at",
	}).AddRow("l-1", "A", "a@x.com", "", "Other", "new", 0.0, "ws-1", now)

	mock.ExpectQuery("WHERE status NOT IN \\('won', 'lost'\\)").
		WithArgs(sqlmock.AnyArg(), 50).
		WillReturnRows(rows)

	leads, err := pg.ListStaleScoredLeads(context.Background(), 7*24*time.Hour, 50)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "ws-1", leads[0].WorkspaceID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProjectLoadsRelations(t *testing.T) {
	pg, mock := setupPostgres(t)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM projects").
		WithArgs("ws-1", "p-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "status", "budget", "start_date", "end_date", "client_id", "workspace_id", "created_at",
		}).AddRow("p-1", "Portal", "active", 20000.0, nil, nil, "c-1", "ws-1", now))

	mock.ExpectQuery("FROM tasks").
		WithArgs("ws-1", "p-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "status", "priority", "due_date", "estimated_hours", "actual_hours",
			"project_id", "workspace_id", "created_at",
		}).AddRow("t-1", "Build", "done", "medium", nil, 10.0, 12.0, "p-1", "ws-1", now))

	mock.ExpectQuery("FROM invoices").
		WithArgs("ws-1", "p-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "total_amount", "status", "due_date", "paid_at", "client_id", "project_id", "workspace_id", "created_at",
		}).AddRow("i-1", 5000.0, "paid", now, now, "c-1", "p-1", "ws-1", now))

	project, err := pg.GetProject(context.Background(), "ws-1", "p-1")
	require.NoError(t, err)
	require.Len(t, project.Tasks, 1)
	require.Len(t, project.Invoices, 1)
	assert.Equal(t, 12.0, project.Tasks[0].ActualHours)
	assert.Equal(t, 5000.0, project.Invoices[0].TotalAmount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProjectNotFound(t *testing.T) {
	pg, mock := setupPostgres(t)

	mock.ExpectQuery("FROM projects").
		WithArgs("ws-1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := pg.GetProject(context.Background(), "ws-1", "missing")
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListCompletedABTestsParsesResults(t *testing.T) {
	pg, mock := setupPostgres(t)

	rows := sqlmock.NewRows([]string{
		"id", "template_a_id", "template_b_id", "traffic_split", "status", "results",
		"statistical_significance", "workspace_id",
	}).AddRow("ab-1", "tpl-a", "tpl-b", 0.5, "completed",
		`{"a":{"views":100,"conversions":10,"conversion_rate":0.1},"b":{"views":100,"conversions":20,"conversion_rate":0.2}}`,
		0.97, "ws-1")

	mock.ExpectQuery("FROM proposal_ab_tests").
		WithArgs("ws-1").
		WillReturnRows(rows)

	tests, err := pg.ListCompletedABTests(context.Background(), "ws-1")
	require.NoError(t, err)
	require.Len(t, tests, 1)
	require.NotNil(t, tests[0].ResultB)
	assert.Equal(t, 20, tests[0].ResultB.Conversions)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertEvent(t *testing.T) {
	pg, mock := setupPostgres(t)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO analytics_events").
		WithArgs("ev-1", "lead_analyzed", sqlmock.AnyArg(), sqlmock.AnyArg(),
			`{"final_score":87}`, sqlmock.AnyArg(), "session_1", "ws-1", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := pg.InsertEvent(context.Background(), models.AnalyticsEvent{
		ID:          "ev-1",
		EventType:   "lead_analyzed",
		EntityType:  "lead",
		EntityID:    "lead-1",
		Properties:  map[string]interface{}{"final_score": 87},
		SessionID:   "session_1",
		WorkspaceID: "ws-1",
		CreatedAt:   now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
