package proposals

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/freelanceflow/pkg/domain"
	"github.com/jordanlanch/freelanceflow/pkg/logger"
	"github.com/jordanlanch/freelanceflow/pkg/models"
	"github.com/jordanlanch/freelanceflow/pkg/store"
)

const testWorkspace = "ws-1"

func setupService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	mem.PutClient(models.Client{
		ID:          "client-1",
		Name:        "Ada North",
		Company:     "Northwind",
		WorkspaceID: testWorkspace,
	})
	return NewService(mem, logger.Default()), mem
}

func TestOptimizeClientNotFound(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Optimize(context.Background(), testWorkspace, models.OptimizeProposalRequest{
		ClientID:    "missing",
		ProjectType: "website",
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestOptimizeRanksTemplatesByConversion(t *testing.T) {
	svc, mem := setupService(t)
	mem.PutTemplate(models.ProposalTemplate{
		ID: "tpl-low", Name: "Starter Website", Category: "website",
		ConversionRate: 0.2, UsageCount: 5, IsActive: true, WorkspaceID: testWorkspace,
	})
	mem.PutTemplate(models.ProposalTemplate{
		ID: "tpl-high", Name: "Premium Website", Category: "website",
		ConversionRate: 0.6, UsageCount: 25, IsActive: true, WorkspaceID: testWorkspace,
	})
	mem.PutTemplate(models.ProposalTemplate{
		ID: "tpl-inactive", Name: "Retired Website", Category: "website",
		ConversionRate: 0.9, IsActive: false, WorkspaceID: testWorkspace,
	})

	result, err := svc.Optimize(context.Background(), testWorkspace, models.OptimizeProposalRequest{
		ClientID:    "client-1",
		ProjectType: "website",
	})
	require.NoError(t, err)

	require.Len(t, result.TemplateSuggestions, 2)
	assert.Equal(t, "tpl-high", result.TemplateSuggestions[0].TemplateID)
	assert.InDelta(t, 0.8, result.TemplateSuggestions[0].Confidence, 1e-9)
	assert.Equal(t, "tpl-low", result.TemplateSuggestions[1].TemplateID)
	assert.InDelta(t, 0.6, result.TemplateSuggestions[1].Confidence, 1e-9)
}

func TestOptimizeCapsTemplateSuggestions(t *testing.T) {
	svc, mem := setupService(t)
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		mem.PutTemplate(models.ProposalTemplate{
			ID: id, Name: "Website " + id, Category: "website",
			ConversionRate: 0.9 - float64(i)*0.1, UsageCount: 20,
			IsActive: true, WorkspaceID: testWorkspace,
		})
	}

	result, err := svc.Optimize(context.Background(), testWorkspace, models.OptimizeProposalRequest{
		ClientID:    "client-1",
		ProjectType: "website",
	})
	require.NoError(t, err)
	assert.Len(t, result.TemplateSuggestions, 3)
}

func TestOptimizeFallbackConversionRate(t *testing.T) {
	svc, mem := setupService(t)
	mem.PutTemplate(models.ProposalTemplate{
		ID: "tpl-new", Name: "Fresh Website", Category: "website",
		ConversionRate: 0, UsageCount: 0, IsActive: true, WorkspaceID: testWorkspace,
	})

	result, err := svc.Optimize(context.Background(), testWorkspace, models.OptimizeProposalRequest{
		ClientID:    "client-1",
		ProjectType: "website",
	})
	require.NoError(t, err)

	require.Len(t, result.TemplateSuggestions, 1)
	assert.InDelta(t, 0.3, result.TemplateSuggestions[0].ConversionRate, 1e-9)
	assert.InDelta(t, 0.6, result.TemplateSuggestions[0].Confidence, 1e-9)
}

func TestOptimizeIndustryFilter(t *testing.T) {
	svc, mem := setupService(t)
	mem.PutTemplate(models.ProposalTemplate{
		ID: "tpl-health", Name: "Healthcare Portal", Category: "consulting",
		ConversionRate: 0.5, IsActive: true, WorkspaceID: testWorkspace,
	})
	mem.PutTemplate(models.ProposalTemplate{
		ID: "tpl-retail", Name: "Retail Campaign", Category: "consulting",
		ConversionRate: 0.4, IsActive: true, WorkspaceID: testWorkspace,
	})

	result, err := svc.Optimize(context.Background(), testWorkspace, models.OptimizeProposalRequest{
		ClientID:    "client-1",
		ProjectType: "website",
		Industry:    "healthcare",
	})
	require.NoError(t, err)

	require.Len(t, result.TemplateSuggestions, 1)
	assert.Equal(t, "tpl-health", result.TemplateSuggestions[0].TemplateID)
}

func TestPricingAnalysis(t *testing.T) {
	svc, _ := setupService(t)

	tests := []struct {
		name          string
		projectType   string
		budgetRange   float64
		industry      string
		wantSuggested float64
		wantMin       float64
		wantMax       float64
	}{
		{"known type", "website", 0, "", 15000, 12000, 21000},
		{"unknown type defaults", "consulting", 0, "", 25000, 20000, 35000},
		{"budget overrides suggestion", "website", 18000, "", 18000, 12000, 21000},
		{"regulated industry premium", "website", 0, "Healthcare", 19500, 15600, 27300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Optimize(context.Background(), testWorkspace, models.OptimizeProposalRequest{
				ClientID:    "client-1",
				ProjectType: tt.projectType,
				BudgetRange: tt.budgetRange,
				Industry:    tt.industry,
			})
			require.NoError(t, err)
			assert.InDelta(t, tt.wantSuggested, result.PricingAnalysis.SuggestedPrice, 1e-6)
			assert.InDelta(t, tt.wantMin, result.PricingAnalysis.PriceRange.Min, 1e-6)
			assert.InDelta(t, tt.wantMax, result.PricingAnalysis.PriceRange.Max, 1e-6)
		})
	}
}

func TestContentImprovements(t *testing.T) {
	svc, _ := setupService(t)

	result, err := svc.Optimize(context.Background(), testWorkspace, models.OptimizeProposalRequest{
		ClientID:    "client-1",
		ProjectType: "website",
		BudgetRange: 20000,
	})
	require.NoError(t, err)
	assert.Len(t, result.ContentImprovements, 3)

	large, err := svc.Optimize(context.Background(), testWorkspace, models.OptimizeProposalRequest{
		ClientID:    "client-1",
		ProjectType: "website",
		BudgetRange: 60000,
	})
	require.NoError(t, err)
	require.Len(t, large.ContentImprovements, 4)
	assert.Equal(t, "Team", large.ContentImprovements[3].Section)
}

func TestABTestRecommendationsCatalogue(t *testing.T) {
	svc, _ := setupService(t)

	result, err := svc.Optimize(context.Background(), testWorkspace, models.OptimizeProposalRequest{
		ClientID:    "client-1",
		ProjectType: "website",
	})
	require.NoError(t, err)

	require.Len(t, result.ABTestRecommendations, 2)
	assert.Equal(t, "Pricing Strategy Test", result.ABTestRecommendations[0].TestName)
	assert.Equal(t, "Content Length Test", result.ABTestRecommendations[1].TestName)
}

func TestDraft(t *testing.T) {
	svc, _ := setupService(t)

	draft := svc.Draft(models.DraftProposalRequest{
		ClientName:   "Northwind",
		ProjectType:  "Website",
		BudgetRange:  20000,
		Requirements: "a new marketing site",
	})

	assert.Equal(t, "Website Proposal for Northwind", draft.Title)
	require.Len(t, draft.Sections, 5)
	assert.Equal(t, "Executive Summary", draft.Sections[0].Name)
	assert.Contains(t, draft.Sections[1].Content, "a new marketing site")
	assert.Equal(t, 20000.0, draft.SuggestedAmount)

	require.Len(t, draft.Breakdown, 4)
	total := 0.0
	for _, item := range draft.Breakdown {
		total += item.Amount
	}
	assert.InDelta(t, 20000.0, total, 1e-6)
	assert.Equal(t, "UX/UI Design", draft.Breakdown[0].Item)
	assert.InDelta(t, 6000.0, draft.Breakdown[0].Amount, 1e-6)
}

func TestDraftDefaultsAmountAndRequirements(t *testing.T) {
	svc, _ := setupService(t)

	draft := svc.Draft(models.DraftProposalRequest{
		ClientName:  "Northwind",
		ProjectType: "consulting",
	})

	assert.Equal(t, 25000.0, draft.SuggestedAmount)
	assert.Contains(t, draft.Sections[1].Content, "delivering high-quality solutions tailored to your specific needs")
	require.Len(t, draft.Breakdown, 3)
	assert.Equal(t, "Implementation", draft.Breakdown[1].Item)
}
