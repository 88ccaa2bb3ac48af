// Package proposals ranks proposal templates and suggests pricing, content
// and experiment adjustments from template usage statistics.
package proposals

import (
	"context"
	"fmt"
	"strings"

	"github.com/jordanlanch/freelanceflow/pkg/domain"
	"github.com/jordanlanch/freelanceflow/pkg/logger"
	"github.com/jordanlanch/freelanceflow/pkg/models"
)

// Store defines the client and template data access this service needs.
type Store interface {
	GetClient(ctx context.Context, workspaceID, clientID string) (*models.Client, error)
	ListActiveTemplates(ctx context.Context, workspaceID string) ([]models.ProposalTemplate, error)
	ListCompletedABTests(ctx context.Context, workspaceID string) ([]models.ABTest, error)
}

// Service computes proposal optimizations and drafts.
type Service struct {
	store Store
	cfg   Config
	log   logger.Logger
}

// NewService creates a new proposal optimization service.
func NewService(store Store, log logger.Logger) *Service {
	return NewServiceWithConfig(store, log, DefaultConfig())
}

// NewServiceWithConfig creates a proposal optimization service with custom
// settings.
func NewServiceWithConfig(store Store, log logger.Logger, cfg Config) *Service {
	return &Service{store: store, cfg: cfg, log: log}
}

// Optimize ranks templates and suggests pricing and content adjustments for
// a proposal to the given client. A missing client is a hard failure;
// missing templates or test history degrade to empty.
func (s *Service) Optimize(ctx context.Context, workspaceID string, req models.OptimizeProposalRequest) (*models.ProposalOptimization, error) {
	client, err := s.store.GetClient(ctx, workspaceID, req.ClientID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}

	templates, err := s.store.ListActiveTemplates(ctx, client.WorkspaceID)
	if err != nil {
		s.log.Warn("template fetch failed, optimizing without history",
			"workspace_id", workspaceID, "client_id", req.ClientID, "error", err)
		templates = nil
	}

	abTests, err := s.store.ListCompletedABTests(ctx, client.WorkspaceID)
	if err != nil {
		s.log.Warn("ab test fetch failed, using static catalogue",
			"workspace_id", workspaceID, "client_id", req.ClientID, "error", err)
		abTests = nil
	}

	return &models.ProposalOptimization{
		TemplateSuggestions:   s.rankTemplates(templates, req.ProjectType, req.Industry),
		ContentImprovements:   s.contentImprovements(req.BudgetRange),
		PricingAnalysis:       s.analyzePricing(req.ProjectType, req.BudgetRange, req.Industry),
		ABTestRecommendations: s.abTestRecommendations(abTests),
	}, nil
}

func (s *Service) rankTemplates(templates []models.ProposalTemplate, projectType, industry string) []models.TemplateSuggestion {
	projectType = strings.ToLower(projectType)
	industry = strings.ToLower(industry)

	suggestions := []models.TemplateSuggestion{}
	for _, t := range templates {
		categoryMatch := strings.Contains(strings.ToLower(t.Category), projectType)
		// Without an industry hint every active template passes the
		// industry check.
		industryMatch := industry == "" || strings.Contains(strings.ToLower(t.Name), industry)
		if !categoryMatch && !industryMatch {
			continue
		}

		conversion := t.ConversionRate
		if conversion == 0 {
			conversion = s.cfg.FallbackConversionRate
		}

		confidence := s.cfg.UnprovenConfidence
		if t.UsageCount > s.cfg.EstablishedUsageCount {
			confidence = s.cfg.EstablishedConfidence
		}

		suggestions = append(suggestions, models.TemplateSuggestion{
			TemplateID:     t.ID,
			Name:           t.Name,
			ConversionRate: conversion,
			Confidence:     confidence,
		})

		if len(suggestions) == s.cfg.MaxTemplateSuggestions {
			break
		}
	}

	return suggestions
}

func (s *Service) contentImprovements(budgetRange float64) []models.ContentImprovement {
	improvements := []models.ContentImprovement{
		{
			Section:    "Executive Summary",
			Suggestion: "Include specific ROI metrics and success stories",
			Impact:     "high",
		},
		{
			Section:    "Timeline",
			Suggestion: "Break down into detailed milestones with dependencies",
			Impact:     "medium",
		},
		{
			Section:    "Investment",
			Suggestion: "Provide multiple pricing options with clear value differentiation",
			Impact:     "high",
		},
	}

	if budgetRange > s.cfg.SeniorTeamBudgetCutoff {
		improvements = append(improvements, models.ContentImprovement{
			Section:    "Team",
			Suggestion: "Highlight senior team members and their expertise",
			Impact:     "high",
		})
	}

	return improvements
}

func (s *Service) analyzePricing(projectType string, budgetRange float64, industry string) models.PricingAnalysis {
	basePrice, ok := s.cfg.BasePrices[strings.ToLower(projectType)]
	if !ok {
		basePrice = s.cfg.DefaultBasePrice
	}

	if s.isRegulated(industry) {
		basePrice *= s.cfg.RegulatedMultiplier
	}

	suggested := basePrice
	if budgetRange > 0 {
		suggested = budgetRange
	}

	return models.PricingAnalysis{
		SuggestedPrice: suggested,
		PriceRange: models.PriceRange{
			Min: basePrice * s.cfg.PriceRangeMin,
			Max: basePrice * s.cfg.PriceRangeMax,
		},
		MarketComparison: "Competitive with industry standards",
	}
}

// abTestRecommendations returns the configured static catalogue. Completed
// test history is accepted so real results can drive suggestions once the
// experiment pipeline produces enough significant data.
func (s *Service) abTestRecommendations(_ []models.ABTest) []models.ABTestRecommendation {
	out := make([]models.ABTestRecommendation, len(s.cfg.ABTestCatalog))
	copy(out, s.cfg.ABTestCatalog)
	return out
}

func (s *Service) isRegulated(industry string) bool {
	industry = strings.ToLower(industry)
	for _, regulated := range s.cfg.RegulatedIndustries {
		if industry == regulated {
			return true
		}
	}
	return false
}
