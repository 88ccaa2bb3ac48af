package proposals

import (
	"fmt"
	"strings"

	"github.com/jordanlanch/freelanceflow/pkg/models"
)

// Draft generates a proposal skeleton: a title, standard sections and a
// pricing breakdown keyed by project type. Pure computation, no store reads.
func (s *Service) Draft(req models.DraftProposalRequest) *models.ProposalDraft {
	projectType := strings.ToLower(req.ProjectType)

	requirements := req.Requirements
	if requirements == "" {
		requirements = "delivering high-quality solutions tailored to your specific needs"
	}

	sections := []models.ProposalSection{
		{
			Name: "Executive Summary",
			Content: fmt.Sprintf("We are excited to present this comprehensive %s proposal for %s. "+
				"Our team brings extensive experience and proven methodologies to deliver exceptional "+
				"results that align with your business objectives.", projectType, req.ClientName),
		},
		{
			Name: "Project Overview",
			Content: fmt.Sprintf("This %s project will focus on %s. We will work closely with your "+
				"team to ensure seamless integration and optimal outcomes.", projectType, requirements),
		},
		{
			Name: "Scope of Work",
			Content: "Our comprehensive approach includes:\n" +
				"• Initial consultation and requirements gathering\n" +
				"• Strategic planning and design phase\n" +
				"• Implementation and development\n" +
				"• Testing and quality assurance\n" +
				"• Deployment and go-live support\n" +
				"• Post-launch maintenance and support",
		},
		{
			Name: "Timeline",
			Content: "We propose a phased approach to ensure quality delivery:\n" +
				"• Phase 1: Discovery and Planning (2 weeks)\n" +
				"• Phase 2: Design and Development (4-6 weeks)\n" +
				"• Phase 3: Testing and Refinement (1-2 weeks)\n" +
				"• Phase 4: Launch and Support (1 week)\n\n" +
				"Total estimated timeline: 8-11 weeks",
		},
		{
			Name: "Investment",
			Content: fmt.Sprintf("Our investment for this %s project is structured to provide maximum "+
				"value while ensuring transparent pricing. All costs are outlined below with no hidden "+
				"fees.", projectType),
		},
	}

	amount := req.BudgetRange
	if amount <= 0 {
		amount = s.cfg.DefaultBasePrice
	}

	return &models.ProposalDraft{
		Title:           fmt.Sprintf("%s Proposal for %s", req.ProjectType, req.ClientName),
		Sections:        sections,
		SuggestedAmount: amount,
		Breakdown:       pricingBreakdown(projectType, amount),
	}
}

func pricingBreakdown(projectType string, amount float64) []models.PricingLineItem {
	switch projectType {
	case "website", "web development":
		return []models.PricingLineItem{
			{Item: "UX/UI Design", Amount: amount * 0.3},
			{Item: "Frontend Development", Amount: amount * 0.4},
			{Item: "Backend Development", Amount: amount * 0.2},
			{Item: "Testing & QA", Amount: amount * 0.1},
		}
	case "mobile app":
		return []models.PricingLineItem{
			{Item: "App Design", Amount: amount * 0.25},
			{Item: "iOS Development", Amount: amount * 0.35},
			{Item: "Android Development", Amount: amount * 0.35},
			{Item: "Testing & Deployment", Amount: amount * 0.05},
		}
	case "branding":
		return []models.PricingLineItem{
			{Item: "Brand Strategy", Amount: amount * 0.3},
			{Item: "Logo Design", Amount: amount * 0.25},
			{Item: "Brand Guidelines", Amount: amount * 0.25},
			{Item: "Marketing Materials", Amount: amount * 0.2},
		}
	default:
		return []models.PricingLineItem{
			{Item: "Planning & Strategy", Amount: amount * 0.2},
			{Item: "Implementation", Amount: amount * 0.6},
			{Item: "Testing & Support", Amount: amount * 0.2},
		}
	}
}
