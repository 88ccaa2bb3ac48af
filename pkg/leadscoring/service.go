package leadscoring

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/jordanlanch/freelanceflow/pkg/domain"
	"github.com/jordanlanch/freelanceflow/pkg/logger"
	"github.com/jordanlanch/freelanceflow/pkg/models"
	"github.com/jordanlanch/freelanceflow/pkg/phone"
)

// Store defines the lead data access this service needs.
type Store interface {
	GetLead(ctx context.Context, workspaceID, leadID string) (*models.Lead, error)
	ListLeadCohort(ctx context.Context, workspaceID string, limit int) ([]models.Lead, error)
	UpdateLeadScore(ctx context.Context, workspaceID, leadID string, score int, insights string) error
}

// Service scores leads with a weighted additive model over demographic,
// firmographic, behavioral and engagement signals, plus a conversion-rate
// estimate over a historical won/lost cohort.
type Service struct {
	store  Store
	phones *phone.Validator
	cfg    Config
	log    logger.Logger
}

// NewService creates a new lead scoring service with the default weight table.
func NewService(store Store, log logger.Logger) *Service {
	return NewServiceWithConfig(store, log, DefaultConfig())
}

// NewServiceWithConfig creates a lead scoring service with a custom weight
// table.
func NewServiceWithConfig(store Store, log logger.Logger, cfg Config) *Service {
	return &Service{
		store:  store,
		phones: phone.NewValidator(),
		cfg:    cfg,
		log:    log,
	}
}

// Score computes a ScoringResult for a single lead. A missing lead is a hard
// failure; a failed cohort fetch degrades to an empty cohort (lower
// confidence, default conversion rate) instead of failing.
func (s *Service) Score(ctx context.Context, workspaceID, leadID string) (*models.ScoringResult, error) {
	lead, err := s.store.GetLead(ctx, workspaceID, leadID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load lead: %w", err)
	}

	cohort, err := s.store.ListLeadCohort(ctx, workspaceID, s.cfg.CohortLimit)
	if err != nil {
		s.log.Warn("cohort fetch failed, scoring with empty cohort",
			"workspace_id", workspaceID, "lead_id", leadID, "error", err)
		cohort = nil
	}

	return s.scoreLead(lead, cohort), nil
}

// ScoreAndPersist computes a ScoringResult and writes the final score plus a
// JSON insights blob back onto the lead. The cached score is advisory; on
// concurrent scoring of the same lead the last writer wins.
func (s *Service) ScoreAndPersist(ctx context.Context, workspaceID, leadID string) (*models.ScoringResult, error) {
	result, err := s.Score(ctx, workspaceID, leadID)
	if err != nil {
		return nil, err
	}

	insights, err := json.Marshal(map[string]interface{}{
		"factors":         result.Factors,
		"recommendations": result.Recommendations,
		"confidence":      result.Confidence,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode insights: %w", err)
	}

	if err := s.store.UpdateLeadScore(ctx, workspaceID, leadID, result.FinalScore, string(insights)); err != nil {
		return nil, fmt.Errorf("failed to persist lead score: %w", err)
	}

	return result, nil
}

func (s *Service) scoreLead(lead *models.Lead, cohort []models.Lead) *models.ScoringResult {
	factors := []string{}
	subRecs := []string{}

	demographic := s.scoreDemographic(lead, &factors, &subRecs)
	firmographic := s.scoreFirmographic(lead, &factors, &subRecs)
	behavioral := s.scoreBehavioral(lead, &factors, &subRecs)
	engagement := s.scoreEngagement(lead, &factors, &subRecs)

	base := s.cfg.BaseScore
	finalScore := clampScore(base + demographic + firmographic + behavioral + engagement)

	subScores := [4]int{
		clampScore(base + demographic),
		clampScore(base + firmographic),
		clampScore(base + behavioral),
		clampScore(base + engagement),
	}

	conversionRate := s.conversionRate(lead, cohort)
	confidence := s.confidence(subScores, len(cohort))

	recommendations := s.recommendations(finalScore, lead, conversionRate)
	recommendations = append(recommendations, subRecs...)

	return &models.ScoringResult{
		FinalScore:        finalScore,
		DemographicScore:  subScores[0],
		FirmographicScore: subScores[1],
		BehavioralScore:   subScores[2],
		EngagementScore:   subScores[3],
		Confidence:        confidence,
		ConversionRate:    conversionRate,
		Factors:           factors,
		Recommendations:   recommendations,
		NextActions:       s.nextActions(finalScore),
	}
}

func (s *Service) scoreDemographic(lead *models.Lead, factors, recs *[]string) int {
	if lead.Email == "" {
		return 0
	}

	if s.isFreeEmailDomain(lead.Email) {
		*factors = append(*factors, "Personal email domain")
		*recs = append(*recs, "Verify business email for higher credibility")
		return s.cfg.FreeEmailPenalty
	}

	*factors = append(*factors, "Professional email domain")
	return s.cfg.BusinessEmailBonus
}

func (s *Service) scoreFirmographic(lead *models.Lead, factors, recs *[]string) int {
	if strings.TrimSpace(lead.Company) == "" {
		*recs = append(*recs, "Request company information")
		return 0
	}

	*factors = append(*factors, "Company information provided")
	return s.cfg.CompanyBonus
}

func (s *Service) scoreBehavioral(lead *models.Lead, factors, recs *[]string) int {
	bonus, ok := s.cfg.SourceBonuses[lead.Source]
	if !ok {
		return 0
	}

	switch lead.Source {
	case models.SourceReferral:
		*factors = append(*factors, "High-quality referral source")
	case models.SourceLinkedIn:
		*factors = append(*factors, "Professional network source")
	case models.SourceWebsiteForm:
		*factors = append(*factors, "Direct website inquiry")
	case models.SourceColdOutreach:
		*factors = append(*factors, "Cold outreach lead")
		*recs = append(*recs, "Nurture with valuable content")
	}

	return bonus
}

func (s *Service) scoreEngagement(lead *models.Lead, factors, recs *[]string) int {
	total := 0

	if lead.ExpectedValue > 0 {
		for _, tier := range s.cfg.ValueTiers {
			if lead.ExpectedValue > tier.Threshold {
				total += tier.Bonus
				switch {
				case tier.Bonus >= 20:
					*factors = append(*factors, "High-value opportunity")
				case tier.Bonus >= 10:
					*factors = append(*factors, "Medium-value opportunity")
				default:
					*factors = append(*factors, "Standard-value opportunity")
				}
				break
			}
		}
	} else {
		*recs = append(*recs, "Qualify budget and timeline")
	}

	if lead.Notes != "" {
		notes := strings.ToLower(lead.Notes)

		if containsAny(notes, s.cfg.UrgencyKeywords) {
			total += s.cfg.UrgencyBonus
			*factors = append(*factors, "Urgent timeline indicated")
		}

		if containsAny(notes, s.cfg.PositiveKeywords) {
			total += s.cfg.PositiveBonus
			*factors = append(*factors, "Positive engagement signals")
		}
	}

	return total
}

// conversionRate estimates how often similar historical leads converted.
// Similarity is source equality, company substring, or expected value within
// the configured proximity. An empty or non-matching cohort falls back to
// the default rate.
func (s *Service) conversionRate(lead *models.Lead, cohort []models.Lead) float64 {
	if len(cohort) == 0 {
		return s.cfg.DefaultConversionRate
	}

	company := strings.ToLower(lead.Company)
	matched, won := 0, 0

	for _, h := range cohort {
		sourceMatch := h.Source == lead.Source
		companyMatch := h.Company != "" && strings.Contains(strings.ToLower(h.Company), company)
		valueMatch := math.Abs(h.ExpectedValue-lead.ExpectedValue) < s.cfg.ValueProximity

		if !sourceMatch && !companyMatch && !valueMatch {
			continue
		}

		matched++
		if h.Status == models.LeadStatusWon {
			won++
		}
	}

	if matched == 0 {
		return s.cfg.DefaultConversionRate
	}

	return float64(won) / float64(matched)
}

func (s *Service) confidence(subScores [4]int, cohortSize int) float64 {
	confidence := s.cfg.BaseConfidence

	if cohortSize > s.cfg.CohortSizeThreshold {
		confidence += s.cfg.CohortBonus
	}

	for _, score := range subScores {
		if score > s.cfg.SubScoreThreshold {
			confidence += s.cfg.SubScoreBonus
		}
	}

	return math.Min(s.cfg.MaxConfidence, confidence)
}

func (s *Service) recommendations(score int, lead *models.Lead, conversionRate float64) []string {
	var recs []string

	switch {
	case score >= 80:
		recs = append(recs,
			"High-priority lead - contact immediately",
			"Prepare detailed proposal with premium pricing")
	case score >= 60:
		recs = append(recs,
			"Schedule discovery call within 24 hours",
			"Send relevant case studies")
	case score >= 40:
		recs = append(recs,
			"Add to nurture sequence",
			"Qualify budget and timeline")
	default:
		recs = append(recs,
			"Monitor for engagement signals",
			"Consider long-term nurture campaign")
	}

	if conversionRate > 0.7 {
		recs = append(recs, "Similar leads have high conversion rate")
	}

	if lead.Phone == "" {
		recs = append(recs, "Obtain phone number for better qualification")
	} else if !s.phones.IsValid(lead.Phone, "") {
		recs = append(recs, "Verify phone number format before outreach")
	}

	return recs
}

func (s *Service) nextActions(score int) models.NextActions {
	switch {
	case score >= 80:
		return models.NextActions{
			Priority: models.PriorityImmediate,
			Actions:  []string{"Call within 1 hour", "Send personalized email", "Connect on LinkedIn"},
			Timeline: "Within 1 hour",
		}
	case score >= 60:
		return models.NextActions{
			Priority: models.PriorityHigh,
			Actions:  []string{"Schedule discovery call", "Send company overview", "Research their business"},
			Timeline: "Within 24 hours",
		}
	case score >= 40:
		return models.NextActions{
			Priority: models.PriorityMedium,
			Actions:  []string{"Add to email sequence", "Send relevant content", "Monitor website activity"},
			Timeline: "Within 3 days",
		}
	default:
		return models.NextActions{
			Priority: models.PriorityLow,
			Actions:  []string{"Add to long-term nurture", "Monitor for engagement", "Quarterly check-in"},
			Timeline: "Within 1 week",
		}
	}
}

func (s *Service) isFreeEmailDomain(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}

	emailDomain := strings.ToLower(email[at+1:])
	for _, free := range s.cfg.FreeEmailDomains {
		if emailDomain == free {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
