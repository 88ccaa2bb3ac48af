package leadscoring

import "github.com/jordanlanch/freelanceflow/pkg/models"

// ValueTier maps an expected-value threshold to a score bonus. Tiers are
// evaluated highest threshold first; only the first matching tier applies.
type ValueTier struct {
	Threshold float64
	Bonus     int
}

// Config holds the scoring weight table. The basic and advanced scorers of
// the legacy implementation shared most of these constants with slight
// drift; a single table keeps them from diverging again.
type Config struct {
	BaseScore int

	// Demographic
	BusinessEmailBonus int
	FreeEmailPenalty   int
	FreeEmailDomains   []string

	// Firmographic
	CompanyBonus int

	// Behavioral
	SourceBonuses map[models.LeadSource]int

	// Engagement
	ValueTiers       []ValueTier
	UrgencyKeywords  []string
	UrgencyBonus     int
	PositiveKeywords []string
	PositiveBonus    int

	// Cohort
	CohortLimit           int
	ValueProximity        float64
	DefaultConversionRate float64

	// Confidence
	BaseConfidence      float64
	CohortSizeThreshold int
	CohortBonus         float64
	SubScoreThreshold   int
	SubScoreBonus       float64
	MaxConfidence       float64
}

// DefaultConfig returns the production weight table.
func DefaultConfig() Config {
	return Config{
		BaseScore: 50,

		BusinessEmailBonus: 15,
		FreeEmailPenalty:   -10,
		FreeEmailDomains: []string{
			"gmail.com", "yahoo.com", "hotmail.com",
			"outlook.com", "aol.com", "icloud.com",
		},

		CompanyBonus: 20,

		SourceBonuses: map[models.LeadSource]int{
			models.SourceReferral:     25,
			models.SourceLinkedIn:     15,
			models.SourceWebsiteForm:  10,
			models.SourceColdOutreach: -5,
		},

		ValueTiers: []ValueTier{
			{Threshold: 50000, Bonus: 20},
			{Threshold: 25000, Bonus: 10},
			{Threshold: 10000, Bonus: 5},
		},
		UrgencyKeywords:  []string{"urgent", "asap", "immediately", "deadline"},
		UrgencyBonus:     15,
		PositiveKeywords: []string{"interested", "excited", "ready", "approved"},
		PositiveBonus:    10,

		CohortLimit:           100,
		ValueProximity:        10000,
		DefaultConversionRate: 0.5,

		BaseConfidence:      0.7,
		CohortSizeThreshold: 50,
		CohortBonus:         0.1,
		SubScoreThreshold:   30,
		SubScoreBonus:       0.05,
		MaxConfidence:       0.95,
	}
}
