package proposals

import "github.com/jordanlanch/freelanceflow/pkg/models"

// Config holds the proposal optimization knobs.
type Config struct {
	// BasePrices keys are lowercased project types.
	BasePrices       map[string]float64
	DefaultBasePrice float64

	// RegulatedIndustries carry a pricing premium.
	RegulatedIndustries []string
	RegulatedMultiplier float64

	PriceRangeMin float64
	PriceRangeMax float64

	MaxTemplateSuggestions  int
	FallbackConversionRate  float64
	EstablishedUsageCount   int
	EstablishedConfidence   float64
	UnprovenConfidence      float64
	SeniorTeamBudgetCutoff  float64

	// ABTestCatalog is the static experiment catalogue suggested to users.
	// Completed test history is fetched and passed through the generator so
	// real results can be wired in later without changing the call sites.
	ABTestCatalog []models.ABTestRecommendation
}

// DefaultConfig returns the production proposal optimization settings.
func DefaultConfig() Config {
	return Config{
		BasePrices: map[string]float64{
			"website":             15000,
			"mobile app":          45000,
			"branding":            12000,
			"enterprise software": 75000,
		},
		DefaultBasePrice: 25000,

		RegulatedIndustries: []string{"healthcare", "finance"},
		RegulatedMultiplier: 1.3,

		PriceRangeMin: 0.8,
		PriceRangeMax: 1.4,

		MaxTemplateSuggestions: 3,
		FallbackConversionRate: 0.3,
		EstablishedUsageCount:  10,
		EstablishedConfidence:  0.8,
		UnprovenConfidence:     0.6,
		SeniorTeamBudgetCutoff: 50000,

		ABTestCatalog: []models.ABTestRecommendation{
			{
				TestName:       "Pricing Strategy Test",
				Variants:       []string{"Value-based pricing", "Hourly rate pricing", "Package pricing"},
				SuccessMetrics: []string{"Conversion rate", "Average deal size", "Time to close"},
			},
			{
				TestName:       "Content Length Test",
				Variants:       []string{"Detailed proposal", "Executive summary", "Visual presentation"},
				SuccessMetrics: []string{"Engagement time", "Response rate", "Conversion rate"},
			},
		},
	}
}
