package models

import "time"

// ActionPriority enumerates follow-up urgency for a scored lead.
type ActionPriority string

const (
	PriorityImmediate ActionPriority = "immediate"
	PriorityHigh      ActionPriority = "high"
	PriorityMedium    ActionPriority = "medium"
	PriorityLow       ActionPriority = "low"
)

// NextActions describes what to do with a lead and how soon.
type NextActions struct {
	Priority ActionPriority `json:"priority"`
	Actions  []string       `json:"actions"`
	Timeline string         `json:"timeline"`
}

// ScoringResult is the output of the lead scoring module.
type ScoringResult struct {
	FinalScore        int         `json:"final_score"`
	DemographicScore  int         `json:"demographic_score"`
	FirmographicScore int         `json:"firmographic_score"`
	BehavioralScore   int         `json:"behavioral_score"`
	EngagementScore   int         `json:"engagement_score"`
	Confidence        float64     `json:"confidence"`
	ConversionRate    float64     `json:"conversion_rate"`
	Factors           []string    `json:"factors"`
	Recommendations   []string    `json:"recommendations"`
	NextActions       NextActions `json:"next_actions"`
}

// RiskSeverity enumerates risk factor severities.
type RiskSeverity string

const (
	SeverityCritical RiskSeverity = "critical"
	SeverityHigh     RiskSeverity = "high"
	SeverityMedium   RiskSeverity = "medium"
	SeverityLow      RiskSeverity = "low"
)

// RiskFactor is a detected condition correlated with schedule or budget
// slippage.
type RiskFactor struct {
	Type        string       `json:"type"`
	Severity    RiskSeverity `json:"severity"`
	Description string       `json:"description"`
	Impact      int          `json:"impact"`
}

// BudgetForecast projects total spend against the project budget.
type BudgetForecast struct {
	CurrentSpend       float64 `json:"current_spend"`
	ProjectedTotal     float64 `json:"projected_total"`
	VariancePercentage float64 `json:"variance_percentage"`
}

// ResourceOptimization lists detected bottlenecks and what to do about them.
type ResourceOptimization struct {
	Bottlenecks []string `json:"bottlenecks"`
	Suggestions []string `json:"suggestions"`
}

// RiskAnalysis is the output of the project risk and forecast module.
type RiskAnalysis struct {
	RiskScore                int                  `json:"risk_score"`
	CompletionPercentage     float64              `json:"completion_percentage"`
	RiskFactors              []RiskFactor         `json:"risk_factors"`
	Recommendations          []string             `json:"recommendations"`
	Confidence               int                  `json:"confidence"`
	PredictedCompletionDate  *time.Time           `json:"predicted_completion_date,omitempty"`
	BudgetForecast           BudgetForecast       `json:"budget_forecast"`
	ResourceOptimization     ResourceOptimization `json:"resource_optimization"`
}

// TemplateSuggestion ranks a proposal template for reuse.
type TemplateSuggestion struct {
	TemplateID     string  `json:"template_id"`
	Name           string  `json:"name"`
	ConversionRate float64 `json:"conversion_rate"`
	Confidence     float64 `json:"confidence"`
}

// ContentImprovement suggests a section-level proposal change.
type ContentImprovement struct {
	Section    string `json:"section"`
	Suggestion string `json:"suggestion"`
	Impact     string `json:"impact"`
}

// PriceRange bounds a pricing suggestion.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PricingAnalysis is the pricing part of a proposal optimization.
type PricingAnalysis struct {
	SuggestedPrice   float64    `json:"suggested_price"`
	PriceRange       PriceRange `json:"price_range"`
	MarketComparison string     `json:"market_comparison"`
}

// ABTestRecommendation proposes a proposal experiment to run.
type ABTestRecommendation struct {
	TestName       string   `json:"test_name"`
	Variants       []string `json:"variants"`
	SuccessMetrics []string `json:"success_metrics"`
}

// ProposalOptimization is the output of the proposal optimization module.
type ProposalOptimization struct {
	TemplateSuggestions   []TemplateSuggestion   `json:"template_suggestions"`
	ContentImprovements   []ContentImprovement   `json:"content_improvements"`
	PricingAnalysis       PricingAnalysis        `json:"pricing_analysis"`
	ABTestRecommendations []ABTestRecommendation `json:"ab_test_recommendations"`
}

// ProposalSection is one generated section of a proposal draft.
type ProposalSection struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// PricingLineItem is one entry of a proposal pricing breakdown.
type PricingLineItem struct {
	Item   string  `json:"item"`
	Amount float64 `json:"amount"`
}

// ProposalDraft is a generated proposal skeleton.
type ProposalDraft struct {
	Title           string            `json:"title"`
	Sections        []ProposalSection `json:"sections"`
	SuggestedAmount float64           `json:"suggested_amount"`
	Breakdown       []PricingLineItem `json:"breakdown"`
}

// InvoiceLineItem is a suggested invoice line.
type InvoiceLineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// PaymentTerms are derived from a client's payment history.
type PaymentTerms struct {
	DueDays              int     `json:"due_days"`
	EarlyPaymentDiscount float64 `json:"early_payment_discount"`
	LateFeePercentage    float64 `json:"late_fee_percentage"`
}

// AutomationRule is a trigger/action pair for invoice workflows.
type AutomationRule struct {
	Trigger string `json:"trigger"`
	Action  string `json:"action"`
	Timing  string `json:"timing"`
}

// FollowUpStep is one step of a payment follow-up sequence, relative to the
// invoice issue date.
type FollowUpStep struct {
	Day      int    `json:"day"`
	Type     string `json:"type"`
	Template string `json:"template"`
}

// InvoiceAutomation is the output of the invoice automation module.
type InvoiceAutomation struct {
	SuggestedItems   []InvoiceLineItem `json:"suggested_items"`
	PaymentTerms     PaymentTerms      `json:"payment_terms"`
	AutomationRules  []AutomationRule  `json:"automation_rules"`
	FollowUpSequence []FollowUpStep    `json:"follow_up_sequence"`
}

// InvoiceContent is a generated invoice title, description and line items.
type InvoiceContent struct {
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	SuggestedAmount float64           `json:"suggested_amount"`
	LineItems       []InvoiceLineItem `json:"line_items"`
}
