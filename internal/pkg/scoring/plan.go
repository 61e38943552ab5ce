package scoring

import "strings"

// PlanInput is the business-plan shape consumed by the scoring engine.
// It mirrors the persisted business_plans row but carries no identity or
// pipeline state; callers map the model into this struct so the engine
// stays free of database types.
type PlanInput struct {
	BusinessName string
	Industry     string

	// Narrative fields from the questionnaire.
	Problem            string
	Uniqueness         string
	Technology         string
	Experience         string
	RevenueModel       string
	Expansion          string
	Vision             string
	CustomerInterviews string
	ProductStatus      string

	// Numeric fields.
	FundingAmount int // GBP
	JobCreation   int

	// Extended fields, optional.
	PatentStatus       string
	CustomerAcqCost    float64
	LifetimeValue      float64
	PaybackMonths      int
	MonthlyProjections string // comma-separated monthly revenue figures
}

// TractionLevel classifies how far a venture has come, ordered weakest first.
type TractionLevel int

const (
	TractionNone TractionLevel = iota
	TractionMVP
	TractionRevenue
)

func (t TractionLevel) String() string {
	switch t {
	case TractionRevenue:
		return "revenue"
	case TractionMVP:
		return "mvp"
	default:
		return "none"
	}
}

// ClassifyTraction derives the traction level from the revenue and
// product-status narrative. Pure keyword heuristic.
func ClassifyTraction(plan PlanInput) TractionLevel {
	text := strings.ToLower(plan.RevenueModel + " " + plan.ProductStatus)
	if containsAny(text, "paying customer", "revenue of", "mrr", "arr", "generating revenue", "first sales") {
		return TractionRevenue
	}
	if containsAny(text, "mvp", "beta", "prototype", "pilot", "launched", "waitlist") {
		return TractionMVP
	}
	return TractionNone
}

// BusinessProfile is the condensed view used by the rule impact engine.
type BusinessProfile struct {
	Stage       string // "pre-revenue" or "revenue"
	ZeroFunding bool
	Industry    string
	JobCreation int
}

// ProfileFromPlan condenses a plan into the rule-engine profile.
func ProfileFromPlan(plan PlanInput) BusinessProfile {
	stage := "pre-revenue"
	if ClassifyTraction(plan) == TractionRevenue {
		stage = "revenue"
	}
	return BusinessProfile{
		Stage:       stage,
		ZeroFunding: plan.FundingAmount == 0,
		Industry:    plan.Industry,
		JobCreation: plan.JobCreation,
	}
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
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
