package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strongPlan() PlanInput {
	return PlanInput{
		BusinessName:       "Parseon Analytics",
		Industry:           "AI/ML SaaS",
		Problem:            "Mid-market lenders reconcile loan books by hand, losing weeks per quarter and missing covenant breaches until audits surface them.",
		Uniqueness:         "Only product combining open-banking feeds with covenant models tuned per lender; incumbents resell generic spreadsheets with no covenant awareness at all.",
		Technology:         "Proprietary machine learning models over open-banking transaction streams",
		Experience:         "Former software engineer and founder, 8 years building lending infrastructure",
		RevenueModel:       "Subscription SaaS, £350/month per lender seat, first paying customers onboarded",
		Expansion:          "Expansion into European lending markets in year two, then United States",
		Vision:             "Become the default covenant monitoring layer for every mid-market lender in Europe, replacing quarterly spreadsheet reviews with continuous oversight.",
		CustomerInterviews: "Interviewed 42 lending operations managers across 18 firms; 11 signed letters of intent and 3 are in paid pilots today.",
		ProductStatus:      "Launched MVP with 3 paying customers",
		FundingAmount:      75000,
		JobCreation:        6,
		PatentStatus:       "patent filed",
		CustomerAcqCost:    400,
		LifetimeValue:      4200,
		PaybackMonths:      7,
		MonthlyProjections: "1000,2000,3500,5000,7000,9000,11000,14000,17000,20000,23000,26000",
	}
}

func TestRubricScoresWithinBounds(t *testing.T) {
	engine := NewDefaultEngine()

	plans := []PlanInput{
		{},
		strongPlan(),
		{FundingAmount: -5, JobCreation: -2, CustomerAcqCost: -1},
		{Industry: "FinTech", PatentStatus: "granted", JobCreation: 100, FundingAmount: 10_000_000},
	}

	for _, plan := range plans {
		scores := engine.ScoreRubric(plan)
		for name, score := range map[string]int{
			"innovation":  scores.Innovation,
			"viability":   scores.Viability,
			"scalability": scores.Scalability,
		} {
			assert.GreaterOrEqual(t, score, 0, "%s below 0", name)
			assert.LessOrEqual(t, score, 100, "%s above 100", name)
		}
	}
}

func TestRubricScorerIsDeterministic(t *testing.T) {
	engine := NewDefaultEngine()
	plan := strongPlan()

	first := engine.ScoreRubric(plan)
	second := engine.ScoreRubric(plan)

	assert.Equal(t, first, second)
}

func TestEmptyPlanScoresBaseline(t *testing.T) {
	engine := NewDefaultEngine()
	scores := engine.ScoreRubric(PlanInput{})

	// Absent fields contribute no bonus, leaving the baseline untouched.
	assert.Equal(t, 50, scores.Innovation)
	assert.Equal(t, 50, scores.Viability)
	assert.Equal(t, 50, scores.Scalability)
}

func TestInnovationScoreRewardsPatentAndTech(t *testing.T) {
	engine := NewDefaultEngine()

	plan := PlanInput{
		FundingAmount: 0,
		JobCreation:   6,
		RevenueModel:  "subscription SaaS, $0 currently",
		PatentStatus:  "patent filed",
		Technology:    "proprietary machine learning ranking engine",
		Uniqueness:    "The only endorser-aware plan builder on the market, combining rubric scoring with per-endorser weightings that nobody else models today.",
	}

	score := engine.ScoreInnovation(plan)
	assert.GreaterOrEqual(t, score, 75, "baseline 50 + patent 15 + tech bonuses should clear 75")
}

func TestViabilityUnitEconomicsBonus(t *testing.T) {
	engine := NewDefaultEngine()

	withRatio := engine.ScoreViability(PlanInput{CustomerAcqCost: 100, LifetimeValue: 300})
	withoutRatio := engine.ScoreViability(PlanInput{CustomerAcqCost: 100, LifetimeValue: 250})

	assert.Greater(t, withRatio, withoutRatio)
	// Zero CAC must not divide; it simply earns no bonus.
	assert.Equal(t, 50, engine.ScoreViability(PlanInput{CustomerAcqCost: 0, LifetimeValue: 500}))
}

func TestScalabilityJobCreationThreshold(t *testing.T) {
	engine := NewDefaultEngine()

	atThreshold := engine.ScoreScalability(PlanInput{JobCreation: 5})
	belowThreshold := engine.ScoreScalability(PlanInput{JobCreation: 4})

	assert.Equal(t, 65, atThreshold)
	assert.Equal(t, 50, belowThreshold)
}
