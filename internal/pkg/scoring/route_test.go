package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeRoutesSortedDescending(t *testing.T) {
	engine := NewDefaultEngine()

	for _, plan := range []PlanInput{{}, strongPlan(), {FundingAmount: 200000}} {
		ranked := engine.AnalyzeRoutes(plan)
		require.Len(t, ranked, len(engine.Config().Routes))
		for i := 1; i < len(ranked); i++ {
			assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score,
				"routes out of order at index %d", i)
		}
	}
}

func TestRouteScoresWithinBounds(t *testing.T) {
	engine := NewDefaultEngine()
	for _, route := range engine.AnalyzeRoutes(strongPlan()) {
		assert.GreaterOrEqual(t, route.Score, 0)
		assert.LessOrEqual(t, route.Score, 100)
	}
}

func TestCapitalThresholdSwingsScore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Routes = []VisaRoute{{
		ID:                 "capital-only",
		Name:               "Capital Only",
		MinCapital:         50000,
		TractionRequired:   TractionNone,
		SuccessProbability: probabilityPivot, // neutral multiplier
	}}
	engine := NewEngine(cfg)

	funded := engine.AnalyzeRoutes(PlanInput{FundingAmount: 50000})[0].Score
	unfunded := engine.AnalyzeRoutes(PlanInput{FundingAmount: 49999})[0].Score

	// Traction none is always satisfied here (+20). 50+15+20 vs 50-10+20.
	assert.Equal(t, 85, funded)
	assert.Equal(t, 60, unfunded)
}

func TestSuccessProbabilityScalesScore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Routes = []VisaRoute{
		{ID: "sure", Name: "Sure", SuccessProbability: 0.75},
		{ID: "risky", Name: "Risky", SuccessProbability: 0.375},
	}
	engine := NewEngine(cfg)

	ranked := engine.AnalyzeRoutes(PlanInput{FundingAmount: 100000})
	require.Len(t, ranked, 2)
	assert.Equal(t, "sure", ranked[0].Route.ID)
	assert.Equal(t, ranked[0].Score/2, ranked[1].Score)
}

func TestCompareRoutesRecommendsTopRoute(t *testing.T) {
	engine := NewDefaultEngine()

	cmp := engine.CompareRoutes(strongPlan())
	require.NotEmpty(t, cmp.AllRoutes)
	assert.Equal(t, cmp.AllRoutes[0], cmp.Recommended)
	assert.Contains(t, cmp.Summary, cmp.Recommended.Route.Name)
}

func TestCompareRoutesEmptyTable(t *testing.T) {
	engine := NewEngine(Config{})
	cmp := engine.CompareRoutes(strongPlan())
	assert.Empty(t, cmp.AllRoutes)
	assert.NotEmpty(t, cmp.Summary)
}

func TestSkilledWorkerRouteCarriesSalaryHint(t *testing.T) {
	engine := NewDefaultEngine()
	for _, ranked := range engine.AnalyzeRoutes(strongPlan()) {
		if ranked.Route.ID != "skilled-worker" {
			continue
		}
		require.NotEmpty(t, ranked.Hints)
		assert.Contains(t, ranked.Hints[0], "salary")
		return
	}
	t.Fatal("skilled-worker route missing from default table")
}

func TestFeasibilityLabels(t *testing.T) {
	engine := NewDefaultEngine()

	// Strong plan satisfies funding, innovation and endorsement checks on
	// the innovator route.
	for _, ranked := range engine.AnalyzeRoutes(strongPlan()) {
		if ranked.Route.ID == "innovator-founder" {
			assert.Equal(t, FeasibilityHigh, ranked.Feasibility)
		}
		if ranked.Route.ID == "skilled-worker" {
			// Employment requirements can't be satisfied by a founder plan.
			assert.Equal(t, FeasibilityLow, ranked.Feasibility)
		}
	}
}
