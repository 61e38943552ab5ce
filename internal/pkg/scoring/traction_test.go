package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastTractionNeverFailsOnMalformedProjections(t *testing.T) {
	engine := NewDefaultEngine()
	def := engine.Config().Traction.DefaultProjection

	for _, raw := range []string{"abc,,5", "", ",,,", "1000;2000", "£abc", "NaN,1,2", "-50,100"} {
		plan := strongPlan()
		plan.MonthlyProjections = raw

		forecast := engine.ForecastTraction(plan) // must not panic
		if forecast.UserProjection != def {
			// Inputs like ",,," collapse to nothing and also default.
			assert.NotZero(t, forecast.UserProjection.Month1, "raw %q", raw)
		}
		assert.NotEmpty(t, forecast.Assessment, "raw %q", raw)
	}
}

func TestParseProjectionsFullSeries(t *testing.T) {
	engine := NewDefaultEngine()

	months := make([]string, 36)
	for i := range months {
		months[i] = "1000"
	}
	months[0] = "100"
	months[11] = "1200"
	months[23] = "2400"
	months[35] = "3600"

	p := engine.parseProjections(strings.Join(months, ","))
	assert.Equal(t, Projection{Month1: 100, Month12: 1200, Month24: 2400, Month36: 3600}, p)
}

func TestParseProjectionsExtrapolatesShortSeries(t *testing.T) {
	engine := NewDefaultEngine()
	cfg := engine.Config().Traction

	p := engine.parseProjections("1000,2000,3000")
	assert.Equal(t, 1000.0, p.Month1)
	assert.Equal(t, 1000*cfg.ExtrapolateM12, p.Month12)
	assert.Equal(t, 1000*cfg.ExtrapolateM24, p.Month24)
	assert.Equal(t, 1000*cfg.ExtrapolateM36, p.Month36)
}

func TestComparablesMatchedByIndustry(t *testing.T) {
	engine := NewDefaultEngine()

	plan := strongPlan()
	plan.Industry = "FinTech lending"

	forecast := engine.ForecastTraction(plan)
	require.NotEmpty(t, forecast.Comparables)
	assert.LessOrEqual(t, len(forecast.Comparables), 3)
	assert.Contains(t, forecast.Comparables, "Ledgerly")
}

func TestUnmatchedIndustryFallsBackToDefaultRange(t *testing.T) {
	engine := NewDefaultEngine()

	plan := strongPlan()
	plan.Industry = "Submarine ballast retrofitting"

	forecast := engine.ForecastTraction(plan)
	assert.Empty(t, forecast.Comparables)
	assert.Equal(t, engine.Config().Traction.DefaultRange, forecast.ComparableRange)
}

func TestBlankIndustryMatchesNoComparables(t *testing.T) {
	engine := NewDefaultEngine()

	plan := strongPlan()
	plan.Industry = ""

	forecast := engine.ForecastTraction(plan)
	assert.Empty(t, forecast.Comparables, "an absent industry must not pick up comparables")
	assert.Equal(t, engine.Config().Traction.DefaultRange, forecast.ComparableRange)
}

func TestOverOptimisticProjectionFlagged(t *testing.T) {
	engine := NewDefaultEngine()

	plan := strongPlan()
	plan.Industry = "FinTech"
	plan.MonthlyProjections = "1000000" // extrapolates far past any comparable

	forecast := engine.ForecastTraction(plan)
	require.NotEmpty(t, forecast.Assessment)
	assert.Contains(t, forecast.Assessment[0], "more than double")
	assert.Contains(t, strings.Join(forecast.Recommendations, " "), "Reduce later-year projections")
}

func TestThinEvidenceRecommendation(t *testing.T) {
	engine := NewDefaultEngine()

	plan := strongPlan()
	plan.CustomerInterviews = "spoke to a few people"

	forecast := engine.ForecastTraction(plan)
	assert.Contains(t, strings.Join(forecast.Recommendations, " "), "customer validation evidence")
}
