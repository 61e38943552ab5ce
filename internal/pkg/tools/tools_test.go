package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogueIntegrity(t *testing.T) {
	categories := make(map[string]bool)
	for _, c := range Categories() {
		assert.False(t, categories[c.Slug], "duplicate category slug %s", c.Slug)
		categories[c.Slug] = true
	}

	slugs := make(map[string]bool)
	for _, tool := range All() {
		assert.False(t, slugs[tool.Slug], "duplicate tool slug %s", tool.Slug)
		slugs[tool.Slug] = true

		assert.True(t, categories[tool.Category], "tool %s has unknown category %s", tool.Slug, tool.Category)
		assert.NotEmpty(t, tool.Name, "tool %s has no name", tool.Slug)
		assert.NotEmpty(t, tool.Description, "tool %s has no description", tool.Slug)
		assert.Contains(t, []Kind{KindCalculator, KindChecklist, KindBuilder, KindGuide}, tool.Kind)
	}

	assert.GreaterOrEqual(t, len(All()), 70, "catalogue should stay comprehensive")
}

func TestGet(t *testing.T) {
	tool, ok := Get("ltv-cac-calculator")
	require.True(t, ok)
	assert.Equal(t, "LTV:CAC Calculator", tool.Name)
	assert.Equal(t, KindCalculator, tool.Kind)

	_, ok = Get("does-not-exist")
	assert.False(t, ok)
}

func TestByCategory(t *testing.T) {
	for _, c := range Categories() {
		assert.NotEmpty(t, ByCategory(c.Slug), "category %s has no tools", c.Slug)
	}
	assert.Empty(t, ByCategory("unknown"))
}

func TestSearch(t *testing.T) {
	results := Search("calculator")
	assert.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Name, results[i].Name, "results should be sorted by name")
	}

	assert.Empty(t, Search(""))
	assert.Empty(t, Search("   "))

	byDescription := Search("endorsing body")
	assert.NotEmpty(t, byDescription)
}

func TestLTVCAC(t *testing.T) {
	healthy := LTVCAC(3000, 900)
	assert.InDelta(t, 3.33, healthy.Ratio, 0.01)
	assert.Contains(t, healthy.Assessment, "Healthy")

	marginal := LTVCAC(1500, 1000)
	assert.Equal(t, 1.5, marginal.Ratio)
	assert.Contains(t, marginal.Assessment, "Marginal")

	losing := LTVCAC(500, 1000)
	assert.Contains(t, losing.Assessment, "lose money")

	zero := LTVCAC(1000, 0)
	assert.Zero(t, zero.Ratio)
}

func TestRunway(t *testing.T) {
	assert.Equal(t, 10, Runway(50000, 5000))
	assert.Equal(t, 3, Runway(10000, 3000))
	assert.Equal(t, -1, Runway(10000, 0), "no burn means indefinite runway")
	assert.Equal(t, 0, Runway(0, 5000))
}

func TestBreakEvenUnits(t *testing.T) {
	assert.Equal(t, 100, BreakEvenUnits(10000, 150, 50))
	assert.Equal(t, 34, BreakEvenUnits(1000, 40, 10), "fractional units round up")
	assert.Equal(t, -1, BreakEvenUnits(10000, 50, 50))
	assert.Equal(t, -1, BreakEvenUnits(10000, 40, 50))
}

func TestPaybackMonths(t *testing.T) {
	assert.Equal(t, 6, PaybackMonths(600, 100))
	assert.Equal(t, 7, PaybackMonths(601, 100))
	assert.Equal(t, 0, PaybackMonths(0, 100))
	assert.Equal(t, -1, PaybackMonths(600, 0))
}

func TestVisaCost(t *testing.T) {
	solo := VisaCost(VisaCostInput{IncludeEndorse: true})
	assert.Equal(t, 1000, solo.EndorsementFee)
	assert.Equal(t, 1274, solo.ApplicationFees)
	assert.Equal(t, 1035*3, solo.HealthcareSurcharge, "default stay is three years")
	assert.Equal(t, solo.EndorsementFee+solo.ApplicationFees+solo.HealthcareSurcharge, solo.Total)

	family := VisaCost(VisaCostInput{Dependants: 2, YearsOfStay: 3, PriorityService: true})
	assert.Zero(t, family.EndorsementFee)
	assert.Equal(t, 1274*3, family.ApplicationFees)
	assert.Equal(t, 1035*3*3, family.HealthcareSurcharge)
	assert.Equal(t, 500, family.PriorityFee)

	clamped := VisaCost(VisaCostInput{Dependants: -5})
	assert.Equal(t, 1274, clamped.ApplicationFees)
}

func TestProjectRevenue(t *testing.T) {
	csv := ProjectRevenue(1000, 0.1, 3)
	assert.Equal(t, "1000,1100,1210", csv)

	flat := ProjectRevenue(500, 0, 2)
	assert.Equal(t, "500,500", flat)

	defaulted := ProjectRevenue(100, 0.05, 0)
	assert.Len(t, strings.Split(defaulted, ","), 36)
}

func TestGrowthRate(t *testing.T) {
	assert.InDelta(t, 0.1, GrowthRate(1000, 1331, 3), 0.001)
	assert.Zero(t, GrowthRate(0, 1000, 3))
	assert.Zero(t, GrowthRate(1000, 1331, 0))
}

func TestMaintenanceFunds(t *testing.T) {
	assert.Equal(t, 1270, MaintenanceFunds(0))
	assert.Equal(t, 1270+285, MaintenanceFunds(1))
	assert.Equal(t, 1270+285+200*2, MaintenanceFunds(3))
}