package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Projection holds revenue figures at the four benchmark milestones.
type Projection struct {
	Month1  float64 `json:"month_1"`
	Month12 float64 `json:"month_12"`
	Month24 float64 `json:"month_24"`
	Month36 float64 `json:"month_36"`
}

// Range is a min/max revenue band.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ProjectionRange is the comparable-venture band at each milestone.
type ProjectionRange struct {
	Month1  Range `json:"month_1"`
	Month12 Range `json:"month_12"`
	Month24 Range `json:"month_24"`
	Month36 Range `json:"month_36"`
}

// TractionForecast is the benchmarker's output.
type TractionForecast struct {
	UserProjection  Projection      `json:"user_projection"`
	ComparableRange ProjectionRange `json:"comparable_range"`
	Comparables     []string        `json:"comparables"`
	Assessment      []string        `json:"assessment"`
	Recommendations []string        `json:"recommendations"`
}

// Optimism multiples against the top of the comparable band.
const (
	optimismHigh    = 2.0
	optimismRaised  = 1.5
	fundingFloorGBP = 25000
)

// ForecastTraction benchmarks the plan's revenue projections against
// comparable ventures in the same industry. It never fails: malformed
// projection strings fall back to the configured default tuple and missing
// comparables fall back to the default range.
func (e *Engine) ForecastTraction(plan PlanInput) TractionForecast {
	projection := e.parseProjections(plan.MonthlyProjections)
	comparables := e.matchComparables(plan.Industry)

	var names []string
	rng := e.cfg.Traction.DefaultRange
	if len(comparables) > 0 {
		rng = rangeAcross(comparables)
		for _, c := range comparables {
			names = append(names, c.Name)
		}
	}

	forecast := TractionForecast{
		UserProjection:  projection,
		ComparableRange: rng,
		Comparables:     names,
	}
	forecast.Assessment = assessProjection(projection, rng)
	forecast.Recommendations = e.recommendFor(plan, projection, rng)

	return forecast
}

// parseProjections reads the comma-separated monthly figures into the four
// milestones. Short inputs extrapolate multiplicatively from month 1;
// unparseable input falls back to the default tuple.
func (e *Engine) parseProjections(raw string) Projection {
	t := e.cfg.Traction

	parts := strings.Split(raw, ",")
	months := make([]float64, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "£"))
		if trimmed == "" {
			continue
		}
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return t.DefaultProjection
		}
		months = append(months, value)
	}

	if len(months) == 0 {
		return t.DefaultProjection
	}

	monthAt := func(index int, factor float64) float64 {
		if index < len(months) {
			return months[index]
		}
		return months[0] * factor
	}

	return Projection{
		Month1:  months[0],
		Month12: monthAt(11, t.ExtrapolateM12),
		Month24: monthAt(23, t.ExtrapolateM24),
		Month36: monthAt(35, t.ExtrapolateM36),
	}
}

// matchComparables selects up to three ventures by case-insensitive
// substring match on industry. A blank industry matches none, so the
// caller falls back to the default range.
func (e *Engine) matchComparables(industry string) []ComparableVenture {
	if strings.TrimSpace(industry) == "" {
		return nil
	}
	var matched []ComparableVenture
	for _, c := range e.cfg.Comparables {
		if containsFold(industry, c.Industry) || containsFold(c.Industry, industry) {
			matched = append(matched, c)
			if len(matched) == 3 {
				break
			}
		}
	}
	return matched
}

func rangeAcross(comparables []ComparableVenture) ProjectionRange {
	minMax := func(pick func(ComparableVenture) float64) Range {
		r := Range{Min: pick(comparables[0]), Max: pick(comparables[0])}
		for _, c := range comparables[1:] {
			v := pick(c)
			if v < r.Min {
				r.Min = v
			}
			if v > r.Max {
				r.Max = v
			}
		}
		return r
	}

	return ProjectionRange{
		Month1:  minMax(func(c ComparableVenture) float64 { return c.Month1 }),
		Month12: minMax(func(c ComparableVenture) float64 { return c.Month12 }),
		Month24: minMax(func(c ComparableVenture) float64 { return c.Month24 }),
		Month36: minMax(func(c ComparableVenture) float64 { return c.Month36 }),
	}
}

// assessProjection emits one qualitative line per milestone that falls
// outside the comparable band.
func assessProjection(p Projection, rng ProjectionRange) []string {
	var assessment []string

	check := func(label string, value float64, band Range) {
		switch {
		case band.Max > 0 && value > band.Max*optimismHigh:
			assessment = append(assessment, fmt.Sprintf("Month %s projection of £%.0f is more than double the top comparable (£%.0f): plan for scrutiny.", label, value, band.Max))
		case band.Max > 0 && value > band.Max*optimismRaised:
			assessment = append(assessment, fmt.Sprintf("Month %s projection of £%.0f runs ahead of comparable ventures (£%.0f–£%.0f).", label, value, band.Min, band.Max))
		case value < band.Min:
			assessment = append(assessment, fmt.Sprintf("Month %s projection of £%.0f trails comparable ventures (£%.0f–£%.0f).", label, value, band.Min, band.Max))
		}
	}

	check("1", p.Month1, rng.Month1)
	check("12", p.Month12, rng.Month12)
	check("24", p.Month24, rng.Month24)
	check("36", p.Month36, rng.Month36)

	if len(assessment) == 0 {
		assessment = append(assessment, "Projections sit within the range of comparable ventures.")
	}
	return assessment
}

func (e *Engine) recommendFor(plan PlanInput, p Projection, rng ProjectionRange) []string {
	var recs []string

	if rng.Month36.Max > 0 && p.Month36 > rng.Month36.Max*optimismHigh {
		recs = append(recs, "Reduce later-year projections or document the growth assumptions behind them.")
	}
	if len(strings.TrimSpace(plan.CustomerInterviews)) < 80 {
		recs = append(recs, "Add customer validation evidence (interviews, pilots, letters of intent) to support the projections.")
	}
	if plan.FundingAmount < fundingFloorGBP && p.Month36 >= rng.Month36.Min {
		recs = append(recs, "Projected growth will need more working capital than currently raised; plan a funding round.")
	}
	if plan.JobCreation < 3 && p.Month24 >= rng.Month24.Min {
		recs = append(recs, "Revenue at this level usually needs a bigger team; revisit the hiring plan.")
	}

	return recs
}
