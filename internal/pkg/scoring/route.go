package scoring

import (
	"fmt"
	"sort"
	"strings"
)

// Route scoring constants. The 0.75 divisor normalizes the success
// probability so the middle of the route table leaves scores unchanged.
const (
	routeBaseline        = 50
	capitalMetBonus      = 15
	capitalMissedPenalty = 10
	tractionMetBonus     = 20
	tractionMissPenalty  = 15
	probabilityPivot     = 0.75
)

// Feasibility labels derived from the satisfiable-requirements fraction.
const (
	FeasibilityHigh   = "high"
	FeasibilityMedium = "medium"
	FeasibilityLow    = "low"
)

// RankedRoute is one visa route scored against a plan.
type RankedRoute struct {
	Route       VisaRoute `json:"route"`
	Score       int       `json:"score"`
	Feasibility string    `json:"feasibility"`
	Hints       []string  `json:"hints,omitempty"`
}

// RouteComparison is the full comparator output.
type RouteComparison struct {
	Recommended RankedRoute   `json:"recommended"`
	AllRoutes   []RankedRoute `json:"all_routes"`
	Summary     string        `json:"summary"`
}

// AnalyzeRoutes scores every configured route against the plan and returns
// them sorted descending by score. Ties keep the configured table order.
func (e *Engine) AnalyzeRoutes(plan PlanInput) []RankedRoute {
	traction := ClassifyTraction(plan)
	ranked := make([]RankedRoute, 0, len(e.cfg.Routes))

	for _, route := range e.cfg.Routes {
		score := routeBaseline
		if plan.FundingAmount >= route.MinCapital {
			score += capitalMetBonus
		} else {
			score -= capitalMissedPenalty
		}
		if traction >= route.TractionRequired {
			score += tractionMetBonus
		} else {
			score -= tractionMissPenalty
		}

		score = clampScore(int(float64(score) * (route.SuccessProbability / probabilityPivot)))

		ranked = append(ranked, RankedRoute{
			Route:       route,
			Score:       score,
			Feasibility: feasibilityFor(plan, route),
			Hints:       routeHints[route.ID],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// CompareRoutes ranks the routes and wraps the winner with a narrative
// summary.
func (e *Engine) CompareRoutes(plan PlanInput) RouteComparison {
	ranked := e.AnalyzeRoutes(plan)
	if len(ranked) == 0 {
		return RouteComparison{Summary: "No visa routes configured."}
	}

	top := ranked[0]
	summary := fmt.Sprintf("Based on your funding (£%d) and traction, the %s route scores highest (%d/100, %s feasibility).",
		plan.FundingAmount, top.Route.Name, top.Score, top.Feasibility)

	return RouteComparison{
		Recommended: top,
		AllRoutes:   ranked,
		Summary:     summary,
	}
}

// feasibilityFor labels a route by the fraction of its textual requirements
// that look satisfiable from the plan via simple substring and threshold
// checks. This is a coarse heuristic, matching the rest of the engine.
func feasibilityFor(plan PlanInput, route VisaRoute) string {
	if len(route.Requirements) == 0 {
		return FeasibilityMedium
	}

	satisfied := 0
	for _, req := range route.Requirements {
		if requirementLooksSatisfied(plan, req) {
			satisfied++
		}
	}

	fraction := float64(satisfied) / float64(len(route.Requirements))
	switch {
	case fraction >= 0.75:
		return FeasibilityHigh
	case fraction >= 0.4:
		return FeasibilityMedium
	default:
		return FeasibilityLow
	}
}

func requirementLooksSatisfied(plan PlanInput, requirement string) bool {
	req := strings.ToLower(requirement)

	switch {
	case strings.Contains(req, "£50,000") || strings.Contains(req, "investment funds"):
		return plan.FundingAmount >= 50000
	case strings.Contains(req, "innovative"):
		return len(strings.TrimSpace(plan.Uniqueness)) > 0 && len(strings.TrimSpace(plan.Technology)) > 0
	case strings.Contains(req, "traction"):
		return ClassifyTraction(plan) >= TractionMVP
	case strings.Contains(req, "salary") || strings.Contains(req, "sponsor") || strings.Contains(req, "job offer"):
		// Employment-route requirements can't be read off a founder plan.
		return false
	case strings.Contains(req, "endorsement") || strings.Contains(req, "endorsing"):
		// Every applicant can pursue endorsement; treat as satisfiable.
		return true
	default:
		// Fall back to keyword presence in the combined narrative.
		text := strings.ToLower(plan.Problem + " " + plan.Uniqueness + " " + plan.Experience + " " + plan.Vision)
		for _, word := range strings.Fields(req) {
			if len(word) >= 7 && strings.Contains(text, word) {
				return true
			}
		}
		return false
	}
}
