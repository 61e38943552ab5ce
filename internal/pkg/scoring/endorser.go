package scoring

import (
	"fmt"
	"math"
	"strings"
)

// RiskLevel grades the venture risk seen by an endorsing body.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Recommendation buckets a weighted total score.
type Recommendation string

const (
	StrongFit   Recommendation = "Strong fit"
	ModerateFit Recommendation = "Moderate fit"
	WeakFit     Recommendation = "Weak fit"
)

// Score thresholds for the recommendation buckets.
const (
	strongFitMin   = 75
	moderateFitMin = 60
)

// Risk-factor weights. Four checks feed the accumulator; the funding and
// revenue checks weigh double because endorsing bodies reject on them most.
const (
	riskNoRevenue      = 2
	riskNoCustomers    = 1
	riskUnderfunded    = 2
	riskThinEvidence   = 1
	riskLowMax         = 2
	riskMediumMax      = 4
	minFundingGBP      = 10000
	minEvidenceLength  = 80
)

// MatchResult is the outcome of scoring a plan for one endorser.
type MatchResult struct {
	EndorserID     string         `json:"endorser_id"`
	EndorserName   string         `json:"endorser_name"`
	TotalScore     int            `json:"total_score"`
	Breakdown      RubricScores   `json:"breakdown"`
	SectorFit      bool           `json:"sector_fit"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	Recommendation Recommendation `json:"recommendation"`
	Feedback       []string       `json:"feedback"`
}

// ScoreForEndorser scores a plan against one endorser's weighting. Returns
// ErrEndorserNotFound when the id is not in the configured table.
func (e *Engine) ScoreForEndorser(plan PlanInput, endorserID string) (MatchResult, error) {
	endorser, ok := e.findEndorser(endorserID)
	if !ok {
		return MatchResult{}, fmt.Errorf("endorser %q: %w", endorserID, ErrEndorserNotFound)
	}

	breakdown := e.ScoreRubric(plan)
	total := int(math.Round(
		float64(breakdown.Innovation)*endorser.InnovationWeight +
			float64(breakdown.Viability)*endorser.ViabilityWeight +
			float64(breakdown.Scalability)*endorser.ScalabilityWeight,
	))

	sectorFit := sectorMatches(plan.Industry, endorser.Sectors)
	risk := assessRisk(plan)

	result := MatchResult{
		EndorserID:     endorser.ID,
		EndorserName:   endorser.Name,
		TotalScore:     total,
		Breakdown:      breakdown,
		SectorFit:      sectorFit,
		RiskLevel:      risk,
		Recommendation: recommendationFor(total),
	}
	result.Feedback = buildFeedback(endorser, result)

	return result, nil
}

// ScoreAllEndorsers scores the plan for every configured endorser.
func (e *Engine) ScoreAllEndorsers(plan PlanInput) []MatchResult {
	results := make([]MatchResult, 0, len(e.cfg.Endorsers))
	for _, endorser := range e.cfg.Endorsers {
		r, err := e.ScoreForEndorser(plan, endorser.ID)
		if err != nil {
			continue
		}
		results = append(results, r)
	}
	return results
}

func (e *Engine) findEndorser(id string) (EndorserProfile, bool) {
	for _, endorser := range e.cfg.Endorsers {
		if endorser.ID == id {
			return endorser, true
		}
	}
	return EndorserProfile{}, false
}

// sectorMatches reports whether the industry text matches any preferred
// sector, case-insensitively, in either direction. The sentinel "Any"
// matches everything. A blank industry matches nothing except "Any":
// absent fields contribute no fit.
func sectorMatches(industry string, sectors []string) bool {
	for _, sector := range sectors {
		if strings.EqualFold(sector, "Any") {
			return true
		}
		if containsFold(industry, sector) {
			return true
		}
		if industry != "" && containsFold(sector, industry) {
			return true
		}
	}
	return false
}

// assessRisk accumulates weighted risk factors from four checks.
func assessRisk(plan PlanInput) RiskLevel {
	factors := 0
	if ClassifyTraction(plan) != TractionRevenue {
		factors += riskNoRevenue
	}
	if !hasCustomers(plan) {
		factors += riskNoCustomers
	}
	if plan.FundingAmount < minFundingGBP {
		factors += riskUnderfunded
	}
	if len(strings.TrimSpace(plan.CustomerInterviews)) < minEvidenceLength {
		factors += riskThinEvidence
	}

	switch {
	case factors <= riskLowMax:
		return RiskLow
	case factors <= riskMediumMax:
		return RiskMedium
	default:
		return RiskHigh
	}
}

func hasCustomers(plan PlanInput) bool {
	text := strings.ToLower(plan.RevenueModel + " " + plan.ProductStatus + " " + plan.CustomerInterviews)
	return containsAny(text, "paying customer", "customers", "clients", "pilot", "active user")
}

func recommendationFor(total int) Recommendation {
	switch {
	case total >= strongFitMin:
		return StrongFit
	case total >= moderateFitMin:
		return ModerateFit
	default:
		return WeakFit
	}
}

// buildFeedback assembles the feedback list in a fixed order: sector
// mismatch, each sub-score under 60, then risk/tolerance mismatch. When
// nothing triggers, one affirmative message is emitted.
func buildFeedback(endorser EndorserProfile, r MatchResult) []string {
	var feedback []string

	if !r.SectorFit {
		feedback = append(feedback, fmt.Sprintf("%s focuses on %s; your industry sits outside their preferred sectors.",
			endorser.Name, strings.Join(endorser.Sectors, ", ")))
	}
	if r.Breakdown.Innovation < moderateFitMin {
		feedback = append(feedback, "Innovation score is below 60: strengthen the technology and differentiation narrative.")
	}
	if r.Breakdown.Viability < moderateFitMin {
		feedback = append(feedback, "Viability score is below 60: add unit economics and customer validation evidence.")
	}
	if r.Breakdown.Scalability < moderateFitMin {
		feedback = append(feedback, "Scalability score is below 60: set out job creation and expansion plans.")
	}
	if riskRank(r.RiskLevel) > toleranceRank(endorser.RiskTolerance) {
		feedback = append(feedback, fmt.Sprintf("Venture risk reads %s but %s has a %s risk tolerance.",
			r.RiskLevel, endorser.Name, endorser.RiskTolerance))
	}

	if len(feedback) == 0 {
		feedback = append(feedback, fmt.Sprintf("Your plan aligns well with %s's assessment criteria.", endorser.Name))
	}
	return feedback
}

func riskRank(level RiskLevel) int {
	switch level {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

func toleranceRank(t RiskTolerance) int {
	switch t {
	case ToleranceHigh:
		return 2
	case ToleranceMedium:
		return 1
	default:
		return 0
	}
}
