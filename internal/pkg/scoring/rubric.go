package scoring

import "strings"

// RubricScores holds the three 0-100 sub-scores for a plan.
type RubricScores struct {
	Innovation  int `json:"innovation"`
	Viability   int `json:"viability"`
	Scalability int `json:"scalability"`
}

// ScoreRubric computes all three sub-scores at once.
func (e *Engine) ScoreRubric(plan PlanInput) RubricScores {
	return RubricScores{
		Innovation:  e.ScoreInnovation(plan),
		Viability:   e.ScoreViability(plan),
		Scalability: e.ScoreScalability(plan),
	}
}

// ScoreInnovation scores how innovative the plan reads, in [0,100].
// Additive: start at the baseline, add a fixed delta per satisfied signal,
// clamp. Absent fields simply contribute no bonus.
func (e *Engine) ScoreInnovation(plan PlanInput) int {
	r := e.cfg.Rubric
	score := r.Baseline

	patent := strings.ToLower(plan.PatentStatus)
	if strings.Contains(patent, "filed") || strings.Contains(patent, "granted") {
		score += r.PatentBonus
	}

	tech := strings.ToLower(plan.Technology)
	if containsAny(tech, "proprietary", "machine learning", "ai ", "artificial intelligence", "algorithm", "patent", "novel") {
		score += r.DeepTechBonus
	}

	if len(strings.TrimSpace(plan.Uniqueness)) >= r.DifferentiationMin {
		score += r.Differentiation
	}
	if len(strings.TrimSpace(plan.Problem)) >= r.ProblemDepthMin {
		score += r.ProblemDepth
	}

	return clampScore(score)
}

// ScoreViability scores commercial viability, in [0,100].
func (e *Engine) ScoreViability(plan PlanInput) int {
	r := e.cfg.Rubric
	score := r.Baseline

	if plan.CustomerAcqCost > 0 && plan.LifetimeValue/plan.CustomerAcqCost >= r.UnitEconomicsRatio {
		score += r.UnitEconomics
	}

	revenue := strings.ToLower(plan.RevenueModel)
	if containsAny(revenue, "subscription", "recurring", "saas", "retainer") {
		score += r.RecurringRevenue
	}

	if plan.FundingAmount >= r.FundedBonusMin {
		score += r.FundedBonus
	}
	if plan.PaybackMonths > 0 && plan.PaybackMonths <= r.PaybackMonthsMax {
		score += r.PaybackBonus
	}
	if len(strings.TrimSpace(plan.CustomerInterviews)) >= r.EvidenceMin {
		score += r.EvidenceBonus
	}

	return clampScore(score)
}

// ScoreScalability scores growth potential, in [0,100].
func (e *Engine) ScoreScalability(plan PlanInput) int {
	r := e.cfg.Rubric
	score := r.Baseline

	if plan.JobCreation >= r.JobCreationMin {
		score += r.JobCreationBonus
	}

	expansion := strings.ToLower(plan.Expansion)
	if containsAny(expansion, "international", "global", "europe", "united states", "expansion") {
		score += r.ExpansionBonus
	}

	model := strings.ToLower(plan.RevenueModel)
	if containsAny(model, "subscription", "platform", "marketplace", "licence", "license", "api") {
		score += r.ScalableModelBonus
	}
	if len(strings.TrimSpace(plan.Vision)) >= r.VisionMin {
		score += r.VisionBonus
	}

	return clampScore(score)
}
