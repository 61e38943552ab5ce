package scoring

import (
	"fmt"
	"strings"
)

// SkillAssessment is the team gap assessor's output.
type SkillAssessment struct {
	FounderSkills     []string `json:"founder_skills"`
	RequiredSkills    []string `json:"required_skills"`
	Strengths         []string `json:"strengths"`
	Gaps              []string `json:"gaps"`
	HiringSuggestions []string `json:"hiring_suggestions"`
}

// AssessSkills diffs the founder's apparent skills against what the
// industry requires and proposes hires for the gaps.
//
// Skill extraction is a fixed keyword heuristic over the free-text work
// history, not NLP: a bio that avoids the expected vocabulary will be
// misclassified. That precision limit is accepted.
func (e *Engine) AssessSkills(plan PlanInput) SkillAssessment {
	founderPresent := make(map[string]bool)
	var founderSkills []string
	for _, matcher := range e.cfg.Skills.Matchers {
		if matcher.Pattern.MatchString(plan.Experience) {
			founderPresent[matcher.Tag] = true
			founderSkills = append(founderSkills, matcher.Tag)
		}
	}

	required := e.requiredSkills(plan.Industry)

	var strengths, gaps, suggestions []string
	for _, skill := range required {
		if founderPresent[skill] {
			strengths = append(strengths, skill)
			continue
		}
		gaps = append(gaps, skill)
		suggestions = append(suggestions, e.hiringSuggestion(skill))
	}

	return SkillAssessment{
		FounderSkills:     founderSkills,
		RequiredSkills:    required,
		Strengths:         strengths,
		Gaps:              gaps,
		HiringSuggestions: suggestions,
	}
}

// requiredSkills is the baseline set plus industry conditionals: technical
// industries add Technical; everything except explicit B2B adds Sales &
// Growth.
func (e *Engine) requiredSkills(industry string) []string {
	required := append([]string{}, e.cfg.Skills.BaselineRequired...)

	lower := strings.ToLower(industry)
	if containsAny(lower, "tech", "software", "ai", "ml", "platform", "saas", "digital", "data") {
		required = append(required, "Technical")
	}
	if !strings.Contains(lower, "b2b") {
		required = append(required, "Sales & Growth")
	}
	return required
}

func (e *Engine) hiringSuggestion(gap string) string {
	for tag, suggestion := range e.cfg.Skills.HiringSuggestions {
		if containsFold(gap, tag) {
			return suggestion
		}
	}
	return fmt.Sprintf("Hire a specialist in %s", gap)
}
