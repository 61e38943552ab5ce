package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessSkillsConsultantMissingTechnical(t *testing.T) {
	engine := NewDefaultEngine()

	plan := PlanInput{
		Industry:   "AI/ML platform",
		Experience: "Former McKinsey consultant, no coding background",
	}

	assessment := engine.AssessSkills(plan)

	assert.Contains(t, assessment.FounderSkills, "Strategy & Leadership")
	assert.Contains(t, assessment.Gaps, "Technical")
	assert.Contains(t, assessment.HiringSuggestions, "Hire CTO or Senior Engineer")
}

func TestAssessSkillsTechnicalFounder(t *testing.T) {
	engine := NewDefaultEngine()

	plan := PlanInput{
		Industry:   "SaaS",
		Experience: "Software engineer for 10 years, former CTO of a logistics startup handling operations and supply chain",
	}

	assessment := engine.AssessSkills(plan)

	assert.Contains(t, assessment.FounderSkills, "Technical")
	assert.Contains(t, assessment.FounderSkills, "Operations")
	assert.NotContains(t, assessment.Gaps, "Technical")
	assert.Contains(t, assessment.Gaps, "Finance")
}

func TestRequiredSkillsIndustryConditionals(t *testing.T) {
	engine := NewDefaultEngine()

	tech := engine.requiredSkills("AI/ML platform")
	assert.Contains(t, tech, "Technical")
	assert.Contains(t, tech, "Sales & Growth")

	b2b := engine.requiredSkills("b2b logistics brokerage")
	assert.NotContains(t, b2b, "Sales & Growth")

	bakery := engine.requiredSkills("Artisan bakery")
	assert.NotContains(t, bakery, "Technical")
	assert.Contains(t, bakery, "Sales & Growth")
}

func TestGapsAndSuggestionsAlign(t *testing.T) {
	engine := NewDefaultEngine()

	assessment := engine.AssessSkills(PlanInput{Industry: "SaaS", Experience: ""})
	require.Equal(t, len(assessment.Gaps), len(assessment.HiringSuggestions))
	// Empty bio: every required skill is a gap.
	assert.Equal(t, assessment.RequiredSkills, assessment.Gaps)
}

func TestUnknownGapGetsTemplatedSuggestion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Skills.BaselineRequired = []string{"Regulatory Affairs"}
	engine := NewEngine(cfg)

	assessment := engine.AssessSkills(PlanInput{Industry: "b2b", Experience: ""})
	require.Len(t, assessment.HiringSuggestions, 1)
	assert.Equal(t, "Hire a specialist in Regulatory Affairs", assessment.HiringSuggestions[0])
}
