package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicableRulesByTag(t *testing.T) {
	engine := NewDefaultEngine()

	revenueProfile := BusinessProfile{Stage: "revenue", Industry: "FinTech", JobCreation: 6}
	ids := ruleIDs(engine.ApplicableRules(revenueProfile))
	assert.Contains(t, ids, "rule-job-creation")
	assert.Contains(t, ids, "rule-endorsement-checkpoints")
	assert.NotContains(t, ids, "rule-maintenance-funds")
	assert.NotContains(t, ids, "rule-data-protection")

	dataProfile := BusinessProfile{Stage: "pre-revenue", ZeroFunding: true, Industry: "Data analytics"}
	ids = ruleIDs(engine.ApplicableRules(dataProfile))
	assert.Contains(t, ids, "rule-data-protection")
	assert.Contains(t, ids, "rule-maintenance-funds")
	assert.Contains(t, ids, "rule-genuine-founder")
}

func TestAnalyzeJobCreationRule(t *testing.T) {
	engine := NewDefaultEngine()
	rule := mustRule(t, engine, "rule-job-creation")

	meets := engine.AnalyzeRuleImpact(BusinessProfile{JobCreation: 6}, rule)
	require.NotEmpty(t, meets.Impact)
	assert.Contains(t, meets.Impact[0], "meets")

	short := engine.AnalyzeRuleImpact(BusinessProfile{JobCreation: 2}, rule)
	require.NotEmpty(t, short.Impact)
	assert.Contains(t, short.Impact[0], "falls short")
	assert.NotEmpty(t, short.ActionItems)
}

func TestAnalyzeUnknownCategoryFallsBack(t *testing.T) {
	engine := NewDefaultEngine()
	rule := HomeOfficeRule{ID: "rule-x", Category: "mystery", Title: "Mystery rule"}

	impact := engine.AnalyzeRuleImpact(BusinessProfile{}, rule)
	require.NotEmpty(t, impact.Impact)
	assert.Contains(t, impact.Impact[0], "Mystery rule")
	assert.NotEmpty(t, impact.ActionItems)
}

func TestRuleEngineStatusCounts(t *testing.T) {
	engine := NewDefaultEngine()

	profile := BusinessProfile{Stage: "pre-revenue", ZeroFunding: true, Industry: "Data platform"}
	status := engine.Status(profile)

	assert.Equal(t, len(engine.Config().Rules), status.TotalRules)
	assert.Equal(t, len(engine.ApplicableRules(profile)), status.ApplicableRules)
	assert.GreaterOrEqual(t, status.ApplicableRules, status.HighImpact)
	assert.GreaterOrEqual(t, status.HighImpact, 2) // maintenance funds + data protection
}

func TestRuleDiffIsStub(t *testing.T) {
	engine := NewDefaultEngine()
	assert.Equal(t, "Rule change detection is not available yet.", engine.RuleDiff("a", "b"))
}

func TestProfileFromPlan(t *testing.T) {
	profile := ProfileFromPlan(strongPlan())
	assert.Equal(t, "revenue", profile.Stage)
	assert.False(t, profile.ZeroFunding)
	assert.Equal(t, 6, profile.JobCreation)

	empty := ProfileFromPlan(PlanInput{})
	assert.Equal(t, "pre-revenue", empty.Stage)
	assert.True(t, empty.ZeroFunding)
}

func ruleIDs(rules []HomeOfficeRule) []string {
	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.ID)
	}
	return ids
}

func mustRule(t *testing.T, engine *Engine, id string) HomeOfficeRule {
	t.Helper()
	for _, rule := range engine.Config().Rules {
		if rule.ID == id {
			return rule
		}
	}
	t.Fatalf("rule %s not in default table", id)
	return HomeOfficeRule{}
}
