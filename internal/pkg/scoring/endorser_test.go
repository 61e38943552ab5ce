package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreForEndorserUnknownID(t *testing.T) {
	engine := NewDefaultEngine()

	_, err := engine.ScoreForEndorser(strongPlan(), "no-such-endorser")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEndorserNotFound)
}

func TestScoreForEndorserAllConfiguredIDs(t *testing.T) {
	engine := NewDefaultEngine()
	plan := strongPlan()

	for _, endorser := range engine.Config().Endorsers {
		result, err := engine.ScoreForEndorser(plan, endorser.ID)
		require.NoError(t, err, "endorser %s", endorser.ID)
		assert.Equal(t, endorser.ID, result.EndorserID)
		assert.NotEmpty(t, result.Feedback)
	}
}

func TestRecommendationBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Recommendation
	}{
		{score: 59, want: WeakFit},
		{score: 60, want: ModerateFit},
		{score: 74, want: ModerateFit},
		{score: 75, want: StrongFit},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, recommendationFor(tt.score), "score %d", tt.score)
	}
}

func TestSectorFitForTechNation(t *testing.T) {
	engine := NewDefaultEngine()

	plan := strongPlan()
	plan.Industry = "B2B SaaS for lenders"

	result, err := engine.ScoreForEndorser(plan, "tech-nation")
	require.NoError(t, err)
	assert.True(t, result.SectorFit, "industry containing SaaS should match tech-nation sectors")

	plan.Industry = "Artisan bakery chain"
	result, err = engine.ScoreForEndorser(plan, "tech-nation")
	require.NoError(t, err)
	assert.False(t, result.SectorFit)
}

func TestSectorSentinelAnyMatchesEverything(t *testing.T) {
	assert.True(t, sectorMatches("Artisan bakery chain", []string{"Any"}))
	assert.True(t, sectorMatches("", []string{"Any"}))
}

func TestBlankIndustryHasNoSectorFit(t *testing.T) {
	engine := NewDefaultEngine()

	plan := strongPlan()
	plan.Industry = ""

	result, err := engine.ScoreForEndorser(plan, "tech-nation")
	require.NoError(t, err)
	assert.False(t, result.SectorFit, "an absent industry must not match a sector list")

	assert.False(t, sectorMatches("", []string{"FinTech", "SaaS"}))
}

func TestRiskAccumulator(t *testing.T) {
	// Strong plan: revenue, customers, funded, evidence. No factors fire.
	assert.Equal(t, RiskLow, assessRisk(strongPlan()))

	// Everything missing: all four factors fire.
	assert.Equal(t, RiskHigh, assessRisk(PlanInput{}))

	// Funded with interview evidence but pre-revenue and no customers yet:
	// medium band.
	medium := PlanInput{
		FundingAmount:      60000,
		RevenueModel:       "Planned subscription pricing after launch",
		CustomerInterviews: "Ran 30 discovery interviews with lending operations managers; 8 said they would trial a paid version this year.",
	}
	assert.Equal(t, RiskMedium, assessRisk(medium))
}

func TestFeedbackOrderAndAffirmative(t *testing.T) {
	engine := NewDefaultEngine()

	// Weak plan against a low-tolerance endorser: sector feedback absent
	// (sentinel Any), sub-score feedback absent (all exactly baseline 50
	// is below 60, so three lines), then risk mismatch.
	result, err := engine.ScoreForEndorser(PlanInput{}, "uk-endorsing-services")
	require.NoError(t, err)
	require.Len(t, result.Feedback, 4)
	assert.Contains(t, result.Feedback[0], "Innovation")
	assert.Contains(t, result.Feedback[1], "Viability")
	assert.Contains(t, result.Feedback[2], "Scalability")
	assert.Contains(t, result.Feedback[3], "risk tolerance")

	// Strong plan in-sector: single affirmative message.
	strong, err := engine.ScoreForEndorser(strongPlan(), "tech-nation")
	require.NoError(t, err)
	require.Len(t, strong.Feedback, 1)
	assert.Contains(t, strong.Feedback[0], "aligns well")
}

func TestWeightedTotalUsesEndorserWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Endorsers = []EndorserProfile{{
		ID:                "innovation-only",
		Name:              "Innovation Only",
		RiskTolerance:     ToleranceHigh,
		Sectors:           []string{"Any"},
		InnovationWeight:  1.0,
		ViabilityWeight:   0,
		ScalabilityWeight: 0,
	}}
	engine := NewEngine(cfg)

	plan := strongPlan()
	result, err := engine.ScoreForEndorser(plan, "innovation-only")
	require.NoError(t, err)
	assert.Equal(t, engine.ScoreInnovation(plan), result.TotalScore)
}

func TestScoreAllEndorsersCoversTable(t *testing.T) {
	engine := NewDefaultEngine()
	results := engine.ScoreAllEndorsers(strongPlan())
	assert.Len(t, results, len(engine.Config().Endorsers))
}
