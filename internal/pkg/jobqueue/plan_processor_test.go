package jobqueue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/chat"
)

type stubGenerator struct {
	lastSystem string
	lastPrompt string
	reply      chat.Reply
}

func (s *stubGenerator) Generate(ctx context.Context, systemPrompt, prompt string) chat.Reply {
	s.lastSystem = systemPrompt
	s.lastPrompt = prompt
	return s.reply
}

func TestSetContentGenerator(t *testing.T) {
	stub := &stubGenerator{reply: chat.Reply{Text: "plan text", Provider: "stub"}}
	SetContentGenerator(stub)
	defer SetContentGenerator(nil)

	got := getContentGenerator().Generate(context.Background(), "sys", "answers")
	assert.Equal(t, "plan text", got.Text)
	assert.Equal(t, "sys", stub.lastSystem)
	assert.Equal(t, "answers", stub.lastPrompt)
}

func TestBuildPlanPrompt(t *testing.T) {
	plan := &models.BusinessPlan{
		BusinessName:  "AcmeAI",
		Industry:      "Machine Learning",
		Problem:       "SMEs cannot afford data teams.",
		RevenueModel:  "Monthly SaaS subscription",
		FundingAmount: 50000,
		JobCreation:   4,
	}

	prompt := BuildPlanPrompt(plan)

	assert.Contains(t, prompt, "Business name: AcmeAI")
	assert.Contains(t, prompt, "Industry: Machine Learning")
	assert.Contains(t, prompt, "Funding sought: GBP 50000")
	assert.Contains(t, prompt, "Planned UK jobs: 4")
	// Empty answers are omitted entirely
	assert.NotContains(t, prompt, "Technology:")
	assert.NotContains(t, prompt, "Long-term vision:")
}

func TestBuildPlanPromptSkipsZeroAmounts(t *testing.T) {
	plan := &models.BusinessPlan{BusinessName: "Bare"}

	prompt := BuildPlanPrompt(plan)

	assert.Equal(t, "Business name: Bare", prompt)
	assert.NotContains(t, prompt, "Funding sought")
	assert.NotContains(t, prompt, "Planned UK jobs")
}
