package jobqueue

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/chat"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
)

// planSystemPrompt instructs the model to write the plan document itself,
// as opposed to the conversational prompt the chat assistant uses.
const planSystemPrompt = `You are a professional business plan writer specialising in UK Innovator Founder visa applications. Write a complete, well-structured business plan based on the founder's questionnaire answers. Cover: executive summary, the problem and solution, innovation, viability (market, revenue model, unit economics), scalability (growth and job creation), team and experience, and financial projections. Write in clear British English. Do not use placeholder text.`

// ContentGenerator produces a plan document from a prompt. *chat.Service
// satisfies it; tests substitute a stub.
type ContentGenerator interface {
	Generate(ctx context.Context, systemPrompt, prompt string) chat.Reply
}

var (
	generatorMu sync.RWMutex
	generator   ContentGenerator
)

// SetContentGenerator overrides the generator used by plan generation jobs.
func SetContentGenerator(g ContentGenerator) {
	generatorMu.Lock()
	defer generatorMu.Unlock()
	generator = g
}

func getContentGenerator() ContentGenerator {
	generatorMu.Lock()
	defer generatorMu.Unlock()
	if generator == nil {
		generator = chat.NewDefaultService()
	}
	return generator
}

// processPlanGenerationJob generates the plan document for a submitted
// questionnaire and hands off to the PDF render job.
func (q *Queue) processPlanGenerationJob(ctx context.Context, job *Job) error {
	payload, err := PlanGenerationJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("failed to parse plan generation payload: %w", err)
	}

	log.Infof("[PlanGen] Generating plan %s (ID: %d)", payload.PlanUUID, payload.PlanID)

	db := database.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var plan models.BusinessPlan
	if err := db.Where("uuid = ?", payload.PlanUUID).First(&plan).Error; err != nil {
		return fmt.Errorf("failed to find plan %s: %w", payload.PlanUUID, err)
	}

	if plan.IsGenerated() {
		log.Infof("[PlanGen] Plan %s already generated, skipping", plan.UUID)
		return nil
	}

	if err := db.Model(&plan).Update("status", models.PlanStatusGenerating).Error; err != nil {
		return fmt.Errorf("failed to mark plan as generating: %w", err)
	}

	reply := getContentGenerator().Generate(ctx, planSystemPrompt, BuildPlanPrompt(&plan))
	if reply.Fallback || strings.TrimSpace(reply.Text) == "" {
		if markErr := db.Model(&plan).Update("status", models.PlanStatusFailed).Error; markErr != nil {
			log.Errorf("[PlanGen] Failed to mark plan %s as failed: %v", plan.UUID, markErr)
		}
		return fmt.Errorf("all generation providers failed for plan %s", plan.UUID)
	}

	updates := map[string]interface{}{
		"generated_content": reply.Text,
		"status":            models.PlanStatusComplete,
	}
	if err := db.Model(&plan).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to store generated content: %w", err)
	}

	log.Infof("[PlanGen] Plan %s generated via %s (%d chars)", plan.UUID, reply.Provider, len(reply.Text))

	// Hand off to PDF rendering
	renderPayload := PDFRenderJobPayload{
		PlanID:   plan.ID,
		PlanUUID: plan.UUID,
		UserID:   plan.UserID,
	}
	if _, err := q.EnqueueJob(JobTypePDFRender, renderPayload.ToMap()); err != nil {
		log.Errorf("[PlanGen] Failed to enqueue PDF render for plan %s: %v", plan.UUID, err)
	}

	return nil
}

// BuildPlanPrompt flattens the questionnaire answers into the prompt sent to
// the generation provider. Empty answers are omitted.
func BuildPlanPrompt(plan *models.BusinessPlan) string {
	var sb strings.Builder

	section := func(label, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		sb.WriteString(label)
		sb.WriteString(": ")
		sb.WriteString(value)
		sb.WriteString("\n\n")
	}

	section("Business name", plan.BusinessName)
	section("Industry", plan.Industry)
	section("Problem being solved", plan.Problem)
	section("What makes it unique", plan.Uniqueness)
	section("Technology", plan.Technology)
	section("Founder experience", plan.Experience)
	section("Revenue model", plan.RevenueModel)
	section("Expansion plans", plan.Expansion)
	section("Long-term vision", plan.Vision)
	section("Customer validation", plan.CustomerInterviews)
	section("Product status", plan.ProductStatus)
	if plan.FundingAmount > 0 {
		section("Funding sought", fmt.Sprintf("GBP %d", plan.FundingAmount))
	}
	if plan.JobCreation > 0 {
		section("Planned UK jobs", fmt.Sprintf("%d", plan.JobCreation))
	}
	section("Monthly projections", plan.MonthlyProjections)

	return strings.TrimRight(sb.String(), "\n")
}
