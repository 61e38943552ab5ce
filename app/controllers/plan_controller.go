package controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/app/repository"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/constants"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/entitlements"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/jobqueue"
	metrics "github.com/VisaPilotUK/VisaPilot/internal/pkg/metrics/counter"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/scoring"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/statistics"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/usercontext"
)

// questionnaireSteps drives the multi-step form navigation.
var questionnaireSteps = []string{"business", "innovation", "viability", "scalability", "review"}

// HandleQuestionnaire renders one step of the business plan questionnaire.
func HandleQuestionnaire(c *fiber.Ctx) error {
	step := c.Params("step", questionnaireSteps[0])
	stepIndex := -1
	for i, s := range questionnaireSteps {
		if s == step {
			stepIndex = i
			break
		}
	}
	if stepIndex < 0 {
		return c.Redirect("/questionnaire/" + questionnaireSteps[0])
	}

	next := ""
	if stepIndex+1 < len(questionnaireSteps) {
		next = questionnaireSteps[stepIndex+1]
	}
	prev := ""
	if stepIndex > 0 {
		prev = questionnaireSteps[stepIndex-1]
	}

	return render(c, "plan/questionnaire", fiber.Map{
		"Title":     "Business plan questionnaire",
		"Step":      step,
		"StepIndex": stepIndex + 1,
		"StepCount": len(questionnaireSteps),
		"NextStep":  next,
		"PrevStep":  prev,
	})
}

// HandleQuestionnaireSubmit creates the plan row and queues generation.
// The submitted record is immutable afterwards; only the pipeline mutates it.
func HandleQuestionnaireSubmit(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	db := database.GetDB()

	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Could not load your account settings",
		}).Redirect("/questionnaire/review")
	}
	if settings.ResetUsageIfStale(time.Now()) {
		db.Save(settings)
	}
	if !entitlements.CanGeneratePlan(settings) {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "You have used all plan generations included in your plan. Upgrade to generate more.",
		}).Redirect("/pricing")
	}

	plan := models.BusinessPlan{
		UserID:             userCtx.UserID,
		BusinessName:       c.FormValue("business_name"),
		Industry:           c.FormValue("industry"),
		Problem:            c.FormValue("problem"),
		Uniqueness:         c.FormValue("uniqueness"),
		Technology:         c.FormValue("technology"),
		Experience:         c.FormValue("experience"),
		RevenueModel:       c.FormValue("revenue_model"),
		Expansion:          c.FormValue("expansion"),
		Vision:             c.FormValue("vision"),
		CustomerInterviews: c.FormValue("customer_interviews"),
		ProductStatus:      c.FormValue("product_status"),
		PatentStatus:       c.FormValue("patent_status"),
		MonthlyProjections: c.FormValue("monthly_projections"),
		FundingAmount:      atoiOrZero(c.FormValue("funding_amount")),
		JobCreation:        atoiOrZero(c.FormValue("job_creation")),
		CustomerAcqCost:    atofOrZero(c.FormValue("customer_acq_cost")),
		LifetimeValue:      atofOrZero(c.FormValue("lifetime_value")),
		PaybackMonths:      atoiOrZero(c.FormValue("payback_months")),
		Status:             models.PlanStatusQueued,
	}

	if err := plan.Validate(); err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("Please check your answers: %s", err),
		}).Redirect("/questionnaire/review")
	}

	planRepo := repository.GetGlobalFactory().GetPlanRepository()
	if err := planRepo.Create(&plan); err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Could not save your submission. Please try again.",
		}).Redirect("/questionnaire/review")
	}

	settings.PlansGenerated++
	db.Save(settings)

	payload := jobqueue.PlanGenerationJobPayload{
		PlanID:   plan.ID,
		PlanUUID: plan.UUID,
		UserID:   plan.UserID,
	}
	if _, err := jobqueue.GetManager().GetQueue().EnqueueJob(jobqueue.JobTypePlanGeneration, payload.ToMap()); err != nil {
		log.Errorf("failed to enqueue generation for plan %s: %v", plan.UUID, err)
		_ = planRepo.UpdateStatus(plan.ID, models.PlanStatusFailed)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Your plan was saved but generation could not be started. Try again from the dashboard.",
		}).Redirect("/user/plans")
	}

	go statistics.UpdateStatisticsCache()

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "Your business plan is being generated. This usually takes a minute.",
	}).Redirect("/user/plans/" + plan.UUID)
}

// HandleUserPlans lists the user's submissions.
func HandleUserPlans(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	plans, err := repository.GetGlobalFactory().GetPlanRepository().GetByUserID(userCtx.UserID, 0, 50)
	if err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Could not load your plans",
		}).Redirect("/user/dashboard")
	}

	return render(c, "plan/list", fiber.Map{
		"Title": "My business plans",
		"Plans": plans,
	})
}

// HandlePlanView shows one submission with its visa-fit assessment.
func HandlePlanView(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	plan, err := repository.GetGlobalFactory().GetPlanRepository().GetByUUID(c.Params("uuid"))
	if err != nil || plan.UserID != userCtx.UserID {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Plan not found",
		}).Redirect("/user/plans")
	}

	engine := scoring.NewDefaultEngine()
	input := plan.ScoringInput()

	return render(c, "plan/show", fiber.Map{
		"Title":        plan.BusinessName,
		"Plan":         plan,
		"Innovation":   engine.ScoreInnovation(input),
		"Viability":    engine.ScoreViability(input),
		"Scalability":  engine.ScoreScalability(input),
		"RouteSummary": engine.CompareRoutes(input),
	})
}

// HandlePlanStatus is the JSON polling endpoint the plan page uses while
// generation runs.
func HandlePlanStatus(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	plan, err := repository.GetGlobalFactory().GetPlanRepository().GetByUUID(c.Params("uuid"))
	if err != nil || plan.UserID != userCtx.UserID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	return c.JSON(fiber.Map{
		"uuid":      plan.UUID,
		"status":    plan.Status,
		"generated": plan.IsGenerated(),
		"pdf_url":   plan.PDFURL,
	})
}

// HandlePlanShare is the public read-only share page.
func HandlePlanShare(c *fiber.Ctx) error {
	plan, err := repository.GetGlobalFactory().GetPlanRepository().GetByShareLink(c.Params("sharelink"))
	if err != nil || !plan.IsGenerated() {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
			"Title": "Plan not found",
		})
	}

	if err := metrics.AddPlanView(plan.ID); err != nil {
		log.Warnf("failed to count view for plan %d: %v", plan.ID, err)
	}

	return render(c, "plan/share", fiber.Map{
		"Title":   plan.BusinessName,
		"Plan":    plan,
		"Content": plan.GeneratedContent,
	})
}

// HandlePlanDownload serves the rendered PDF.
func HandlePlanDownload(c *fiber.Ctx) error {
	plan, err := repository.GetGlobalFactory().GetPlanRepository().GetByShareLink(c.Params("sharelink"))
	if err != nil || plan.PDFURL == "" {
		return c.Status(fiber.StatusNotFound).SendString("PDF not available")
	}

	if err := metrics.AddPlanDownload(plan.ID); err != nil {
		log.Warnf("failed to count download for plan %d: %v", plan.ID, err)
	}

	filePath := filepath.Join(constants.UploadsPath, "plans", plan.UUID+".pdf")
	if _, err := os.Stat(filePath); err != nil {
		return c.Status(fiber.StatusNotFound).SendString("PDF not available")
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, plan.BusinessName))
	return c.SendFile(filePath)
}

// HandlePlanDelete removes a submission and its documents.
func HandlePlanDelete(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	planRepo := repository.GetGlobalFactory().GetPlanRepository()
	plan, err := planRepo.GetByUUID(c.Params("uuid"))
	if err != nil || plan.UserID != userCtx.UserID {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Plan not found",
		}).Redirect("/user/plans")
	}

	if err := planRepo.Delete(plan.ID); err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Could not delete the plan",
		}).Redirect("/user/plans")
	}

	go statistics.UpdateStatisticsCache()

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "Plan deleted",
	}).Redirect("/user/plans")
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func atofOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
