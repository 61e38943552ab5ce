package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/VisaPilotUK/VisaPilot/app/repository"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/scoring"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/usercontext"
)

// Assessment endpoints expose the scoring engine as JSON for the plan detail
// page and the calculator tools. All of them operate on a plan the caller
// owns; the engine itself is pure.

func loadOwnPlanInput(c *fiber.Ctx) (scoring.PlanInput, error) {
	userCtx := usercontext.GetUserContext(c)

	plan, err := repository.GetGlobalFactory().GetPlanRepository().GetByUUID(c.Params("uuid"))
	if err != nil || plan.UserID != userCtx.UserID {
		return scoring.PlanInput{}, errors.New("plan not found")
	}
	return plan.ScoringInput(), nil
}

// HandleAssessmentRubric returns the three rubric sub-scores.
func HandleAssessmentRubric(c *fiber.Ctx) error {
	input, err := loadOwnPlanInput(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	engine := scoring.NewDefaultEngine()
	return c.JSON(engine.ScoreRubric(input))
}

// HandleAssessmentEndorsers scores the plan against every endorsing body.
func HandleAssessmentEndorsers(c *fiber.Ctx) error {
	input, err := loadOwnPlanInput(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	engine := scoring.NewDefaultEngine()
	return c.JSON(fiber.Map{"results": engine.ScoreAllEndorsers(input)})
}

// HandleAssessmentEndorser scores the plan against one endorsing body.
func HandleAssessmentEndorser(c *fiber.Ctx) error {
	input, err := loadOwnPlanInput(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	engine := scoring.NewDefaultEngine()
	result, err := engine.ScoreForEndorser(input, c.Params("endorser"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown_endorser"})
	}
	return c.JSON(result)
}

// HandleAssessmentRoutes compares visa routes for the plan.
func HandleAssessmentRoutes(c *fiber.Ctx) error {
	input, err := loadOwnPlanInput(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	engine := scoring.NewDefaultEngine()
	return c.JSON(engine.CompareRoutes(input))
}

// HandleAssessmentTeam runs the team gap analysis.
func HandleAssessmentTeam(c *fiber.Ctx) error {
	input, err := loadOwnPlanInput(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	engine := scoring.NewDefaultEngine()
	return c.JSON(engine.AssessSkills(input))
}

// HandleAssessmentTraction benchmarks the revenue projections.
func HandleAssessmentTraction(c *fiber.Ctx) error {
	input, err := loadOwnPlanInput(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	engine := scoring.NewDefaultEngine()
	return c.JSON(engine.ForecastTraction(input))
}

// HandleAssessmentRules lists the applicable Home Office rules with their
// impact analysis.
func HandleAssessmentRules(c *fiber.Ctx) error {
	input, err := loadOwnPlanInput(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	engine := scoring.NewDefaultEngine()
	profile := scoring.ProfileFromPlan(input)

	rules := engine.ApplicableRules(profile)
	impacts := make([]scoring.RuleImpact, 0, len(rules))
	for _, rule := range rules {
		impacts = append(impacts, engine.AnalyzeRuleImpact(profile, rule))
	}

	return c.JSON(fiber.Map{
		"status":  engine.Status(profile),
		"impacts": impacts,
	})
}
