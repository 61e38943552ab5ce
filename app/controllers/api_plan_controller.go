package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/app/repository"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/usercontext"
)

// HandleListPlansAPI returns the authenticated user's business plans.
// Security: API key required via router middleware
func HandleListPlansAPI(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)
	if !user.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := c.QueryInt("per_page", 20)
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	planRepo := repository.GetGlobalFactory().GetPlanRepository()
	plans, err := planRepo.GetByUserID(user.UserID, (page-1)*perPage, perPage)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load plans"})
	}
	total, err := planRepo.CountByUserID(user.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to count plans"})
	}

	items := make([]fiber.Map, 0, len(plans))
	for i := range plans {
		items = append(items, buildPlanSummary(&plans[i]))
	}

	return c.JSON(fiber.Map{
		"plans": items,
		"pagination": fiber.Map{
			"page":     page,
			"per_page": perPage,
			"total":    total,
		},
	})
}

// HandleGetPlanResourceAPI returns the canonical plan resource including the
// questionnaire answers and generation output.
// Security: API key required via router middleware
func HandleGetPlanResourceAPI(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)
	if !user.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	planUUID := c.Params("uuid")
	if planUUID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "uuid missing"})
	}

	plan, err := repository.GetGlobalFactory().GetPlanRepository().GetByUUID(planUUID)
	if err != nil || plan == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "plan not found"})
	}
	// Do not leak existence of other users' plans
	if plan.UserID != user.UserID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "plan not found"})
	}

	payload := buildPlanSummary(plan)
	payload["questionnaire"] = fiber.Map{
		"problem":             plan.Problem,
		"uniqueness":          plan.Uniqueness,
		"technology":          plan.Technology,
		"experience":          plan.Experience,
		"revenue_model":       plan.RevenueModel,
		"expansion":           plan.Expansion,
		"vision":              plan.Vision,
		"customer_interviews": plan.CustomerInterviews,
		"product_status":      plan.ProductStatus,
		"funding_amount":      plan.FundingAmount,
		"job_creation":        plan.JobCreation,
	}
	if plan.IsGenerated() {
		payload["generated_content"] = plan.GeneratedContent
	}

	return c.JSON(payload)
}

func buildPlanSummary(plan *models.BusinessPlan) fiber.Map {
	return fiber.Map{
		"uuid":           plan.UUID,
		"business_name":  plan.BusinessName,
		"industry":       plan.Industry,
		"status":         plan.Status,
		"share_link":     plan.ShareLink,
		"pdf_url":        plan.PDFURL,
		"view_count":     plan.ViewCount,
		"download_count": plan.DownloadCount,
		"created_at":     plan.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":     plan.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
