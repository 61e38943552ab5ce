package controllers

import (
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/entitlements"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/statistics"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/utils"
)

// HandleHome renders the landing page with the live usage numbers.
func HandleHome(c *fiber.Ctx) error {
	stats := statistics.GetStatisticsData()

	return render(c, "index", fiber.Map{
		"Title":      "Prepare your UK Innovator Founder visa",
		"TotalUsers": stats.TotalUsers,
		"TotalPlans": stats.TotalPlans,
		"TodayPlans": stats.TodayPlans,
	})
}

// HandlePricing renders the plan comparison page from the entitlement table.
func HandlePricing(c *fiber.Ctx) error {
	return render(c, "pricing", fiber.Map{
		"Title":   "Pricing",
		"Free":    entitlements.LimitsFor(entitlements.PlanFree),
		"Pro":     entitlements.LimitsFor(entitlements.PlanPro),
		"Founder": entitlements.LimitsFor(entitlements.PlanFounder),
	})
}

// HandlePage renders a DB-backed content page (about, contact, terms, ...).
func HandlePage(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var page models.Page
	result := database.GetDB().Where("slug = ? AND is_active = ?", slug, true).First(&page)
	if result.Error != nil {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
			"Title": "Page not found",
		})
	}

	return render(c, "page", fiber.Map{
		"Title":           page.Title,
		"MetaDescription": page.MetaDescription,
		"Content":         template.HTML(utils.ProcessHTMLContent(page.Content)),
	})
}
