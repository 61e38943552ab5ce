package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/entitlements"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/tools"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/usercontext"

	"github.com/VisaPilotUK/VisaPilot/app/models"
)

// HandleToolsIndex shows the full tool catalogue, optionally filtered by a
// search query.
func HandleToolsIndex(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))

	list := tools.All()
	if query != "" {
		list = tools.Search(query)
	}

	return render(c, "tools/index", fiber.Map{
		"Page":       "tools",
		"Categories": tools.Categories(),
		"Tools":      list,
		"Query":      query,
	})
}

// HandleToolsCategory lists the tools of one category.
func HandleToolsCategory(c *fiber.Ctx) error {
	slug := c.Params("category")

	var category tools.Category
	found := false
	for _, cat := range tools.Categories() {
		if cat.Slug == slug {
			category = cat
			found = true
			break
		}
	}
	if !found {
		c.Status(fiber.StatusNotFound)
		return render(c, "errors/404", fiber.Map{"Page": "404"})
	}

	return render(c, "tools/category", fiber.Map{
		"Page":     "tools",
		"Category": category,
		"Tools":    tools.ByCategory(slug),
	})
}

// HandleToolShow renders a single tool page. Premium tools require a paid
// plan.
func HandleToolShow(c *fiber.Ctx) error {
	tool, ok := tools.Get(c.Params("slug"))
	if !ok {
		c.Status(fiber.StatusNotFound)
		return render(c, "errors/404", fiber.Map{"Page": "404"})
	}

	if tool.Premium && !userHasPaidPlan(c) {
		fm := fiber.Map{
			"type":    "info",
			"message": "This tool is part of the Pro plan. Upgrade to unlock it.",
		}
		return flash.WithInfo(c, fm).Redirect("/pricing")
	}

	return render(c, "tools/show", fiber.Map{
		"Page": "tools",
		"Tool": tool,
	})
}

func userHasPaidPlan(c *fiber.Ctx) bool {
	userCtx := usercontext.GetUserContext(c)
	if userCtx.UserID == 0 {
		return false
	}
	settings, err := models.GetOrCreateUserSettings(database.GetDB(), userCtx.UserID)
	if err != nil {
		return false
	}
	return entitlements.ParsePlan(settings.Plan) != entitlements.PlanFree
}

// Calculator endpoints. All of them take query parameters and return JSON so
// the tool pages can call them without a reload.

func queryFloat(c *fiber.Ctx, key string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(c.Query(key)), 64)
	return v
}

func queryInt(c *fiber.Ctx, key string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	return v
}

// HandleCalcLTVCAC computes the LTV:CAC ratio.
func HandleCalcLTVCAC(c *fiber.Ctx) error {
	return c.JSON(tools.LTVCAC(queryFloat(c, "ltv"), queryFloat(c, "cac")))
}

// HandleCalcRunway computes the cash runway in months.
func HandleCalcRunway(c *fiber.Ctx) error {
	months := tools.Runway(queryFloat(c, "cash"), queryFloat(c, "burn"))
	return c.JSON(fiber.Map{"months": months})
}

// HandleCalcBreakEven computes the break-even unit count.
func HandleCalcBreakEven(c *fiber.Ctx) error {
	units := tools.BreakEvenUnits(queryFloat(c, "fixed_costs"), queryFloat(c, "price"), queryFloat(c, "variable_cost"))
	return c.JSON(fiber.Map{"units": units})
}

// HandleCalcPayback computes the CAC payback period in months.
func HandleCalcPayback(c *fiber.Ctx) error {
	months := tools.PaybackMonths(queryFloat(c, "cac"), queryFloat(c, "monthly_margin"))
	return c.JSON(fiber.Map{"months": months})
}

// HandleCalcVisaCost itemises the full application cost.
func HandleCalcVisaCost(c *fiber.Ctx) error {
	in := tools.VisaCostInput{
		Dependants:      queryInt(c, "dependants"),
		YearsOfStay:     queryInt(c, "years"),
		PriorityService: c.QueryBool("priority"),
		IncludeEndorse:  c.Query("endorsement", "true") != "false",
	}
	return c.JSON(tools.VisaCost(in))
}

// HandleCalcRevenue projects monthly revenue for the given growth rate.
func HandleCalcRevenue(c *fiber.Ctx) error {
	projection := tools.ProjectRevenue(queryFloat(c, "start"), queryFloat(c, "growth"), queryInt(c, "months"))
	return c.JSON(fiber.Map{"projection": projection})
}

// HandleCalcGrowthRate derives the compound monthly growth rate.
func HandleCalcGrowthRate(c *fiber.Ctx) error {
	rate := tools.GrowthRate(queryFloat(c, "earlier"), queryFloat(c, "later"), queryInt(c, "months"))
	return c.JSON(fiber.Map{"monthly_growth": rate})
}

// HandleCalcMaintenanceFunds computes the required maintenance funds.
func HandleCalcMaintenanceFunds(c *fiber.Ctx) error {
	amount := tools.MaintenanceFunds(queryInt(c, "dependants"))
	return c.JSON(fiber.Map{"amount_gbp": amount})
}
