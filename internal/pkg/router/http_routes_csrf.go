package router

import (
	"strings"
	"time"

	"github.com/VisaPilotUK/VisaPilot/app/controllers"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/env"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleHome)
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Get("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Get("/activate", loggedInMiddleware, controllers.HandleAuthActivate)
	group.Post("/activate", loggedInMiddleware, controllers.HandleAuthActivate)

	// Questionnaire
	group.Get("/questionnaire", middleware.RequireAuth, controllers.HandleQuestionnaire)
	group.Get("/questionnaire/:step", middleware.RequireAuth, controllers.HandleQuestionnaire)
	group.Post("/questionnaire/:step", middleware.RequireAuth, controllers.HandleQuestionnaireSubmit)

	// Business plans
	group.Get("/user/plans", middleware.RequireAuth, controllers.HandleUserPlans)
	group.Get("/user/plans/:uuid", middleware.RequireAuth, controllers.HandlePlanView)
	group.Get("/user/plans/:uuid/status", middleware.RequireAuth, controllers.HandlePlanStatus)
	group.Post("/user/plans/:uuid/delete", middleware.RequireAuth, controllers.HandlePlanDelete)

	// Evidence documents
	group.Post("/user/plans/:uuid/documents", middleware.RequireAuth, controllers.HandleDocumentUpload)
	group.Get("/documents/:uuid/download", middleware.RequireAuth, controllers.HandleDocumentDownload)
	group.Post("/documents/:uuid/delete", middleware.RequireAuth, controllers.HandleDocumentDelete)

	// Visa-fit assessment (JSON)
	group.Get("/user/plans/:uuid/assessment/rubric", middleware.RequireAuth, controllers.HandleAssessmentRubric)
	group.Get("/user/plans/:uuid/assessment/endorsers", middleware.RequireAuth, controllers.HandleAssessmentEndorsers)
	group.Get("/user/plans/:uuid/assessment/endorsers/:endorser", middleware.RequireAuth, controllers.HandleAssessmentEndorser)
	group.Get("/user/plans/:uuid/assessment/routes", middleware.RequireAuth, controllers.HandleAssessmentRoutes)
	group.Get("/user/plans/:uuid/assessment/team", middleware.RequireAuth, controllers.HandleAssessmentTeam)
	group.Get("/user/plans/:uuid/assessment/traction", middleware.RequireAuth, controllers.HandleAssessmentTraction)
	group.Get("/user/plans/:uuid/assessment/rules", middleware.RequireAuth, controllers.HandleAssessmentRules)

	// Chat assistant
	group.Get("/chat", middleware.RequireAuth, controllers.HandleChatPage)
	group.Post("/chat/ask", middleware.RequireAuth, controllers.HandleChatAsk)
	group.Get("/chat/history", middleware.RequireAuth, controllers.HandleChatHistory)
	group.Post("/chat/clear", middleware.RequireAuth, controllers.HandleChatClear)

	// Founder toolkit
	group.Get("/tools", loggedInMiddleware, controllers.HandleToolsIndex)
	group.Get("/tools/category/:category", loggedInMiddleware, controllers.HandleToolsCategory)
	group.Get("/tools/:slug", loggedInMiddleware, controllers.HandleToolShow)
	group.Get("/tools/calc/ltv-cac", loggedInMiddleware, controllers.HandleCalcLTVCAC)
	group.Get("/tools/calc/runway", loggedInMiddleware, controllers.HandleCalcRunway)
	group.Get("/tools/calc/break-even", loggedInMiddleware, controllers.HandleCalcBreakEven)
	group.Get("/tools/calc/payback", loggedInMiddleware, controllers.HandleCalcPayback)
	group.Get("/tools/calc/visa-cost", loggedInMiddleware, controllers.HandleCalcVisaCost)
	group.Get("/tools/calc/revenue", loggedInMiddleware, controllers.HandleCalcRevenue)
	group.Get("/tools/calc/growth-rate", loggedInMiddleware, controllers.HandleCalcGrowthRate)
	group.Get("/tools/calc/maintenance-funds", loggedInMiddleware, controllers.HandleCalcMaintenanceFunds)

	// User pages
	group.Get("/user/dashboard", middleware.RequireAuth, controllers.HandleUserDashboard)
	group.Get("/user/profile", middleware.RequireAuth, controllers.HandleUserProfile)
	group.Get("/user/settings", middleware.RequireAuth, controllers.HandleUserSettings)
	group.Get("/user/settings/billing", middleware.RequireAuth, controllers.HandleUserBillingSettings)
	group.Post("/user/settings/api-key", middleware.RequireAuth, controllers.HandleUserAPIKeyIssue)
	group.Post("/user/settings/api-key/revoke", middleware.RequireAuth, controllers.HandleUserAPIKeyRevoke)

	// Billing
	group.Post("/billing/checkout", middleware.RequireAuth, controllers.HandleBillingCheckout)
	group.Get("/billing/portal", middleware.RequireAuth, controllers.HandleBillingPortal)
	group.Post("/billing/resync", middleware.RequireAuth, controllers.HandleUserBillingResync)

	// Admin pages/settings
	group.Get("/admin/pages", middleware.RequireAdmin, controllers.HandleAdminPages)
	group.Get("/admin/pages/create", middleware.RequireAdmin, controllers.HandleAdminPageCreate)
	group.Post("/admin/pages/store", middleware.RequireAdmin, controllers.HandleAdminPageStore)
	group.Get("/admin/pages/edit/:id", middleware.RequireAdmin, controllers.HandleAdminPageEdit)
	group.Post("/admin/pages/update/:id", middleware.RequireAdmin, controllers.HandleAdminPageUpdate)
	group.Post("/admin/pages/delete/:id", middleware.RequireAdmin, controllers.HandleAdminPageDelete)
	group.Get("/admin/settings", middleware.RequireAdmin, controllers.HandleAdminSettings)
	group.Post("/admin/settings", middleware.RequireAdmin, controllers.HandleAdminSettingsUpdate)
}
