package router

import (
	"github.com/VisaPilotUK/VisaPilot/app/controllers"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// API routes moved to ApiRouter (internal/pkg/router/api_router.go)

	// Public news + static pages
	app.Get("/news", loggedInMiddleware, controllers.HandleNewsIndex)
	app.Get("/news/:slug", loggedInMiddleware, controllers.HandleNewsShow)
	app.Get("/pricing", loggedInMiddleware, controllers.HandlePricing)

	// Public page display
	app.Get("/page/:slug", loggedInMiddleware, controllers.HandlePage)

	// Public read-only plan share pages
	app.Get("/p/:sharelink", loggedInMiddleware, controllers.HandlePlanShare)
	app.Get("/p/:sharelink/download", loggedInMiddleware, controllers.HandlePlanDownload)

	// Flash helpers
	app.Get("/flash/upload-rate-limit", loggedInMiddleware, controllers.HandleFlashUploadRateLimit)
	app.Get("/flash/upload-duplicate", loggedInMiddleware, controllers.HandleFlashUploadDuplicate)
	app.Get("/flash/upload-error", loggedInMiddleware, controllers.HandleFlashUploadError)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)

	// Billing provider webhooks (no CSRF, signature-verified in controller)
	app.Post("/webhooks/stripe", controllers.HandleStripeWebhook)
}
