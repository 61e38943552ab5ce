package router

import (
	"github.com/VisaPilotUK/VisaPilot/app/controllers"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAdmin)
	adminGroup.Get("/", controllers.HandleAdminDashboard)
	adminGroup.Get("/users", controllers.HandleAdminUsers)
	adminGroup.Get("/users/edit/:id", controllers.HandleAdminUserEdit)
	adminGroup.Post("/users/update/:id", controllers.HandleAdminUserUpdate)
	adminGroup.Post("/users/update-plan/:id", controllers.HandleAdminUserPlanUpdate)
	adminGroup.Post("/users/delete/:id", controllers.HandleAdminUserDelete)
	adminGroup.Post("/users/resend-activation/:id", controllers.HandleAdminResendActivation)

	// Business plan management
	adminGroup.Get("/plans", controllers.HandleAdminPlans)
	adminGroup.Post("/plans/delete/:uuid", controllers.HandleAdminPlanDelete)

	// News management
	adminGroup.Get("/news", controllers.HandleAdminNews)
	adminGroup.Get("/news/create", controllers.HandleAdminNewsCreate)
	adminGroup.Post("/news/store", controllers.HandleAdminNewsStore)
	adminGroup.Get("/news/edit/:id", controllers.HandleAdminNewsEdit)
	adminGroup.Post("/news/update/:id", controllers.HandleAdminNewsUpdate)
	adminGroup.Post("/news/delete/:id", controllers.HandleAdminNewsDelete)

	// Search + queue monitor
	adminGroup.Get("/search", controllers.HandleAdminSearch)
	adminGroup.Get("/queues", controllers.HandleAdminQueues)
	adminGroup.Get("/queues/data", controllers.HandleAdminQueuesData)
	adminGroup.Delete("/queues/delete/:key", controllers.HandleAdminQueueDelete)
}
