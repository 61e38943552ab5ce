package controllers

import (
	"github.com/VisaPilotUK/VisaPilot/app/repository"
	"github.com/gofiber/fiber/v2"
)

// Global admin controller instance
var adminController *AdminController

// InitializeAdminController initializes the global admin controller with repositories
func InitializeAdminController() {
	repos := repository.GetGlobalRepositories()
	adminController = NewAdminController(repos)
}

// GetAdminController returns the global admin controller instance
func GetAdminController() *AdminController {
	if adminController == nil {
		InitializeAdminController()
	}
	return adminController
}

// Adapter functions to maintain compatibility with existing router

// HandleAdminDashboard - Adapter for admin dashboard
func HandleAdminDashboard(c *fiber.Ctx) error {
	return GetAdminController().HandleDashboard(c)
}

// HandleAdminUsers - Adapter for user management
func HandleAdminUsers(c *fiber.Ctx) error {
	return GetAdminController().HandleUsers(c)
}

// HandleAdminUserEdit - Adapter for user edit
func HandleAdminUserEdit(c *fiber.Ctx) error {
	return GetAdminController().HandleUserEdit(c)
}

// HandleAdminUserUpdate - Adapter for user update
func HandleAdminUserUpdate(c *fiber.Ctx) error {
	return GetAdminController().HandleUserUpdate(c)
}

// HandleAdminUserPlanUpdate - Adapter for user plan assignment
func HandleAdminUserPlanUpdate(c *fiber.Ctx) error {
	return GetAdminController().HandleAdminUserUpdatePlan(c)
}

// HandleAdminUserDelete - Adapter for user delete
func HandleAdminUserDelete(c *fiber.Ctx) error {
	return GetAdminController().HandleUserDelete(c)
}

// HandleAdminPlans - Adapter for business plan management
func HandleAdminPlans(c *fiber.Ctx) error {
	return GetAdminController().HandlePlans(c)
}

// HandleAdminPlanDelete - Adapter for business plan deletion
func HandleAdminPlanDelete(c *fiber.Ctx) error {
	return GetAdminController().HandlePlanDelete(c)
}

// HandleAdminSearch - Adapter for search functionality
func HandleAdminSearch(c *fiber.Ctx) error {
	return GetAdminController().HandleSearch(c)
}

// HandleAdminSettings - Adapter for settings page
func HandleAdminSettings(c *fiber.Ctx) error {
	return GetAdminController().HandleSettings(c)
}

// HandleAdminSettingsUpdate - Adapter for settings update
func HandleAdminSettingsUpdate(c *fiber.Ctx) error {
	return GetAdminController().HandleSettingsUpdate(c)
}

// HandleAdminResendActivation - Adapter for resend activation
func HandleAdminResendActivation(c *fiber.Ctx) error {
	return GetAdminController().HandleResendActivation(c)
}

// News Management - Repository Pattern Functions using dedicated AdminNewsController

// HandleAdminNews - Adapter for news management
func HandleAdminNews(c *fiber.Ctx) error {
	return GetAdminNewsController().HandleAdminNews(c)
}

// HandleAdminNewsCreate - Adapter for news create form
func HandleAdminNewsCreate(c *fiber.Ctx) error {
	return GetAdminNewsController().HandleAdminNewsCreate(c)
}

// HandleAdminNewsStore - Adapter for news creation
func HandleAdminNewsStore(c *fiber.Ctx) error {
	return GetAdminNewsController().HandleAdminNewsStore(c)
}

// HandleAdminNewsEdit - Adapter for news edit form
func HandleAdminNewsEdit(c *fiber.Ctx) error {
	return GetAdminNewsController().HandleAdminNewsEdit(c)
}

// HandleAdminNewsUpdate - Adapter for news update
func HandleAdminNewsUpdate(c *fiber.Ctx) error {
	return GetAdminNewsController().HandleAdminNewsUpdate(c)
}

// HandleAdminNewsDelete - Adapter for news deletion
func HandleAdminNewsDelete(c *fiber.Ctx) error {
	return GetAdminNewsController().HandleAdminNewsDelete(c)
}

// Page Management - Repository Pattern Functions using dedicated AdminPageController

// HandleAdminPages - Adapter for page management
func HandleAdminPages(c *fiber.Ctx) error {
	return GetAdminPageController().HandleAdminPages(c)
}

// HandleAdminPageCreate - Adapter for page create form
func HandleAdminPageCreate(c *fiber.Ctx) error {
	return GetAdminPageController().HandleAdminPageCreate(c)
}

// HandleAdminPageStore - Adapter for page creation
func HandleAdminPageStore(c *fiber.Ctx) error {
	return GetAdminPageController().HandleAdminPageStore(c)
}

// HandleAdminPageEdit - Adapter for page edit form
func HandleAdminPageEdit(c *fiber.Ctx) error {
	return GetAdminPageController().HandleAdminPageEdit(c)
}

// HandleAdminPageUpdate - Adapter for page update
func HandleAdminPageUpdate(c *fiber.Ctx) error {
	return GetAdminPageController().HandleAdminPageUpdate(c)
}

// HandleAdminPageDelete - Adapter for page deletion
func HandleAdminPageDelete(c *fiber.Ctx) error {
	return GetAdminPageController().HandleAdminPageDelete(c)
}
