package controllers

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/app/repository"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/session"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/usercontext"
)

// AdminController handles admin-related HTTP requests using repository pattern
type AdminController struct {
	repos *repository.Repositories
}

// NewAdminController creates a new admin controller with repository dependencies
func NewAdminController(repos *repository.Repositories) *AdminController {
	return &AdminController{
		repos: repos,
	}
}

// HandleDashboard renders the admin dashboard with clean repository usage
func (ac *AdminController) HandleDashboard(c *fiber.Ctx) error {
	totalUsers, err := ac.repos.User.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get user count", err)
	}

	totalPlans, err := ac.repos.Plan.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get plan count", err)
	}

	var totalDocuments int64
	if err := database.GetDB().Model(&models.Document{}).Count(&totalDocuments).Error; err != nil {
		log.Printf("Failed to count documents: %v", err)
	}

	failedPlans, _ := ac.repos.Plan.CountByStatus(models.PlanStatusFailed)
	queuedPlans, _ := ac.repos.Plan.CountByStatus(models.PlanStatusQueued)
	generatingPlans, _ := ac.repos.Plan.CountByStatus(models.PlanStatusGenerating)

	recentUsers, err := ac.repos.User.List(0, 5)
	if err != nil {
		return ac.handleError(c, "Failed to get recent users", err)
	}

	recentPlans, _ := ac.repos.Plan.GetRecent(5)

	planStats := ac.getLastSevenDaysStats("plans")
	userStats := ac.getLastSevenDaysStats("users")

	return render(c, "admin/dashboard", fiber.Map{
		"Page":            "admin",
		"TotalUsers":      totalUsers,
		"TotalPlans":      totalPlans,
		"TotalDocuments":  totalDocuments,
		"FailedPlans":     failedPlans,
		"QueuedPlans":     queuedPlans,
		"GeneratingPlans": generatingPlans,
		"RecentUsers":     recentUsers,
		"RecentPlans":     recentPlans,
		"PlanStats":       planStats,
		"UserStats":       userStats,
	})
}

// HandleUsers renders the user management page with repository pattern
func (ac *AdminController) HandleUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	perPage := 20
	offset := (page - 1) * perPage

	totalUsers, err := ac.repos.User.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get user count", err)
	}

	usersWithStats, err := ac.repos.User.GetWithStats(offset, perPage)
	if err != nil {
		return ac.handleError(c, "Failed to get users with statistics", err)
	}

	totalPages := int(totalUsers) / perPage
	if int(totalUsers)%perPage > 0 {
		totalPages++
	}
	pages := make([]int, totalPages)
	for i := range pages {
		pages[i] = i + 1
	}

	return render(c, "admin/users", fiber.Map{
		"Page":        "admin-users",
		"Users":       usersWithStats,
		"CurrentPage": page,
		"Pages":       pages,
	})
}

// HandleUserEdit renders the user edit page
func (ac *AdminController) HandleUserEdit(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return c.Redirect("/admin/users")
	}

	id, err := strconv.ParseUint(userID, 10, 32)
	if err != nil {
		return c.Redirect("/admin/users")
	}

	user, err := ac.repos.User.GetByID(uint(id))
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "User not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	// Load user plan from user_settings
	us, _ := models.GetOrCreateUserSettings(database.GetDB(), user.ID)
	plan := "free"
	if us != nil && us.Plan != "" {
		plan = us.Plan
	}

	return render(c, "admin/user_edit", fiber.Map{
		"Page": "admin-users",
		"User": user,
		"Plan": plan,
	})
}

// HandleAdminUserUpdatePlan updates a user's plan (entitlements)
func (ac *AdminController) HandleAdminUserUpdatePlan(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return c.Redirect("/admin/users")
	}
	id, err := strconv.ParseUint(userID, 10, 32)
	if err != nil {
		return c.Redirect("/admin/users")
	}
	user, err := ac.repos.User.GetByID(uint(id))
	if err != nil || user == nil {
		fm := fiber.Map{"type": "error", "message": "User not found"}
		return flash.WithError(c, fm).Redirect("/admin/users")
	}
	plan := strings.TrimSpace(c.FormValue("plan"))
	switch plan {
	case "free", "pro", "founder":
		// ok
	default:
		fm := fiber.Map{"type": "error", "message": "Invalid plan"}
		return flash.WithError(c, fm).Redirect("/admin/users/edit/" + userID)
	}
	db := database.GetDB()
	us, err := models.GetOrCreateUserSettings(db, user.ID)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not load user settings"}
		return flash.WithError(c, fm).Redirect("/admin/users/edit/" + userID)
	}
	us.Plan = plan
	if err := db.Save(us).Error; err != nil {
		fm := fiber.Map{"type": "error", "message": "Failed to save the plan"}
		return flash.WithError(c, fm).Redirect("/admin/users/edit/" + userID)
	}
	fm := fiber.Map{"type": "success", "message": "Plan updated"}
	return flash.WithSuccess(c, fm).Redirect("/admin/users/edit/" + userID)
}

// HandleUserUpdate handles user update with repository pattern
func (ac *AdminController) HandleUserUpdate(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return c.Redirect("/admin/users")
	}

	id, err := strconv.ParseUint(userID, 10, 32)
	if err != nil {
		return c.Redirect("/admin/users")
	}

	user, err := ac.repos.User.GetByID(uint(id))
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "User not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	user.Name = c.FormValue("name")
	user.Email = c.FormValue("email")
	user.Role = c.FormValue("role")
	user.Status = c.FormValue("status")

	if err := user.Validate(); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Validation failed: " + err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/users/edit/" + userID)
	}

	if err := ac.repos.User.Update(user); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to update user: " + err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/users/edit/" + userID)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "User updated successfully",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/users")
}

// HandleUserDelete handles user deletion with repository pattern
func (ac *AdminController) HandleUserDelete(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}

	userID := c.Params("id")
	if userID == "" {
		return c.Redirect("/admin/users")
	}

	id, err := strconv.ParseUint(userID, 10, 32)
	if err != nil {
		return c.Redirect("/admin/users")
	}

	// Prevent self-deletion
	sess, _ := session.GetSessionStore().Get(c)
	currentUserID := sess.Get(usercontext.KeyUserID).(uint)

	if currentUserID == uint(id) {
		fm := fiber.Map{
			"type":    "error",
			"message": "You cannot delete your own account",
		}
		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	if err := ac.repos.User.Delete(uint(id)); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to delete user: " + err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "User deleted successfully",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/users")
}

// HandlePlans renders the plan management page
func (ac *AdminController) HandlePlans(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	perPage := 20
	offset := (page - 1) * perPage

	totalPlans, err := ac.repos.Plan.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get plan count", err)
	}

	plans, err := ac.repos.Plan.List(offset, perPage)
	if err != nil {
		return ac.handleError(c, "Failed to list plans", err)
	}

	totalPages := int(totalPlans) / perPage
	if int(totalPlans)%perPage > 0 {
		totalPages++
	}
	pages := make([]int, totalPages)
	for i := range pages {
		pages[i] = i + 1
	}

	return render(c, "admin/plans", fiber.Map{
		"Page":        "admin-plans",
		"Plans":       plans,
		"CurrentPage": page,
		"Pages":       pages,
	})
}

// HandlePlanDelete removes a plan on behalf of support
func (ac *AdminController) HandlePlanDelete(c *fiber.Ctx) error {
	plan, err := ac.repos.Plan.GetByUUID(c.Params("uuid"))
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Plan not found"}
		return flash.WithError(c, fm).Redirect("/admin/plans")
	}
	if err := ac.repos.Plan.Delete(plan.ID); err != nil {
		fm := fiber.Map{"type": "error", "message": "Failed to delete the plan"}
		return flash.WithError(c, fm).Redirect("/admin/plans")
	}
	fm := fiber.Map{"type": "success", "message": "Plan deleted"}
	return flash.WithSuccess(c, fm).Redirect("/admin/plans")
}

// HandleSearch handles search functionality with repository pattern
func (ac *AdminController) HandleSearch(c *fiber.Ctx) error {
	searchType := c.Query("type", "users")
	query := c.Query("q", "")

	if query == "" {
		fm := fiber.Map{
			"type":    "error",
			"message": "Please enter a search term",
		}
		return flash.WithError(c, fm).Redirect("/admin/" + searchType)
	}

	switch searchType {
	case "users":
		return ac.handleUserSearch(c, query)
	case "plans":
		return ac.handlePlanSearch(c, query)
	default:
		return c.Redirect("/admin")
	}
}

// handleUserSearch searches for users using repository
func (ac *AdminController) handleUserSearch(c *fiber.Ctx, query string) error {
	usersWithStats, err := ac.repos.User.SearchWithStats(query)
	if err != nil {
		return ac.handleError(c, "Search failed", err)
	}

	fm := fiber.Map{
		"type":    "info",
		"message": "Search results for '" + query + "': " + strconv.Itoa(len(usersWithStats)) + " users found",
	}
	flash.WithInfo(c, fm)

	return render(c, "admin/users", fiber.Map{
		"Page":        "admin-users",
		"Users":       usersWithStats,
		"CurrentPage": 1,
		"Pages":       []int{1},
		"Query":       query,
	})
}

// handlePlanSearch searches business plans by name or status
func (ac *AdminController) handlePlanSearch(c *fiber.Ctx, query string) error {
	plans, err := ac.repos.Plan.Search(query)
	if err != nil {
		return ac.handleError(c, "Search failed", err)
	}

	fm := fiber.Map{
		"type":    "info",
		"message": "Search results for '" + query + "': " + strconv.Itoa(len(plans)) + " plans found",
	}
	flash.WithInfo(c, fm)

	return render(c, "admin/plans", fiber.Map{
		"Page":        "admin-plans",
		"Plans":       plans,
		"CurrentPage": 1,
		"Pages":       []int{1},
		"Query":       query,
	})
}

// handleError handles errors consistently
func (ac *AdminController) handleError(c *fiber.Ctx, message string, err error) error {
	log.Printf("Admin Controller Error: %s - %v", message, err)

	fm := fiber.Map{
		"type":    "error",
		"message": message,
	}

	redirectPath := "/admin"
	if c.Path() != "" {
		if strings.Contains(c.Path(), "/users") {
			redirectPath = "/admin/users"
		} else if strings.Contains(c.Path(), "/plans") {
			redirectPath = "/admin/plans"
		}
	}

	return flash.WithError(c, fm).Redirect(redirectPath)
}

// getLastSevenDaysStats generates statistics for the last 7 days using repositories
func (ac *AdminController) getLastSevenDaysStats(statsType string) []models.DailyStats {
	now := time.Now()
	startDate := now.AddDate(0, 0, -6).Truncate(24 * time.Hour)
	endDate := now.Truncate(24 * time.Hour).Add(24*time.Hour - time.Nanosecond)

	var stats []models.DailyStats
	var err error

	switch statsType {
	case "users":
		stats, err = ac.repos.User.GetDailyStats(startDate, endDate)
	case "plans":
		stats, err = ac.repos.Plan.GetDailyStats(startDate, endDate)
	default:
		return ac.createEmptyDailyStats(7)
	}

	if err != nil {
		log.Printf("Error getting daily stats for %s: %v", statsType, err)
		return ac.createEmptyDailyStats(7)
	}

	return ac.fillStatGaps(stats, startDate, 7)
}

// createEmptyDailyStats creates a slice of DailyStats with zero counts for the last n days
func (ac *AdminController) createEmptyDailyStats(days int) []models.DailyStats {
	result := make([]models.DailyStats, days)
	now := time.Now()

	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -(days - 1 - i))
		dateStr := date.Format("2006-01-02")
		result[i] = models.DailyStats{Date: dateStr, Count: 0}
	}

	return result
}

// fillStatGaps fills missing dates in stats with zero counts
func (ac *AdminController) fillStatGaps(stats []models.DailyStats, startDate time.Time, days int) []models.DailyStats {
	result := make([]models.DailyStats, days)
	statsMap := make(map[string]int)

	for _, stat := range stats {
		statsMap[stat.Date] = stat.Count
	}

	for i := 0; i < days; i++ {
		date := startDate.AddDate(0, 0, i)
		dateStr := date.Format("2006-01-02")
		count := statsMap[dateStr] // defaults to 0 if not found
		result[i] = models.DailyStats{Date: dateStr, Count: count}
	}

	return result
}

// HandleSettings renders the settings page
func (ac *AdminController) HandleSettings(c *fiber.Ctx) error {
	settings, err := ac.repos.Setting.Get()
	if err != nil {
		return ac.handleError(c, "Failed to get settings", err)
	}

	return render(c, "admin/settings", fiber.Map{
		"Page":     "admin-settings",
		"Settings": settings,
	})
}

// HandleSettingsUpdate handles settings update with repository pattern
func (ac *AdminController) HandleSettingsUpdate(c *fiber.Ctx) error {
	newSettings := &models.AppSettings{
		SiteTitle:            c.FormValue("site_title"),
		SiteDescription:      c.FormValue("site_description"),
		QuestionnaireEnabled: c.FormValue("questionnaire_enabled") == "on",
		ChatEnabled:          c.FormValue("chat_enabled") == "on",
		UploadsEnabled:       c.FormValue("uploads_enabled") == "on",
	}

	if err := ac.repos.Setting.Save(newSettings); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Failed to save settings: " + err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/settings")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Settings saved",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/settings")
}

// HandleResendActivation resends activation email using repository pattern
func (ac *AdminController) HandleResendActivation(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return c.Redirect("/admin/users")
	}

	id, err := strconv.ParseUint(userID, 10, 32)
	if err != nil {
		return c.Redirect("/admin/users")
	}

	user, err := ac.repos.User.GetByID(uint(id))
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "User not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	if err := user.GenerateActivationToken(); err != nil {
		return ac.handleError(c, "Failed to generate activation token", err)
	}

	if err := ac.repos.User.Update(user); err != nil {
		return ac.handleError(c, "Failed to save activation token", err)
	}

	go sendActivationMail(user)

	fm := fiber.Map{
		"type":    "success",
		"message": "Activation mail sent again",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/users")
}
