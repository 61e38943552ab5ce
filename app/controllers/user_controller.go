package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/app/repository"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/billing"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/entitlements"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/usercontext"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/utils"
)

// HandleUserDashboard shows the user's plans, documents and quota usage.
func HandleUserDashboard(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, userCtx.UserID).Error; err != nil {
		flash.WithError(c, fiber.Map{"type": "error", "message": "User not found"})
		return c.Redirect("/")
	}

	factory := repository.GetGlobalFactory()
	planRepo := factory.GetPlanRepository()
	docRepo := factory.GetDocumentRepository()

	planCount, _ := planRepo.CountByUserID(userCtx.UserID)
	docCount, _ := docRepo.CountByUserID(userCtx.UserID)
	storageUsed, _ := docRepo.StorageUsageByUserID(userCtx.UserID)
	recentPlans, _ := planRepo.GetByUserID(userCtx.UserID, 0, 5)

	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err != nil {
		log.Errorf("[User] Failed to load settings for user %d: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}
	limits := entitlements.LimitsFor(entitlements.ParsePlan(settings.Plan))

	return render(c, "user/dashboard", fiber.Map{
		"Page":         "dashboard",
		"User":         user,
		"PlanCount":    planCount,
		"DocCount":     docCount,
		"StorageUsed":  storageUsed,
		"RecentPlans":  recentPlans,
		"Plan":         settings.Plan,
		"Limits":       limits,
		"MessagesUsed": settings.ChatMessagesUsed,
		"PlansUsed":    settings.PlansGenerated,
	})
}

// HandleUserProfile shows account details and usage statistics.
func HandleUserProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, userCtx.UserID).Error; err != nil {
		flash.WithError(c, fiber.Map{"type": "error", "message": "User not found"})
		return c.Redirect("/")
	}

	factory := repository.GetGlobalFactory()
	planCount, _ := factory.GetPlanRepository().CountByUserID(userCtx.UserID)
	docCount, _ := factory.GetDocumentRepository().CountByUserID(userCtx.UserID)
	storageUsed, _ := factory.GetDocumentRepository().StorageUsageByUserID(userCtx.UserID)

	return render(c, "user/profile", fiber.Map{
		"Page":        "profile",
		"User":        user,
		"AvatarURL":   utils.GetGravatarURL(user.Email, 200),
		"PlanCount":   planCount,
		"DocCount":    docCount,
		"StorageUsed": storageUsed,
	})
}

// HandleUserSettings shows the account settings page including the API key
// state.
func HandleUserSettings(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	settings, err := models.GetOrCreateUserSettings(database.GetDB(), userCtx.UserID)
	if err != nil {
		log.Errorf("[User] Failed to load settings for user %d: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	return render(c, "user/settings", fiber.Map{
		"Page":            "settings",
		"Settings":        settings,
		"HasActiveAPIKey": settings.HasActiveAPIKey(),
	})
}

// HandleUserBillingSettings shows the subscription overview.
func HandleUserBillingSettings(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	db := database.GetDB()

	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err != nil {
		log.Errorf("[User] Failed to load settings for user %d: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	svc := billing.NewServiceFromDB(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var subs []models.BillingSubscription
	if s, err := svc.ListSubscriptionsByUser(ctx, userCtx.UserID); err == nil {
		subs = s
	}

	hasStripeAccount := false
	if _, err := svc.GetBillingAccountByUser(ctx, userCtx.UserID, models.BillingProviderStripe); err == nil {
		hasStripeAccount = true
	}

	return render(c, "user/billing", fiber.Map{
		"Page":             "billing",
		"Plan":             settings.Plan,
		"Limits":           entitlements.LimitsFor(entitlements.ParsePlan(settings.Plan)),
		"Subscriptions":    subs,
		"HasStripeAccount": hasStripeAccount,
	})
}

// HandleUserAPIKeyIssue generates a fresh API key. The raw key is shown once
// via flash and never stored.
func HandleUserAPIKeyIssue(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	db := database.GetDB()

	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Could not load your settings"}).Redirect("/user/settings")
	}

	rawKey, err := settings.IssueAPIKey()
	if err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Could not generate an API key"}).Redirect("/user/settings")
	}
	if err := db.Save(settings).Error; err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Could not save the API key"}).Redirect("/user/settings")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "API key created. Copy it now, it will not be shown again: " + rawKey,
	}
	return flash.WithSuccess(c, fm).Redirect("/user/settings")
}

// HandleUserAPIKeyRevoke invalidates the current API key.
func HandleUserAPIKeyRevoke(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	db := database.GetDB()

	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Could not load your settings"}).Redirect("/user/settings")
	}

	settings.RevokeAPIKey()
	if err := db.Save(settings).Error; err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Could not revoke the API key"}).Redirect("/user/settings")
	}

	return flash.WithSuccess(c, fiber.Map{"type": "success", "message": "API key revoked"}).Redirect("/user/settings")
}
