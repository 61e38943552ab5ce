package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/app/repository"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/entitlements"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/usercontext"
)

// HandleGetUserAccount returns account information for the authenticated user (API key or session).
func HandleGetUserAccount(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	account, err := repo.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load user"})
	}

	stats, err := repo.GetStatsByUserID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load statistics"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Database unavailable"})
	}
	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load user settings"})
	}

	plan := entitlements.ParsePlan(settings.Plan)
	limits := entitlements.LimitsFor(plan)
	appSettings := models.GetAppSettings()

	response := fiber.Map{
		"id":                   account.ID,
		"username":             account.Name,
		"email":                account.Email,
		"status":               account.Status,
		"plan":                 string(plan),
		"is_admin":             account.Role == models.ROLE_ADMIN,
		"created_at":           account.CreatedAt.UTC().Format(time.RFC3339),
		"last_login_at":        formatTimePtr(account.LastLoginAt),
		"api_key_last_used_at": formatTimePtr(settings.APIKeyLastUsedAt),
		"stats": fiber.Map{
			"plans": fiber.Map{
				"count": stats.PlanCount,
			},
			"documents": fiber.Map{
				"count":              stats.DocumentCount,
				"storage_used_bytes": stats.StorageUsage,
			},
		},
		"usage": fiber.Map{
			"chat_messages_used": settings.ChatMessagesUsed,
			"plans_generated":    settings.PlansGenerated,
			"period_start":       formatTimePtr(settings.UsagePeriodStart),
		},
		"limits": fiber.Map{
			"chat_messages":         limits.ChatMessages,
			"plan_generations":      limits.PlanGenerations,
			"document_uploads":      limits.DocumentUploads,
			"max_upload_bytes":      limits.MaxUploadBytes,
			"chat_enabled":          appSettings.IsChatEnabled(),
			"uploads_enabled":       appSettings.IsUploadsEnabled(),
			"questionnaire_enabled": appSettings.IsQuestionnaireEnabled(),
		},
	}

	return c.JSON(response)
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
