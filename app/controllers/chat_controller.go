package controllers

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/VisaPilotUK/VisaPilot/internal/pkg/chat"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/entitlements"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/usercontext"

	"github.com/VisaPilotUK/VisaPilot/app/models"
)

const maxChatQuestionLen = 2000

var (
	chatServiceOnce sync.Once
	chatService     *chat.Service
)

func getChatService() *chat.Service {
	chatServiceOnce.Do(func() {
		chatService = chat.NewDefaultService()
	})
	return chatService
}

// chatSessionID scopes the conversation history to the logged-in user.
func chatSessionID(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// HandleChatPage renders the assistant page with the existing conversation.
func HandleChatPage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	settings, err := models.GetOrCreateUserSettings(database.GetDB(), userCtx.UserID)
	if err != nil {
		log.Errorf("[Chat] Failed to load user settings for user %d: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	limit := entitlements.LimitsFor(entitlements.ParsePlan(settings.Plan)).ChatMessages

	return render(c, "chat/index", fiber.Map{
		"Page":         "chat",
		"History":      getChatService().History(chatSessionID(userCtx.UserID)),
		"MessagesUsed": settings.ChatMessagesUsed,
		"MessageLimit": limit,
	})
}

// HandleChatAsk answers one question, charging it against the user's quota.
func HandleChatAsk(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	question := strings.TrimSpace(c.FormValue("question"))
	if question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "question is required"})
	}
	if len(question) > maxChatQuestionLen {
		question = question[:maxChatQuestionLen]
	}

	db := database.GetDB()
	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err != nil {
		log.Errorf("[Chat] Failed to load user settings for user %d: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	if settings.ResetUsageIfStale(time.Now()) {
		if err := db.Save(settings).Error; err != nil {
			log.Errorf("[Chat] Failed to reset usage period for user %d: %v", userCtx.UserID, err)
		}
	}

	if !entitlements.CanSendChatMessage(settings, models.GetAppSettings()) {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error": "Message quota reached for your plan. Upgrade to keep chatting.",
		})
	}

	reply := getChatService().Ask(c.Context(), chatSessionID(userCtx.UserID), question)

	// Fallback answers are free: the provider chain failed, not the user.
	if !reply.Fallback {
		settings.ChatMessagesUsed++
		if err := db.Save(settings).Error; err != nil {
			log.Errorf("[Chat] Failed to record message usage for user %d: %v", userCtx.UserID, err)
		}
	}

	return c.JSON(fiber.Map{
		"answer":   reply.Text,
		"provider": reply.Provider,
		"fallback": reply.Fallback,
	})
}

// HandleChatHistory returns the stored conversation as JSON.
func HandleChatHistory(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	return c.JSON(fiber.Map{
		"messages": getChatService().History(chatSessionID(userCtx.UserID)),
	})
}

// HandleChatClear wipes the stored conversation.
func HandleChatClear(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := getChatService().ClearHistory(chatSessionID(userCtx.UserID)); err != nil {
		log.Errorf("[Chat] Failed to clear history for user %d: %v", userCtx.UserID, err)
	}
	return c.JSON(fiber.Map{"cleared": true})
}
