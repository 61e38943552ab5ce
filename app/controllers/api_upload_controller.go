package controllers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/app/repository"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/constants"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/entitlements"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/env"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/security"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/upload"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/usercontext"
)

const uploadSessionTTL = 30 * time.Minute

// HandleCreateUploadSession issues a short-lived token for uploading evidence
// to a plan without a browser session.
// Request: JSON { "plan_uuid": string, "file_size": int64 }
// Response: { upload_url, token, plan_uuid, expires_at, max_bytes }
func HandleCreateUploadSession(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)
	if !user.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req struct {
		PlanUUID string `json:"plan_uuid"`
		FileSize int64  `json:"file_size"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	if req.FileSize <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file_size must be > 0"})
	}
	if req.PlanUUID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "plan_uuid missing"})
	}

	plan, err := repository.GetGlobalFactory().GetPlanRepository().GetByUUID(req.PlanUUID)
	if err != nil || plan.UserID != user.UserID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database unavailable"})
	}
	settings, err := models.GetOrCreateUserSettings(db, user.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load user settings"})
	}

	limits := entitlements.LimitsFor(entitlements.ParsePlan(settings.Plan))
	if req.FileSize > limits.MaxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error":     "file too large",
			"max_bytes": limits.MaxUploadBytes,
		})
	}

	docCount, err := repository.GetGlobalFactory().GetDocumentRepository().CountByPlanID(plan.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to count documents"})
	}
	if !entitlements.CanUploadDocument(settings, models.GetAppSettings(), docCount) {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": "document upload limit reached"})
	}

	secret := env.GetEnv("UPLOAD_TOKEN_SECRET", "")
	if secret == "" {
		fiberlog.Warn("UPLOAD_TOKEN_SECRET not set; refusing to issue upload session")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "upload token secret not configured"})
	}
	token, err := security.GenerateUploadToken(user.UserID, plan.ID, limits.MaxUploadBytes, uploadSessionTTL, secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create token"})
	}

	uploadURL := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/") + "/api/v1/documents/upload"

	return c.JSON(fiber.Map{
		"upload_url": uploadURL,
		"token":      token,
		"plan_uuid":  plan.UUID,
		"expires_at": time.Now().Add(uploadSessionTTL).Unix(),
		"max_bytes":  limits.MaxUploadBytes,
	})
}

// HandleTokenDocumentUpload accepts an evidence upload authorised by an
// upload-session token instead of a browser session.
// Request: multipart form with "file", token in the Authorization header
// (Bearer) or a "token" form field.
func HandleTokenDocumentUpload(c *fiber.Ctx) error {
	secret := env.GetEnv("UPLOAD_TOKEN_SECRET", "")
	if secret == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "upload token secret not configured"})
	}

	token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if token == "" {
		token = c.FormValue("token")
	}
	claims, err := security.VerifyUploadToken(token, secret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	plan, err := repository.GetGlobalFactory().GetPlanRepository().GetByID(claims.PlanID)
	if err != nil || plan.UserID != claims.UserID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file missing"})
	}
	if file.Size > claims.MaxBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error":     "file too large",
			"max_bytes": claims.MaxBytes,
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
	}
	head := make([]byte, 512)
	n, _ := io.ReadFull(src, head)
	src.Close()

	mimeType, err := upload.ValidateDocumentBySniff(file.Filename, head[:n])
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	docUUID := uuid.New().String()
	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	relativeDir := filepath.Join(constants.UploadsPath, "documents", fmt.Sprintf("%d", time.Now().Year()), fmt.Sprintf("%02d", time.Now().Month()))
	fileName := docUUID + fileExt

	if err := os.MkdirAll(relativeDir, 0755); err != nil {
		fiberlog.Errorf("Error creating document directory: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store file"})
	}
	if err := c.SaveFile(file, filepath.Join(relativeDir, fileName)); err != nil {
		fiberlog.Errorf("Error saving uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store file"})
	}

	doc := &models.Document{
		UUID:     docUUID,
		PlanID:   plan.ID,
		UserID:   claims.UserID,
		Kind:     models.DocumentKindEvidence,
		FileName: fileName,
		FilePath: relativeDir,
		FileSize: file.Size,
		MimeType: mimeType,
	}
	if err := repository.GetGlobalFactory().GetDocumentRepository().Create(doc); err != nil {
		fiberlog.Errorf("Error saving document to database: %v", err)
		_ = os.Remove(filepath.Join(relativeDir, fileName))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save document"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"uuid":      doc.UUID,
		"plan_uuid": plan.UUID,
		"file_size": doc.FileSize,
		"mime_type": doc.MimeType,
	})
}

// HandlePlanStatusJSON returns generation status for a plan (JSON), used by
// the dashboard to poll while the pipeline runs.
func HandlePlanStatusJSON(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)
	if !user.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	planUUID := c.Params("uuid")
	if planUUID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "uuid missing"})
	}

	plan, err := repository.GetGlobalFactory().GetPlanRepository().GetByUUID(planUUID)
	if err != nil || plan.UserID != user.UserID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	var viewURL string
	if plan.IsGenerated() {
		viewURL = "/user/plans/" + plan.UUID
	}
	return c.JSON(fiber.Map{
		"status":   plan.Status,
		"complete": plan.IsGenerated(),
		"view_url": viewURL,
		"pdf_url":  plan.PDFURL,
	})
}
