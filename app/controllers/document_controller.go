package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/sujit-baniya/flash"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/app/repository"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/cache"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/constants"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/docstore"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/entitlements"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/jobqueue"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/upload"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/usercontext"
)

type documentUploadWorkflow struct {
	c       *fiber.Ctx
	userCtx usercontext.UserContext
	planID  uint
	docRepo repository.DocumentRepository
}

var errUploadResponseHandled = errors.New("upload response already handled")

// HandleDocumentUpload accepts one evidence file for a plan the user owns.
func HandleDocumentUpload(c *fiber.Ctx) error {
	return newDocumentUploadWorkflow(c).run()
}

func newDocumentUploadWorkflow(c *fiber.Ctx) *documentUploadWorkflow {
	return &documentUploadWorkflow{
		c:       c,
		userCtx: usercontext.GetUserContext(c),
		docRepo: repository.GetGlobalFactory().GetDocumentRepository(),
	}
}

func (w *documentUploadWorkflow) run() error {
	if !w.userCtx.IsLoggedIn {
		return w.c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
	}

	if !models.GetAppSettings().IsUploadsEnabled() {
		return respondUploadError(w.c, fiber.StatusForbidden, "Document uploads are currently disabled", "/user/dashboard")
	}

	plan, err := w.resolvePlan()
	if err != nil {
		if errors.Is(err, errUploadResponseHandled) {
			return nil
		}
		return err
	}

	form, file, err := w.parseUploadForm()
	if err != nil {
		if errors.Is(err, errUploadResponseHandled) {
			return nil
		}
		return err
	}
	defer form.RemoveAll()

	if err := w.validateEntitlements(file); err != nil {
		if errors.Is(err, errUploadResponseHandled) {
			return nil
		}
		return err
	}

	mimeType, fileHash, err := w.inspectFile(file)
	if err != nil {
		if errors.Is(err, errUploadResponseHandled) {
			return nil
		}
		return err
	}

	duplicate, unlock := w.detectDuplicate(fileHash, file.Size)
	defer unlock()
	if duplicate != nil {
		fiberlog.Infof("[Documents] Duplicate file detected for user %d, plan %d", w.userCtx.UserID, w.planID)
		flash.WithInfo(w.c, fiber.Map{"type": "info", "message": "You already uploaded this file for this plan."})
		return w.c.Redirect("/user/plans/" + plan.UUID)
	}

	doc, err := w.persistUpload(plan, file, mimeType)
	if err != nil {
		if errors.Is(err, errUploadResponseHandled) {
			return nil
		}
		return err
	}

	w.afterPersist(doc)

	flash.WithSuccess(w.c, fiber.Map{"type": "success", "message": fmt.Sprintf("File uploaded: %s", file.Filename)})
	return w.c.Redirect("/user/plans/" + plan.UUID)
}

func (w *documentUploadWorkflow) resolvePlan() (*models.BusinessPlan, error) {
	plan, err := repository.GetGlobalFactory().GetPlanRepository().GetByUUID(w.c.Params("uuid"))
	if err != nil || plan.UserID != w.userCtx.UserID {
		return nil, markHandledResponse(respondUploadError(w.c, fiber.StatusNotFound, "Plan not found", "/user/plans"))
	}
	w.planID = plan.ID
	return plan, nil
}

func (w *documentUploadWorkflow) parseUploadForm() (*multipart.Form, *multipart.FileHeader, error) {
	form, err := w.c.MultipartForm()
	if err != nil {
		fiberlog.Errorf("Error parsing multipart form: %v", err)
		return nil, nil, markHandledResponse(respondUploadError(w.c, fiber.StatusBadRequest, fmt.Sprintf("Upload failed: %s", err), "/user/plans"))
	}

	files := form.File["file"]
	if len(files) == 0 {
		return nil, nil, markHandledResponse(respondUploadError(w.c, fiber.StatusBadRequest, "No file uploaded", "/user/plans"))
	}

	return form, files[0], nil
}

func (w *documentUploadWorkflow) validateEntitlements(file *multipart.FileHeader) error {
	settings, err := models.GetOrCreateUserSettings(database.GetDB(), w.userCtx.UserID)
	if err != nil {
		fiberlog.Errorf("[Documents] Failed to load settings for user %d: %v", w.userCtx.UserID, err)
		return markHandledResponse(respondUploadError(w.c, fiber.StatusInternalServerError, "Could not verify your quota", "/user/plans"))
	}

	limits := entitlements.LimitsFor(entitlements.ParsePlan(settings.Plan))
	if file.Size > limits.MaxUploadBytes {
		msg := fmt.Sprintf("The file exceeds your plan's upload limit of %s.", formatBytes(limits.MaxUploadBytes))
		return markHandledResponse(respondUploadError(w.c, fiber.StatusRequestEntityTooLarge, msg, "/user/plans"))
	}

	count, err := w.docRepo.CountByPlanID(w.planID)
	if err != nil {
		fiberlog.Errorf("[Documents] Failed to count documents for plan %d: %v", w.planID, err)
		return markHandledResponse(respondUploadError(w.c, fiber.StatusInternalServerError, "Could not verify your quota", "/user/plans"))
	}
	if !entitlements.CanUploadDocument(settings, models.GetAppSettings(), count) {
		msg := "Document limit reached for this plan. Upgrade to attach more evidence."
		return markHandledResponse(respondUploadError(w.c, fiber.StatusForbidden, msg, "/pricing"))
	}

	return nil
}

func (w *documentUploadWorkflow) inspectFile(file *multipart.FileHeader) (string, string, error) {
	pre, err := file.Open()
	if err != nil {
		fiberlog.Errorf("Error opening uploaded file for sniff: %v", err)
		return "", "", markHandledResponse(w.c.Status(fiber.StatusInternalServerError).SendString("Error processing the file"))
	}
	head := make([]byte, 512)
	n, _ := io.ReadFull(pre, head)
	if n > 0 {
		head = head[:n]
	}
	_ = pre.Close()

	mimeType, err := upload.ValidateDocumentBySniff(file.Filename, head)
	if err != nil {
		return "", "", markHandledResponse(respondUploadError(w.c, fiber.StatusUnsupportedMediaType, err.Error(), "/user/plans"))
	}

	hashSrc, err := file.Open()
	if err != nil {
		fiberlog.Errorf("Error opening uploaded file for hash: %v", err)
		return "", "", markHandledResponse(respondUploadError(w.c, fiber.StatusInternalServerError, "Error processing the file", "/user/plans"))
	}
	fileHash, err := calculateFileHash(hashSrc)
	_ = hashSrc.Close()
	if err != nil {
		fiberlog.Errorf("Error calculating file hash: %v", err)
		return "", "", markHandledResponse(respondUploadError(w.c, fiber.StatusInternalServerError, "Error processing the file", "/user/plans"))
	}

	return mimeType, fileHash, nil
}

// detectDuplicate takes a short Redis lock per (user, hash) so two parallel
// uploads of the same file cannot both pass the duplicate check.
func (w *documentUploadWorkflow) detectDuplicate(fileHash string, size int64) (*models.Document, func()) {
	unlock := func() {}

	if cli := cache.GetClient(); cli != nil {
		ctx := context.Background()
		lockKey := fmt.Sprintf("lock:docupload:%d:%s", w.userCtx.UserID, fileHash)
		if ok, _ := cli.SetNX(ctx, lockKey, "1", 60*time.Second).Result(); ok {
			unlock = func() { _ = cli.Del(ctx, lockKey).Err() }
		}
	}

	docs, err := w.docRepo.GetByPlanID(w.planID)
	if err != nil {
		return nil, unlock
	}
	for i := range docs {
		if docs[i].FileSize == size && docs[i].FileName != "" && docs[i].Kind == models.DocumentKindEvidence {
			if hashMatchesExisting(&docs[i], fileHash) {
				return &docs[i], unlock
			}
		}
	}
	return nil, unlock
}

func hashMatchesExisting(doc *models.Document, fileHash string) bool {
	full := filepath.Join(doc.FilePath, doc.FileName)
	f, err := os.Open(full)
	if err != nil {
		return false
	}
	defer f.Close()
	existingHash, err := calculateFileHash(f)
	if err != nil {
		return false
	}
	return existingHash == fileHash
}

func (w *documentUploadWorkflow) persistUpload(plan *models.BusinessPlan, file *multipart.FileHeader, mimeType string) (*models.Document, error) {
	docUUID := uuid.New().String()
	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	relativeDir := filepath.Join(constants.UploadsPath, "documents", fmt.Sprintf("%d", time.Now().Year()), fmt.Sprintf("%02d", time.Now().Month()))
	fileName := docUUID + fileExt

	if err := os.MkdirAll(relativeDir, 0755); err != nil {
		fiberlog.Errorf("Error creating document directory: %v", err)
		return nil, markHandledResponse(respondUploadError(w.c, fiber.StatusInternalServerError, "Error saving the file", "/user/plans"))
	}

	if err := w.c.SaveFile(file, filepath.Join(relativeDir, fileName)); err != nil {
		fiberlog.Errorf("Error saving uploaded file: %v", err)
		return nil, markHandledResponse(respondUploadError(w.c, fiber.StatusInternalServerError, "Error saving the file", "/user/plans"))
	}

	doc := &models.Document{
		UUID:     docUUID,
		PlanID:   plan.ID,
		UserID:   w.userCtx.UserID,
		Kind:     models.DocumentKindEvidence,
		FileName: fileName,
		FilePath: relativeDir,
		FileSize: file.Size,
		MimeType: mimeType,
	}
	if err := w.docRepo.Create(doc); err != nil {
		fiberlog.Errorf("Error saving document to database: %v", err)
		_ = os.Remove(filepath.Join(relativeDir, fileName))
		return nil, markHandledResponse(respondUploadError(w.c, fiber.StatusInternalServerError, "Could not save the document", "/user/plans"))
	}

	return doc, nil
}

func (w *documentUploadWorkflow) afterPersist(doc *models.Document) {
	if cfg, err := docstore.LoadConfig(); err != nil || !cfg.IsEnabled() {
		return
	}
	payload := jobqueue.DocumentArchiveJobPayload{
		DocumentID:   doc.ID,
		DocumentUUID: doc.UUID,
		FilePath:     doc.FilePath,
		FileName:     doc.FileName,
		FileSize:     doc.FileSize,
	}
	if _, err := jobqueue.GetManager().GetQueue().EnqueueJob(jobqueue.JobTypeDocumentArchive, payload.ToMap()); err != nil {
		fiberlog.Errorf("[Documents] Failed to enqueue archive job for %s: %v", doc.UUID, err)
	}
}

// HandleDocumentDownload streams an evidence file back to its owner.
func HandleDocumentDownload(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	doc, err := repository.GetGlobalFactory().GetDocumentRepository().GetByUUID(c.Params("uuid"))
	if err != nil || doc.UserID != userCtx.UserID {
		return c.Status(fiber.StatusNotFound).SendString("Document not found")
	}

	fullPath := filepath.Join(doc.FilePath, doc.FileName)
	if _, err := os.Stat(fullPath); err != nil {
		// Local copy gone; fall back to the archived object if there is one.
		if cfg, cfgErr := docstore.LoadConfig(); cfgErr == nil && doc.IsArchived() && cfg.IsEnabled() {
			client, err := docstore.NewClient(cfg)
			if err == nil {
				if url, err := client.PresignedGetURL(doc.ObjectKey, 15*time.Minute); err == nil {
					return c.Redirect(url, fiber.StatusTemporaryRedirect)
				}
			}
		}
		return c.Status(fiber.StatusNotFound).SendString("Document not found")
	}

	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	return c.SendFile(fullPath)
}

// HandleDocumentDelete removes an evidence file and its database row.
func HandleDocumentDelete(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	docRepo := repository.GetGlobalFactory().GetDocumentRepository()
	doc, err := docRepo.GetByUUID(c.Params("uuid"))
	if err != nil || doc.UserID != userCtx.UserID {
		flash.WithError(c, fiber.Map{"type": "error", "message": "Document not found"})
		return c.Redirect("/user/plans")
	}
	if doc.Kind != models.DocumentKindEvidence {
		flash.WithError(c, fiber.Map{"type": "error", "message": "Generated documents cannot be deleted"})
		return c.Redirect("/user/plans")
	}

	plan, planErr := repository.GetGlobalFactory().GetPlanRepository().GetByID(doc.PlanID)

	if err := docRepo.Delete(doc.ID); err != nil {
		flash.WithError(c, fiber.Map{"type": "error", "message": "Could not delete the document"})
		return c.Redirect("/user/plans")
	}
	if err := os.Remove(filepath.Join(doc.FilePath, doc.FileName)); err != nil && !os.IsNotExist(err) {
		fiberlog.Warnf("[Documents] Failed to remove file for %s: %v", doc.UUID, err)
	}

	flash.WithSuccess(c, fiber.Map{"type": "success", "message": "Document deleted"})
	if planErr == nil {
		return c.Redirect("/user/plans/" + plan.UUID)
	}
	return c.Redirect("/user/plans")
}

func respondUploadError(c *fiber.Ctx, status int, message, redirectPath string) error {
	flash.WithError(c, fiber.Map{
		"type":    "error",
		"message": message,
	})
	if isHTMXRequest(c) {
		return c.Status(status).SendString(message)
	}
	return c.Redirect(redirectPath)
}

func isHTMXRequest(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

func calculateFileHash(file io.Reader) (string, error) {
	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func markHandledResponse(err error) error {
	if err != nil {
		return err
	}
	return errUploadResponseHandled
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGT"[exp])
}
