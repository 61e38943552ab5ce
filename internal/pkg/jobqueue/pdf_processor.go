package jobqueue

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2/log"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/constants"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/docstore"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/pdfwriter"
)

// processPDFRenderJob renders the generated plan content to a PDF, records it
// as a generated document and queues archival when the document store is on.
func (q *Queue) processPDFRenderJob(ctx context.Context, job *Job) error {
	payload, err := PDFRenderJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("failed to parse PDF render payload: %w", err)
	}

	log.Infof("[PDFRender] Rendering plan %s (ID: %d)", payload.PlanUUID, payload.PlanID)

	db := database.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var plan models.BusinessPlan
	if err := db.Where("uuid = ?", payload.PlanUUID).First(&plan).Error; err != nil {
		return fmt.Errorf("failed to find plan %s: %w", payload.PlanUUID, err)
	}

	if plan.GeneratedContent == "" {
		return fmt.Errorf("plan %s has no generated content to render", plan.UUID)
	}

	pdfBytes, err := pdfwriter.Render(plan.BusinessName, plan.GeneratedContent)
	if err != nil {
		return fmt.Errorf("failed to render PDF for plan %s: %w", plan.UUID, err)
	}

	dir := filepath.Join(constants.UploadsPath, "plans")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create plans directory: %w", err)
	}

	fileName := plan.UUID + ".pdf"
	if err := os.WriteFile(filepath.Join(dir, fileName), pdfBytes, 0644); err != nil {
		return fmt.Errorf("failed to write PDF for plan %s: %w", plan.UUID, err)
	}

	pdfURL := constants.UploadsRoute + "/plans/" + fileName
	if err := db.Model(&plan).Update("pdf_url", pdfURL).Error; err != nil {
		return fmt.Errorf("failed to store PDF URL: %w", err)
	}

	doc := models.Document{
		PlanID:   plan.ID,
		UserID:   plan.UserID,
		Kind:     models.DocumentKindGenerated,
		FileName: fileName,
		FilePath: dir,
		FileSize: int64(len(pdfBytes)),
		MimeType: "application/pdf",
	}
	if err := db.Create(&doc).Error; err != nil {
		return fmt.Errorf("failed to record generated document: %w", err)
	}

	log.Infof("[PDFRender] Plan %s rendered to %s (%d bytes)", plan.UUID, pdfURL, len(pdfBytes))

	// Queue archival to the document store when configured
	if cfg, err := docstore.LoadConfig(); err == nil && cfg.IsEnabled() {
		archivePayload := DocumentArchiveJobPayload{
			DocumentID:   doc.ID,
			DocumentUUID: doc.UUID,
			FilePath:     doc.FilePath,
			FileName:     doc.FileName,
			FileSize:     doc.FileSize,
		}
		if _, err := q.EnqueueJob(JobTypeDocumentArchive, archivePayload.ToMap()); err != nil {
			log.Errorf("[PDFRender] Failed to enqueue archive for document %s: %v", doc.UUID, err)
		}
	}

	return nil
}
