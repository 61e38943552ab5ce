package jobqueue

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/docstore"
)

// processDocumentArchiveJob copies a local document into the S3 document
// store and records the object key on success.
func (q *Queue) processDocumentArchiveJob(ctx context.Context, job *Job) error {
	payload, err := DocumentArchiveJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("failed to parse document archive payload: %w", err)
	}

	log.Infof("[DocArchive] Archiving document %s (ID: %d)", payload.DocumentUUID, payload.DocumentID)

	config, err := docstore.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load document store config: %w", err)
	}
	if !config.IsEnabled() {
		log.Infof("[DocArchive] Document store disabled, skipping document %s", payload.DocumentUUID)
		return nil
	}

	client, err := docstore.NewClient(config)
	if err != nil {
		return fmt.Errorf("failed to create document store client: %w", err)
	}

	db := database.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var doc models.Document
	if err := db.First(&doc, payload.DocumentID).Error; err != nil {
		return fmt.Errorf("failed to find document %d: %w", payload.DocumentID, err)
	}

	if doc.IsArchived() {
		log.Infof("[DocArchive] Document %s already archived as %s", doc.UUID, doc.ObjectKey)
		return nil
	}

	fullPath := filepath.Join(payload.FilePath, payload.FileName)
	now := time.Now()
	objectKey := config.GetObjectKey(doc.UUID, filepath.Ext(payload.FileName), now.Year(), int(now.Month()))

	result, err := client.UploadFile(fullPath, objectKey)
	if err != nil {
		return fmt.Errorf("failed to upload document %s: %w", doc.UUID, err)
	}

	if err := db.Model(&doc).Update("object_key", result.ObjectKey).Error; err != nil {
		return fmt.Errorf("failed to record object key for document %s: %w", doc.UUID, err)
	}

	log.Infof("[DocArchive] Document %s archived to %s/%s (%d bytes)",
		doc.UUID, result.BucketName, result.ObjectKey, result.Size)
	return nil
}
