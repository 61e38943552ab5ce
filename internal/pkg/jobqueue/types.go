package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	JobTypePlanGeneration  JobType = "plan_generation"
	JobTypePDFRender       JobType = "pdf_render"
	JobTypeDocumentArchive JobType = "document_archive"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// PlanGenerationJobPayload contains the payload for plan generation jobs
type PlanGenerationJobPayload struct {
	PlanID   uint   `json:"plan_id"`
	PlanUUID string `json:"plan_uuid"`
	UserID   uint   `json:"user_id"`
}

// ToMap converts the payload to a map for storage
func (p PlanGenerationJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"plan_id":   p.PlanID,
		"plan_uuid": p.PlanUUID,
		"user_id":   p.UserID,
	}
}

// FromMap creates a payload from a map
func PlanGenerationJobPayloadFromMap(data map[string]interface{}) (*PlanGenerationJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload PlanGenerationJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// PDFRenderJobPayload contains the payload for PDF render jobs
type PDFRenderJobPayload struct {
	PlanID   uint   `json:"plan_id"`
	PlanUUID string `json:"plan_uuid"`
	UserID   uint   `json:"user_id"`
}

// ToMap converts the payload to a map for storage
func (p PDFRenderJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"plan_id":   p.PlanID,
		"plan_uuid": p.PlanUUID,
		"user_id":   p.UserID,
	}
}

// FromMap creates a payload from a map
func PDFRenderJobPayloadFromMap(data map[string]interface{}) (*PDFRenderJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload PDFRenderJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// DocumentArchiveJobPayload contains the payload for document archive jobs
type DocumentArchiveJobPayload struct {
	DocumentID   uint   `json:"document_id"`
	DocumentUUID string `json:"document_uuid"`
	FilePath     string `json:"file_path"`
	FileName     string `json:"file_name"`
	FileSize     int64  `json:"file_size"`
}

// ToMap converts the payload to a map for storage
func (p DocumentArchiveJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"document_id":   p.DocumentID,
		"document_uuid": p.DocumentUUID,
		"file_path":     p.FilePath,
		"file_name":     p.FileName,
		"file_size":     p.FileSize,
	}
}

// FromMap creates a payload from a map
func DocumentArchiveJobPayloadFromMap(data map[string]interface{}) (*DocumentArchiveJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload DocumentArchiveJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// IsRetryable checks if the job can be retried
func (j *Job) IsRetryable() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// MarkAsProcessing updates the job status to processing
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.UpdatedAt = now
	j.ProcessedAt = &now
}

// MarkAsCompleted updates the job status to completed
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.UpdatedAt = now
	j.CompletedAt = &now
	j.ErrorMsg = ""
}

// MarkAsFailed updates the job status to failed
func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.UpdatedAt = time.Now()
	j.ErrorMsg = errorMsg
	j.RetryCount++
}

// MarkAsRetrying updates the job status to retrying
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.UpdatedAt = time.Now()
}
