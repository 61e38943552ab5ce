package jobqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobType(t *testing.T) {
	tests := []struct {
		name     string
		jobType  JobType
		expected string
	}{
		{"Plan Generation", JobTypePlanGeneration, "plan_generation"},
		{"PDF Render", JobTypePDFRender, "pdf_render"},
		{"Document Archive", JobTypeDocumentArchive, "document_archive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.jobType))
		})
	}
}

func TestJobStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   JobStatus
		expected string
	}{
		{"Pending", JobStatusPending, "pending"},
		{"Processing", JobStatusProcessing, "processing"},
		{"Completed", JobStatusCompleted, "completed"},
		{"Failed", JobStatusFailed, "failed"},
		{"Retrying", JobStatusRetrying, "retrying"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.status))
		})
	}
}

func TestJob_IsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		job       *Job
		retryable bool
	}{
		{
			name: "Failed job with retries remaining",
			job: &Job{
				Status:     JobStatusFailed,
				RetryCount: 1,
				MaxRetries: 3,
			},
			retryable: true,
		},
		{
			name: "Failed job with retries exhausted",
			job: &Job{
				Status:     JobStatusFailed,
				RetryCount: 3,
				MaxRetries: 3,
			},
			retryable: false,
		},
		{
			name: "Pending job is not retryable",
			job: &Job{
				Status:     JobStatusPending,
				RetryCount: 0,
				MaxRetries: 3,
			},
			retryable: false,
		},
		{
			name: "Completed job is not retryable",
			job: &Job{
				Status:     JobStatusCompleted,
				RetryCount: 1,
				MaxRetries: 3,
			},
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, tt.job.IsRetryable())
		})
	}
}

func TestJob_StatusTransitions(t *testing.T) {
	job := &Job{
		ID:         "transition-test",
		Type:       JobTypePlanGeneration,
		Status:     JobStatusPending,
		MaxRetries: 3,
	}

	job.MarkAsProcessing()
	assert.Equal(t, JobStatusProcessing, job.Status)
	require.NotNil(t, job.ProcessedAt)
	assert.WithinDuration(t, time.Now(), *job.ProcessedAt, time.Second)

	job.MarkAsFailed("provider timeout")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "provider timeout", job.ErrorMsg)
	assert.Equal(t, 1, job.RetryCount)

	job.MarkAsRetrying()
	assert.Equal(t, JobStatusRetrying, job.Status)
	assert.Equal(t, "provider timeout", job.ErrorMsg, "retrying keeps the last error")

	job.MarkAsCompleted()
	assert.Equal(t, JobStatusCompleted, job.Status)
	require.NotNil(t, job.CompletedAt)
	assert.Empty(t, job.ErrorMsg, "completion clears the error")
}

func TestPlanGenerationJobPayload_RoundTrip(t *testing.T) {
	payload := PlanGenerationJobPayload{
		PlanID:   77,
		PlanUUID: "0f6b2c1e-plan",
		UserID:   9,
	}

	result, err := PlanGenerationJobPayloadFromMap(payload.ToMap())
	require.NoError(t, err)
	assert.Equal(t, &payload, result)
}

func TestPDFRenderJobPayload_RoundTrip(t *testing.T) {
	payload := PDFRenderJobPayload{
		PlanID:   77,
		PlanUUID: "0f6b2c1e-plan",
		UserID:   9,
	}

	data := payload.ToMap()
	assert.Equal(t, uint(77), data["plan_id"])
	assert.Equal(t, "0f6b2c1e-plan", data["plan_uuid"])

	result, err := PDFRenderJobPayloadFromMap(data)
	require.NoError(t, err)
	assert.Equal(t, &payload, result)
}

func TestDocumentArchiveJobPayload_RoundTrip(t *testing.T) {
	payload := DocumentArchiveJobPayload{
		DocumentID:   5,
		DocumentUUID: "doc-uuid",
		FilePath:     "uploads/plans",
		FileName:     "doc-uuid.pdf",
		FileSize:     2048,
	}

	data := payload.ToMap()
	assert.Equal(t, int64(2048), data["file_size"])

	result, err := DocumentArchiveJobPayloadFromMap(data)
	require.NoError(t, err)
	assert.Equal(t, &payload, result)
}

func TestPayloadFromMap_JSONNumbers(t *testing.T) {
	// Payloads read back from Redis arrive as JSON numbers (float64),
	// not the original Go integer types.
	data := map[string]interface{}{
		"plan_id":   float64(123),
		"plan_uuid": "redis-roundtrip",
		"user_id":   float64(42),
	}

	payload, err := PlanGenerationJobPayloadFromMap(data)
	require.NoError(t, err)
	assert.Equal(t, uint(123), payload.PlanID)
	assert.Equal(t, "redis-roundtrip", payload.PlanUUID)
	assert.Equal(t, uint(42), payload.UserID)
}
