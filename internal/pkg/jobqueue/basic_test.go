package jobqueue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBasicJobTypes tests the basic job type constants
func TestBasicJobTypes(t *testing.T) {
	assert.Equal(t, "plan_generation", string(JobTypePlanGeneration))
	assert.Equal(t, "pdf_render", string(JobTypePDFRender))
	assert.Equal(t, "document_archive", string(JobTypeDocumentArchive))
}

// TestBasicJobStatus tests the basic job status constants
func TestBasicJobStatus(t *testing.T) {
	assert.Equal(t, "pending", string(JobStatusPending))
	assert.Equal(t, "processing", string(JobStatusProcessing))
	assert.Equal(t, "completed", string(JobStatusCompleted))
	assert.Equal(t, "failed", string(JobStatusFailed))
	assert.Equal(t, "retrying", string(JobStatusRetrying))
}

// TestJob_BasicMethods tests basic job methods
func TestJob_BasicMethods(t *testing.T) {
	job := &Job{
		Status:     JobStatusFailed,
		RetryCount: 1,
		MaxRetries: 3,
	}

	// Test IsRetryable
	assert.True(t, job.IsRetryable())

	job.RetryCount = 3
	assert.False(t, job.IsRetryable())

	// Test status transitions
	beforeTime := time.Now()

	job.MarkAsProcessing()
	assert.Equal(t, JobStatusProcessing, job.Status)
	assert.NotNil(t, job.ProcessedAt)
	assert.True(t, job.UpdatedAt.After(beforeTime))

	job.MarkAsCompleted()
	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.NotNil(t, job.CompletedAt)
	assert.Empty(t, job.ErrorMsg)

	job.MarkAsFailed("test error")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "test error", job.ErrorMsg)
	assert.Equal(t, 4, job.RetryCount)

	job.MarkAsRetrying()
	assert.Equal(t, JobStatusRetrying, job.Status)
}

// TestPlanGenerationJobPayload_Serialization tests payload serialization
func TestPlanGenerationJobPayload_Serialization(t *testing.T) {
	payload := PlanGenerationJobPayload{
		PlanID:   123,
		PlanUUID: "test-uuid",
		UserID:   42,
	}

	// Test ToMap
	data := payload.ToMap()
	expected := map[string]interface{}{
		"plan_id":   uint(123),
		"plan_uuid": "test-uuid",
		"user_id":   uint(42),
	}
	assert.Equal(t, expected, data)

	// Test FromMap
	result, err := PlanGenerationJobPayloadFromMap(data)
	require.NoError(t, err)
	assert.Equal(t, &payload, result)
}

// TestJobSerialization tests full job JSON serialization
func TestJobSerialization(t *testing.T) {
	now := time.Now()
	job := &Job{
		ID:         "test-job-123",
		Type:       JobTypePlanGeneration,
		Status:     JobStatusPending,
		Payload:    map[string]interface{}{"test": "data"},
		CreatedAt:  now,
		UpdatedAt:  now,
		RetryCount: 0,
		MaxRetries: 3,
	}

	// Test JSON marshaling
	jsonData, err := json.Marshal(job)
	require.NoError(t, err)

	// Test JSON unmarshaling
	var result Job
	err = json.Unmarshal(jsonData, &result)
	require.NoError(t, err)

	assert.Equal(t, job.ID, result.ID)
	assert.Equal(t, job.Type, result.Type)
	assert.Equal(t, job.Status, result.Status)
	assert.Equal(t, job.Payload, result.Payload)
	assert.Equal(t, job.RetryCount, result.RetryCount)
	assert.Equal(t, job.MaxRetries, result.MaxRetries)
}

// TestBasicNewQueue tests queue creation
func TestBasicNewQueue(t *testing.T) {
	t.Run("Valid worker count", func(t *testing.T) {
		queue := NewQueue(5)
		assert.NotNil(t, queue)
		assert.Equal(t, 5, queue.workers)
		assert.Equal(t, 5, cap(queue.workerPool))
		assert.NotNil(t, queue.stopCh)
		assert.False(t, queue.running)
	})

	t.Run("Zero workers defaults to 3", func(t *testing.T) {
		queue := NewQueue(0)
		assert.Equal(t, 3, queue.workers)
		assert.Equal(t, 3, cap(queue.workerPool))
	})

	t.Run("Negative workers defaults to 3", func(t *testing.T) {
		queue := NewQueue(-1)
		assert.Equal(t, 3, queue.workers)
		assert.Equal(t, 3, cap(queue.workerPool))
	})
}

// TestBasicConstants tests package constants
func TestBasicConstants(t *testing.T) {
	assert.Equal(t, "job:", JobKeyPrefix)
	assert.Equal(t, "job_queue", JobQueueKey)
	assert.Equal(t, "job_processing", JobProcessingKey)
	assert.Equal(t, "job_stats", JobStatsKey)
	assert.Equal(t, 3, DefaultMaxRetries)
	assert.Equal(t, 24*time.Hour, JobTTL)
}

// TestPayloadFromMapErrors tests error handling in payload deserialization
func TestPayloadFromMapErrors(t *testing.T) {
	t.Run("PlanGenerationJobPayload invalid data", func(t *testing.T) {
		invalidData := map[string]interface{}{
			"invalid": make(chan int), // Channels can't be marshaled to JSON
		}

		payload, err := PlanGenerationJobPayloadFromMap(invalidData)
		assert.Error(t, err)
		assert.Nil(t, payload)
	})
}
