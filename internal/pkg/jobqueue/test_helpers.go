//go:build test
// +build test

package jobqueue

import (
	"time"
)

// TestJobFactory creates test jobs for different types
func TestJobFactory() map[JobType]*Job {
	now := time.Now()

	return map[JobType]*Job{
		JobTypePlanGeneration: {
			ID:     "test-plan-job",
			Type:   JobTypePlanGeneration,
			Status: JobStatusPending,
			Payload: PlanGenerationJobPayload{
				PlanID:   123,
				PlanUUID: "test-plan-uuid",
				UserID:   1,
			}.ToMap(),
			CreatedAt:  now,
			UpdatedAt:  now,
			RetryCount: 0,
			MaxRetries: 3,
		},
		JobTypeDocumentArchive: {
			ID:     "test-archive-job",
			Type:   JobTypeDocumentArchive,
			Status: JobStatusPending,
			Payload: DocumentArchiveJobPayload{
				DocumentID:   5,
				DocumentUUID: "test-doc-uuid",
				FilePath:     "uploads/plans",
				FileName:     "test-doc-uuid.pdf",
				FileSize:     1024,
			}.ToMap(),
			CreatedAt:  now,
			UpdatedAt:  now,
			RetryCount: 0,
			MaxRetries: 3,
		},
	}
}

// WaitForCondition waits for a condition to be true with timeout
func WaitForCondition(condition func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}
