package controllers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/VisaPilotUK/VisaPilot/internal/pkg/cache"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/jobqueue"
)

// QueueItem is one Redis entry shown in the admin cache monitor.
type QueueItem struct {
	Key       string        `json:"key"`
	Value     string        `json:"value"`
	Type      string        `json:"type"`
	TTL       time.Duration `json:"ttl"`
	Size      int64         `json:"size"`
	CreatedAt time.Time     `json:"created_at"`
}

// HandleAdminQueues displays the admin queue monitor page
func HandleAdminQueues(c *fiber.Ctx) error {
	queueItems, err := getQueueItems()
	if err != nil {
		queueItems = []QueueItem{}
	}

	stats, _ := jobqueue.GetManager().GetQueue().GetJobStats(c.Context())

	return render(c, "admin/queues", fiber.Map{
		"Page":        "admin-queues",
		"QueueItems":  queueItems,
		"JobStats":    stats,
		"RefreshedAt": time.Now(),
	})
}

// HandleAdminQueuesData returns the queue state as JSON for live refresh
func HandleAdminQueuesData(c *fiber.Ctx) error {
	queueItems, err := getQueueItems()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to fetch queue data: %v", err),
		})
	}

	stats, _ := jobqueue.GetManager().GetQueue().GetJobStats(c.Context())

	return c.JSON(fiber.Map{
		"items":        queueItems,
		"job_stats":    stats,
		"refreshed_at": time.Now(),
	})
}

// HandleAdminQueueDelete deletes a specific cache entry
func HandleAdminQueueDelete(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Key is required")
	}

	redisClient := cache.GetClient()
	ctx := context.Background()

	result, err := redisClient.Del(ctx, key).Result()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("Delete failed: %v", err))
	}

	if result == 0 {
		return c.Status(fiber.StatusNotFound).SendString("Entry not found")
	}

	return c.SendString("")
}

// getQueueItems retrieves all items from the cache with their metadata
func getQueueItems() ([]QueueItem, error) {
	redisClient := cache.GetClient()
	ctx := context.Background()

	// Get all keys (use SCAN for production environments with large key sets)
	keys, err := redisClient.Keys(ctx, "*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list cache keys: %v", err)
	}

	queueItems := make([]QueueItem, 0, len(keys))

	for _, key := range keys {
		value, err := redisClient.Get(ctx, key).Result()
		if err != nil && err != redis.Nil {
			// Skip this key if there's an error other than key not found
			continue
		}

		ttl, err := redisClient.TTL(ctx, key).Result()
		if err != nil {
			ttl = -1
		}

		// Determine type based on key prefix
		itemType := "unknown"
		displayValue := value

		if strings.HasPrefix(key, jobqueue.JobKeyPrefix) {
			itemType = "job"
			jobID := strings.TrimPrefix(key, jobqueue.JobKeyPrefix)
			displayValue = fmt.Sprintf("Job %s: %s", jobID, getJobStatusFromValue(value))
		} else if key == jobqueue.JobQueueKey {
			itemType = "job_queue"
			queueSize, _ := redisClient.LLen(ctx, key).Result()
			displayValue = fmt.Sprintf("Queued (%d jobs)", queueSize)
		} else if key == jobqueue.JobProcessingKey {
			itemType = "job_processing"
			processingSize, _ := redisClient.LLen(ctx, key).Result()
			displayValue = fmt.Sprintf("Processing (%d jobs)", processingSize)
		} else if key == jobqueue.JobStatsKey {
			itemType = "job_stats"
			displayValue = "Job statistics"
		} else if strings.HasPrefix(key, "plan:counters:") {
			itemType = "plan_counter"
		} else if strings.HasPrefix(key, "chat_history:") {
			itemType = "chat_history"
		} else if strings.HasPrefix(key, "session:") {
			itemType = "session"
		}

		// Get memory usage (approximate for the value only)
		size := int64(len(value))

		// Use current time as creation time since Redis doesn't store this
		createdAt := time.Now()
		if ttl > 0 {
			// Estimate key age against the queue's 24h job TTL policy.
			maxTTL := 24 * time.Hour
			estimatedAge := maxTTL - ttl
			if estimatedAge > 0 && estimatedAge < maxTTL {
				createdAt = time.Now().Add(-estimatedAge)
			}
		}

		queueItems = append(queueItems, QueueItem{
			Key:       key,
			Value:     displayValue,
			Type:      itemType,
			TTL:       ttl,
			Size:      size,
			CreatedAt: createdAt,
		})
	}

	// Sort by type and then by creation time (newest first)
	sort.Slice(queueItems, func(i, j int) bool {
		if queueItems[i].Type != queueItems[j].Type {
			return queueItems[i].Type < queueItems[j].Type
		}
		return queueItems[i].CreatedAt.After(queueItems[j].CreatedAt)
	})

	return queueItems, nil
}

// getJobStatusFromValue extracts job status from JSON job data
func getJobStatusFromValue(jsonValue string) string {
	if strings.Contains(jsonValue, `"status":"pending"`) {
		return "pending"
	} else if strings.Contains(jsonValue, `"status":"processing"`) {
		return "processing"
	} else if strings.Contains(jsonValue, `"status":"completed"`) {
		return "completed"
	} else if strings.Contains(jsonValue, `"status":"failed"`) {
		return "failed"
	} else if strings.Contains(jsonValue, `"status":"retrying"`) {
		return "retrying"
	}
	return "unknown"
}
