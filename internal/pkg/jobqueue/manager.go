package jobqueue

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/env"
	metrics "github.com/VisaPilotUK/VisaPilot/internal/pkg/metrics/counter"
)

// stalledPlanAge is how long a plan may sit in queued/generating before the
// requeue worker considers its job lost and enqueues a fresh one.
const stalledPlanAge = 15 * time.Minute

// Manager manages the global job queue and background tasks
type Manager struct {
	queue              *Queue
	counterFlushTicker *time.Ticker
	stalledPlanTicker  *time.Ticker
	stopCh             chan struct{}
	wg                 sync.WaitGroup
	mu                 sync.Mutex
	running            bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global job queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		workerCount := 5
		if v, err := strconv.Atoi(env.GetEnv("JOBQUEUE_WORKERS", "")); err == nil && v > 0 {
			workerCount = v
		}

		globalManager = &Manager{
			queue:  NewQueue(workerCount),
			stopCh: make(chan struct{}),
		}
	})
	return globalManager
}

// GetQueue returns the managed job queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// Start starts the job queue and background tasks
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[JobQueue Manager] Starting job queue and background tasks")

	// Start the job queue
	m.queue.Start()

	// Start counter flush worker (Redis -> DB) every 5 seconds
	m.counterFlushTicker = time.NewTicker(5 * time.Second)
	m.wg.Add(1)
	go m.counterFlushWorker()

	// Start stalled-plan requeue worker
	m.stalledPlanTicker = time.NewTicker(5 * time.Minute)
	m.wg.Add(1)
	go m.stalledPlanWorker()

	log.Info("[JobQueue Manager] Started successfully")
}

// Stop stops the job queue and background tasks
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[JobQueue Manager] Stopping job queue and background tasks...")

	if m.counterFlushTicker != nil {
		m.counterFlushTicker.Stop()
	}
	if m.stalledPlanTicker != nil {
		m.stalledPlanTicker.Stop()
	}

	// Signal workers to stop. The channel stays closed so workers that
	// read the field late still see the signal; Start replaces it.
	close(m.stopCh)
	m.running = false

	// Wait for background workers to finish
	m.wg.Wait()

	// Stop the job queue
	m.queue.Stop()

	log.Info("[JobQueue Manager] Stopped successfully")
}

// counterFlushWorker periodically flushes view/download counters from Redis to DB
func (m *Manager) counterFlushWorker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Counter flush worker stopping")
			return
		case <-m.counterFlushTicker.C:
			if err := m.flushCountersOnce(); err != nil {
				log.Errorf("[JobQueue Manager] Counter flush error: %v", err)
			}
		}
	}
}

// stalledPlanWorker requeues plans whose generation job was lost (crash,
// Redis flush) and which sat in queued/generating past stalledPlanAge.
func (m *Manager) stalledPlanWorker() {
	defer m.wg.Done()
	log.Infof("[JobQueue Manager] Started stalled plan worker (maxAge: %s)", stalledPlanAge)
	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Stalled plan worker stopping")
			return
		case <-m.stalledPlanTicker.C:
			if err := m.requeueStalledPlans(); err != nil {
				log.Errorf("[JobQueue Manager] Stalled plan check error: %v", err)
			}
		}
	}
}

func (m *Manager) requeueStalledPlans() error {
	db := database.GetDB()
	if db == nil {
		return nil
	}

	cutoff := time.Now().Add(-stalledPlanAge)
	var plans []models.BusinessPlan
	err := db.Where("status IN ? AND updated_at < ?",
		[]string{models.PlanStatusQueued, models.PlanStatusGenerating}, cutoff).
		Limit(20).
		Find(&plans).Error
	if err != nil {
		return err
	}

	for _, plan := range plans {
		log.Warnf("[JobQueue Manager] Requeuing stalled plan %s (status=%s)", plan.UUID, plan.Status)
		payload := PlanGenerationJobPayload{
			PlanID:   plan.ID,
			PlanUUID: plan.UUID,
			UserID:   plan.UserID,
		}
		if _, err := m.queue.EnqueueJob(JobTypePlanGeneration, payload.ToMap()); err != nil {
			log.Errorf("[JobQueue Manager] Failed to requeue plan %s: %v", plan.UUID, err)
			continue
		}
		if err := db.Model(&plan).Update("status", models.PlanStatusQueued).Error; err != nil {
			log.Errorf("[JobQueue Manager] Failed to reset status for plan %s: %v", plan.UUID, err)
		}
	}
	return nil
}

func (m *Manager) flushCountersOnce() error {
	// Flush Redis -> DB (batched CASE update)
	return metrics.FlushAll()
}

// IsRunning returns whether the manager is currently running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
