// Package scheduler runs recurring maintenance on a cron schedule.
package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/atlas/internal/audit"
	"github.com/mrlokans/atlas/internal/tasks"
)

// AuditCleanupScheduler prunes audit history past the retention window on a
// cron schedule. Sweeps go through the task queue when one is attached and
// fall back to an inline delete otherwise.
type AuditCleanupScheduler struct {
	taskClient    *tasks.Client
	auditService  *audit.Service
	schedule      string
	retentionDays int

	cron *cron.Cron

	mu       sync.Mutex
	running  bool
	sweeping bool
}

// NewAuditCleanupScheduler creates a scheduler. The schedule uses the
// standard five-field cron format, e.g. "0 3 * * *" for daily at 03:00.
func NewAuditCleanupScheduler(taskClient *tasks.Client, auditService *audit.Service, schedule string, retentionDays int) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		taskClient:    taskClient,
		auditService:  auditService,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(),
	}
}

// Start registers the sweep and starts the cron loop. A scheduler with an
// empty schedule stays idle. Starting twice is a no-op.
func (s *AuditCleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if s.schedule == "" {
		log.Printf("Audit cleanup scheduler: disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runCleanup); err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.running = true
	log.Printf("Audit cleanup scheduler: running %q, retention %d days",
		s.schedule, s.retentionDays)
	return nil
}

// Stop halts the cron loop and waits for an in-flight sweep to return.
// The mutex is released before waiting so the sweep can finish.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	log.Printf("Audit cleanup scheduler: stopped")
}

// runCleanup enqueues the cleanup task, falling back to an inline delete
// when the task queue is not running. Overlapping runs are skipped.
func (s *AuditCleanupScheduler) runCleanup() {
	s.mu.Lock()
	if s.sweeping {
		s.mu.Unlock()
		log.Printf("Audit cleanup: skipped (already running)")
		return
	}
	s.sweeping = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.sweeping = false
		s.mu.Unlock()
	}()

	if s.taskClient != nil {
		_, err := s.taskClient.Add(tasks.CleanupAuditEventsTask{RetentionDays: s.retentionDays}).Save()
		if err == nil {
			log.Printf("Audit cleanup: queued cleanup task")
			return
		}
		log.Printf("Audit cleanup: failed to queue task, deleting inline: %v", err)
	}

	if s.auditService == nil {
		log.Printf("Audit cleanup: skipped (no audit service)")
		return
	}

	retentionDays := s.retentionDays
	if retentionDays <= 0 {
		retentionDays = 30
	}

	deleted, err := s.auditService.DeleteOldEvents(time.Duration(retentionDays) * 24 * time.Hour)
	if err != nil {
		log.Printf("Audit cleanup: failed to delete old events: %v", err)
		return
	}
	log.Printf("Audit cleanup: deleted %d events older than %d days", deleted, retentionDays)
}
