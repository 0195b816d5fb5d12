package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

const defaultRetentionDays = 30

// AuditEventCleaner deletes audit events past a retention window.
type AuditEventCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// AuditFilePruner removes on-disk audit dumps older than a cutoff.
type AuditFilePruner interface {
	RemoveOlderThan(cutoff time.Time) (int, error)
}

// CleanupAuditEventsTask prunes audit records past the retention period. The
// same window applies to the database trail and the on-disk request dumps.
type CleanupAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

// window returns the retention period, falling back to the default when the
// task carries no usable day count.
func (t CleanupAuditEventsTask) window() time.Duration {
	days := t.RetentionDays
	if days <= 0 {
		days = defaultRetentionDays
	}
	return time.Duration(days) * 24 * time.Hour
}

func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_audit_events",
		MaxAttempts: 2,
		Backoff:     10 * time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupAuditEventsProcessor creates a processor for audit retention.
// A nil pruner skips the on-disk sweep.
func CleanupAuditEventsProcessor(cleaner AuditEventCleaner, files AuditFilePruner) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		if cleaner == nil {
			return fmt.Errorf("no audit event cleaner wired into the queue")
		}

		window := task.window()
		deleted, err := cleaner.DeleteOldEvents(window)
		if err != nil {
			return fmt.Errorf("pruning audit trail: %w", err)
		}

		removed := 0
		if files != nil {
			removed, err = files.RemoveOlderThan(time.Now().UTC().Add(-window))
			if err != nil {
				return fmt.Errorf("pruning audit dumps: %w", err)
			}
		}

		log.Printf("[TASK] Cleaned up %d audit events and %d dump files older than %d days",
			deleted, removed, int(window/(24*time.Hour)))
		return nil
	}
}

func NewCleanupAuditEventsQueue(cleaner AuditEventCleaner, files AuditFilePruner) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner, files))
}
