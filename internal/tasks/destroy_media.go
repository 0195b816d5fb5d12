package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// MediaDestroyer defines the interface for removing hosted images.
type MediaDestroyer interface {
	Destroy(ctx context.Context, publicID string) error
}

// DestroyMediaTask removes a single hosted image that is no longer
// referenced by any favourite.
type DestroyMediaTask struct {
	PublicID string `json:"public_id"`
}

func (t DestroyMediaTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "destroy_media",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     1 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// DestroyMediaProcessor creates a processor for media asset removal.
func DestroyMediaProcessor(uploader MediaDestroyer) backlite.QueueProcessor[DestroyMediaTask] {
	return func(ctx context.Context, task DestroyMediaTask) error {
		if task.PublicID == "" {
			return nil
		}

		if err := uploader.Destroy(ctx, task.PublicID); err != nil {
			return fmt.Errorf("destroy media asset %q: %w", task.PublicID, err)
		}

		log.Printf("[TASK] Destroyed media asset %q", task.PublicID)
		return nil
	}
}

func NewDestroyMediaQueue(uploader MediaDestroyer) backlite.Queue {
	return backlite.NewQueue(DestroyMediaProcessor(uploader))
}
