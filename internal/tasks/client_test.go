package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	require.NotNil(t, client)

	// Verify tasks database was created
	tasksDBPath := filepath.Join(tmpDir, "test-tasks.db")
	_, err = os.Stat(tasksDBPath)
	assert.NoError(t, err, "tasks database should be created")

	err = client.Close()
	assert.NoError(t, err)
}

func TestClientStartStop(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	defer client.Close()

	// Start client in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)

	// Give it time to start
	time.Sleep(50 * time.Millisecond)

	// Stop should complete successfully
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	success := client.Stop(stopCtx)
	assert.True(t, success, "stop should succeed gracefully")
}

// recordingDestroyer records which public IDs were destroyed.
type recordingDestroyer struct {
	mu        sync.Mutex
	destroyed []string
	err       error
}

func (d *recordingDestroyer) Destroy(ctx context.Context, publicID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.destroyed = append(d.destroyed, publicID)
	return nil
}

func TestDestroyMediaTaskExecution(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	defer client.Close()

	destroyer := &recordingDestroyer{}
	client.Register(NewDestroyMediaQueue(destroyer))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Add(DestroyMediaTask{PublicID: "countries/japan-1a2b3c4d"}).Save()
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	require.Eventually(t, func() bool {
		destroyer.mu.Lock()
		defer destroyer.mu.Unlock()
		return len(destroyer.destroyed) == 1
	}, 5*time.Second, 20*time.Millisecond, "task was not executed within timeout")

	destroyer.mu.Lock()
	assert.Equal(t, "countries/japan-1a2b3c4d", destroyer.destroyed[0])
	destroyer.mu.Unlock()
}

func TestDestroyMediaProcessor(t *testing.T) {
	t.Run("destroys the asset", func(t *testing.T) {
		destroyer := &recordingDestroyer{}
		processor := DestroyMediaProcessor(destroyer)

		err := processor(context.Background(), DestroyMediaTask{PublicID: "countries/japan-1a2b3c4d"})
		require.NoError(t, err)
		assert.Equal(t, []string{"countries/japan-1a2b3c4d"}, destroyer.destroyed)
	})

	t.Run("skips empty public IDs", func(t *testing.T) {
		destroyer := &recordingDestroyer{}
		processor := DestroyMediaProcessor(destroyer)

		err := processor(context.Background(), DestroyMediaTask{})
		require.NoError(t, err)
		assert.Empty(t, destroyer.destroyed)
	})

	t.Run("propagates provider errors for retry", func(t *testing.T) {
		destroyer := &recordingDestroyer{err: errors.New("rate limited")}
		processor := DestroyMediaProcessor(destroyer)

		err := processor(context.Background(), DestroyMediaTask{PublicID: "countries/japan-1a2b3c4d"})
		assert.Error(t, err)
	})
}

func TestDestroyMediaTaskConfig(t *testing.T) {
	task := DestroyMediaTask{PublicID: "countries/japan-1a2b3c4d"}
	cfg := task.Config()

	assert.Equal(t, "destroy_media", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Backoff)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

// fixedCleaner reports a fixed number of deleted events.
type fixedCleaner struct {
	deleted   int64
	retention time.Duration
}

func (c *fixedCleaner) DeleteOldEvents(retention time.Duration) (int64, error) {
	c.retention = retention
	return c.deleted, nil
}

// recordingPruner records the cutoff passed to the dump file sweep.
type recordingPruner struct {
	cutoff  time.Time
	removed int
	err     error
}

func (p *recordingPruner) RemoveOlderThan(cutoff time.Time) (int, error) {
	p.cutoff = cutoff
	return p.removed, p.err
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	t.Run("uses task retention", func(t *testing.T) {
		cleaner := &fixedCleaner{deleted: 7}
		processor := CleanupAuditEventsProcessor(cleaner, nil)

		err := processor(context.Background(), CleanupAuditEventsTask{RetentionDays: 14})
		require.NoError(t, err)
		assert.Equal(t, 14*24*time.Hour, cleaner.retention)
	})

	t.Run("defaults to 30 days", func(t *testing.T) {
		cleaner := &fixedCleaner{}
		processor := CleanupAuditEventsProcessor(cleaner, nil)

		err := processor(context.Background(), CleanupAuditEventsTask{})
		require.NoError(t, err)
		assert.Equal(t, 30*24*time.Hour, cleaner.retention)
	})

	t.Run("sweeps dump files with the same window", func(t *testing.T) {
		cleaner := &fixedCleaner{}
		pruner := &recordingPruner{removed: 3}
		processor := CleanupAuditEventsProcessor(cleaner, pruner)

		before := time.Now().UTC().Add(-14 * 24 * time.Hour)
		err := processor(context.Background(), CleanupAuditEventsTask{RetentionDays: 14})
		after := time.Now().UTC().Add(-14 * 24 * time.Hour)

		require.NoError(t, err)
		assert.False(t, pruner.cutoff.Before(before))
		assert.False(t, pruner.cutoff.After(after))
	})

	t.Run("propagates dump sweep failures", func(t *testing.T) {
		cleaner := &fixedCleaner{}
		pruner := &recordingPruner{err: errors.New("permission denied")}
		processor := CleanupAuditEventsProcessor(cleaner, pruner)

		err := processor(context.Background(), CleanupAuditEventsTask{})
		assert.Error(t, err)
	})

	t.Run("fails without a cleaner", func(t *testing.T) {
		processor := CleanupAuditEventsProcessor(nil, nil)

		err := processor(context.Background(), CleanupAuditEventsTask{})
		assert.Error(t, err)
	})
}

var _ backlite.Task = DestroyMediaTask{}
var _ backlite.Task = CleanupAuditEventsTask{}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{Workers: 4}.withDefaults()

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}

func TestTasksDBPath(t *testing.T) {
	assert.Equal(t, "atlas-tasks.db", filepath.Base(TasksDBPath("./data/atlas.db")))
	assert.Equal(t, "state-tasks.sqlite", filepath.Base(TasksDBPath("state.sqlite")))
}
