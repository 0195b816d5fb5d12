package audit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditRepo "github.com/mrlokans/atlas/internal/database/audit"
	"github.com/mrlokans/atlas/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	repo := auditRepo.NewRepository(db)
	svc := NewService(repo)

	return svc, db
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventLookup,
		Action:      "country_fetched",
		Description: "Fetched country data for Japan",
		Status:      entities.AuditStatusSuccess,
	}

	err := svc.Log(event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "country_fetched", saved.Action)
}

func TestService_LogLookup(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful lookup", func(t *testing.T) {
		svc.LogLookup("Japan", nil)

		// Allow async operation to complete
		time.Sleep(50 * time.Millisecond)

		var event entities.AuditEvent
		err := db.Where("description = ?", "Fetched country data for Japan").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
	})

	t.Run("failed lookup", func(t *testing.T) {
		svc.LogLookup("Atlantis", errors.New("country not found"))

		time.Sleep(50 * time.Millisecond)

		var event entities.AuditEvent
		err := db.Where("description = ?", "Fetched country data for Atlantis").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Contains(t, event.ErrorMsg, "country not found")
	})
}

func TestService_LogFavouriteSaved(t *testing.T) {
	svc, db := setupTestService(t)

	favourite := &entities.FavouriteCountry{
		ID:         "0b7cf0f4-9f91-4f5a-a3db-8a4e1a2b1c6d",
		Name:       "Japan",
		Population: 125124989,
		Region:     "Asia",
		ImageURL:   "https://img.example/japan.jpg",
	}
	svc.LogFavouriteSaved(favourite)

	time.Sleep(50 * time.Millisecond)

	var event entities.AuditEvent
	err := db.Where("action = ?", "favourite_saved").First(&event).Error
	require.NoError(t, err)
	assert.Equal(t, entities.AuditEventFavourite, event.EventType)
	assert.Equal(t, favourite.ID, event.EntityID)
	assert.Contains(t, event.Metadata, "has_image")
}

func TestService_LogFavouriteDeleted(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogFavouriteDeleted("0b7cf0f4-9f91-4f5a-a3db-8a4e1a2b1c6d", "Japan")

	time.Sleep(50 * time.Millisecond)

	var event entities.AuditEvent
	err := db.Where("action = ?", "favourite_deleted").First(&event).Error
	require.NoError(t, err)
	assert.Equal(t, entities.AuditEventFavourite, event.EventType)
	assert.Contains(t, event.Description, "Japan")
}

func TestService_LogComparison(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful comparison", func(t *testing.T) {
		svc.LogComparison("China", "India", nil)

		time.Sleep(50 * time.Millisecond)

		var event entities.AuditEvent
		err := db.Where("description = ?", "Compared populations of China and India").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditEventComparison, event.EventType)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
	})

	t.Run("failed comparison", func(t *testing.T) {
		svc.LogComparison("Atlantis", "France", errors.New("country not found"))

		time.Sleep(50 * time.Millisecond)

		var event entities.AuditEvent
		err := db.Where("description = ?", "Compared populations of Atlantis and France").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Contains(t, event.ErrorMsg, "country not found")
	})
}

func TestService_Events(t *testing.T) {
	svc, _ := setupTestService(t)

	favouriteID := "0b7cf0f4-9f91-4f5a-a3db-8a4e1a2b1c6d"
	seed := []entities.AuditEvent{
		{EventType: entities.AuditEventLookup, Action: "country_fetched"},
		{EventType: entities.AuditEventLookup, Action: "country_fetched"},
		{EventType: entities.AuditEventFavourite, Action: "favourite_saved", EntityID: favouriteID},
		{EventType: entities.AuditEventFavourite, Action: "favourite_saved", EntityID: "another-id"},
	}
	for i := range seed {
		seed[i].Status = entities.AuditStatusSuccess
		require.NoError(t, svc.Log(&seed[i]))
	}

	t.Run("unfiltered", func(t *testing.T) {
		events, total, err := svc.Events(EventQuery{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, events, 4)
	})

	t.Run("filtered to one favourite", func(t *testing.T) {
		events, total, err := svc.Events(EventQuery{EntityID: favouriteID, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, events, 1)
		assert.Equal(t, "favourite_saved", events[0].Action)
	})
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, db := setupTestService(t)

	// Create old event
	oldEvent := &entities.AuditEvent{
		EventType: entities.AuditEventLookup,
		Action:    "old",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, db.Create(oldEvent).Error)

	// Create new event
	newEvent := &entities.AuditEvent{
		EventType: entities.AuditEventComparison,
		Action:    "new",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(newEvent).Error)

	// Delete events older than 24 hours
	deleted, err := svc.DeleteOldEvents(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining []entities.AuditEvent
	db.Where("event_type <> ?", entities.AuditEventMaintenance).Find(&remaining)
	require.Len(t, remaining, 1)
	assert.Equal(t, "new", remaining[0].Action)

	// The sweep itself shows up in the trail
	time.Sleep(50 * time.Millisecond)
	var sweep entities.AuditEvent
	err = db.Where("action = ?", "trail_pruned").First(&sweep).Error
	require.NoError(t, err)
	assert.Equal(t, entities.AuditEventMaintenance, sweep.EventType)
	assert.Contains(t, sweep.Description, "1 audit events")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10c", 10, "exactly10c"},
		{"this is a very long string", 10, "this is..."},
		{"", 5, ""},
	}

	for _, tc := range tests {
		result := truncate(tc.input, tc.maxLen)
		assert.Equal(t, tc.expected, result)
	}
}
