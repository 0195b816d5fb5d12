package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mrlokans/atlas/internal/database/audit"
	"github.com/mrlokans/atlas/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// logOutcome stamps the event with the operation outcome and records it in
// the background. A non-nil err marks the event failed and keeps a bounded
// copy of the message.
func (s *Service) logOutcome(event *entities.AuditEvent, err error) {
	event.Status = entities.AuditStatusSuccess
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

// LogLookup records a country lookup event.
func (s *Service) LogLookup(name string, err error) {
	s.logOutcome(&entities.AuditEvent{
		EventType:   entities.AuditEventLookup,
		Action:      "country_fetched",
		Description: "Fetched country data for " + name,
	}, err)
}

// LogFavouriteSaved records a favourite creation event.
func (s *Service) LogFavouriteSaved(favourite *entities.FavouriteCountry) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventFavourite,
		Action:      "favourite_saved",
		Description: "Saved " + favourite.Name + " to favourites",
		EntityID:    favourite.ID,
	}

	metadata := map[string]any{
		"population": favourite.Population,
		"region":     favourite.Region,
		"has_image":  favourite.ImageURL != "",
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	s.logOutcome(event, nil)
}

// LogFavouriteUpdated records a favourite update event.
func (s *Service) LogFavouriteUpdated(favourite *entities.FavouriteCountry) {
	s.logOutcome(&entities.AuditEvent{
		EventType:   entities.AuditEventFavourite,
		Action:      "favourite_updated",
		Description: "Updated favourite " + favourite.Name,
		EntityID:    favourite.ID,
	}, nil)
}

// LogFavouriteDeleted records a favourite deletion event.
func (s *Service) LogFavouriteDeleted(id, name string) {
	s.logOutcome(&entities.AuditEvent{
		EventType:   entities.AuditEventFavourite,
		Action:      "favourite_deleted",
		Description: "Deleted favourite: " + name,
		EntityID:    id,
	}, nil)
}

// LogComparison records a population comparison event.
func (s *Service) LogComparison(name1, name2 string, err error) {
	s.logOutcome(&entities.AuditEvent{
		EventType:   entities.AuditEventComparison,
		Action:      "countries_compared",
		Description: fmt.Sprintf("Compared populations of %s and %s", name1, name2),
	}, err)
}

// LogMediaDestroyed records removal of a hosted image.
func (s *Service) LogMediaDestroyed(publicID string, err error) {
	s.logOutcome(&entities.AuditEvent{
		EventType:   entities.AuditEventMedia,
		Action:      "media_destroyed",
		Description: "Destroyed hosted image " + publicID,
	}, err)
}

// EventQuery narrows a trail listing. Aliased from the repository so
// callers only need this package.
type EventQuery = audit.EventQuery

// Events lists trail entries matching the query, newest first, with the
// total match count.
func (s *Service) Events(q EventQuery) ([]entities.AuditEvent, int64, error) {
	return s.repo.Events(q)
}

// DeleteOldEvents removes events older than the specified duration. A sweep
// that removed anything leaves a maintenance event in the trail.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	deleted, err := s.repo.DeleteOldEvents(cutoff)
	if err != nil || deleted == 0 {
		return deleted, err
	}

	s.logOutcome(&entities.AuditEvent{
		EventType:   entities.AuditEventMaintenance,
		Action:      "trail_pruned",
		Description: fmt.Sprintf("Removed %d audit events past the retention window", deleted),
	}, nil)
	return deleted, nil
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
