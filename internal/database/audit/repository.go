package audit

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/atlas/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.Create(event).Error
}

// EventQuery narrows a trail listing. Zero-valued fields do not filter, so
// the zero query pages through the whole trail. Type and EntityID combine
// with AND when both are set.
type EventQuery struct {
	Type     entities.AuditEventType
	EntityID string
	Limit    int
	Offset   int
}

// Events returns the matching events newest first, together with the total
// match count for pagination envelopes.
func (r *Repository) Events(q EventQuery) ([]entities.AuditEvent, int64, error) {
	tx := r.db.Model(&entities.AuditEvent{})
	if q.Type != "" {
		tx = tx.Where("event_type = ?", q.Type)
	}
	if q.EntityID != "" {
		tx = tx.Where("entity_id = ?", q.EntityID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	var events []entities.AuditEvent
	err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&events).Error
	return events, total, err
}

// CountOlderThan reports how many events were created before the cutoff.
func (r *Repository) CountOlderThan(cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entities.AuditEvent{}).Where("created_at < ?", cutoff).Count(&count).Error
	return count, err
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(olderThan time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", olderThan).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}
