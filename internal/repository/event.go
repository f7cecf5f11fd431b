// internal/repository/event.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/policy"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventRepositoryIface interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	FindPaginated(ctx context.Context, filter policy.FilterSpec) ([]model.Event, int64, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBulk(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) (int64, error)
	ReplaceTags(ctx context.Context, event *model.Event, tags []model.Tag) error
}

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	// Omit the association so tag attachment stays a separate, best-effort
	// step that never aborts event creation.
	result := r.db.WithContext(ctx).Omit("Tags").Create(event)
	if result.Error != nil {
		return fmt.Errorf("failed to create event: %w", result.Error)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var event model.Event
	result := r.db.WithContext(ctx).Preload("Tags").First(&event, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", result.Error)
	}
	return &event, nil
}

// FindPaginated applies a visibility filter and returns one page ordered by
// start_time descending, plus the exact total. Tag filtering runs as an
// EXISTS subquery before LIMIT/OFFSET so pages are always full.
func (r *EventRepository) FindPaginated(ctx context.Context, filter policy.FilterSpec) ([]model.Event, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("organization_id = ?", filter.OrganizationID)

	switch {
	case filter.OwnerID != nil:
		q = q.Where("officer_id = ?", *filter.OwnerID)
	case len(filter.OfficerIDs) > 0:
		q = q.Where("officer_id IN ?", filter.OfficerIDs)
	case filter.OwnDraftsFor != nil:
		q = q.Where("((officer_id = ? AND status = ?) OR status = ?)",
			*filter.OwnDraftsFor, model.EventDraft, model.EventSubmitted)
	}

	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.StartAfter != nil {
		q = q.Where("start_time >= ?", *filter.StartAfter)
	}
	if filter.EndBefore != nil {
		q = q.Where("start_time < ?", *filter.EndBefore)
	}
	if len(filter.TagIDs) > 0 {
		q = q.Where("EXISTS (SELECT 1 FROM event_tags et WHERE et.event_id = events.id AND et.tag_id IN ?)",
			filter.TagIDs)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	var events []model.Event
	result := q.Order("start_time DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Preload("Tags").
		Find(&events)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to find events: %w", result.Error)
	}

	return events, total, nil
}

func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	result := r.db.WithContext(ctx).Omit("Tags").Save(event)
	if result.Error != nil {
		return fmt.Errorf("failed to update event: %w", result.Error)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM event_tags WHERE event_id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting event tags: %w", err)
		}
		if err := tx.Delete(&model.Event{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting event: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// DeleteBulk removes the given events, restricted to orgID. Returns the
// number of events actually deleted.
func (r *EventRepository) DeleteBulk(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM event_tags WHERE event_id IN (SELECT id FROM events WHERE id IN ? AND organization_id = ?)",
			ids, orgID).Error; err != nil {
			return fmt.Errorf("deleting event tags: %w", err)
		}
		result := tx.Where("id IN ? AND organization_id = ?", ids, orgID).Delete(&model.Event{})
		if result.Error != nil {
			return fmt.Errorf("deleting events: %w", result.Error)
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("transaction failed: %w", err)
	}
	return deleted, nil
}

func (r *EventRepository) ReplaceTags(ctx context.Context, event *model.Event, tags []model.Tag) error {
	if err := r.db.WithContext(ctx).Model(event).Association("Tags").Replace(tags); err != nil {
		return fmt.Errorf("replacing event tags: %w", err)
	}
	return nil
}
