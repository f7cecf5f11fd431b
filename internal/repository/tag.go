// internal/repository/tag.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagRepositoryIface interface {
	Create(ctx context.Context, tag *model.Tag) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tag, error)
	FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.Tag, error)
	FindByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]model.Tag, error)
	Update(ctx context.Context, tag *model.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	result := r.db.WithContext(ctx).Create(tag)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domain.ErrTagNameTaken
		}
		return fmt.Errorf("failed to create tag: %w", result.Error)
	}
	return nil
}

func (r *TagRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	var tag model.Tag
	result := r.db.WithContext(ctx).First(&tag, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to find tag: %w", result.Error)
	}
	return &tag, nil
}

func (r *TagRepository) FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.Tag, error) {
	var tags []model.Tag
	result := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("name ASC").
		Find(&tags)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find tags: %w", result.Error)
	}
	return tags, nil
}

// FindByIDs returns the subset of ids that exist within orgID. Used to keep
// cross-tenant tag ids out of event associations.
func (r *TagRepository) FindByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]model.Tag, error) {
	var tags []model.Tag
	result := r.db.WithContext(ctx).
		Where("organization_id = ? AND id IN ?", orgID, ids).
		Find(&tags)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find tags: %w", result.Error)
	}
	return tags, nil
}

func (r *TagRepository) Update(ctx context.Context, tag *model.Tag) error {
	result := r.db.WithContext(ctx).Save(tag)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domain.ErrTagNameTaken
		}
		return fmt.Errorf("failed to update tag: %w", result.Error)
	}
	return nil
}

func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM event_tags WHERE tag_id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting tag associations: %w", err)
		}
		if err := tx.Delete(&model.Tag{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting tag: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}
