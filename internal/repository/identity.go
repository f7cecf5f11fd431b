// internal/repository/identity.go
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

type IdentityRepositoryIface interface {
	Create(ctx context.Context, identity *model.Identity) error
	FindByEmail(ctx context.Context, email string) (*model.Identity, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Identity, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type IdentityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

func (r *IdentityRepository) Create(ctx context.Context, identity *model.Identity) error {
	result := r.db.WithContext(ctx).Create(identity)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create identity: %w", result.Error)
	}
	return nil
}

func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*model.Identity, error) {
	var identity model.Identity
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&identity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to find identity: %w", result.Error)
	}
	return &identity, nil
}

func (r *IdentityRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Identity, error) {
	var identity model.Identity
	result := r.db.WithContext(ctx).First(&identity, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to find identity: %w", result.Error)
	}
	return &identity, nil
}

// DeleteCascade removes the identity together with its credentials and
// profile row in one transaction. Used by admin user removal.
func (r *IdentityRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("identity_id = ?", id).Delete(&model.Credential{}).Error; err != nil {
			return fmt.Errorf("deleting credentials: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&model.User{}).Error; err != nil {
			return fmt.Errorf("deleting profile: %w", err)
		}
		if err := tx.Delete(&model.Identity{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting identity: %w", err)
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}
