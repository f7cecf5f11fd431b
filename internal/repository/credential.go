// internal/repository/credential.go
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

type CredentialRepositoryIface interface {
	Create(ctx context.Context, credential *model.Credential) error
	FindByIdentityAndKind(ctx context.Context, identityID uuid.UUID, kind model.CredentialKind) (*model.Credential, error)
	Update(ctx context.Context, credential *model.Credential) error
}

type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Create(ctx context.Context, credential *model.Credential) error {
	result := r.db.WithContext(ctx).Create(credential)
	if result.Error != nil {
		return fmt.Errorf("failed to create credential: %w", result.Error)
	}
	return nil
}

func (r *CredentialRepository) FindByIdentityAndKind(ctx context.Context, identityID uuid.UUID, kind model.CredentialKind) (*model.Credential, error) {
	var credential model.Credential
	result := r.db.WithContext(ctx).
		Where("identity_id = ? AND kind = ?", identityID, kind).
		First(&credential)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credential: %w", result.Error)
	}
	return &credential, nil
}

func (r *CredentialRepository) Update(ctx context.Context, credential *model.Credential) error {
	result := r.db.WithContext(ctx).Save(credential)
	if result.Error != nil {
		return fmt.Errorf("failed to update credential: %w", result.Error)
	}
	return nil
}
