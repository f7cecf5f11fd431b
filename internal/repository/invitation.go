// internal/repository/invitation.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationRepositoryIface interface {
	Create(ctx context.Context, invitation *model.Invitation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error)
	FindByToken(ctx context.Context, token string) (*model.Invitation, error)
	FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.Invitation, error)
	HasPending(ctx context.Context, orgID uuid.UUID, email string) (bool, error)
	MarkExpired(ctx context.Context, id uuid.UUID) error
	Accept(ctx context.Context, invitation *model.Invitation, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}

type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) Create(ctx context.Context, invitation *model.Invitation) error {
	result := r.db.WithContext(ctx).Create(invitation)
	if result.Error != nil {
		// The partial unique index on (organization_id, email) WHERE
		// status = 'pending' backs the one-pending-per-pair invariant.
		if isUniqueViolation(result.Error) {
			return domain.ErrDuplicatePending
		}
		return fmt.Errorf("failed to create invitation: %w", result.Error)
	}
	return nil
}

func (r *InvitationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	var invitation model.Invitation
	result := r.db.WithContext(ctx).First(&invitation, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", result.Error)
	}
	return &invitation, nil
}

func (r *InvitationRepository) FindByToken(ctx context.Context, token string) (*model.Invitation, error) {
	var invitation model.Invitation
	result := r.db.WithContext(ctx).
		Preload("Organization").
		Where("token = ?", token).
		First(&invitation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", result.Error)
	}
	return &invitation, nil
}

func (r *InvitationRepository) FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.Invitation, error) {
	var invitations []model.Invitation
	result := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&invitations)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find invitations: %w", result.Error)
	}
	return invitations, nil
}

func (r *InvitationRepository) HasPending(ctx context.Context, orgID uuid.UUID, email string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Invitation{}).
		Where("organization_id = ? AND email = ? AND status = ?", orgID, email, model.InvitationPending).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check pending invitations: %w", result.Error)
	}
	return count > 0, nil
}

// MarkExpired flips a pending invitation to expired. The status guard in the
// WHERE clause keeps the transition one-way.
func (r *InvitationRepository) MarkExpired(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.Invitation{}).
		Where("id = ? AND status = ?", id, model.InvitationPending).
		Update("status", model.InvitationExpired)
	if result.Error != nil {
		return fmt.Errorf("failed to expire invitation: %w", result.Error)
	}
	return nil
}

// Accept creates the member profile and flips the invitation to accepted in
// one transaction, so a crash between the two writes cannot leave a consumed
// token behind an uncreated user.
func (r *InvitationRepository) Accept(ctx context.Context, invitation *model.Invitation, user *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		result := tx.Model(&model.Invitation{}).
			Where("id = ? AND status = ?", invitation.ID, model.InvitationPending).
			Update("status", model.InvitationAccepted)
		if result.Error != nil {
			return fmt.Errorf("updating invitation: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrInvitationNotFound
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrInvitationNotFound) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

func (r *InvitationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Invitation{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete invitation: %w", result.Error)
	}
	return nil
}

// ExpirePending sweeps all pending invitations past their deadline. Used by
// the background reconciler; read paths still flip lazily.
func (r *InvitationRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Invitation{}).
		Where("status = ? AND expires_at < ?", model.InvitationPending, now).
		Update("status", model.InvitationExpired)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire invitations: %w", result.Error)
	}
	return result.RowsAffected, nil
}
