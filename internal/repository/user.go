// internal/repository/user.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepositoryIface interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	CountAdmins(ctx context.Context, orgID uuid.UUID) (int64, error)
	UpdateRoleGuarded(ctx context.Context, id uuid.UUID, role model.Role) error
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		return fmt.Errorf("failed to create user: %w", result.Error)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}
	return &user, nil
}

func (r *UserRepository) FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.User, error) {
	var users []model.User
	result := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&users)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find users: %w", result.Error)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Save(user)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	return nil
}

func (r *UserRepository) CountAdmins(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("organization_id = ? AND role = ?", orgID, model.RoleAdmin).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count admins: %w", result.Error)
	}
	return count, nil
}

// UpdateRoleGuarded changes a user's role inside a transaction that locks
// the organization's user rows and re-counts admins, so two concurrent
// demotions cannot both pass the last-admin check.
func (r *UserRepository) UpdateRoleGuarded(ctx context.Context, id uuid.UUID, role model.Role) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&target, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("locking target user: %w", err)
		}

		if target.Role == model.RoleAdmin && role == model.RoleUser {
			var admins []model.User
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("organization_id = ? AND role = ?", target.OrganizationID, model.RoleAdmin).
				Find(&admins).Error; err != nil {
				return fmt.Errorf("locking admin rows: %w", err)
			}
			if len(admins) <= 1 {
				return domain.ErrLastAdmin
			}
		}

		if err := tx.Model(&target).Update("role", role).Error; err != nil {
			return fmt.Errorf("updating role: %w", err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrLastAdmin) || errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}
