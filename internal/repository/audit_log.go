// internal/repository/audit_log.go
package repository

import (
	"context"
	"fmt"

	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepositoryIface interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	FindByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]model.AuditLog, int64, error)
}

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	result := r.db.WithContext(ctx).Create(entry)
	if result.Error != nil {
		return fmt.Errorf("failed to create audit log: %w", result.Error)
	}
	return nil
}

func (r *AuditLogRepository) FindByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]model.AuditLog, int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.AuditLog{}).
		Where("organization_id = ?", orgID)

	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var entries []model.AuditLog
	result := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to find audit logs: %w", result.Error)
	}

	return entries, count, nil
}
