// internal/service/audit.go
package service

import (
	"context"

	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/policy"
	"github.com/beatbookhq/beatbook/internal/repository"
)

type AuditService struct {
	auditRepo repository.AuditLogRepositoryIface
}

func NewAuditService(auditRepo repository.AuditLogRepositoryIface) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// AuditPage is one page of the organization's audit trail, newest first.
type AuditPage struct {
	Entries    []model.AuditLog `json:"entries"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"totalPages"`
}

// List returns the audit trail for the caller's organization. Admin only.
func (s *AuditService) List(ctx context.Context, p policy.Principal, page, limit int) (*AuditPage, error) {
	if d := policy.Authorize(p, nil, policy.ActionAuditRead); !d.Allowed {
		return nil, d.Err()
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = policy.DefaultLimit
	}
	if limit > policy.MaxLimit {
		limit = policy.MaxLimit
	}

	entries, total, err := s.auditRepo.FindByOrganization(ctx, p.Profile.OrganizationID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	return &AuditPage{
		Entries:    entries,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: policy.TotalPages(total, limit),
	}, nil
}
