// internal/service/organization.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/beatbookhq/beatbook/internal/audit"
	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/policy"
	"github.com/beatbookhq/beatbook/internal/repository"
)

type OrganizationService struct {
	orgRepo  repository.OrganizationRepositoryIface
	auditLog audit.Logger
}

func NewOrganizationService(orgRepo repository.OrganizationRepositoryIface, auditLog audit.Logger) *OrganizationService {
	return &OrganizationService{orgRepo: orgRepo, auditLog: auditLog}
}

// Get returns the caller's own organization.
func (s *OrganizationService) Get(ctx context.Context, p policy.Principal) (*model.Organization, error) {
	if !p.Onboarded() {
		return nil, domain.ErrUnauthenticated
	}
	return s.orgRepo.FindByID(ctx, p.Profile.OrganizationID)
}

// Rename changes the organization's display name. Admin only.
func (s *OrganizationService) Rename(ctx context.Context, p policy.Principal, name string) (*model.Organization, error) {
	if d := policy.Authorize(p, nil, policy.ActionOrgRename); !d.Allowed {
		return nil, d.Err()
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
	}

	org, err := s.orgRepo.FindByID(ctx, p.Profile.OrganizationID)
	if err != nil {
		return nil, err
	}

	previous := org.Name
	org.Name = name
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	s.auditLog.RecordAction(ctx, audit.Entry{
		OrganizationID: org.ID,
		ActorID:        p.UserID,
		Action:         model.ActionOrgRename,
		SubjectType:    "organization",
		SubjectID:      org.ID.String(),
		Context:        model.JSONMap{"from": previous, "to": name},
	})

	return org, nil
}
