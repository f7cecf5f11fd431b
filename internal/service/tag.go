// internal/service/tag.go
package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/beatbookhq/beatbook/internal/audit"
	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/policy"
	"github.com/beatbookhq/beatbook/internal/repository"
	"github.com/google/uuid"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type TagService struct {
	tagRepo  repository.TagRepositoryIface
	auditLog audit.Logger
}

func NewTagService(tagRepo repository.TagRepositoryIface, auditLog audit.Logger) *TagService {
	return &TagService{tagRepo: tagRepo, auditLog: auditLog}
}

// List returns the organization's tags, sorted by name. Any member may read
// tags; only admins manage them.
func (s *TagService) List(ctx context.Context, p policy.Principal) ([]model.Tag, error) {
	if d := policy.Authorize(p, nil, policy.ActionTagRead); !d.Allowed {
		return nil, d.Err()
	}
	return s.tagRepo.FindByOrganization(ctx, p.Profile.OrganizationID)
}

type TagInput struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

func (s *TagService) Create(ctx context.Context, p policy.Principal, input TagInput) (*model.Tag, error) {
	if d := policy.Authorize(p, nil, policy.ActionTagCreate); !d.Allowed {
		return nil, d.Err()
	}
	if err := validateTagInput(input); err != nil {
		return nil, err
	}

	tag := &model.Tag{
		OrganizationID: p.Profile.OrganizationID,
		Name:           strings.TrimSpace(input.Name),
		Color:          input.Color,
		Description:    strings.TrimSpace(input.Description),
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.auditLog.RecordAction(ctx, audit.Entry{
		OrganizationID: p.Profile.OrganizationID,
		ActorID:        p.UserID,
		Action:         model.ActionTagCreate,
		SubjectType:    "tag",
		SubjectID:      tag.ID.String(),
		Context:        model.JSONMap{"name": tag.Name},
	})

	return tag, nil
}

func (s *TagService) Update(ctx context.Context, p policy.Principal, id uuid.UUID, input TagInput) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d := policy.Authorize(p, tag, policy.ActionTagUpdate); !d.Allowed {
		return nil, d.Err()
	}
	if err := validateTagInput(input); err != nil {
		return nil, err
	}

	tag.Name = strings.TrimSpace(input.Name)
	tag.Color = input.Color
	tag.Description = strings.TrimSpace(input.Description)
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, err
	}

	s.auditLog.RecordAction(ctx, audit.Entry{
		OrganizationID: p.Profile.OrganizationID,
		ActorID:        p.UserID,
		Action:         model.ActionTagUpdate,
		SubjectType:    "tag",
		SubjectID:      tag.ID.String(),
		Context:        model.JSONMap{"name": tag.Name},
	})

	return tag, nil
}

// Delete removes a tag and detaches it from every event that carries it.
func (s *TagService) Delete(ctx context.Context, p policy.Principal, id uuid.UUID) error {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if d := policy.Authorize(p, tag, policy.ActionTagDelete); !d.Allowed {
		return d.Err()
	}

	if err := s.tagRepo.Delete(ctx, tag.ID); err != nil {
		return err
	}

	s.auditLog.RecordAction(ctx, audit.Entry{
		OrganizationID: p.Profile.OrganizationID,
		ActorID:        p.UserID,
		Action:         model.ActionTagDelete,
		SubjectType:    "tag",
		SubjectID:      tag.ID.String(),
		Context:        model.JSONMap{"name": tag.Name},
	})

	return nil
}

func validateTagInput(input TagInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
	}
	if input.Color != "" && !hexColorPattern.MatchString(input.Color) {
		return fmt.Errorf("%w: color must be a #RRGGBB hex value", domain.ErrInvalidInput)
	}
	return nil
}
