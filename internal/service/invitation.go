// internal/service/invitation.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beatbookhq/beatbook/internal/audit"
	"github.com/beatbookhq/beatbook/internal/auth"
	"github.com/beatbookhq/beatbook/internal/config"
	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/email/mailer"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/policy"
	"github.com/beatbookhq/beatbook/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type InvitationService struct {
	invitationRepo repository.InvitationRepositoryIface
	userRepo       repository.UserRepositoryIface
	identityRepo   repository.IdentityRepositoryIface
	orgRepo        repository.OrganizationRepositoryIface
	mailer         mailer.InvitationMailer
	auditLog       audit.Logger
	config         *config.Config
	validate       *validator.Validate

	// now is swappable for expiry tests.
	now func() time.Time
}

func NewInvitationService(
	invitationRepo repository.InvitationRepositoryIface,
	userRepo repository.UserRepositoryIface,
	identityRepo repository.IdentityRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	invitationMailer mailer.InvitationMailer,
	auditLog audit.Logger,
	config *config.Config,
) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		identityRepo:   identityRepo,
		orgRepo:        orgRepo,
		mailer:         invitationMailer,
		auditLog:       auditLog,
		config:         config,
		validate:       validator.New(),
		now:            time.Now,
	}
}

type SendInvitationInput struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"`
}

// Send creates a pending invitation and emails its accept link. The
// invitation row and the email are a two-step write: if delivery fails the
// row is compensated away so the admin can simply retry.
func (s *InvitationService) Send(ctx context.Context, p policy.Principal, input SendInvitationInput) (*model.Invitation, error) {
	if d := policy.Authorize(p, nil, policy.ActionInvitationCreate); !d.Allowed {
		return nil, d.Err()
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	role := model.Role(input.Role)
	if input.Role == "" {
		role = model.RoleUser
	}
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: role must be admin or user", domain.ErrInvalidInput)
	}

	invitedEmail := strings.ToLower(strings.TrimSpace(input.Email))

	member, err := s.userRepo.FindByEmail(ctx, invitedEmail)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if member != nil {
		return nil, domain.ErrAlreadyMember
	}

	pending, err := s.invitationRepo.HasPending(ctx, p.Profile.OrganizationID, invitedEmail)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.ErrDuplicatePending
	}

	token, err := generateInvitationToken()
	if err != nil {
		return nil, err
	}

	invitation := &model.Invitation{
		OrganizationID:  p.Profile.OrganizationID,
		Email:           invitedEmail,
		Token:           token,
		Role:            role,
		Status:          model.InvitationPending,
		InvitedByUserID: p.UserID,
		ExpiresAt:       s.now().AddDate(0, 0, s.config.Invitations.ExpiryDays),
	}
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, err
	}

	saga := NewSaga()
	defer saga.Compensate(ctx)
	saga.Push("delete invitation", func(ctx context.Context) error {
		return s.invitationRepo.Delete(ctx, invitation.ID)
	})

	if err := s.sendInvitationMail(ctx, p, invitation); err != nil {
		// A rejected recipient who already holds an account is the common
		// delivery failure worth naming; everything else surfaces as-is.
		if identity, idErr := s.identityRepo.FindByEmail(ctx, invitedEmail); idErr == nil && identity != nil {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("sending invitation email: %w", err)
	}

	saga.Disarm()

	s.auditLog.RecordAction(ctx, audit.Entry{
		OrganizationID: p.Profile.OrganizationID,
		ActorID:        p.UserID,
		Action:         model.ActionInvitationSend,
		SubjectType:    "invitation",
		SubjectID:      invitation.ID.String(),
		Context:        model.JSONMap{"email": invitedEmail, "role": string(role)},
	})

	return invitation, nil
}

// List returns the organization's invitations, newest first. Pending entries
// past their deadline are flipped to expired on the way out.
func (s *InvitationService) List(ctx context.Context, p policy.Principal) ([]model.Invitation, error) {
	if d := policy.Authorize(p, nil, policy.ActionInvitationList); !d.Allowed {
		return nil, d.Err()
	}

	invitations, err := s.invitationRepo.FindByOrganization(ctx, p.Profile.OrganizationID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range invitations {
		inv := &invitations[i]
		if inv.Status == model.InvitationPending && inv.ExpiredAt(now) {
			if err := s.invitationRepo.MarkExpired(ctx, inv.ID); err != nil {
				return nil, err
			}
			inv.Status = model.InvitationExpired
		}
	}

	return invitations, nil
}

// InvitationPreview is what an invitee sees before accepting; the token has
// already authenticated them to this one record.
type InvitationPreview struct {
	OrganizationName string           `json:"organization_name"`
	Email            string           `json:"email"`
	Role             model.Role       `json:"role"`
	Status           model.InvitationStatus `json:"status"`
	ExpiresAt        time.Time        `json:"expires_at"`
}

// FetchByToken resolves an invitation for the public accept page.
func (s *InvitationService) FetchByToken(ctx context.Context, token string) (*InvitationPreview, error) {
	invitation, err := s.invitationRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if invitation.Status == model.InvitationPending && invitation.ExpiredAt(s.now()) {
		if err := s.invitationRepo.MarkExpired(ctx, invitation.ID); err != nil {
			return nil, err
		}
		invitation.Status = model.InvitationExpired
	}

	switch invitation.Status {
	case model.InvitationPending:
	case model.InvitationExpired:
		return nil, domain.ErrInvitationExpired
	default:
		return nil, domain.ErrInvitationNotFound
	}

	return &InvitationPreview{
		OrganizationName: invitation.Organization.Name,
		Email:            invitation.Email,
		Role:             invitation.Role,
		Status:           invitation.Status,
		ExpiresAt:        invitation.ExpiresAt,
	}, nil
}

type AcceptInvitationInput struct {
	FullName string `json:"full_name" validate:"required"`
	BadgeNo  string `json:"badge_no"`
}

// Accept joins the authenticated identity to the inviting organization. The
// invitation email must match the identity's email, case-insensitively, and
// the identity must not already hold a profile anywhere.
func (s *InvitationService) Accept(ctx context.Context, principal auth.Principal, token string, input AcceptInvitationInput) (*model.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	invitation, err := s.invitationRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if invitation.Status != model.InvitationPending {
		if invitation.Status == model.InvitationExpired {
			return nil, domain.ErrInvitationExpired
		}
		return nil, domain.ErrInvitationNotFound
	}
	if invitation.ExpiredAt(s.now()) {
		if err := s.invitationRepo.MarkExpired(ctx, invitation.ID); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvitationExpired
	}

	if !strings.EqualFold(invitation.Email, principal.Email) {
		return nil, domain.ErrEmailMismatch
	}

	existing, err := s.userRepo.FindByID(ctx, principal.UserID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyMember
	}

	user := &model.User{
		ID:             principal.UserID,
		OrganizationID: invitation.OrganizationID,
		Email:          strings.ToLower(principal.Email),
		FullName:       input.FullName,
		BadgeNo:        input.BadgeNo,
		Role:           invitation.Role,
		Theme:          model.ThemeLight,
	}
	if err := s.invitationRepo.Accept(ctx, invitation, user); err != nil {
		return nil, err
	}

	s.auditLog.RecordAction(ctx, audit.Entry{
		OrganizationID: invitation.OrganizationID,
		ActorID:        principal.UserID,
		Action:         model.ActionInvitationAccept,
		SubjectType:    "invitation",
		SubjectID:      invitation.ID.String(),
		Context:        model.JSONMap{"email": invitation.Email, "role": string(invitation.Role)},
	})

	return user, nil
}

// Resend re-delivers a pending invitation's email. The deadline does not
// move; an expired invitation has to be revoked and re-sent fresh.
func (s *InvitationService) Resend(ctx context.Context, p policy.Principal, id uuid.UUID) error {
	invitation, err := s.invitationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if d := policy.Authorize(p, invitation, policy.ActionInvitationResend); !d.Allowed {
		return d.Err()
	}

	if invitation.Status != model.InvitationPending {
		return domain.ErrInvitationNotFound
	}
	if invitation.ExpiredAt(s.now()) {
		if err := s.invitationRepo.MarkExpired(ctx, invitation.ID); err != nil {
			return err
		}
		return domain.ErrInvitationExpired
	}

	if err := s.sendInvitationMail(ctx, p, invitation); err != nil {
		return fmt.Errorf("resending invitation email: %w", err)
	}

	s.auditLog.RecordAction(ctx, audit.Entry{
		OrganizationID: p.Profile.OrganizationID,
		ActorID:        p.UserID,
		Action:         model.ActionInvitationResend,
		SubjectType:    "invitation",
		SubjectID:      invitation.ID.String(),
		Context:        model.JSONMap{"email": invitation.Email},
	})

	return nil
}

// Revoke deletes an invitation, invalidating its token immediately.
func (s *InvitationService) Revoke(ctx context.Context, p policy.Principal, id uuid.UUID) error {
	invitation, err := s.invitationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if d := policy.Authorize(p, invitation, policy.ActionInvitationRevoke); !d.Allowed {
		return d.Err()
	}

	if err := s.invitationRepo.Delete(ctx, invitation.ID); err != nil {
		return err
	}

	s.auditLog.RecordAction(ctx, audit.Entry{
		OrganizationID: p.Profile.OrganizationID,
		ActorID:        p.UserID,
		Action:         model.ActionInvitationRevoke,
		SubjectType:    "invitation",
		SubjectID:      invitation.ID.String(),
		Context:        model.JSONMap{"email": invitation.Email},
	})

	return nil
}

func (s *InvitationService) sendInvitationMail(ctx context.Context, p policy.Principal, invitation *model.Invitation) error {
	orgName := invitation.Organization.Name
	if orgName == "" {
		org, err := s.orgRepo.FindByID(ctx, invitation.OrganizationID)
		if err != nil {
			return err
		}
		orgName = org.Name
	}

	return s.mailer.SendInvitation(invitation.Email, mailer.InvitationTemplateData{
		OrganizationName: orgName,
		InviterName:      p.Profile.FullName,
		Role:             string(invitation.Role),
		AcceptLink:       fmt.Sprintf("%s/invitations/accept/%s", strings.TrimRight(s.config.BaseURL, "/"), invitation.Token),
		ExpiresAt:        invitation.ExpiresAt,
	})
}

func generateInvitationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating invitation token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
