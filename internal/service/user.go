// internal/service/user.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/beatbookhq/beatbook/internal/audit"
	"github.com/beatbookhq/beatbook/internal/auth"
	"github.com/beatbookhq/beatbook/internal/config"
	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/policy"
	"github.com/beatbookhq/beatbook/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type UserService struct {
	identityRepo   repository.IdentityRepositoryIface
	credentialRepo repository.CredentialRepositoryIface
	userRepo       repository.UserRepositoryIface
	orgRepo        repository.OrganizationRepositoryIface
	passwordHasher *auth.PasswordHasher
	tokenManager   *auth.TokenManager
	cacheService   *CacheService
	auditLog       audit.Logger
	config         *config.Config
	validate       *validator.Validate
}

func NewUserService(
	identityRepo repository.IdentityRepositoryIface,
	credentialRepo repository.CredentialRepositoryIface,
	userRepo repository.UserRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
	cacheService *CacheService,
	auditLog audit.Logger,
	config *config.Config,
) *UserService {
	return &UserService{
		identityRepo:   identityRepo,
		credentialRepo: credentialRepo,
		userRepo:       userRepo,
		orgRepo:        orgRepo,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
		cacheService:   cacheService,
		auditLog:       auditLog,
		config:         config,
		validate:       validator.New(),
	}
}

type SignupInput struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type SignupOutput struct {
	Identity *model.Identity `json:"identity"`
	Token    string          `json:"token"`
}

// Signup registers a new identity with a password credential. Profile and
// organization come later, through setup-profile or invitation acceptance.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*SignupOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	if err := checkPasswordStrength(input.Password); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.identityRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrIdentityNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	identity := &model.Identity{
		Email:  email,
		Status: model.IdentityActive,
	}
	if err := s.identityRepo.Create(ctx, identity); err != nil {
		return nil, fmt.Errorf("creating identity: %w", err)
	}

	hashedPassword, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	credential := &model.Credential{
		IdentityID: identity.ID,
		Kind:       model.CredentialHashpass,
		Material:   hashedPassword,
		IsActive:   true,
	}
	if err := s.credentialRepo.Create(ctx, credential); err != nil {
		return nil, fmt.Errorf("creating credential: %w", err)
	}

	token, err := s.tokenManager.Generate(identity.ID.String(), identity.Email)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &SignupOutput{Identity: identity, Token: token}, nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginOutput struct {
	Identity *model.Identity `json:"identity"`
	Token    string          `json:"token"`
}

// Authenticate verifies a password credential and returns a bearer token.
func (s *UserService) Authenticate(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	identity, err := s.identityRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	credential, err := s.credentialRepo.FindByIdentityAndKind(ctx, identity.ID, model.CredentialHashpass)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("finding credential: %w", err)
	}

	if !credential.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	verified, err := s.passwordHasher.Verify(input.Password, credential.Material)
	if err != nil || !verified {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	credential.LastUsedAt = &now
	if err := s.credentialRepo.Update(ctx, credential); err != nil {
		return nil, fmt.Errorf("updating credential: %w", err)
	}

	token, err := s.tokenManager.Generate(identity.ID.String(), identity.Email)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &LoginOutput{Identity: identity, Token: token}, nil
}

// GenerateNonce creates and caches a single-use nonce for the public signup
// endpoint.
func (s *UserService) GenerateNonce(ctx context.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating random nonce: %w", err)
	}

	nonce := hex.EncodeToString(buf)
	if err := s.cacheService.Set(ctx, nonce, true); err != nil {
		return "", fmt.Errorf("caching nonce: %w", err)
	}
	return nonce, nil
}

// ResolvePrincipal loads the caller's profile, if any, producing the value
// every policy function receives. A missing profile is not an error here;
// policy decides what the caller may do without one.
func (s *UserService) ResolvePrincipal(ctx context.Context, principal auth.Principal) (policy.Principal, error) {
	p := policy.Principal{UserID: principal.UserID, Email: principal.Email}

	profile, err := s.userRepo.FindByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return p, nil
		}
		return p, err
	}

	p.Profile = profile
	return p, nil
}

type SetupProfileInput struct {
	FullName         string `json:"full_name" validate:"required"`
	BadgeNo          string `json:"badge_no"`
	OrganizationName string `json:"organization_name" validate:"required"`
}

// SetupProfile creates an organization and its first admin in one onboarding
// step. The two writes are not transactional across the identity plane, so
// the organization is compensated away if profile creation fails.
func (s *UserService) SetupProfile(ctx context.Context, principal auth.Principal, input SetupProfileInput) (*model.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	existing, err := s.userRepo.FindByID(ctx, principal.UserID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrProfileExists
	}

	saga := NewSaga()
	defer saga.Compensate(ctx)

	org := &model.Organization{Name: input.OrganizationName}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("creating organization: %w", err)
	}
	saga.Push("delete organization", func(ctx context.Context) error {
		return s.orgRepo.Delete(ctx, org.ID)
	})

	user := &model.User{
		ID:             principal.UserID,
		OrganizationID: org.ID,
		Email:          strings.ToLower(principal.Email),
		FullName:       input.FullName,
		BadgeNo:        input.BadgeNo,
		Role:           model.RoleAdmin,
		Theme:          model.ThemeLight,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	saga.Disarm()
	return user, nil
}

type ProfileStatus struct {
	HasProfile      bool      `json:"hasProfile"`
	HasOrganization bool      `json:"hasOrganization"`
	UserID          uuid.UUID `json:"userId"`
}

// CheckProfile reports onboarding state for the authenticated identity.
func (s *UserService) CheckProfile(ctx context.Context, principal auth.Principal) (*ProfileStatus, error) {
	status := &ProfileStatus{UserID: principal.UserID}

	profile, err := s.userRepo.FindByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return status, nil
		}
		return nil, err
	}

	status.HasProfile = true
	status.HasOrganization = profile.OrganizationID != uuid.Nil
	return status, nil
}

type UpdateProfileInput struct {
	FullName *string `json:"full_name"`
	BadgeNo  *string `json:"badge_no"`
	Theme    *string `json:"theme"`
}

// UpdateProfile applies partial self-service updates to the caller's profile.
func (s *UserService) UpdateProfile(ctx context.Context, p policy.Principal, input UpdateProfileInput) (*model.User, error) {
	if !p.Onboarded() {
		return nil, domain.ErrUnauthenticated
	}

	profile := p.Profile
	if input.FullName != nil {
		if strings.TrimSpace(*input.FullName) == "" {
			return nil, fmt.Errorf("%w: full_name must not be empty", domain.ErrInvalidInput)
		}
		profile.FullName = *input.FullName
	}
	if input.BadgeNo != nil {
		profile.BadgeNo = *input.BadgeNo
	}
	if input.Theme != nil {
		theme := model.Theme(*input.Theme)
		if !model.ValidTheme(theme) {
			return nil, fmt.Errorf("%w: theme must be light or dark", domain.ErrInvalidInput)
		}
		profile.Theme = theme
	}

	if err := s.userRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return profile, nil
}

// ListUsers returns the members of the caller's organization.
func (s *UserService) ListUsers(ctx context.Context, p policy.Principal) ([]model.User, error) {
	if d := policy.Authorize(p, nil, policy.ActionUserList); !d.Allowed {
		return nil, d.Err()
	}
	return s.userRepo.FindByOrganization(ctx, p.Profile.OrganizationID)
}

// ChangeRole sets a member's role, enforcing the admin invariant twice: once
// against the freshly read admin count, and again inside the repository's
// locked transaction.
func (s *UserService) ChangeRole(ctx context.Context, p policy.Principal, targetID uuid.UUID, newRole model.Role) (*model.User, error) {
	if !model.ValidRole(newRole) {
		return nil, fmt.Errorf("%w: role must be admin or user", domain.ErrInvalidInput)
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	adminCount := int64(0)
	if p.Onboarded() {
		adminCount, err = s.userRepo.CountAdmins(ctx, p.Profile.OrganizationID)
		if err != nil {
			return nil, err
		}
	}

	if d := policy.CanChangeRole(p, target, newRole, adminCount); !d.Allowed {
		return nil, d.Err()
	}

	if err := s.userRepo.UpdateRoleGuarded(ctx, targetID, newRole); err != nil {
		return nil, err
	}
	target.Role = newRole

	s.auditLog.RecordAction(ctx, audit.Entry{
		OrganizationID: p.Profile.OrganizationID,
		ActorID:        p.UserID,
		Action:         model.ActionRoleChange,
		SubjectType:    "user",
		SubjectID:      targetID.String(),
		Context:        model.JSONMap{"new_role": string(newRole)},
	})

	return target, nil
}

// RemoveUser deletes a member's identity, cascading to their credentials and
// profile. Admins must be demoted first.
func (s *UserService) RemoveUser(ctx context.Context, p policy.Principal, targetID uuid.UUID) error {
	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if d := policy.CanRemoveUser(p, target); !d.Allowed {
		return d.Err()
	}

	if err := s.identityRepo.DeleteCascade(ctx, targetID); err != nil {
		return err
	}

	s.auditLog.RecordAction(ctx, audit.Entry{
		OrganizationID: p.Profile.OrganizationID,
		ActorID:        p.UserID,
		Action:         model.ActionUserRemove,
		SubjectType:    "user",
		SubjectID:      targetID.String(),
		Context:        model.JSONMap{"email": target.Email},
	})

	return nil
}

// checkPasswordStrength requires a mix of upper, lower, and numeric
// characters on top of the length floor.
func checkPasswordStrength(password string) error {
	if len(password) < 8 {
		return domain.ErrPasswordTooWeak
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasUpper || !hasLower || !hasNumber {
		return domain.ErrPasswordTooWeak
	}
	return nil
}
