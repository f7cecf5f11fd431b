package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/beatbookhq/beatbook/internal/audit"
	"github.com/beatbookhq/beatbook/internal/auth"
	"github.com/beatbookhq/beatbook/internal/config"
	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/mocks"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/policy"
	"github.com/beatbookhq/beatbook/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type userServiceMocks struct {
	identityRepo   *mocks.MockIdentityRepositoryIface
	credentialRepo *mocks.MockCredentialRepositoryIface
	userRepo       *mocks.MockUserRepositoryIface
	orgRepo        *mocks.MockOrganizationRepositoryIface
}

func newUserService(ctrl *gomock.Controller) (*service.UserService, userServiceMocks) {
	m := userServiceMocks{
		identityRepo:   mocks.NewMockIdentityRepositoryIface(ctrl),
		credentialRepo: mocks.NewMockCredentialRepositoryIface(ctrl),
		userRepo:       mocks.NewMockUserRepositoryIface(ctrl),
		orgRepo:        mocks.NewMockOrganizationRepositoryIface(ctrl),
	}

	svc := service.NewUserService(
		m.identityRepo,
		m.credentialRepo,
		m.userRepo,
		m.orgRepo,
		auth.NewPasswordHasher(),
		auth.NewTokenManager("test_secret", time.Hour),
		service.NewCacheService(service.CacheConfig{
			TTL:         5 * time.Minute,
			CleanupFreq: time.Minute,
		}),
		&audit.NoOpLogger{},
		&config.Config{},
	)
	return svc, m
}

func adminPrincipal(orgID uuid.UUID) policy.Principal {
	id := uuid.New()
	return policy.Principal{
		UserID: id,
		Email:  "chief@example.com",
		Profile: &model.User{
			ID:             id,
			OrganizationID: orgID,
			Email:          "chief@example.com",
			FullName:       "Chief Admin",
			Role:           model.RoleAdmin,
		},
	}
}

func TestSignup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("creates identity and credential", func(t *testing.T) {
		svc, m := newUserService(ctrl)

		gomock.InOrder(
			m.identityRepo.EXPECT().
				FindByEmail(gomock.Any(), "officer@example.com").
				Return(nil, domain.ErrIdentityNotFound),

			m.identityRepo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, identity *model.Identity) error {
					identity.ID = uuid.New()
					return nil
				}),

			m.credentialRepo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, credential *model.Credential) error {
					assert.Equal(t, model.CredentialHashpass, credential.Kind)
					assert.NotEmpty(t, credential.Material)
					assert.NotEqual(t, "Str0ngpass", credential.Material)
					return nil
				}),
		)

		out, err := svc.Signup(context.Background(), service.SignupInput{
			Email:           "Officer@Example.com",
			Password:        "Str0ngpass",
			ConfirmPassword: "Str0ngpass",
		})

		require.NoError(t, err)
		assert.Equal(t, "officer@example.com", out.Identity.Email)
		assert.NotEmpty(t, out.Token)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, m := newUserService(ctrl)

		m.identityRepo.EXPECT().
			FindByEmail(gomock.Any(), "officer@example.com").
			Return(&model.Identity{ID: uuid.New(), Email: "officer@example.com"}, nil)

		_, err := svc.Signup(context.Background(), service.SignupInput{
			Email:           "officer@example.com",
			Password:        "Str0ngpass",
			ConfirmPassword: "Str0ngpass",
		})

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		svc, _ := newUserService(ctrl)

		for _, password := range []string{"alllowercase", "ALLUPPERCASE1", "NoNumbersHere"} {
			_, err := svc.Signup(context.Background(), service.SignupInput{
				Email:           "officer@example.com",
				Password:        password,
				ConfirmPassword: password,
			})
			assert.ErrorIs(t, err, domain.ErrPasswordTooWeak, "password %q", password)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identityID := uuid.New()
	identity := &model.Identity{ID: identityID, Email: "officer@example.com", Status: model.IdentityActive}

	hasher := auth.NewPasswordHasher()
	hashed, _ := hasher.Hash("Str0ngpass")

	t.Run("valid credentials return a token", func(t *testing.T) {
		svc, m := newUserService(ctrl)

		gomock.InOrder(
			m.identityRepo.EXPECT().
				FindByEmail(gomock.Any(), "officer@example.com").
				Return(identity, nil),

			m.credentialRepo.EXPECT().
				FindByIdentityAndKind(gomock.Any(), identityID, model.CredentialHashpass).
				Return(&model.Credential{IdentityID: identityID, Kind: model.CredentialHashpass, Material: hashed, IsActive: true}, nil),

			m.credentialRepo.EXPECT().
				Update(gomock.Any(), gomock.Any()).
				Return(nil),
		)

		out, err := svc.Authenticate(context.Background(), service.LoginInput{
			Email:    "officer@example.com",
			Password: "Str0ngpass",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, out.Token)
	})

	t.Run("wrong password fails without leaking which part failed", func(t *testing.T) {
		svc, m := newUserService(ctrl)

		gomock.InOrder(
			m.identityRepo.EXPECT().
				FindByEmail(gomock.Any(), "officer@example.com").
				Return(identity, nil),

			m.credentialRepo.EXPECT().
				FindByIdentityAndKind(gomock.Any(), identityID, model.CredentialHashpass).
				Return(&model.Credential{IdentityID: identityID, Kind: model.CredentialHashpass, Material: hashed, IsActive: true}, nil),
		)

		_, err := svc.Authenticate(context.Background(), service.LoginInput{
			Email:    "officer@example.com",
			Password: "wrong_password",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		svc, m := newUserService(ctrl)

		m.identityRepo.EXPECT().
			FindByEmail(gomock.Any(), "nobody@example.com").
			Return(nil, domain.ErrIdentityNotFound)

		_, err := svc.Authenticate(context.Background(), service.LoginInput{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestSetupProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	principal := auth.Principal{UserID: uuid.New(), Email: "Chief@Example.com"}

	t.Run("creates organization and first admin", func(t *testing.T) {
		svc, m := newUserService(ctrl)

		gomock.InOrder(
			m.userRepo.EXPECT().
				FindByID(gomock.Any(), principal.UserID).
				Return(nil, domain.ErrUserNotFound),

			m.orgRepo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, org *model.Organization) error {
					org.ID = uuid.New()
					return nil
				}),

			m.userRepo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, user *model.User) error {
					assert.Equal(t, principal.UserID, user.ID)
					assert.Equal(t, model.RoleAdmin, user.Role)
					assert.Equal(t, "chief@example.com", user.Email)
					return nil
				}),
		)

		user, err := svc.SetupProfile(context.Background(), principal, service.SetupProfileInput{
			FullName:         "Chief Admin",
			OrganizationName: "12th Precinct",
		})

		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, user.Role)
	})

	t.Run("compensates the organization when profile creation fails", func(t *testing.T) {
		svc, m := newUserService(ctrl)

		orgID := uuid.New()
		gomock.InOrder(
			m.userRepo.EXPECT().
				FindByID(gomock.Any(), principal.UserID).
				Return(nil, domain.ErrUserNotFound),

			m.orgRepo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, org *model.Organization) error {
					org.ID = orgID
					return nil
				}),

			m.userRepo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				Return(assert.AnError),

			m.orgRepo.EXPECT().
				Delete(gomock.Any(), orgID).
				Return(nil),
		)

		_, err := svc.SetupProfile(context.Background(), principal, service.SetupProfileInput{
			FullName:         "Chief Admin",
			OrganizationName: "12th Precinct",
		})
		assert.Error(t, err)
	})

	t.Run("rejects a second profile", func(t *testing.T) {
		svc, m := newUserService(ctrl)

		m.userRepo.EXPECT().
			FindByID(gomock.Any(), principal.UserID).
			Return(&model.User{ID: principal.UserID}, nil)

		_, err := svc.SetupProfile(context.Background(), principal, service.SetupProfileInput{
			FullName:         "Chief Admin",
			OrganizationName: "12th Precinct",
		})
		assert.ErrorIs(t, err, domain.ErrProfileExists)
	})
}

func TestChangeRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	actor := adminPrincipal(orgID)

	t.Run("demoting the last admin is denied before the write", func(t *testing.T) {
		svc, m := newUserService(ctrl)

		target := &model.User{ID: uuid.New(), OrganizationID: orgID, Role: model.RoleAdmin}

		gomock.InOrder(
			m.userRepo.EXPECT().
				FindByID(gomock.Any(), target.ID).
				Return(target, nil),

			m.userRepo.EXPECT().
				CountAdmins(gomock.Any(), orgID).
				Return(int64(1), nil),
		)

		_, err := svc.ChangeRole(context.Background(), actor, target.ID, model.RoleUser)
		assert.ErrorIs(t, err, domain.ErrLastAdmin)
	})

	t.Run("racing demotion is caught by the guarded update", func(t *testing.T) {
		svc, m := newUserService(ctrl)

		target := &model.User{ID: uuid.New(), OrganizationID: orgID, Role: model.RoleAdmin}

		gomock.InOrder(
			m.userRepo.EXPECT().
				FindByID(gomock.Any(), target.ID).
				Return(target, nil),

			m.userRepo.EXPECT().
				CountAdmins(gomock.Any(), orgID).
				Return(int64(2), nil),

			m.userRepo.EXPECT().
				UpdateRoleGuarded(gomock.Any(), target.ID, model.RoleUser).
				Return(domain.ErrLastAdmin),
		)

		_, err := svc.ChangeRole(context.Background(), actor, target.ID, model.RoleUser)
		assert.ErrorIs(t, err, domain.ErrLastAdmin)
	})

	t.Run("promotion succeeds", func(t *testing.T) {
		svc, m := newUserService(ctrl)

		target := &model.User{ID: uuid.New(), OrganizationID: orgID, Role: model.RoleUser}

		gomock.InOrder(
			m.userRepo.EXPECT().
				FindByID(gomock.Any(), target.ID).
				Return(target, nil),

			m.userRepo.EXPECT().
				CountAdmins(gomock.Any(), orgID).
				Return(int64(1), nil),

			m.userRepo.EXPECT().
				UpdateRoleGuarded(gomock.Any(), target.ID, model.RoleAdmin).
				Return(nil),
		)

		updated, err := svc.ChangeRole(context.Background(), actor, target.ID, model.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, updated.Role)
	})

	t.Run("invalid role is rejected without lookups", func(t *testing.T) {
		svc, _ := newUserService(ctrl)

		_, err := svc.ChangeRole(context.Background(), actor, uuid.New(), model.Role("superuser"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestRemoveUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	actor := adminPrincipal(orgID)

	t.Run("removes a member and cascades the identity", func(t *testing.T) {
		svc, m := newUserService(ctrl)

		target := &model.User{ID: uuid.New(), OrganizationID: orgID, Role: model.RoleUser}

		gomock.InOrder(
			m.userRepo.EXPECT().
				FindByID(gomock.Any(), target.ID).
				Return(target, nil),

			m.identityRepo.EXPECT().
				DeleteCascade(gomock.Any(), target.ID).
				Return(nil),
		)

		assert.NoError(t, svc.RemoveUser(context.Background(), actor, target.ID))
	})

	t.Run("refuses to remove an admin", func(t *testing.T) {
		svc, m := newUserService(ctrl)

		target := &model.User{ID: uuid.New(), OrganizationID: orgID, Role: model.RoleAdmin}

		m.userRepo.EXPECT().
			FindByID(gomock.Any(), target.ID).
			Return(target, nil)

		err := svc.RemoveUser(context.Background(), actor, target.ID)
		assert.ErrorIs(t, err, domain.ErrTargetIsAdmin)
	})
}
