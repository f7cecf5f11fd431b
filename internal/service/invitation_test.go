package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/beatbookhq/beatbook/internal/audit"
	"github.com/beatbookhq/beatbook/internal/auth"
	"github.com/beatbookhq/beatbook/internal/config"
	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/email/mailer"
	"github.com/beatbookhq/beatbook/internal/mocks"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeMailer struct {
	err  error
	sent []mailer.InvitationTemplateData
	to   []string
}

func (f *fakeMailer) SendInvitation(to string, data mailer.InvitationTemplateData) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.sent = append(f.sent, data)
	return nil
}

type invitationServiceMocks struct {
	invitationRepo *mocks.MockInvitationRepositoryIface
	userRepo       *mocks.MockUserRepositoryIface
	identityRepo   *mocks.MockIdentityRepositoryIface
	orgRepo        *mocks.MockOrganizationRepositoryIface
	mailer         *fakeMailer
}

func newInvitationService(ctrl *gomock.Controller) (*service.InvitationService, invitationServiceMocks) {
	m := invitationServiceMocks{
		invitationRepo: mocks.NewMockInvitationRepositoryIface(ctrl),
		userRepo:       mocks.NewMockUserRepositoryIface(ctrl),
		identityRepo:   mocks.NewMockIdentityRepositoryIface(ctrl),
		orgRepo:        mocks.NewMockOrganizationRepositoryIface(ctrl),
		mailer:         &fakeMailer{},
	}

	cfg := &config.Config{BaseURL: "https://beatbook.example.com"}
	cfg.Invitations.ExpiryDays = 7

	svc := service.NewInvitationService(
		m.invitationRepo,
		m.userRepo,
		m.identityRepo,
		m.orgRepo,
		m.mailer,
		&audit.NoOpLogger{},
		cfg,
	)
	return svc, m
}

func TestInvitationSend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	actor := adminPrincipal(orgID)

	t.Run("creates a pending invitation and emails the accept link", func(t *testing.T) {
		svc, m := newInvitationService(ctrl)

		gomock.InOrder(
			m.userRepo.EXPECT().
				FindByEmail(gomock.Any(), "rookie@example.com").
				Return(nil, domain.ErrUserNotFound),

			m.invitationRepo.EXPECT().
				HasPending(gomock.Any(), orgID, "rookie@example.com").
				Return(false, nil),

			m.invitationRepo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, inv *model.Invitation) error {
					assert.Equal(t, model.InvitationPending, inv.Status)
					assert.Equal(t, model.RoleUser, inv.Role)
					assert.Len(t, inv.Token, 64)
					assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), inv.ExpiresAt, time.Minute)
					inv.ID = uuid.New()
					return nil
				}),

			m.orgRepo.EXPECT().
				FindByID(gomock.Any(), orgID).
				Return(&model.Organization{ID: orgID, Name: "12th Precinct"}, nil),
		)

		inv, err := svc.Send(context.Background(), actor, service.SendInvitationInput{
			Email: "Rookie@Example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "rookie@example.com", inv.Email)
		require.Len(t, m.mailer.sent, 1)
		assert.Equal(t, "rookie@example.com", m.mailer.to[0])
		assert.Equal(t, "12th Precinct", m.mailer.sent[0].OrganizationName)
		assert.Contains(t, m.mailer.sent[0].AcceptLink, inv.Token)
	})

	t.Run("rejects existing members", func(t *testing.T) {
		svc, m := newInvitationService(ctrl)

		m.userRepo.EXPECT().
			FindByEmail(gomock.Any(), "rookie@example.com").
			Return(&model.User{ID: uuid.New()}, nil)

		_, err := svc.Send(context.Background(), actor, service.SendInvitationInput{Email: "rookie@example.com"})
		assert.ErrorIs(t, err, domain.ErrAlreadyMember)
	})

	t.Run("one pending invitation per email", func(t *testing.T) {
		svc, m := newInvitationService(ctrl)

		gomock.InOrder(
			m.userRepo.EXPECT().
				FindByEmail(gomock.Any(), "rookie@example.com").
				Return(nil, domain.ErrUserNotFound),

			m.invitationRepo.EXPECT().
				HasPending(gomock.Any(), orgID, "rookie@example.com").
				Return(true, nil),
		)

		_, err := svc.Send(context.Background(), actor, service.SendInvitationInput{Email: "rookie@example.com"})
		assert.ErrorIs(t, err, domain.ErrDuplicatePending)
	})

	t.Run("failed delivery compensates the invitation row", func(t *testing.T) {
		svc, m := newInvitationService(ctrl)
		m.mailer.err = assert.AnError

		invID := uuid.New()
		gomock.InOrder(
			m.userRepo.EXPECT().
				FindByEmail(gomock.Any(), "rookie@example.com").
				Return(nil, domain.ErrUserNotFound),

			m.invitationRepo.EXPECT().
				HasPending(gomock.Any(), orgID, "rookie@example.com").
				Return(false, nil),

			m.invitationRepo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, inv *model.Invitation) error {
					inv.ID = invID
					return nil
				}),

			m.orgRepo.EXPECT().
				FindByID(gomock.Any(), orgID).
				Return(&model.Organization{ID: orgID, Name: "12th Precinct"}, nil),

			m.identityRepo.EXPECT().
				FindByEmail(gomock.Any(), "rookie@example.com").
				Return(nil, domain.ErrIdentityNotFound),

			m.invitationRepo.EXPECT().
				Delete(gomock.Any(), invID).
				Return(nil),
		)

		_, err := svc.Send(context.Background(), actor, service.SendInvitationInput{Email: "rookie@example.com"})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrAlreadyRegistered)
	})

	t.Run("rejected delivery to a registered address reports it", func(t *testing.T) {
		svc, m := newInvitationService(ctrl)
		m.mailer.err = assert.AnError

		invID := uuid.New()
		gomock.InOrder(
			m.userRepo.EXPECT().
				FindByEmail(gomock.Any(), "rookie@example.com").
				Return(nil, domain.ErrUserNotFound),

			m.invitationRepo.EXPECT().
				HasPending(gomock.Any(), orgID, "rookie@example.com").
				Return(false, nil),

			m.invitationRepo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, inv *model.Invitation) error {
					inv.ID = invID
					return nil
				}),

			m.orgRepo.EXPECT().
				FindByID(gomock.Any(), orgID).
				Return(&model.Organization{ID: orgID, Name: "12th Precinct"}, nil),

			m.identityRepo.EXPECT().
				FindByEmail(gomock.Any(), "rookie@example.com").
				Return(&model.Identity{ID: uuid.New(), Email: "rookie@example.com"}, nil),

			m.invitationRepo.EXPECT().
				Delete(gomock.Any(), invID).
				Return(nil),
		)

		_, err := svc.Send(context.Background(), actor, service.SendInvitationInput{Email: "rookie@example.com"})
		assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	})

	t.Run("member role required", func(t *testing.T) {
		svc, _ := newInvitationService(ctrl)

		_, err := svc.Send(context.Background(), memberPrincipal(orgID), service.SendInvitationInput{Email: "rookie@example.com"})
		assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	})
}

func TestInvitationAccept(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	principal := auth.Principal{UserID: uuid.New(), Email: "Rookie@Example.com"}

	pending := func() *model.Invitation {
		return &model.Invitation{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Email:          "rookie@example.com",
			Token:          "tok",
			Role:           model.RoleUser,
			Status:         model.InvitationPending,
			ExpiresAt:      time.Now().Add(24 * time.Hour),
		}
	}

	t.Run("joins the organization with the invited role", func(t *testing.T) {
		svc, m := newInvitationService(ctrl)

		inv := pending()
		gomock.InOrder(
			m.invitationRepo.EXPECT().
				FindByToken(gomock.Any(), "tok").
				Return(inv, nil),

			m.userRepo.EXPECT().
				FindByID(gomock.Any(), principal.UserID).
				Return(nil, domain.ErrUserNotFound),

			m.invitationRepo.EXPECT().
				Accept(gomock.Any(), inv, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *model.Invitation, user *model.User) error {
					assert.Equal(t, principal.UserID, user.ID)
					assert.Equal(t, orgID, user.OrganizationID)
					assert.Equal(t, model.RoleUser, user.Role)
					assert.Equal(t, "rookie@example.com", user.Email)
					return nil
				}),
		)

		user, err := svc.Accept(context.Background(), principal, "tok", service.AcceptInvitationInput{FullName: "Rookie Officer"})
		require.NoError(t, err)
		assert.Equal(t, orgID, user.OrganizationID)
	})

	t.Run("email must match, case-insensitively", func(t *testing.T) {
		svc, m := newInvitationService(ctrl)

		m.invitationRepo.EXPECT().
			FindByToken(gomock.Any(), "tok").
			Return(pending(), nil)

		other := auth.Principal{UserID: uuid.New(), Email: "someoneelse@example.com"}
		_, err := svc.Accept(context.Background(), other, "tok", service.AcceptInvitationInput{FullName: "Someone Else"})
		assert.ErrorIs(t, err, domain.ErrEmailMismatch)
	})

	t.Run("expired invitations flip lazily and are refused", func(t *testing.T) {
		svc, m := newInvitationService(ctrl)

		inv := pending()
		inv.ExpiresAt = time.Now().Add(-time.Hour)

		gomock.InOrder(
			m.invitationRepo.EXPECT().
				FindByToken(gomock.Any(), "tok").
				Return(inv, nil),

			m.invitationRepo.EXPECT().
				MarkExpired(gomock.Any(), inv.ID).
				Return(nil),
		)

		_, err := svc.Accept(context.Background(), principal, "tok", service.AcceptInvitationInput{FullName: "Rookie Officer"})
		assert.ErrorIs(t, err, domain.ErrInvitationExpired)
	})

	t.Run("an existing profile cannot accept", func(t *testing.T) {
		svc, m := newInvitationService(ctrl)

		gomock.InOrder(
			m.invitationRepo.EXPECT().
				FindByToken(gomock.Any(), "tok").
				Return(pending(), nil),

			m.userRepo.EXPECT().
				FindByID(gomock.Any(), principal.UserID).
				Return(&model.User{ID: principal.UserID}, nil),
		)

		_, err := svc.Accept(context.Background(), principal, "tok", service.AcceptInvitationInput{FullName: "Rookie Officer"})
		assert.ErrorIs(t, err, domain.ErrAlreadyMember)
	})
}

func TestInvitationFetchByToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()

	t.Run("pending invitation previews the organization", func(t *testing.T) {
		svc, m := newInvitationService(ctrl)

		m.invitationRepo.EXPECT().
			FindByToken(gomock.Any(), "tok").
			Return(&model.Invitation{
				ID:             uuid.New(),
				OrganizationID: orgID,
				Email:          "rookie@example.com",
				Status:         model.InvitationPending,
				Role:           model.RoleUser,
				ExpiresAt:      time.Now().Add(24 * time.Hour),
				Organization:   model.Organization{ID: orgID, Name: "12th Precinct"},
			}, nil)

		preview, err := svc.FetchByToken(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, "12th Precinct", preview.OrganizationName)
		assert.Equal(t, "rookie@example.com", preview.Email)
	})

	t.Run("expired invitation reports expiry", func(t *testing.T) {
		svc, m := newInvitationService(ctrl)

		inv := &model.Invitation{
			ID:        uuid.New(),
			Status:    model.InvitationPending,
			ExpiresAt: time.Now().Add(-time.Hour),
		}
		gomock.InOrder(
			m.invitationRepo.EXPECT().
				FindByToken(gomock.Any(), "tok").
				Return(inv, nil),

			m.invitationRepo.EXPECT().
				MarkExpired(gomock.Any(), inv.ID).
				Return(nil),
		)

		_, err := svc.FetchByToken(context.Background(), "tok")
		assert.ErrorIs(t, err, domain.ErrInvitationExpired)
	})

	t.Run("accepted invitation reads as absent", func(t *testing.T) {
		svc, m := newInvitationService(ctrl)

		m.invitationRepo.EXPECT().
			FindByToken(gomock.Any(), "tok").
			Return(&model.Invitation{
				ID:        uuid.New(),
				Status:    model.InvitationAccepted,
				ExpiresAt: time.Now().Add(24 * time.Hour),
			}, nil)

		_, err := svc.FetchByToken(context.Background(), "tok")
		assert.ErrorIs(t, err, domain.ErrInvitationNotFound)
	})
}

func TestInvitationResend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	actor := adminPrincipal(orgID)

	t.Run("resends without moving the deadline", func(t *testing.T) {
		svc, m := newInvitationService(ctrl)

		expiresAt := time.Now().Add(24 * time.Hour)
		inv := &model.Invitation{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Email:          "rookie@example.com",
			Token:          "tok",
			Status:         model.InvitationPending,
			ExpiresAt:      expiresAt,
			Organization:   model.Organization{ID: orgID, Name: "12th Precinct"},
		}

		m.invitationRepo.EXPECT().
			FindByID(gomock.Any(), inv.ID).
			Return(inv, nil)

		require.NoError(t, svc.Resend(context.Background(), actor, inv.ID))
		require.Len(t, m.mailer.sent, 1)
		assert.Equal(t, expiresAt, m.mailer.sent[0].ExpiresAt)
	})

	t.Run("expired invitations cannot be resent", func(t *testing.T) {
		svc, m := newInvitationService(ctrl)

		inv := &model.Invitation{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Status:         model.InvitationPending,
			ExpiresAt:      time.Now().Add(-time.Hour),
		}

		gomock.InOrder(
			m.invitationRepo.EXPECT().
				FindByID(gomock.Any(), inv.ID).
				Return(inv, nil),

			m.invitationRepo.EXPECT().
				MarkExpired(gomock.Any(), inv.ID).
				Return(nil),
		)

		err := svc.Resend(context.Background(), actor, inv.ID)
		assert.ErrorIs(t, err, domain.ErrInvitationExpired)
	})
}

func TestInvitationList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	actor := adminPrincipal(orgID)

	t.Run("stale pending entries flip to expired on the way out", func(t *testing.T) {
		svc, m := newInvitationService(ctrl)

		fresh := model.Invitation{ID: uuid.New(), Status: model.InvitationPending, ExpiresAt: time.Now().Add(time.Hour)}
		stale := model.Invitation{ID: uuid.New(), Status: model.InvitationPending, ExpiresAt: time.Now().Add(-time.Hour)}

		gomock.InOrder(
			m.invitationRepo.EXPECT().
				FindByOrganization(gomock.Any(), orgID).
				Return([]model.Invitation{fresh, stale}, nil),

			m.invitationRepo.EXPECT().
				MarkExpired(gomock.Any(), stale.ID).
				Return(nil),
		)

		out, err := svc.List(context.Background(), actor)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, model.InvitationPending, out[0].Status)
		assert.Equal(t, model.InvitationExpired, out[1].Status)
	})
}
