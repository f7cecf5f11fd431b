package service_test

import (
	"context"
	"testing"

	"github.com/beatbookhq/beatbook/internal/audit"
	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/mocks"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTagService(ctrl *gomock.Controller) (*service.TagService, *mocks.MockTagRepositoryIface) {
	tagRepo := mocks.NewMockTagRepositoryIface(ctrl)
	return service.NewTagService(tagRepo, &audit.NoOpLogger{}), tagRepo
}

func TestTagCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	admin := adminPrincipal(orgID)
	member := memberPrincipal(orgID)

	t.Run("name, color and description all persist", func(t *testing.T) {
		svc, tagRepo := newTagService(ctrl)

		tagRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tag *model.Tag) error {
				assert.Equal(t, orgID, tag.OrganizationID)
				assert.Equal(t, "Traffic Stop", tag.Name)
				assert.Equal(t, "#FF8800", tag.Color)
				assert.Equal(t, "Vehicle and pedestrian stops", tag.Description)
				tag.ID = uuid.New()
				return nil
			})

		tag, err := svc.Create(context.Background(), admin, service.TagInput{
			Name:        "  Traffic Stop ",
			Color:       "#FF8800",
			Description: " Vehicle and pedestrian stops ",
		})

		require.NoError(t, err)
		assert.Equal(t, "Vehicle and pedestrian stops", tag.Description)
	})

	t.Run("members cannot create tags", func(t *testing.T) {
		svc, _ := newTagService(ctrl)

		_, err := svc.Create(context.Background(), member, service.TagInput{Name: "Patrol"})
		assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	})

	t.Run("color must be #RRGGBB", func(t *testing.T) {
		svc, _ := newTagService(ctrl)

		_, err := svc.Create(context.Background(), admin, service.TagInput{Name: "Patrol", Color: "red"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		svc, _ := newTagService(ctrl)

		_, err := svc.Create(context.Background(), admin, service.TagInput{Name: "   "})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("duplicate name surfaces the conflict", func(t *testing.T) {
		svc, tagRepo := newTagService(ctrl)

		tagRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(domain.ErrTagNameTaken)

		_, err := svc.Create(context.Background(), admin, service.TagInput{Name: "Patrol"})
		assert.ErrorIs(t, err, domain.ErrTagNameTaken)
	})
}

func TestTagUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	admin := adminPrincipal(orgID)

	t.Run("edits replace name, color and description", func(t *testing.T) {
		svc, tagRepo := newTagService(ctrl)

		tagID := uuid.New()
		gomock.InOrder(
			tagRepo.EXPECT().
				FindByID(gomock.Any(), tagID).
				Return(&model.Tag{
					ID:             tagID,
					OrganizationID: orgID,
					Name:           "Patrol",
					Description:    "old",
				}, nil),

			tagRepo.EXPECT().
				Update(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, tag *model.Tag) error {
					assert.Equal(t, "Foot Patrol", tag.Name)
					assert.Equal(t, "#00AA00", tag.Color)
					assert.Equal(t, "Beat walking, sector checks", tag.Description)
					return nil
				}),
		)

		tag, err := svc.Update(context.Background(), admin, tagID, service.TagInput{
			Name:        "Foot Patrol",
			Color:       "#00AA00",
			Description: "Beat walking, sector checks",
		})

		require.NoError(t, err)
		assert.Equal(t, "Beat walking, sector checks", tag.Description)
	})

	t.Run("cross-tenant tag is denied", func(t *testing.T) {
		svc, tagRepo := newTagService(ctrl)

		tagID := uuid.New()
		tagRepo.EXPECT().
			FindByID(gomock.Any(), tagID).
			Return(&model.Tag{ID: tagID, OrganizationID: uuid.New(), Name: "Patrol"}, nil)

		_, err := svc.Update(context.Background(), admin, tagID, service.TagInput{Name: "Patrol"})
		assert.ErrorIs(t, err, domain.ErrCrossTenant)
	})
}

func TestTagDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	admin := adminPrincipal(orgID)
	member := memberPrincipal(orgID)

	t.Run("admin deletes a tag", func(t *testing.T) {
		svc, tagRepo := newTagService(ctrl)

		tagID := uuid.New()
		gomock.InOrder(
			tagRepo.EXPECT().
				FindByID(gomock.Any(), tagID).
				Return(&model.Tag{ID: tagID, OrganizationID: orgID, Name: "Patrol"}, nil),

			tagRepo.EXPECT().
				Delete(gomock.Any(), tagID).
				Return(nil),
		)

		assert.NoError(t, svc.Delete(context.Background(), admin, tagID))
	})

	t.Run("members cannot delete tags", func(t *testing.T) {
		svc, tagRepo := newTagService(ctrl)

		tagID := uuid.New()
		tagRepo.EXPECT().
			FindByID(gomock.Any(), tagID).
			Return(&model.Tag{ID: tagID, OrganizationID: orgID, Name: "Patrol"}, nil)

		err := svc.Delete(context.Background(), member, tagID)
		assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	})
}
