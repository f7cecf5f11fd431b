package policy_test

import (
	"testing"

	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/policy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanChangeRole(t *testing.T) {
	orgA := uuid.New()
	orgB := uuid.New()

	admin := memberOf(orgA, model.RoleAdmin)
	member := memberOf(orgA, model.RoleUser)

	otherAdmin := &model.User{ID: uuid.New(), OrganizationID: orgA, Role: model.RoleAdmin}
	otherMember := &model.User{ID: uuid.New(), OrganizationID: orgA, Role: model.RoleUser}
	foreignUser := &model.User{ID: uuid.New(), OrganizationID: orgB, Role: model.RoleUser}

	tests := []struct {
		name       string
		actor      policy.Principal
		target     *model.User
		newRole    model.Role
		adminCount int64
		allow      bool
		reason     policy.Reason
	}{
		{"admin promotes a member", admin, otherMember, model.RoleAdmin, 1, true, ""},
		{"admin demotes one of two admins", admin, otherAdmin, model.RoleUser, 2, true, ""},
		{"demoting the last admin is denied", admin, otherAdmin, model.RoleUser, 1, false, policy.ReasonLastAdmin},
		{"member cannot change roles", member, otherMember, model.RoleAdmin, 2, false, policy.ReasonInsufficientRole},
		{"cross-tenant target is denied", admin, foreignUser, model.RoleAdmin, 2, false, policy.ReasonCrossTenant},
		{"promoting an admin to admin is a no-op allow", admin, otherAdmin, model.RoleAdmin, 1, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := policy.CanChangeRole(tt.actor, tt.target, tt.newRole, tt.adminCount)
			assert.Equal(t, tt.allow, d.Allowed)
			if !tt.allow {
				assert.Equal(t, tt.reason, d.Reason)
			}
		})
	}

	t.Run("self role change is denied", func(t *testing.T) {
		d := policy.CanChangeRole(admin, admin.Profile, model.RoleUser, 2)
		assert.False(t, d.Allowed)
		assert.Equal(t, policy.ReasonSelfAction, d.Reason)
	})
}

func TestCanRemoveUser(t *testing.T) {
	orgA := uuid.New()
	orgB := uuid.New()

	admin := memberOf(orgA, model.RoleAdmin)
	member := memberOf(orgA, model.RoleUser)

	otherAdmin := &model.User{ID: uuid.New(), OrganizationID: orgA, Role: model.RoleAdmin}
	otherMember := &model.User{ID: uuid.New(), OrganizationID: orgA, Role: model.RoleUser}
	foreignUser := &model.User{ID: uuid.New(), OrganizationID: orgB, Role: model.RoleUser}

	t.Run("admin removes a member", func(t *testing.T) {
		assert.True(t, policy.CanRemoveUser(admin, otherMember).Allowed)
	})

	t.Run("admins must be demoted first", func(t *testing.T) {
		d := policy.CanRemoveUser(admin, otherAdmin)
		assert.False(t, d.Allowed)
		assert.Equal(t, policy.ReasonTargetIsAdmin, d.Reason)
	})

	t.Run("self removal is denied", func(t *testing.T) {
		d := policy.CanRemoveUser(admin, admin.Profile)
		assert.False(t, d.Allowed)
		assert.Equal(t, policy.ReasonSelfAction, d.Reason)
	})

	t.Run("member cannot remove anyone", func(t *testing.T) {
		d := policy.CanRemoveUser(member, otherMember)
		assert.False(t, d.Allowed)
		assert.Equal(t, policy.ReasonInsufficientRole, d.Reason)
	})

	t.Run("cross-tenant removal is denied", func(t *testing.T) {
		d := policy.CanRemoveUser(admin, foreignUser)
		assert.False(t, d.Allowed)
		assert.Equal(t, policy.ReasonCrossTenant, d.Reason)
	})
}
