// internal/policy/adminguard.go
package policy

import (
	"github.com/beatbookhq/beatbook/internal/model"
)

// CanChangeRole decides whether actor may set target's role to newRole.
// adminCount is the organization's current number of admins, read by the
// caller; the repository re-checks it under a row lock before committing.
func CanChangeRole(actor Principal, target *model.User, newRole model.Role, adminCount int64) Decision {
	if !actor.Onboarded() {
		return Deny(ReasonUnauthenticated)
	}
	if target.OrganizationID != actor.Profile.OrganizationID {
		return Deny(ReasonCrossTenant)
	}
	if !actor.IsAdmin() {
		return Deny(ReasonInsufficientRole)
	}
	if target.ID == actor.UserID {
		return Deny(ReasonSelfAction)
	}
	if target.Role == model.RoleAdmin && newRole == model.RoleUser && adminCount <= 1 {
		return Deny(ReasonLastAdmin)
	}
	return Allow()
}

// CanRemoveUser decides whether actor may remove target from the
// organization. Admins must be demoted before removal, which routes the
// last-admin protection through CanChangeRole.
func CanRemoveUser(actor Principal, target *model.User) Decision {
	if !actor.Onboarded() {
		return Deny(ReasonUnauthenticated)
	}
	if target.OrganizationID != actor.Profile.OrganizationID {
		return Deny(ReasonCrossTenant)
	}
	if !actor.IsAdmin() {
		return Deny(ReasonInsufficientRole)
	}
	if target.ID == actor.UserID {
		return Deny(ReasonSelfAction)
	}
	if target.Role == model.RoleAdmin {
		return Deny(ReasonTargetIsAdmin)
	}
	return Allow()
}
