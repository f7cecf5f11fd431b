// internal/policy/policy.go

// Package policy holds the tenant-isolation and role rules as pure decision
// functions. Every function takes a fully resolved Principal; nothing here
// touches the database or the request context.
package policy

import (
	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/google/uuid"
)

// Principal is an authenticated caller together with their profile. Profile
// is nil for identities that have not completed onboarding yet.
type Principal struct {
	UserID  uuid.UUID
	Email   string
	Profile *model.User
}

func (p Principal) Onboarded() bool {
	return p.Profile != nil
}

func (p Principal) IsAdmin() bool {
	return p.Profile != nil && p.Profile.IsAdmin()
}

// Reason explains a denial.
type Reason string

const (
	ReasonUnauthenticated  Reason = "unauthenticated"
	ReasonCrossTenant      Reason = "cross_tenant"
	ReasonInsufficientRole Reason = "insufficient_role"
	ReasonNotOwner         Reason = "not_owner"
	ReasonSelfAction       Reason = "self_action"
	ReasonLastAdmin        Reason = "last_admin"
	ReasonTargetIsAdmin    Reason = "target_is_admin"
	ReasonSubmittedLocked  Reason = "submitted_locked"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(r Reason) Decision {
	return Decision{Reason: r}
}

// Err maps a denial to its domain sentinel. Nil for allowed decisions.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case ReasonUnauthenticated:
		return domain.ErrUnauthenticated
	case ReasonCrossTenant:
		return domain.ErrCrossTenant
	case ReasonNotOwner:
		return domain.ErrNotOwner
	case ReasonSelfAction:
		return domain.ErrSelfAction
	case ReasonLastAdmin:
		return domain.ErrLastAdmin
	case ReasonTargetIsAdmin:
		return domain.ErrTargetIsAdmin
	case ReasonSubmittedLocked:
		return domain.ErrEventSubmitted
	default:
		return domain.ErrInsufficientRole
	}
}

// Action identifies an operation subject to authorization.
type Action string

const (
	ActionEventRead       Action = "event.read"
	ActionEventCreate     Action = "event.create"
	ActionEventUpdate     Action = "event.update"
	ActionEventDelete     Action = "event.delete"
	ActionEventBulkDelete Action = "event.bulk_delete"

	ActionTagRead   Action = "tag.read"
	ActionTagCreate Action = "tag.create"
	ActionTagUpdate Action = "tag.update"
	ActionTagDelete Action = "tag.delete"

	ActionInvitationCreate Action = "invitation.create"
	ActionInvitationList   Action = "invitation.list"
	ActionInvitationRevoke Action = "invitation.revoke"
	ActionInvitationResend Action = "invitation.resend"

	ActionUserList   Action = "user.list"
	ActionRoleChange Action = "user.role_change"
	ActionUserRemove Action = "user.remove"

	ActionOrgRename Action = "organization.rename"

	ActionAuditRead Action = "audit.read"
)

var adminOnly = map[Action]bool{
	ActionEventBulkDelete:  true,
	ActionTagCreate:        true,
	ActionTagUpdate:        true,
	ActionTagDelete:        true,
	ActionInvitationCreate: true,
	ActionInvitationList:   true,
	ActionInvitationRevoke: true,
	ActionInvitationResend: true,
	ActionRoleChange:       true,
	ActionUserRemove:       true,
	ActionOrgRename:        true,
	ActionAuditRead:        true,
}

// Resource is anything partitioned by organization.
type Resource interface {
	TenantID() uuid.UUID
}

// Owned is a resource with a single owning user.
type Owned interface {
	OwnerID() uuid.UUID
}

// Authorize applies the tenant-boundary rules in order: authenticated
// profile, same organization, required role, then ownership for non-admin
// event mutation. Resource may be nil for collection-level actions.
func Authorize(p Principal, res Resource, action Action) Decision {
	if !p.Onboarded() {
		return Deny(ReasonUnauthenticated)
	}

	if res != nil && res.TenantID() != p.Profile.OrganizationID {
		return Deny(ReasonCrossTenant)
	}

	if adminOnly[action] && !p.IsAdmin() {
		return Deny(ReasonInsufficientRole)
	}

	if (action == ActionEventUpdate || action == ActionEventDelete) && !p.IsAdmin() {
		if owned, ok := res.(Owned); ok && owned.OwnerID() != p.UserID {
			return Deny(ReasonNotOwner)
		}
	}

	return Allow()
}

// CanModifyEvent layers the draft/submitted lifecycle rules on top of
// Authorize: a non-admin owner may edit or delete an event only while it is
// still a draft. Admins may modify any event in their organization.
func CanModifyEvent(p Principal, event *model.Event, action Action) Decision {
	if d := Authorize(p, event, action); !d.Allowed {
		return d
	}

	if !p.IsAdmin() && event.Status == model.EventSubmitted {
		return Deny(ReasonSubmittedLocked)
	}

	return Allow()
}
