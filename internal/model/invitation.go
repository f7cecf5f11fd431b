// internal/model/invitation.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

// Invitation is a token-based, time-limited, single-use organization join
// grant. At most one pending invitation exists per (organization, email);
// that is enforced by a partial unique index created during migration.
type Invitation struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"organization_id"`
	Email           string           `gorm:"type:citext;not null" json:"email"`
	Token           string           `gorm:"type:text;uniqueIndex;not null" json:"-"`
	Role            Role             `gorm:"type:text;not null;default:'user'" json:"role"`
	Status          InvitationStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	InvitedByUserID uuid.UUID        `gorm:"type:uuid;not null" json:"invited_by_user_id"`
	ExpiresAt       time.Time        `gorm:"not null" json:"expires_at"`
	CreatedAt       time.Time        `json:"created_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

// BeforeCreate hook for Invitation
func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = InvitationPending
	}
	return nil
}

// TenantID implements policy.Resource.
func (i *Invitation) TenantID() uuid.UUID {
	return i.OrganizationID
}

// ExpiredAt reports whether the invitation's deadline has passed at now.
// Status transitions to expired lazily, on the first read past the deadline.
func (i *Invitation) ExpiredAt(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
