// internal/model/identity.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type IdentityStatus string

const (
	IdentityActive IdentityStatus = "active"
	IdentityLocked IdentityStatus = "locked"
)

// Identity is the authentication-plane record. A principal exists as soon as
// an identity does; the application-level User profile is created later,
// during onboarding or invitation acceptance, under the same ID.
type Identity struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email     string         `gorm:"type:citext;uniqueIndex;not null" json:"email"`
	Status    IdentityStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Credentials []Credential `gorm:"foreignKey:IdentityID" json:"-"`
}
