// internal/model/credential.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CredentialKind string

const (
	CredentialHashpass CredentialKind = "hashpass"
)

// Credential is authentication material attached to an identity.
type Credential struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	IdentityID uuid.UUID      `gorm:"type:uuid;not null;column:identity_id;index" json:"identity_id"`
	Kind       CredentialKind `gorm:"type:text;not null" json:"kind"`
	Material   string         `gorm:"type:text" json:"-"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	LastUsedAt *time.Time     `json:"last_used_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	Identity Identity `gorm:"foreignKey:IdentityID" json:"-"`
}

// BeforeCreate hook for Credential
func (c *Credential) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	if c.Kind != CredentialHashpass {
		return fmt.Errorf("invalid credential kind: %s", c.Kind)
	}

	return nil
}
