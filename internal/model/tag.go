// internal/model/tag.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is an admin-managed label, unique by name within an organization.
// Deleting a tag cascade-deletes its event_tags join rows.
type Tag struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tags_org_name" json:"organization_id"`
	Name           string    `gorm:"type:text;not null;uniqueIndex:idx_tags_org_name" json:"name"`
	Color          string    `gorm:"type:text;not null" json:"color"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BeforeCreate hook for Tag
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TenantID implements policy.Resource.
func (t *Tag) TenantID() uuid.UUID {
	return t.OrganizationID
}
