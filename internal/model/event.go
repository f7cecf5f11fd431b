// internal/model/event.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventSubmitted EventStatus = "submitted"
)

// Event is a logged activity record (traffic stop, arrest, community
// interaction). organization_id always equals the creating officer's
// organization.
type Event struct {
	ID              uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"organization_id"`
	OfficerID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"officer_id"`
	OfficerName     string      `gorm:"type:text;not null" json:"officer_name"`
	StartTime       time.Time   `gorm:"not null;index" json:"start_time"`
	EndTime         *time.Time  `json:"end_time,omitempty"`
	Notes           string      `gorm:"type:text" json:"notes"`
	InvolvedParties string      `gorm:"type:text" json:"involved_parties,omitempty"`
	Status          EventStatus `gorm:"type:text;not null;default:'draft'" json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	Tags []Tag `gorm:"many2many:event_tags;constraint:OnDelete:CASCADE" json:"tags"`
}

// BeforeCreate hook for Event
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = EventDraft
	}
	return nil
}

// TenantID implements policy.Resource.
func (e *Event) TenantID() uuid.UUID {
	return e.OrganizationID
}

// OwnerID implements policy.Owned.
func (e *Event) OwnerID() uuid.UUID {
	return e.OfficerID
}

func ValidEventStatus(s EventStatus) bool {
	return s == EventDraft || s == EventSubmitted
}
