// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// User is the application profile keyed by identity ID. Every user belongs to
// exactly one organization; every organization keeps at least one admin.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Email          string    `gorm:"type:citext;uniqueIndex;not null" json:"email"`
	FullName       string    `gorm:"type:text;not null" json:"full_name"`
	BadgeNo        string    `gorm:"type:text" json:"badge_no,omitempty"`
	Role           Role      `gorm:"type:text;not null;default:'user'" json:"role"`
	Theme          Theme     `gorm:"type:text;not null;default:'light'" json:"theme"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TenantID implements policy.Resource.
func (u *User) TenantID() uuid.UUID {
	return u.OrganizationID
}

func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleUser
}

func ValidTheme(t Theme) bool {
	return t == ThemeLight || t == ThemeDark
}
