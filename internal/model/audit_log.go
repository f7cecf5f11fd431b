// internal/model/audit_log.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// AuditLog records an admin action within an organization.
type AuditLog struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index"`
	ActorID        uuid.UUID `json:"actor_id" gorm:"type:uuid;not null"`
	Action         string    `json:"action" gorm:"type:text;not null"`
	SubjectType    string    `json:"subject_type" gorm:"type:text"`
	SubjectID      string    `json:"subject_id" gorm:"type:text"`
	Context        JSONMap   `json:"context" gorm:"type:jsonb"`
	RequestID      string    `json:"request_id" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// TenantID implements policy.Resource.
func (a *AuditLog) TenantID() uuid.UUID {
	return a.OrganizationID
}

// Constants for AuditLog actions
const (
	ActionRoleChange       = "user.role_change"
	ActionUserRemove       = "user.remove"
	ActionOrgRename        = "organization.rename"
	ActionInvitationSend   = "invitation.send"
	ActionInvitationResend = "invitation.resend"
	ActionInvitationRevoke = "invitation.revoke"
	ActionInvitationAccept = "invitation.accept"
	ActionTagCreate        = "tag.create"
	ActionTagUpdate        = "tag.update"
	ActionTagDelete        = "tag.delete"
	ActionEventBulkDelete  = "event.bulk_delete"
)

// JSONMap represents a generic map stored as JSONB in the database
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface for JSONMap
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for JSONMap
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(JSONMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion failed: failed to decode JSONB")
	}

	return json.Unmarshal(bytes, m)
}
