package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Activity action tags.
const (
	ActionLogin            = "login"
	ActionLogout           = "logout"
	ActionRegister         = "register"
	ActionRequestCreated   = "request_created"
	ActionRequestUpdated   = "request_updated"
	ActionStatusChanged    = "request_status_changed"
	ActionProfileUpdated   = "profile_updated"
	ActionPasswordChanged  = "password_changed"
	ActionUserRoleChanged  = "user_role_changed"
	ActionPublicSubmission = "public_request_submitted"
)

// Details is the free-form payload attached to an activity entry.
type Details map[string]any

// Value stores Details as a JSONB document.
func (d Details) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads a JSONB document into Details.
func (d *Details) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = Details{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("details: unsupported type %T", src)
	}
	out := Details{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*d = out
	return nil
}

// ActivityLog is one append-only audit record.
type ActivityLog struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	UserID    uuid.NullUUID `json:"userId" db:"user_id"`
	Action    string        `json:"action" db:"action"`
	Details   Details       `json:"details" db:"details"`
	IPAddress string        `json:"ipAddress,omitempty" db:"ip_address"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
}
