package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// Actions recorded against guest records.
const (
	ActionRSVPSubmitted = "RSVP_SUBMITTED"
	ActionRSVPDuplicate = "RSVP_DUPLICATE"
	ActionGuestUpdated  = "GUEST_UPDATED"
	ActionGuestDeleted  = "GUEST_DELETED"
	ActionGuestsCleared = "GUESTS_CLEARED"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// AuditLog represents the audit_logs table
type AuditLog struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	PartyID          *uint          `gorm:"index" json:"party_id"`
	ConfirmationCode string         `gorm:"size:20;index" json:"confirmation_code,omitempty"`
	Action           string         `gorm:"size:100;not null;index" json:"action"`
	Details          datatypes.JSON `json:"details"`
	IPAddress        string         `gorm:"size:45" json:"ip_address"`
	Status           string         `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt        time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName overrides table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Entry is what callers hand to LogAction.
type Entry struct {
	PartyID          *uint
	ConfirmationCode string
	Action           string
	Details          map[string]interface{}
	IP               string
	Status           string
}

// AuditLogFilter represents filters for querying audit logs
type AuditLogFilter struct {
	Action string
	Status string
	Limit  int
}

const (
	DefaultLimit = 50
	MaxLimit     = 200
)
