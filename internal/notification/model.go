package notification

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// NotificationLog records every delivery attempt.
type NotificationLog struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	PartyID          uint           `gorm:"not null;index" json:"party_id"`
	ConfirmationCode string         `gorm:"size:20;index" json:"confirmation_code"`
	Channel          string         `gorm:"size:20;not null" json:"channel"` // smtp, ses, noop
	Subject          string         `gorm:"size:255" json:"subject,omitempty"`
	Recipients       datatypes.JSON `gorm:"not null" json:"recipients"`
	Status           string         `gorm:"size:20;not null;index" json:"status"`
	Error            *string        `json:"error,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}
