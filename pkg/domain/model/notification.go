package model

import (
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
)

// Notification is a fire-and-forget toast
type Notification struct {
	Title     string                     `json:"title"`
	Message   string                     `json:"message"`
	Severity  types.NotificationSeverity `json:"severity"`
	SessionID types.SessionID            `json:"-"`
	CreatedAt time.Time                  `json:"created_at"`
}

// NewNotification creates an info notification
func NewNotification(title, message string) *Notification {
	return &Notification{
		Title:     title,
		Message:   message,
		Severity:  types.NotificationInfo,
		CreatedAt: time.Now(),
	}
}

// WithSeverity returns a copy with a different severity
func (n Notification) WithSeverity(s types.NotificationSeverity) *Notification {
	n.Severity = s
	return &n
}
