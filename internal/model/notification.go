package model

import "time"

// NotificationType is the severity of a transient notification.
type NotificationType string

// Notification types.
const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification is a client-only, ephemeral message shown in the
// notification widget. It is never persisted; the bus owns its lifecycle.
// ID is a stable identifier so dismissal survives concurrent prepends.
type Notification struct {
	Timestamp time.Time        `json:"timestamp"`
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Breakdown []SetAsideLine   `json:"breakdown,omitempty"`
	AutoHide  time.Duration    `json:"-"`
}
