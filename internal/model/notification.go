package model

import "time"

// Notification is a server-generated alert about a task, surfaced in the
// notification panel.
type Notification struct {
	// ID is the server-assigned identifier, stringified.
	ID string `json:"id"`

	// TaskID links the notification to the originating task.
	TaskID string `json:"task_id"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"is_read"`

	// CreatedAt is when the notification was generated.
	CreatedAt time.Time `json:"created_at"`
}
