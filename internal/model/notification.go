package model

import "time"

// AppNotification is an in-app alert surfaced on the notification panel.
// Reminder notifications are created by the reminder scanner; the title
// "Reminder: {task title}" is what keeps the scanner idempotent per task
// per calendar day.
type AppNotification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// Title is the short headline shown in the panel.
	Title string `json:"title"`

	// Message is the human-readable notification body.
	Message string `json:"message"`

	// Time is when this notification was generated.
	Time time.Time `json:"time"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`
}
