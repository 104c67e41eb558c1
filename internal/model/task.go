package model

import "time"

// Task status values as shown on the task board.
const (
	StatusPending      = "PENDING"
	StatusOnGoing      = "ON-GOING"
	StatusDone         = "DONE"
	StatusCanceled     = "CANCELED"
	StatusToReschedule = "TO RESCHEDULE"
)

// TaskStatuses lists every status in board display order.
var TaskStatuses = []string{
	StatusPending,
	StatusOnGoing,
	StatusDone,
	StatusCanceled,
	StatusToReschedule,
}

// DateLayout is the calendar-day format used by tasks and meetings.
// Task dates carry no time-of-day; reminder checks are day-granular.
const DateLayout = "2006-01-02"

// Task is a single tracked item on the task board.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id"`

	// Title is the short human-readable summary.
	Title string `json:"title"`

	// Description is the full body text.
	Description string `json:"description"`

	// Location is an optional free-form place hint.
	Location string `json:"location,omitempty"`

	// Date is the calendar day this task is scheduled for (DateLayout).
	Date string `json:"date"`

	// Status is one of the Status* constants.
	Status string `json:"status"`

	// Remarks holds free-form follow-up notes.
	Remarks string `json:"remarks"`

	// Reminder requests a same-day notification while the task is open.
	Reminder bool `json:"reminder"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`
}

// IsOpen reports whether the task still counts as actionable for
// reminder purposes.
func (t Task) IsOpen() bool {
	return t.Status == StatusPending || t.Status == StatusOnGoing
}

// DueOn reports whether the task falls on the given calendar day.
func (t Task) DueOn(day time.Time) bool {
	return t.Date == day.Format(DateLayout)
}
