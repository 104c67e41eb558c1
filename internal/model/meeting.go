package model

// Meeting is a scheduled meeting entry on the meetings board.
type Meeting struct {
	// ID is the unique identifier for this meeting.
	ID string `json:"id"`

	// Title is the meeting subject.
	Title string `json:"title"`

	// Date is the calendar day (DateLayout).
	Date string `json:"date"`

	// Time is the start time in "15:04" form.
	Time string `json:"time"`

	// Description is the agenda or free-form details.
	Description string `json:"description"`

	// Platform names where the meeting happens (e.g. "Google Meet").
	Platform string `json:"platform"`
}
