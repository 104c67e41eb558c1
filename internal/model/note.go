package model

import "time"

// NoteFolder groups notes on the notes board.
type NoteFolder struct {
	// ID is the unique identifier for this folder.
	ID string `json:"id"`

	// Name is the folder label.
	Name string `json:"name"`

	// Color is the folder accent color (hex).
	Color string `json:"color"`
}

// Note is a free-form text note, optionally filed under a folder.
type Note struct {
	// ID is the unique identifier for this note.
	ID string `json:"id"`

	// Title is the note headline.
	Title string `json:"title"`

	// Content is the note body.
	Content string `json:"content"`

	// FolderID is the owning folder, or empty for unfiled notes.
	FolderID string `json:"folder_id,omitempty"`

	// UpdatedAt is when the note was last edited.
	UpdatedAt time.Time `json:"updated_at"`
}
