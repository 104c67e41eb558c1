package store

import (
	"context"

	"github.com/nvbach/omnitask/internal/model"
)

// TaskFilter controls filtering and sorting for task queries.
type TaskFilter struct {
	Status       *string // one of the model.Status* constants, or nil (all)
	Query        *string // search title + description
	Date         *string // exact calendar day (model.DateLayout)
	DateFrom     *string // inclusive lower bound on the calendar day
	DateTo       *string // inclusive upper bound on the calendar day
	ReminderOnly bool    // only tasks with the reminder flag set
	OpenOnly     bool    // only PENDING / ON-GOING tasks
	SortBy       string  // "date", "created_at", "title", "status"
	SortDesc     bool
	Limit        int
}

// Store defines the persistence interface for every dashboard collection.
// All reads go through here so background loops always observe the latest
// committed state instead of a stale in-memory capture.
type Store interface {
	// === Tasks ===

	CreateTask(ctx context.Context, t model.Task) error
	UpdateTask(ctx context.Context, t model.Task) error
	DeleteTask(ctx context.Context, id string) error
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)

	// === Meetings ===

	CreateMeeting(ctx context.Context, m model.Meeting) error
	UpdateMeeting(ctx context.Context, m model.Meeting) error
	DeleteMeeting(ctx context.Context, id string) error
	GetMeetings(ctx context.Context) ([]model.Meeting, error)

	// === Notes and folders ===

	CreateNote(ctx context.Context, n model.Note) error
	UpdateNote(ctx context.Context, n model.Note) error
	DeleteNote(ctx context.Context, id string) error
	GetNotes(ctx context.Context, folderID *string) ([]model.Note, error)
	CreateFolder(ctx context.Context, f model.NoteFolder) error
	DeleteFolder(ctx context.Context, id string) error
	GetFolders(ctx context.Context) ([]model.NoteFolder, error)

	// === Notifications ===

	CreateNotification(ctx context.Context, n model.AppNotification) error
	GetNotifications(ctx context.Context) ([]model.AppNotification, error)
	CountUnreadNotifications(ctx context.Context) (int, error)
	MarkAllNotificationsRead(ctx context.Context) error

	// === Brain games ===

	CreateGame(ctx context.Context, g model.BrainGame) error
	UpdateGame(ctx context.Context, g model.BrainGame) error
	DeleteGame(ctx context.Context, id string) error
	GetGames(ctx context.Context, activeOnly bool) ([]model.BrainGame, error)

	// === Game settings (single row) ===

	GetGameSettings(ctx context.Context) (model.GameSettings, error)
	PutGameSettings(ctx context.Context, s model.GameSettings) error

	// === Game scores (append-only) ===

	CreateScore(ctx context.Context, s model.GameScore) error
	GetScores(ctx context.Context, limit int) ([]model.GameScore, error)
	TopScores(ctx context.Context, n int) ([]model.GameScore, error)

	// === Preferences (key-value, e.g. theme, current user) ===

	GetPref(ctx context.Context, key string) (string, error)
	SetPref(ctx context.Context, key, value string) error
}
