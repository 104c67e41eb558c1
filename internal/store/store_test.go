package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/store"
	"github.com/nvbach/omnitask/tests/testutil"
)

func TestTaskCRUDAssignsIDs(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	task := model.Task{
		Title:  "write report",
		Date:   "2026-08-31",
		Status: model.StatusPending,
	}
	require.NoError(t, s.CreateTask(ctx, task))

	tasks, err := s.GetTasks(ctx, store.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.NotEmpty(t, tasks[0].ID)

	tasks[0].Status = model.StatusDone
	require.NoError(t, s.UpdateTask(ctx, tasks[0]))

	got, err := s.GetTaskByID(ctx, tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, got.Status)

	require.NoError(t, s.DeleteTask(ctx, tasks[0].ID))
	tasks, err = s.GetTasks(ctx, store.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestGetTasksFilters(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	seed := []model.Task{
		{Title: "due today", Date: "2026-08-31", Status: model.StatusPending, Reminder: true},
		{Title: "in progress", Date: "2026-08-31", Status: model.StatusOnGoing},
		{Title: "finished", Date: "2026-08-30", Status: model.StatusDone, Reminder: true},
		{Title: "next week", Date: "2026-09-04", Status: model.StatusPending},
	}
	for _, task := range seed {
		require.NoError(t, s.CreateTask(ctx, task))
	}

	day := "2026-08-31"
	tasks, err := s.GetTasks(ctx, store.TaskFilter{Date: &day})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	tasks, err = s.GetTasks(ctx, store.TaskFilter{Date: &day, ReminderOnly: true, OpenOnly: true})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "due today", tasks[0].Title)

	status := model.StatusDone
	tasks, err = s.GetTasks(ctx, store.TaskFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "finished", tasks[0].Title)

	query := "progress"
	tasks, err = s.GetTasks(ctx, store.TaskFilter{Query: &query})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "in progress", tasks[0].Title)

	from, to := "2026-08-31", "2026-09-30"
	tasks, err = s.GetTasks(ctx, store.TaskFilter{DateFrom: &from, DateTo: &to, SortBy: "date"})
	require.NoError(t, err)
	assert.Len(t, tasks, 3)
}

func TestNotesFolderFiltering(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateFolder(ctx, model.NoteFolder{Name: "Work"}))
	folders, err := s.GetFolders(ctx)
	require.NoError(t, err)
	require.Len(t, folders, 1)

	require.NoError(t, s.CreateNote(ctx, model.Note{
		Title: "filed", Content: "a", FolderID: folders[0].ID, UpdatedAt: time.Now(),
	}))
	require.NoError(t, s.CreateNote(ctx, model.Note{
		Title: "unfiled", Content: "b", UpdatedAt: time.Now(),
	}))

	all, err := s.GetNotes(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filed, err := s.GetNotes(ctx, &folders[0].ID)
	require.NoError(t, err)
	require.Len(t, filed, 1)
	assert.Equal(t, "filed", filed[0].Title)

	// Deleting the folder unfiles its notes instead of removing them.
	require.NoError(t, s.DeleteFolder(ctx, folders[0].ID))
	all, err = s.GetNotes(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNotificationsUnreadCountAndMarkAll(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateNotification(ctx, model.AppNotification{
			Title:   "Reminder: task",
			Message: "due",
			Time:    time.Now(),
		}))
	}

	count, err := s.CountUnreadNotifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, s.MarkAllNotificationsRead(ctx))

	count, err = s.CountUnreadNotifications(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	notifications, err := s.GetNotifications(ctx)
	require.NoError(t, err)
	assert.Len(t, notifications, 3)
}

func TestGameSettingsDefaultWhenUnset(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	settings, err := s.GetGameSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultGameSettings(), settings)

	settings.Enabled = false
	settings.GamesPerDay = 4
	require.NoError(t, s.PutGameSettings(ctx, settings))

	got, err := s.GetGameSettings(ctx)
	require.NoError(t, err)
	assert.False(t, got.Enabled)
	assert.Equal(t, 4, got.GamesPerDay)
}

func TestGetGamesActiveOnly(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for i, g := range model.SeedGames() {
		g.Active = i%2 == 0
		require.NoError(t, s.CreateGame(ctx, g))
	}

	all, err := s.GetGames(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	active, err := s.GetGames(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 3)
	for _, g := range active {
		assert.True(t, g.Active)
	}
}

func TestTopScoresRespectsLimit(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, score := range []int{120, 340, 90} {
		require.NoError(t, s.CreateScore(ctx, model.GameScore{
			GameTitle: "Mental Math",
			Type:      model.GameTypeMath,
			Score:     score,
			Date:      time.Now(),
		}))
	}

	top, err := s.TopScores(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, 340, top[0].Score)
	assert.Equal(t, 120, top[1].Score)
}

func TestPrefsRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	val, err := s.GetPref(ctx, "theme")
	require.NoError(t, err)
	assert.Empty(t, val)

	require.NoError(t, s.SetPref(ctx, "theme", "dark"))
	require.NoError(t, s.SetPref(ctx, "theme", "light")) // upsert

	val, err = s.GetPref(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", val)
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedDefaults(ctx, s))
	require.NoError(t, store.SeedDefaults(ctx, s))

	games, err := s.GetGames(ctx, false)
	require.NoError(t, err)
	assert.Len(t, games, 6)

	tasks, err := s.GetTasks(ctx, store.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}
