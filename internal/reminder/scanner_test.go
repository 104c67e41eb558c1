package reminder_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/reminder"
	"github.com/nvbach/omnitask/tests/testutil"
)

func dueTask(title, date, status string, remind bool) model.Task {
	return model.Task{
		Title:    title,
		Date:     date,
		Status:   status,
		Reminder: remind,
	}
}

func TestDueSelectsOpenReminderTasksForToday(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	today := now.Format(model.DateLayout)

	tasks := []model.Task{
		dueTask("write report", today, model.StatusPending, true),
		dueTask("standup", today, model.StatusOnGoing, true),
		dueTask("no reminder", today, model.StatusPending, false),
		dueTask("already done", today, model.StatusDone, true),
		dueTask("tomorrow", "2026-09-01", model.StatusPending, true),
	}

	due := reminder.Due(tasks, nil, now)

	require.Len(t, due, 2)
	assert.Equal(t, "Reminder: write report", due[0].Title)
	assert.Equal(t, "Reminder: standup", due[1].Title)
	assert.False(t, due[0].Read)
	assert.Equal(t, now, due[0].Time)
}

func TestDueIsIdempotentPerTaskPerDay(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	today := now.Format(model.DateLayout)
	tasks := []model.Task{dueTask("write report", today, model.StatusPending, true)}

	first := reminder.Due(tasks, nil, now)
	require.Len(t, first, 1)

	// A later scan the same day sees the existing notification.
	later := now.Add(2 * time.Hour)
	second := reminder.Due(tasks, first, later)
	assert.Empty(t, second)

	// The next day it fires again.
	nextDay := now.Add(24 * time.Hour)
	tasks[0].Date = nextDay.Format(model.DateLayout)
	third := reminder.Due(tasks, first, nextDay)
	assert.Len(t, third, 1)
}

func TestDueComparesDaysInNowsZone(t *testing.T) {
	// 20:00 in a UTC-5 zone is already the next calendar day in UTC.
	zone := time.FixedZone("EST", -5*60*60)
	now := time.Date(2026, 8, 31, 20, 0, 0, 0, zone)
	today := now.Format(model.DateLayout)
	tasks := []model.Task{dueTask("write report", today, model.StatusPending, true)}

	first := reminder.Due(tasks, nil, now)
	require.Len(t, first, 1)

	// The store returns notification times in UTC. A later scan the same
	// local evening must still see them as today's.
	first[0].Time = first[0].Time.UTC()
	second := reminder.Due(tasks, first, now.Add(time.Hour))
	assert.Empty(t, second)
}

func TestDueDeduplicatesIdenticalTitlesWithinOneScan(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	today := now.Format(model.DateLayout)
	tasks := []model.Task{
		dueTask("write report", today, model.StatusPending, true),
		dueTask("write report", today, model.StatusOnGoing, true),
	}

	due := reminder.Due(tasks, nil, now)
	assert.Len(t, due, 1)
}

func TestScanAppendsNotificationsAndAlertsOnce(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	now := time.Now()
	today := now.Format(model.DateLayout)

	require.NoError(t, s.CreateTask(ctx, dueTask("write report", today, model.StatusPending, true)))
	require.NoError(t, s.CreateTask(ctx, dueTask("standup", today, model.StatusOnGoing, true)))

	var alerts []string
	sc := reminder.NewScanner(s, func(title, message string) {
		alerts = append(alerts, message)
	}, time.Hour, time.Hour)

	created, err := sc.Scan(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	notifications, err := s.GetNotifications(ctx)
	require.NoError(t, err)
	assert.Len(t, notifications, 2)

	// One OS alert per scan, not per notification.
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0], "2 tasks pending")

	// Rescanning the same day produces nothing new and no alert.
	created, err = sc.Scan(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Len(t, alerts, 1)

	count, err := s.CountUnreadNotifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestScanIdempotentAcrossUTCMidnight(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	zone := time.FixedZone("EST", -5*60*60)
	now := time.Date(2026, 8, 31, 20, 0, 0, 0, zone)
	today := now.Format(model.DateLayout)

	require.NoError(t, s.CreateTask(ctx, dueTask("write report", today, model.StatusPending, true)))

	sc := reminder.NewScanner(s, nil, time.Hour, time.Hour)

	created, err := sc.Scan(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, created)

	// An hour later it is still Aug 31 locally even though UTC has
	// rolled over to Sep 1; the same task must not re-notify.
	created, err = sc.Scan(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, created)

	notifications, err := s.GetNotifications(ctx)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestScanWithNilAlertIsSafe(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	today := time.Now().Format(model.DateLayout)

	require.NoError(t, s.CreateTask(ctx, dueTask("write report", today, model.StatusPending, true)))

	sc := reminder.NewScanner(s, nil, time.Hour, time.Hour)
	created, err := sc.Scan(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

func TestScannerStopIsIdempotent(t *testing.T) {
	s := testutil.NewTestStore(t)
	sc := reminder.NewScanner(s, nil, time.Hour, time.Hour)

	_ = sc.Start()
	sc.Stop()
	sc.Stop() // second stop must not panic
}
