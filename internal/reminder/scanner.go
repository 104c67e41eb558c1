// Package reminder scans the task list for due, reminder-flagged tasks
// and raises in-app notifications, at most one per task per calendar day.
package reminder

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/store"
)

// scanTimeout bounds a single scan's store access.
const scanTimeout = 10 * time.Second

// ScanResultMsg is a tea.Msg sent after each reminder scan.
type ScanResultMsg struct {
	// Created is how many new notifications this scan appended.
	Created int

	// Error is a degraded-scan indicator; the scan never aborts the
	// session, it just reports that nothing could be checked.
	Error error
}

// ReminderTitle builds the notification title that keys per-day
// idempotence for a task.
func ReminderTitle(taskTitle string) string {
	return "Reminder: " + taskTitle
}

// Due computes the notifications a scan at `now` should append, given the
// current tasks and the existing notification log. It is a pure function:
// same inputs, same outputs, no clock and no store access.
//
// A task qualifies when it falls on now's calendar day, has the reminder
// flag, is still open (PENDING or ON-GOING), and no notification carrying
// its reminder title already exists on that same day.
func Due(tasks []model.Task, existing []model.AppNotification, now time.Time) []model.AppNotification {
	today := now.Format(model.DateLayout)

	notifiedToday := make(map[string]bool)
	for _, n := range existing {
		// The store hands times back in UTC; compare calendar days in
		// now's zone or an evening scan west of UTC re-notifies.
		if n.Time.In(now.Location()).Format(model.DateLayout) == today {
			notifiedToday[n.Title] = true
		}
	}

	var due []model.AppNotification
	for _, t := range tasks {
		if t.Date != today || !t.Reminder || !t.IsOpen() {
			continue
		}
		title := ReminderTitle(t.Title)
		if notifiedToday[title] {
			continue
		}
		due = append(due, model.AppNotification{
			Title:   title,
			Message: fmt.Sprintf("This task is due today. Status: %s", t.Status),
			Time:    now,
			Read:    false,
		})
		// Guard against duplicate titles within one scan as well.
		notifiedToday[title] = true
	}

	return due
}

// Scanner runs the reminder scan against the store, on demand and on a
// background schedule.
type Scanner struct {
	store        store.Store
	alert        func(title, message string)
	initialDelay time.Duration
	interval     time.Duration

	resultCh chan ScanResultMsg
	stopCh   chan struct{}
	mu       gosync.Mutex
	running  bool
}

// NewScanner creates a scanner. alert is the best-effort system-level
// notifier; pass nil to disable OS alerts entirely (tests do).
func NewScanner(s store.Store, alert func(title, message string), initialDelay, interval time.Duration) *Scanner {
	return &Scanner{
		store:        s,
		alert:        alert,
		initialDelay: initialDelay,
		interval:     interval,
		resultCh:     make(chan ScanResultMsg, 16),
		stopCh:       make(chan struct{}),
	}
}

// Scan performs one reminder pass: read tasks and the notification log,
// append whatever Due says is missing, and request a single OS alert when
// anything new was produced. The OS alert is fire-and-forget; its failure
// can never block notification creation because it runs after the
// appends and reports nothing.
func (sc *Scanner) Scan(ctx context.Context, now time.Time) (int, error) {
	tasks, err := sc.store.GetTasks(ctx, store.TaskFilter{
		Date:         strPtr(now.Format(model.DateLayout)),
		ReminderOnly: true,
		OpenOnly:     true,
	})
	if err != nil {
		return 0, fmt.Errorf("reading tasks for reminder scan: %w", err)
	}

	existing, err := sc.store.GetNotifications(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading notification log: %w", err)
	}

	due := Due(tasks, existing, now)
	for _, n := range due {
		if err := sc.store.CreateNotification(ctx, n); err != nil {
			return 0, fmt.Errorf("appending reminder notification: %w", err)
		}
	}

	if len(due) > 0 && sc.alert != nil {
		sc.alert(
			"OmniTask Reminder",
			fmt.Sprintf("Check your dashboard. %d tasks pending.", len(due)),
		)
	}

	return len(due), nil
}

// Start launches the background scan loop and returns a tea.Cmd that
// delivers the next ScanResultMsg to the program. Call WaitForNextResult
// after each message to keep the subscription alive.
func (sc *Scanner) Start() tea.Cmd {
	sc.mu.Lock()
	if sc.running {
		sc.mu.Unlock()
		return sc.waitForResult()
	}
	sc.running = true
	sc.mu.Unlock()

	go sc.loop()

	return sc.waitForResult()
}

// Stop halts the background loop. All session-scoped timers die here;
// nothing survives past a sign-out.
func (sc *Scanner) Stop() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if !sc.running {
		return
	}

	close(sc.stopCh)
	sc.running = false
}

// WaitForNextResult returns a tea.Cmd that waits for the next scan result.
func (sc *Scanner) WaitForNextResult() tea.Cmd {
	return sc.waitForResult()
}

// loop waits out the initial delay, then scans on a fixed interval until
// stopped. Invocations are serialized by construction: one goroutine, one
// scan at a time.
func (sc *Scanner) loop() {
	initial := time.NewTimer(sc.initialDelay)
	defer initial.Stop()

	select {
	case <-sc.stopCh:
		return
	case <-initial.C:
		sc.runScan()
	}

	ticker := time.NewTicker(sc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-sc.stopCh:
			return
		case <-ticker.C:
			sc.runScan()
		}
	}
}

func (sc *Scanner) runScan() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	created, err := sc.Scan(ctx, time.Now())
	sc.sendResult(ScanResultMsg{Created: created, Error: err})
}

// sendResult sends without blocking; a full channel drops the message
// rather than stalling the loop.
func (sc *Scanner) sendResult(msg ScanResultMsg) {
	select {
	case sc.resultCh <- msg:
	default:
	}
}

func (sc *Scanner) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-sc.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

func strPtr(s string) *string { return &s }
