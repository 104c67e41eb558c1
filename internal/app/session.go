package app

import (
	"context"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvbach/omnitask/internal/alert"
	"github.com/nvbach/omnitask/internal/game"
	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/reminder"
	"github.com/nvbach/omnitask/internal/scheduler"
	"github.com/nvbach/omnitask/internal/sound"
	"github.com/nvbach/omnitask/internal/ui/auth"
	"github.com/nvbach/omnitask/internal/ui/gamepopup"
)

// unreadCountMsg carries the number of unread notifications.
type unreadCountMsg struct {
	count int
}

// manualTriggerMsg carries the outcome of a play-now request.
type manualTriggerMsg struct {
	game *model.BrainGame
	err  error
}

// popupOpenMsg carries everything needed to build the popup: the chosen
// game plus the current volume setting for audio cues.
type popupOpenMsg struct {
	game   model.BrainGame
	volume float64
}

// scoreRecordedMsg is sent after a completed game's score was persisted.
type scoreRecordedMsg struct{}

// signIn stores the profile and brings up the background loops. Fresh
// scanner and trigger instances are built each time because stopping
// them is one-way.
func (m Model) signIn(u model.User) (tea.Model, tea.Cmd) {
	m.user = &u
	m.currentView = ViewTasks

	m.scanner = reminder.NewScanner(
		m.store,
		alert.Send,
		m.cfg.ReminderInitialDelay(),
		m.cfg.ReminderInterval(),
	)
	// The trigger draws from its rand source on background goroutines,
	// so it gets its own; m.rng stays on the UI goroutine for sessions.
	m.trigger = scheduler.NewTrigger(
		m.store,
		m.gate,
		rand.New(rand.NewSource(time.Now().UnixNano())),
		m.cfg.TriggerInterval(),
		m.cfg.Scheduler.TriggerProbability,
	)

	return m, tea.Batch(
		m.scanner.Start(),
		m.trigger.Start(),
		m.taskBoard.Init(),
		m.calendarBoard.Init(),
		m.meetingBoard.Init(),
		m.noteBoard.Init(),
		m.statsBoard.Init(),
		m.historyBoard.Init(),
		m.gameBoard.Init(),
		m.fetchUnreadCount(),
	)
}

// signOut tears down the session and returns to the sign-in screen.
func (m Model) signOut() (tea.Model, tea.Cmd, bool) {
	m.teardownSession()
	auth.ForgetProfile()

	m.user = nil
	m.unreadCount = 0
	m.notifPanelOpen = false
	m.currentView = ViewAuth
	m.authView = auth.New(m.layout.Width, m.layout.Height)
	return m, m.authView.Init(), true
}

// teardownSession stops the background loops and discards any open
// popup. A running game is abandoned unscored; the gate is released so
// the next session starts clean.
func (m *Model) teardownSession() {
	if m.scanner != nil {
		m.scanner.Stop()
		m.scanner = nil
	}
	if m.trigger != nil {
		m.trigger.Stop()
		m.trigger = nil
	}
	if m.popup != nil {
		m.popup = nil
		m.gate.Release()
	}
}

// fetchUnreadCount queries the unread notification badge count.
func (m Model) fetchUnreadCount() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		count, err := s.CountUnreadNotifications(context.Background())
		if err != nil {
			return unreadCountMsg{count: 0}
		}
		return unreadCountMsg{count: count}
	}
}

// manualTrigger asks the scheduler for a game right now. The scheduler
// still enforces eligibility and the single-popup gate.
func (m Model) manualTrigger() tea.Cmd {
	t := m.trigger
	if t == nil {
		return nil
	}
	return func() tea.Msg {
		g, err := t.ManualTrigger(context.Background())
		return manualTriggerMsg{game: g, err: err}
	}
}

// openPopup reads the current volume setting and hands the game over to
// startPopup via popupOpenMsg. The gate is already held by the caller.
func (m Model) openPopup(g model.BrainGame) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		settings, err := s.GetGameSettings(context.Background())
		if err != nil {
			settings = model.DefaultGameSettings()
		}
		return popupOpenMsg{game: g, volume: settings.Volume}
	}
}

// startPopup builds the session and the popup view around it.
func (m *Model) startPopup(msg popupOpenMsg) {
	session := game.NewSession(msg.game, m.rng)
	popup := gamepopup.New(session, sound.New(msg.volume))
	m.popup = &popup
}

// closePopup tears the popup down, records a completed result, and
// releases the single-popup gate.
func (m Model) closePopup(msg gamepopup.ClosedMsg) (tea.Model, tea.Cmd) {
	m.popup = nil
	m.gate.Release()

	if msg.Result == nil {
		return m, nil
	}

	ledger := game.NewLedger(m.store)
	g, r := msg.Game, *msg.Result
	return m, func() tea.Msg {
		_ = ledger.Record(context.Background(), g, r)
		return scoreRecordedMsg{}
	}
}
