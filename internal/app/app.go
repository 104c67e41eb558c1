// Package app holds the root Bubble Tea model: board routing, the
// signed-in session, and the two background loops (reminder scanner and
// popup trigger) that only run while a user is signed in.
package app

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvbach/omnitask/internal/keys"
	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/reminder"
	"github.com/nvbach/omnitask/internal/scheduler"
	"github.com/nvbach/omnitask/internal/store"
	"github.com/nvbach/omnitask/internal/ui"
	"github.com/nvbach/omnitask/internal/ui/analytics"
	"github.com/nvbach/omnitask/internal/ui/auth"
	"github.com/nvbach/omnitask/internal/ui/calendar"
	"github.com/nvbach/omnitask/internal/ui/gamepopup"
	"github.com/nvbach/omnitask/internal/ui/games"
	"github.com/nvbach/omnitask/internal/ui/history"
	"github.com/nvbach/omnitask/internal/ui/meetings"
	"github.com/nvbach/omnitask/internal/ui/notes"
	"github.com/nvbach/omnitask/internal/ui/notifpanel"
	"github.com/nvbach/omnitask/internal/ui/tasks"
)

// ViewState represents the current active board.
type ViewState int

const (
	ViewAuth ViewState = iota
	ViewTasks
	ViewCalendar
	ViewMeetings
	ViewNotes
	ViewAnalytics
	ViewHistory
	ViewGames
)

// boardNames maps each board to its header label.
var boardNames = map[ViewState]string{
	ViewTasks:     "Tasks",
	ViewCalendar:  "Calendar",
	ViewMeetings:  "Meetings",
	ViewNotes:     "Notes",
	ViewAnalytics: "Analytics",
	ViewHistory:   "History",
	ViewGames:     "Brain Games",
}

// Model is the root application model.
type Model struct {
	cfg    *model.AppConfig
	store  store.Store
	keys   *keys.KeyMap
	layout ui.Layout
	rng    *rand.Rand

	currentView ViewState
	user        *model.User
	ready       bool
	unreadCount int
	statusMsg   string

	authView      auth.Model
	taskBoard     tasks.Model
	calendarBoard calendar.Model
	meetingBoard  meetings.Model
	noteBoard     notes.Model
	statsBoard    analytics.Model
	historyBoard  history.Model
	gameBoard     games.Model

	notifPanel     notifpanel.Model
	notifPanelOpen bool
	popup          *gamepopup.Model

	scanner *reminder.Scanner
	trigger *scheduler.Trigger
	gate    *scheduler.PopupGate
}

// New creates the root model. Background loops are not started here;
// they come up on sign-in and go down on sign-out.
func New(cfg *model.AppConfig, s store.Store) Model {
	k := keys.DefaultKeyMap()

	return Model{
		cfg:           cfg,
		store:         s,
		keys:          k,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		currentView:   ViewAuth,
		authView:      auth.New(80, 24),
		taskBoard:     tasks.New(s, k, 80, 24),
		calendarBoard: calendar.New(s, 80, 24),
		meetingBoard:  meetings.New(s, k, 80, 24),
		noteBoard:     notes.New(s, k, 80, 24),
		statsBoard:    analytics.New(s, 80, 24),
		historyBoard:  history.New(s, k, 80, 24),
		gameBoard:     games.New(s, k, 80, 24),
		notifPanel:    notifpanel.New(s, 80, 24),
		gate:          scheduler.NewPopupGate(),
	}
}

// Init shows the sign-in screen.
func (m Model) Init() tea.Cmd {
	return m.authView.Init()
}

// Update handles messages and dispatches to the active board.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.authView.SetSize(msg.Width, msg.Height)
		m.taskBoard.SetSize(w, h)
		m.calendarBoard.SetSize(w, h)
		m.meetingBoard.SetSize(w, h)
		m.noteBoard.SetSize(w, h)
		m.statsBoard.SetSize(w, h)
		m.historyBoard.SetSize(w, h)
		m.gameBoard.SetSize(w, h)
		m.notifPanel.SetSize(w, h)
		return m.updateActiveView(msg)

	case auth.SignedInMsg:
		return m.signIn(msg.User)

	case reminder.ScanResultMsg:
		cmds := []tea.Cmd{m.fetchUnreadCount()}
		if m.scanner != nil {
			cmds = append(cmds, m.scanner.WaitForNextResult())
		}
		return m, tea.Batch(cmds...)

	case unreadCountMsg:
		m.unreadCount = msg.count
		return m, nil

	case scheduler.TriggeredMsg:
		cmds := []tea.Cmd{m.openPopup(msg.Game)}
		if m.trigger != nil {
			cmds = append(cmds, m.trigger.WaitForNextResult())
		}
		return m, tea.Batch(cmds...)

	case games.TriggerRequestedMsg:
		return m, m.manualTrigger()

	case manualTriggerMsg:
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
			return m, nil
		}
		return m, m.openPopup(*msg.game)

	case popupOpenMsg:
		m.startPopup(msg)
		return m, nil

	case gamepopup.ClosedMsg:
		return m.closePopup(msg)

	case scoreRecordedMsg:
		return m, tea.Batch(m.gameBoard.LoadGames(), m.statsBoard.LoadStats())

	case notifpanel.MarkedReadMsg:
		return m, m.fetchUnreadCount()

	case tea.KeyMsg:
		if model, cmd, handled := m.handleGlobalKey(msg); handled {
			return model, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work across boards. Keys are left
// to the active board while it is capturing text input.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		m.teardownSession()
		return m, tea.Quit, true
	}

	if m.currentView == ViewAuth || m.popup != nil || m.capturing() {
		return m, nil, false
	}

	if m.notifPanelOpen {
		if msg.String() == "esc" || msg.String() == "N" {
			m.notifPanelOpen = false
			return m, nil, true
		}
		return m, nil, true
	}

	m.statusMsg = ""

	switch msg.String() {
	case "q":
		m.teardownSession()
		return m, tea.Quit, true
	case "1":
		return m.switchBoard(ViewTasks, m.taskBoard.LoadTasks())
	case "2":
		return m.switchBoard(ViewCalendar, m.calendarBoard.LoadMonth())
	case "3":
		return m.switchBoard(ViewMeetings, m.meetingBoard.LoadMeetings())
	case "4":
		return m.switchBoard(ViewNotes, m.noteBoard.LoadNotes())
	case "5":
		return m.switchBoard(ViewAnalytics, m.statsBoard.LoadStats())
	case "6":
		return m.switchBoard(ViewHistory, m.historyBoard.LoadHistory())
	case "7":
		return m.switchBoard(ViewGames, m.gameBoard.LoadGames())
	case "N":
		m.notifPanelOpen = true
		return m, m.notifPanel.Open(), true
	case "O":
		return m.signOut()
	}

	return m, nil, false
}

func (m Model) switchBoard(v ViewState, load tea.Cmd) (tea.Model, tea.Cmd, bool) {
	m.currentView = v
	return m, load, true
}

// capturing reports whether the active board is consuming raw text input
// (a form or a search field), in which case global shortcuts stand down.
func (m Model) capturing() bool {
	switch m.currentView {
	case ViewTasks:
		return m.taskBoard.Capturing()
	case ViewMeetings:
		return m.meetingBoard.Capturing()
	case ViewNotes:
		return m.noteBoard.Capturing()
	case ViewGames:
		return m.gameBoard.Capturing()
	}
	return false
}

// updateActiveView dispatches the message to the popup, panel, or board.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.popup != nil {
		// The popup is modal: it sees everything until it closes.
		popup, cmd := m.popup.Update(msg)
		m.popup = &popup
		return m, cmd
	}

	if m.notifPanelOpen {
		m.notifPanel, cmd = m.notifPanel.Update(msg)
		return m, cmd
	}

	switch m.currentView {
	case ViewAuth:
		m.authView, cmd = m.authView.Update(msg)
	case ViewTasks:
		m.taskBoard, cmd = m.taskBoard.Update(msg)
	case ViewCalendar:
		m.calendarBoard, cmd = m.calendarBoard.Update(msg)
	case ViewMeetings:
		m.meetingBoard, cmd = m.meetingBoard.Update(msg)
	case ViewNotes:
		m.noteBoard, cmd = m.noteBoard.Update(msg)
	case ViewAnalytics:
		m.statsBoard, cmd = m.statsBoard.Update(msg)
	case ViewHistory:
		m.historyBoard, cmd = m.historyBoard.Update(msg)
	case ViewGames:
		m.gameBoard, cmd = m.gameBoard.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.currentView == ViewAuth {
		return m.authView.View()
	}

	title := "OmniTask"
	if m.user != nil {
		title = fmt.Sprintf("OmniTask — %s", m.user.Name)
	}

	right := boardNames[m.currentView]
	if m.unreadCount > 0 {
		right = fmt.Sprintf("🔔 %d  %s", m.unreadCount, right)
	}

	header := m.layout.RenderHeader(title, right)
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	var content string
	switch {
	case m.popup != nil:
		content = m.layout.Overlay(m.popup.View())
	case m.notifPanelOpen:
		content = m.layout.Overlay(m.notifPanel.View())
	default:
		content = m.renderBoard()
	}

	return m.layout.RenderWithFrame(header, content, statusBar)
}

func (m Model) renderBoard() string {
	switch m.currentView {
	case ViewTasks:
		return m.taskBoard.View()
	case ViewCalendar:
		return m.calendarBoard.View()
	case ViewMeetings:
		return m.meetingBoard.View()
	case ViewNotes:
		return m.noteBoard.View()
	case ViewAnalytics:
		return m.statsBoard.View()
	case ViewHistory:
		return m.historyBoard.View()
	case ViewGames:
		return m.gameBoard.View()
	default:
		return ""
	}
}

// keyHints returns the status bar contents for the current state.
func (m Model) keyHints() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	if m.popup != nil {
		return "game in progress"
	}
	if m.notifPanelOpen {
		return "esc close"
	}

	var hints string
	switch m.currentView {
	case ViewTasks:
		hints = m.taskBoard.KeyHints()
	case ViewCalendar:
		hints = m.calendarBoard.KeyHints()
	case ViewMeetings:
		hints = m.meetingBoard.KeyHints()
	case ViewNotes:
		hints = m.noteBoard.KeyHints()
	case ViewAnalytics:
		hints = m.statsBoard.KeyHints()
	case ViewHistory:
		hints = m.historyBoard.KeyHints()
	case ViewGames:
		hints = m.gameBoard.KeyHints()
	}

	if m.capturing() {
		return hints
	}
	return hints + " | 1-7 boards | N alerts | O sign out | q quit"
}
