package notifpanel

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/store"
	"github.com/nvbach/omnitask/internal/theme"
)

// NotificationsLoadedMsg carries the panel contents.
type NotificationsLoadedMsg struct {
	Notifications []model.AppNotification
}

// MarkedReadMsg is sent after every notification has been marked read so
// the app can refresh its unread badge.
type MarkedReadMsg struct{}

// maxVisible caps how many notifications the panel shows at once.
const maxVisible = 12

// Model is the notification panel overlay. Opening it marks everything
// read; the entries stay listed so the user can still scan them.
type Model struct {
	store         store.Store
	notifications []model.AppNotification
	width         int
	height        int
}

// New creates the notification panel model.
func New(s store.Store, width, height int) Model {
	return Model{store: s, width: width, height: height}
}

// Open loads the panel contents and marks everything read.
func (m Model) Open() tea.Cmd {
	s := m.store
	return tea.Batch(
		func() tea.Msg {
			notifications, err := s.GetNotifications(context.Background())
			if err != nil {
				notifications = nil
			}
			return NotificationsLoadedMsg{Notifications: notifications}
		},
		func() tea.Msg {
			_ = s.MarkAllNotificationsRead(context.Background())
			return MarkedReadMsg{}
		},
	)
}

// Update handles messages for the panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if loaded, ok := msg.(NotificationsLoadedMsg); ok {
		m.notifications = loaded.Notifications
	}
	return m, nil
}

// View renders the panel as an overlay card.
func (m Model) View() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).
		Render("Notifications")

	var b strings.Builder
	if len(m.notifications) == 0 {
		b.WriteString(theme.HelpStyle.Render("All quiet."))
	} else {
		shown := m.notifications
		if len(shown) > maxVisible {
			shown = shown[:maxVisible]
		}
		for _, n := range shown {
			marker := " "
			if !n.Read {
				marker = lipgloss.NewStyle().Foreground(theme.ColorBlue).Render("●")
			}
			b.WriteString(fmt.Sprintf("%s %s\n", marker,
				lipgloss.NewStyle().Bold(true).Render(n.Title)))
			b.WriteString(theme.HelpStyle.Render(
				fmt.Sprintf("  %s — %s", n.Time.Format("Jan 2 15:04"), n.Message)) + "\n")
		}
		if len(m.notifications) > maxVisible {
			b.WriteString(theme.HelpStyle.Render(
				fmt.Sprintf("…and %d more", len(m.notifications)-maxVisible)))
		}
	}

	card := lipgloss.JoinVertical(lipgloss.Left, header, "", b.String(), "",
		theme.HelpStyle.Render("esc close"))

	return theme.PanelStyle.Width(min(m.width-8, 64)).Render(card)
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
