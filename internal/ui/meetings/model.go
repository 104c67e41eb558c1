package meetings

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvbach/omnitask/internal/keys"
	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/store"
	"github.com/nvbach/omnitask/internal/theme"
)

// MeetingsLoadedMsg is sent when meetings have been loaded from the store.
type MeetingsLoadedMsg struct {
	Meetings []model.Meeting
}

type meetingMutatedMsg struct{}

type meetingItem struct {
	meeting model.Meeting
}

func (i meetingItem) FilterValue() string { return i.meeting.Title }

type meetingDelegate struct{}

func (d meetingDelegate) Height() int                                    { return 2 }
func (d meetingDelegate) Spacing() int                                   { return 0 }
func (d meetingDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d meetingDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	mi, ok := item.(meetingItem)
	if !ok {
		return
	}
	mt := mi.meeting

	title := mt.Title
	meta := fmt.Sprintf("  %s %s", mt.Date, mt.Time)
	if mt.Platform != "" {
		meta += theme.HelpStyle.Render(" via " + mt.Platform)
	}

	if index == m.Index() {
		title = theme.SelectedItemStyle.Render(title)
		meta = theme.SelectedItemStyle.Render(meta)
	} else {
		title = theme.ListItemStyle.Render(title)
		meta = theme.ListItemStyle.Render(meta)
	}

	fmt.Fprint(w, lipgloss.JoinVertical(lipgloss.Left, title, meta))
}

// Model is the meetings board.
type Model struct {
	list   list.Model
	store  store.Store
	keys   *keys.KeyMap
	form   *meetingForm
	width  int
	height int
}

// New creates the meetings board model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, meetingDelegate{}, width, height-2)
	l.Title = "Meetings"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		store:  s,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns a command that loads the meetings.
func (m Model) Init() tea.Cmd {
	return m.LoadMeetings()
}

// Update handles messages for the meetings board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form != nil {
		done, meeting, cmd := m.form.update(msg)
		if !done {
			return m, cmd
		}
		editing := m.form.editing
		m.form = nil
		if meeting == nil {
			return m, nil
		}
		return m, m.saveMeeting(*meeting, editing)
	}

	switch msg := msg.(type) {
	case MeetingsLoadedMsg:
		items := make([]list.Item, len(msg.Meetings))
		for i, mt := range msg.Meetings {
			items[i] = meetingItem{meeting: mt}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case meetingMutatedMsg:
		return m, m.LoadMeetings()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.New):
			m.form = newMeetingForm(nil, m.width, m.height)
			return m, m.form.init()

		case key.Matches(msg, m.keys.Edit):
			if item, ok := m.list.SelectedItem().(meetingItem); ok {
				mt := item.meeting
				m.form = newMeetingForm(&mt, m.width, m.height)
				return m, m.form.init()
			}

		case key.Matches(msg, m.keys.Delete):
			if item, ok := m.list.SelectedItem().(meetingItem); ok {
				return m, m.deleteMeeting(item.meeting.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the meetings board.
func (m Model) View() string {
	if m.form != nil {
		return m.form.view()
	}
	if len(m.list.Items()) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No meetings scheduled.\n\nPress n to add one.")
	}
	return m.list.View()
}

// KeyHints returns the status bar hints for this board.
func (m Model) KeyHints() string {
	if m.form != nil {
		return "enter submit | esc cancel"
	}
	return "n new | e edit | d delete"
}

// Capturing reports whether the board is consuming raw text input.
func (m Model) Capturing() bool {
	return m.form != nil
}

// LoadMeetings returns a tea.Cmd that queries the store.
func (m Model) LoadMeetings() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		meetings, err := s.GetMeetings(context.Background())
		if err != nil {
			return MeetingsLoadedMsg{}
		}
		return MeetingsLoadedMsg{Meetings: meetings}
	}
}

func (m Model) saveMeeting(mt model.Meeting, editing bool) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		if editing {
			_ = s.UpdateMeeting(context.Background(), mt)
		} else {
			_ = s.CreateMeeting(context.Background(), mt)
		}
		return meetingMutatedMsg{}
	}
}

func (m Model) deleteMeeting(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_ = s.DeleteMeeting(context.Background(), id)
		return meetingMutatedMsg{}
	}
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
