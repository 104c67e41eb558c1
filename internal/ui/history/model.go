package history

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

// HistoryLoadedMsg carries the closed tasks for the history board.
type HistoryLoadedMsg struct {
	Tasks []model.Task
}

type historyMutatedMsg struct{}

type historyItem struct {
	task model.Task
}

func (i historyItem) FilterValue() string { return i.task.Title }

type historyDelegate struct{}

func (d historyDelegate) Height() int                                     { return 1 }
func (d historyDelegate) Spacing() int                                    { return 0 }
func (d historyDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d historyDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	hi, ok := item.(historyItem)
	if !ok {
		return
	}
	t := hi.task

	line := fmt.Sprintf("%s  %s %s", t.Date, theme.StatusStyle(t.Status).Render(t.Status), t.Title)
	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}
	fmt.Fprint(w, line)
}

// Model is the history board: DONE and CANCELED tasks, newest first,
// with restore back to PENDING.
type Model struct {
	list   list.Model
	store  store.Store
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates the history board model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, historyDelegate{}, width, height-2)
	l.Title = "History"
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

// Init loads the closed tasks.
func (m Model) Init() tea.Cmd {
	return m.LoadHistory()
}

// Update handles messages for the history board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case HistoryLoadedMsg:
		items := make([]list.Item, len(msg.Tasks))
		for i, t := range msg.Tasks {
			items[i] = historyItem{task: t}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case historyMutatedMsg:
		return m, m.LoadHistory()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if item, ok := m.list.SelectedItem().(historyItem); ok {
				return m, m.restore(item.task)
			}
		case key.Matches(msg, m.keys.Delete):
			if item, ok := m.list.SelectedItem().(historyItem); ok {
				return m, m.purge(item.task.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the history board.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No finished tasks yet.")
	}
	return m.list.View()
}

// KeyHints returns the status bar hints for this board.
func (m Model) KeyHints() string {
	return "x restore | d delete forever"
}

// LoadHistory returns a tea.Cmd that queries DONE and CANCELED tasks.
func (m Model) LoadHistory() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()
		var closed []model.Task
		for _, status := range []string{model.StatusDone, model.StatusCanceled} {
			st := status
			tasks, err := s.GetTasks(ctx, store.TaskFilter{
				Status:   &st,
				SortBy:   "date",
				SortDesc: true,
			})
			if err != nil {
				continue
			}
			closed = append(closed, tasks...)
		}
		return HistoryLoadedMsg{Tasks: closed}
	}
}

// restore reopens a closed task as PENDING.
func (m Model) restore(t model.Task) tea.Cmd {
	t.Status = model.StatusPending
	s := m.store
	return func() tea.Msg {
		_ = s.UpdateTask(context.Background(), t)
		return historyMutatedMsg{}
	}
}

func (m Model) purge(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_ = s.DeleteTask(context.Background(), id)
		return historyMutatedMsg{}
	}
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
