package tasks

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvbach/omnitask/internal/keys"
	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/store"
	"github.com/nvbach/omnitask/internal/theme"
)

// TasksLoadedMsg is sent when tasks have been loaded from the store.
type TasksLoadedMsg struct {
	Tasks []model.Task
}

// taskMutatedMsg is sent after any write so the list reloads.
type taskMutatedMsg struct{}

// Model is the task board: the task list plus its create/edit form.
type Model struct {
	list        list.Model
	store       store.Store
	keys        *keys.KeyMap
	filter      store.TaskFilter
	searchMode  bool
	searchInput textinput.Model
	form        *taskForm
	width       int
	height      int
}

// New creates the task board model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, TaskDelegate{}, width, height-2)
	l.Title = "Tasks"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search tasks..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:  l,
		store: s,
		keys:  k,
		filter: store.TaskFilter{
			SortBy: "date",
		},
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of tasks.
func (m Model) Init() tea.Cmd {
	return m.LoadTasks()
}

// Update handles messages for the task board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case TasksLoadedMsg:
		items := make([]list.Item, len(msg.Tasks))
		for i, task := range msg.Tasks {
			items[i] = TaskItem{Task: task}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case taskMutatedMsg:
		return m, m.LoadTasks()

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateForm routes messages into the open create/edit form.
func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	done, task, cmd := m.form.update(msg)
	if !done {
		return m, cmd
	}

	editing := m.form.editing
	m.form = nil
	if task == nil {
		// Canceled.
		return m, nil
	}

	saved := *task
	s := m.store
	return m, func() tea.Msg {
		if editing {
			_ = s.UpdateTask(context.Background(), saved)
		} else {
			_ = s.CreateTask(context.Background(), saved)
		}
		return taskMutatedMsg{}
	}
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		query := m.searchInput.Value()
		if query != "" {
			m.filter.Query = &query
		} else {
			m.filter.Query = nil
		}
		return m, m.LoadTasks()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = nil
		return m, m.LoadTasks()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.New):
		m.form = newTaskForm(nil, m.width, m.height)
		return m, m.form.init()

	case key.Matches(msg, m.keys.Edit):
		if item, ok := m.selected(); ok {
			t := item.Task
			m.form = newTaskForm(&t, m.width, m.height)
			return m, m.form.init()
		}

	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.selected(); ok {
			return m, m.deleteTask(item.Task.ID)
		}

	case key.Matches(msg, m.keys.Toggle):
		if item, ok := m.selected(); ok {
			return m, m.cycleStatus(item.Task)
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case msg.String() == "R":
		if item, ok := m.selected(); ok {
			return m, m.toggleReminder(item.Task)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) selected() (TaskItem, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	return item, ok
}

// View renders the task board.
func (m Model) View() string {
	if m.form != nil {
		return m.form.view()
	}

	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No tasks yet.\n\nPress n to create one.")
	}

	return m.list.View()
}

// KeyHints returns the status bar hints for this board.
func (m Model) KeyHints() string {
	if m.form != nil {
		return "enter submit | esc cancel"
	}
	return "n new | e edit | d delete | x status | R reminder | / search"
}

// Capturing reports whether the board is consuming raw text input.
func (m Model) Capturing() bool {
	return m.form != nil || m.searchMode
}

// LoadTasks returns a tea.Cmd that queries the store with the current filter.
func (m Model) LoadTasks() tea.Cmd {
	filter := m.filter
	s := m.store
	return func() tea.Msg {
		tasks, err := s.GetTasks(context.Background(), filter)
		if err != nil {
			return TasksLoadedMsg{Tasks: nil}
		}
		return TasksLoadedMsg{Tasks: tasks}
	}
}

// deleteTask removes a task and reloads.
func (m Model) deleteTask(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_ = s.DeleteTask(context.Background(), id)
		return taskMutatedMsg{}
	}
}

// cycleStatus advances the task to the next status in board order.
func (m Model) cycleStatus(t model.Task) tea.Cmd {
	next := model.TaskStatuses[0]
	for i, st := range model.TaskStatuses {
		if st == t.Status {
			next = model.TaskStatuses[(i+1)%len(model.TaskStatuses)]
			break
		}
	}
	t.Status = next

	s := m.store
	return func() tea.Msg {
		_ = s.UpdateTask(context.Background(), t)
		return taskMutatedMsg{}
	}
}

// toggleReminder flips the task's reminder flag.
func (m Model) toggleReminder(t model.Task) tea.Cmd {
	t.Reminder = !t.Reminder
	s := m.store
	return func() tea.Msg {
		_ = s.UpdateTask(context.Background(), t)
		return taskMutatedMsg{}
	}
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
