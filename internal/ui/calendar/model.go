package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/store"
	"github.com/nvbach/omnitask/internal/theme"
)

// MonthLoadedMsg carries the tasks and meetings for the visible month.
type MonthLoadedMsg struct {
	Year     int
	Month    time.Month
	Tasks    []model.Task
	Meetings []model.Meeting
}

// Model is the calendar board: a month grid with per-day task and meeting
// markers, plus a detail pane for the selected day.
type Model struct {
	store    store.Store
	year     int
	month    time.Month
	selected int // day of month, 1-based
	tasks    map[string][]model.Task
	meetings map[string][]model.Meeting
	width    int
	height   int
}

// New creates the calendar board anchored on the current month.
func New(s store.Store, width, height int) Model {
	now := time.Now()
	return Model{
		store:    s,
		year:     now.Year(),
		month:    now.Month(),
		selected: now.Day(),
		tasks:    map[string][]model.Task{},
		meetings: map[string][]model.Meeting{},
		width:    width,
		height:   height,
	}
}

// Init loads the current month.
func (m Model) Init() tea.Cmd {
	return m.LoadMonth()
}

// Update handles messages for the calendar board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MonthLoadedMsg:
		if msg.Year != m.year || msg.Month != m.month {
			return m, nil // stale load
		}
		m.tasks = map[string][]model.Task{}
		for _, t := range msg.Tasks {
			m.tasks[t.Date] = append(m.tasks[t.Date], t)
		}
		m.meetings = map[string][]model.Meeting{}
		for _, mt := range msg.Meetings {
			m.meetings[mt.Date] = append(m.meetings[mt.Date], mt)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.moveDay(-1)
		case "right", "l":
			m.moveDay(1)
		case "up", "k":
			m.moveDay(-7)
		case "down", "j":
			m.moveDay(7)
		case "pgup", "H":
			return m.shiftMonth(-1)
		case "pgdown", "L":
			return m.shiftMonth(1)
		case "t":
			now := time.Now()
			m.year, m.month, m.selected = now.Year(), now.Month(), now.Day()
			return m, m.LoadMonth()
		}
	}
	return m, nil
}

func (m *Model) moveDay(delta int) {
	day := m.selected + delta
	last := daysIn(m.year, m.month)
	if day < 1 {
		day = 1
	}
	if day > last {
		day = last
	}
	m.selected = day
}

func (m Model) shiftMonth(delta int) (Model, tea.Cmd) {
	anchor := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.Local).AddDate(0, delta, 0)
	m.year, m.month = anchor.Year(), anchor.Month()
	if m.selected > daysIn(m.year, m.month) {
		m.selected = daysIn(m.year, m.month)
	}
	return m, m.LoadMonth()
}

// View renders the month grid beside the selected day's entries.
func (m Model) View() string {
	grid := m.renderGrid()
	detail := m.renderDay()
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", detail)
}

// KeyHints returns the status bar hints for this board.
func (m Model) KeyHints() string {
	return "←↑↓→ day | H/L month | t today"
}

func (m Model) renderGrid() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).
		Render(fmt.Sprintf("%s %d", m.month, m.year))

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString(theme.HelpStyle.Render(" Su  Mo  Tu  We  Th  Fr  Sa") + "\n")

	first := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.Local)
	offset := int(first.Weekday())
	b.WriteString(strings.Repeat("    ", offset))

	today := time.Now().Format(model.DateLayout)
	last := daysIn(m.year, m.month)

	for day := 1; day <= last; day++ {
		dateKey := fmt.Sprintf("%04d-%02d-%02d", m.year, m.month, day)
		cell := fmt.Sprintf("%3d", day)

		style := lipgloss.NewStyle()
		switch {
		case day == m.selected:
			style = style.Bold(true).Foreground(theme.ColorWhite).Background(theme.ColorBlue)
		case dateKey == today:
			style = style.Bold(true).Foreground(theme.ColorYellow)
		case len(m.tasks[dateKey]) > 0 || len(m.meetings[dateKey]) > 0:
			style = style.Foreground(theme.ColorGreen)
		default:
			style = style.Foreground(theme.ColorGray)
		}

		b.WriteString(style.Render(cell) + " ")
		if (offset+day)%7 == 0 {
			b.WriteString("\n")
		}
	}

	return theme.PanelStyle.Render(b.String())
}

func (m Model) renderDay() string {
	dateKey := fmt.Sprintf("%04d-%02d-%02d", m.year, m.month, m.selected)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Render(dateKey) + "\n\n")

	tasks := m.tasks[dateKey]
	meetings := m.meetings[dateKey]

	if len(tasks) == 0 && len(meetings) == 0 {
		b.WriteString(theme.HelpStyle.Render("Nothing scheduled."))
		return theme.PanelStyle.Render(b.String())
	}

	for _, mt := range meetings {
		b.WriteString(fmt.Sprintf("%s  %s %s\n",
			mt.Time,
			lipgloss.NewStyle().Foreground(theme.ColorMagenta).Render("◆"),
			mt.Title))
	}
	for _, t := range tasks {
		marker := theme.StatusStyle(t.Status).Render("●")
		b.WriteString(fmt.Sprintf("--:--  %s %s\n", marker, t.Title))
	}

	return theme.PanelStyle.Render(b.String())
}

// LoadMonth returns a tea.Cmd that fetches the month's tasks and meetings.
func (m Model) LoadMonth() tea.Cmd {
	s := m.store
	year, month := m.year, m.month
	from := fmt.Sprintf("%04d-%02d-01", year, month)
	to := fmt.Sprintf("%04d-%02d-%02d", year, month, daysIn(year, month))

	return func() tea.Msg {
		ctx := context.Background()
		tasks, err := s.GetTasks(ctx, store.TaskFilter{DateFrom: &from, DateTo: &to, SortBy: "date"})
		if err != nil {
			tasks = nil
		}
		all, err := s.GetMeetings(ctx)
		if err != nil {
			all = nil
		}
		var meetings []model.Meeting
		for _, mt := range all {
			if mt.Date >= from && mt.Date <= to {
				meetings = append(meetings, mt)
			}
		}
		return MonthLoadedMsg{Year: year, Month: month, Tasks: tasks, Meetings: meetings}
	}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
