package analytics

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

// StatsLoadedMsg carries the computed dashboard statistics.
type StatsLoadedMsg struct {
	Stats Stats
}

// Stats is the aggregate view over all tasks plus recent game activity.
type Stats struct {
	Total      int
	ByStatus   map[string]int
	DoneRate   float64
	DueToday   int
	GamesTotal int
	GamesBest  int
}

// Compute derives Stats from a task and score snapshot taken at now.
func Compute(tasks []model.Task, scores []model.GameScore, now time.Time) Stats {
	st := Stats{ByStatus: map[string]int{}}
	st.Total = len(tasks)
	for _, t := range tasks {
		st.ByStatus[t.Status]++
		if t.DueOn(now) && t.IsOpen() {
			st.DueToday++
		}
	}
	if st.Total > 0 {
		st.DoneRate = float64(st.ByStatus[model.StatusDone]) / float64(st.Total)
	}
	st.GamesTotal = len(scores)
	for _, s := range scores {
		if s.Score > st.GamesBest {
			st.GamesBest = s.Score
		}
	}
	return st
}

// Model is the analytics board: task status breakdown and game activity.
type Model struct {
	store  store.Store
	stats  Stats
	width  int
	height int
}

// New creates the analytics board model.
func New(s store.Store, width, height int) Model {
	return Model{
		store:  s,
		stats:  Stats{ByStatus: map[string]int{}},
		width:  width,
		height: height,
	}
}

// Init loads the statistics.
func (m Model) Init() tea.Cmd {
	return m.LoadStats()
}

// Update handles messages for the analytics board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StatsLoadedMsg:
		m.stats = msg.Stats
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.LoadStats()
		}
	}
	return m, nil
}

// View renders the analytics board.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).
		Render("Task Breakdown") + "\n\n")

	if m.stats.Total == 0 {
		b.WriteString(theme.HelpStyle.Render("No tasks to analyze yet.") + "\n")
	} else {
		barWidth := m.width - 36
		if barWidth < 10 {
			barWidth = 10
		}
		for _, status := range model.TaskStatuses {
			count := m.stats.ByStatus[status]
			frac := float64(count) / float64(m.stats.Total)
			filled := int(frac * float64(barWidth))
			bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

			b.WriteString(fmt.Sprintf("%s %s %3d (%.0f%%)\n",
				theme.StatusStyle(status).Width(15).Render(status),
				theme.StatusStyle(status).Render(bar),
				count,
				frac*100))
		}

		b.WriteString(fmt.Sprintf("\n%d tasks total, %.0f%% done, %d due today\n",
			m.stats.Total, m.stats.DoneRate*100, m.stats.DueToday))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).
		Render("Brain Games") + "\n\n")
	if m.stats.GamesTotal == 0 {
		b.WriteString(theme.HelpStyle.Render("No games played yet.") + "\n")
	} else {
		b.WriteString(fmt.Sprintf("%d games recorded, best score %d\n",
			m.stats.GamesTotal, m.stats.GamesBest))
	}

	return theme.PanelStyle.Render(b.String())
}

// KeyHints returns the status bar hints for this board.
func (m Model) KeyHints() string {
	return "r refresh"
}

// LoadStats returns a tea.Cmd that queries and aggregates the data.
func (m Model) LoadStats() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()
		tasks, err := s.GetTasks(ctx, store.TaskFilter{})
		if err != nil {
			tasks = nil
		}
		scores, err := s.GetScores(ctx, 0)
		if err != nil {
			scores = nil
		}
		return StatsLoadedMsg{Stats: Compute(tasks, scores, time.Now())}
	}
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
