package tasks

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/theme"
)

// TaskItem wraps a task for the bubbles list.
type TaskItem struct {
	Task model.Task
}

// FilterValue implements list.Item.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// TaskDelegate renders task rows.
type TaskDelegate struct{}

// Height implements list.ItemDelegate.
func (d TaskDelegate) Height() int { return 2 }

// Spacing implements list.ItemDelegate.
func (d TaskDelegate) Spacing() int { return 0 }

// Update implements list.ItemDelegate.
func (d TaskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render implements list.ItemDelegate.
func (d TaskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	t := ti.Task

	reminder := " "
	if t.Reminder {
		reminder = "⏰"
	}

	title := fmt.Sprintf("%s %s", reminder, t.Title)
	meta := fmt.Sprintf("  %s %s", t.Date, theme.StatusStyle(t.Status).Render(t.Status))
	if t.Location != "" {
		meta += theme.HelpStyle.Render(" @ " + t.Location)
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
