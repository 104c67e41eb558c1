package meetings

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/theme"
)

type formBindings struct {
	title       string
	date        string
	timeOfDay   string
	description string
	platform    string
}

type meetingForm struct {
	form    *huh.Form
	fb      *formBindings
	editing bool
	editID  string
	width   int
	height  int
}

func newMeetingForm(meeting *model.Meeting, width, height int) *meetingForm {
	fb := &formBindings{
		date: time.Now().Format(model.DateLayout),
	}

	f := &meetingForm{
		fb:     fb,
		width:  width,
		height: height,
	}

	if meeting != nil {
		f.editing = true
		f.editID = meeting.ID
		fb.title = meeting.Title
		fb.date = meeting.Date
		fb.timeOfDay = meeting.Time
		fb.description = meeting.Description
		fb.platform = meeting.Platform
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Meeting title").
				Value(&fb.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("Title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&fb.date).
				Validate(func(s string) error {
					_, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("invalid date format, use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("Time").
				Placeholder("HH:MM").
				Value(&fb.timeOfDay).
				Validate(func(s string) error {
					_, err := time.Parse("15:04", strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("invalid time format, use HH:MM")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Platform").
				Options(
					huh.NewOption("Zoom", "Zoom"),
					huh.NewOption("Google Meet", "Google Meet"),
					huh.NewOption("Teams", "Teams"),
					huh.NewOption("In person", "In person"),
					huh.NewOption("Other", "Other"),
				).
				Value(&fb.platform),
			huh.NewText().
				Title("Description").
				Placeholder("Optional agenda...").
				Value(&fb.description),
		),
	).WithWidth(formClamp(width-4, 40, 100)).WithHeight(formClamp(height-4, 10, height))

	return f
}

func (f *meetingForm) init() tea.Cmd {
	return f.form.Init()
}

func (f *meetingForm) update(msg tea.Msg) (done bool, meeting *model.Meeting, cmd tea.Cmd) {
	mdl, cmd := f.form.Update(msg)
	if hf, ok := mdl.(*huh.Form); ok {
		f.form = hf
	}

	switch f.form.State {
	case huh.StateCompleted:
		mt := model.Meeting{
			ID:          f.editID,
			Title:       f.fb.title,
			Date:        f.fb.date,
			Time:        strings.TrimSpace(f.fb.timeOfDay),
			Description: f.fb.description,
			Platform:    f.fb.platform,
		}
		return true, &mt, nil
	case huh.StateAborted:
		return true, nil, nil
	}

	return false, nil, cmd
}

func (f *meetingForm) view() string {
	titleText := "New Meeting"
	if f.editing {
		titleText = "Edit Meeting"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(titleStyle.Render(titleText) + "\n" + f.form.View())
}

func formClamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
