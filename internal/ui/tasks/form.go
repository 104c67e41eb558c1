package tasks

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

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	date        string
	location    string
	remarks     string
	status      string
	reminder    bool
}

// taskForm is the create/edit form for a task.
type taskForm struct {
	form    *huh.Form
	fb      *formBindings
	editing bool
	editID  string
	width   int
	height  int
}

// newTaskForm builds the form. A nil task means create mode.
func newTaskForm(task *model.Task, width, height int) *taskForm {
	fb := &formBindings{
		date:   time.Now().Format(model.DateLayout),
		status: model.StatusPending,
	}

	f := &taskForm{
		fb:     fb,
		width:  width,
		height: height,
	}

	if task != nil {
		f.editing = true
		f.editID = task.ID
		fb.title = task.Title
		fb.description = task.Description
		fb.date = task.Date
		fb.location = task.Location
		fb.remarks = task.Remarks
		fb.status = task.Status
		fb.reminder = task.Reminder
	}

	f.form = f.build()
	return f
}

func (f *taskForm) build() *huh.Form {
	statusOpts := make([]huh.Option[string], len(model.TaskStatuses))
	for i, st := range model.TaskStatuses {
		statusOpts[i] = huh.NewOption(st, st)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs to be done?").
				Value(&f.fb.title).
				Validate(validateRequired("Title")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&f.fb.description),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.fb.date).
				Validate(validateDate),
			huh.NewInput().
				Title("Location").
				Placeholder("Optional").
				Value(&f.fb.location),
			huh.NewInput().
				Title("Remarks").
				Placeholder("Follow-up notes (optional)").
				Value(&f.fb.remarks),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOpts...).
				Value(&f.fb.status),
			huh.NewConfirm().
				Title("Reminder").
				Affirmative("On").
				Negative("Off").
				Value(&f.fb.reminder),
		),
	).WithWidth(f.formWidth()).WithHeight(f.formHeight())
}

func (f *taskForm) init() tea.Cmd {
	return f.form.Init()
}

// update advances the form. done reports whether the form has closed;
// on submit the filled task is returned, on cancel it is nil.
func (f *taskForm) update(msg tea.Msg) (done bool, task *model.Task, cmd tea.Cmd) {
	mdl, cmd := f.form.Update(msg)
	if hf, ok := mdl.(*huh.Form); ok {
		f.form = hf
	}

	switch f.form.State {
	case huh.StateCompleted:
		t := model.Task{
			ID:          f.editID,
			Title:       f.fb.title,
			Description: f.fb.description,
			Date:        f.fb.date,
			Location:    f.fb.location,
			Remarks:     f.fb.remarks,
			Status:      f.fb.status,
			Reminder:    f.fb.reminder,
		}
		return true, &t, nil
	case huh.StateAborted:
		return true, nil, nil
	}

	return false, nil, cmd
}

func (f *taskForm) view() string {
	titleText := "New Task"
	if f.editing {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + f.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

func (f *taskForm) formWidth() int {
	w := f.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (f *taskForm) formHeight() int {
	h := f.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	_, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

