package notes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/theme"
)

type formBindings struct {
	title    string
	content  string
	folderID string
}

type noteForm struct {
	form    *huh.Form
	fb      *formBindings
	editing bool
	editID  string
}

func newNoteForm(note *model.Note, folders []model.NoteFolder, width, height int) *noteForm {
	fb := &formBindings{}
	f := &noteForm{fb: fb}

	if note != nil {
		f.editing = true
		f.editID = note.ID
		fb.title = note.Title
		fb.content = note.Content
		fb.folderID = note.FolderID
	}

	folderOpts := []huh.Option[string]{
		huh.NewOption("None", ""),
	}
	for _, fl := range folders {
		folderOpts = append(folderOpts, huh.NewOption(fl.Name, fl.ID))
	}

	w := width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	h := height - 4
	if h < 10 {
		h = 10
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Note title").
				Value(&fb.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("Title is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Folder").
				Options(folderOpts...).
				Value(&fb.folderID),
			huh.NewText().
				Title("Content").
				Placeholder("Write here...").
				Lines(8).
				Value(&fb.content),
		),
	).WithWidth(w).WithHeight(h)

	return f
}

func (f *noteForm) init() tea.Cmd {
	return f.form.Init()
}

func (f *noteForm) update(msg tea.Msg) (done bool, note *model.Note, cmd tea.Cmd) {
	mdl, cmd := f.form.Update(msg)
	if hf, ok := mdl.(*huh.Form); ok {
		f.form = hf
	}

	switch f.form.State {
	case huh.StateCompleted:
		n := model.Note{
			ID:       f.editID,
			Title:    f.fb.title,
			Content:  f.fb.content,
			FolderID: f.fb.folderID,
		}
		return true, &n, nil
	case huh.StateAborted:
		return true, nil, nil
	}

	return false, nil, cmd
}

func (f *noteForm) view() string {
	titleText := "New Note"
	if f.editing {
		titleText = "Edit Note"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(titleStyle.Render(titleText) + "\n" + f.form.View())
}
