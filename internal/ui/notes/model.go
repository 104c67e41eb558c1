package notes

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvbach/omnitask/internal/keys"
	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/store"
	"github.com/nvbach/omnitask/internal/theme"
)

// NotesLoadedMsg carries the notes and folders for the board.
type NotesLoadedMsg struct {
	Notes   []model.Note
	Folders []model.NoteFolder
}

// NoteYankedMsg reports the outcome of a copy-to-clipboard action.
type NoteYankedMsg struct {
	Err error
}

// NotesExportedMsg reports the outcome of a YAML export.
type NotesExportedMsg struct {
	Path string
	Err  error
}

type noteMutatedMsg struct{}

type noteItem struct {
	note   model.Note
	folder string
}

func (i noteItem) FilterValue() string { return i.note.Title }

type noteDelegate struct{}

func (d noteDelegate) Height() int                                     { return 2 }
func (d noteDelegate) Spacing() int                                    { return 0 }
func (d noteDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d noteDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ni, ok := item.(noteItem)
	if !ok {
		return
	}

	title := ni.note.Title
	meta := "  " + ni.note.UpdatedAt.Format("2006-01-02 15:04")
	if ni.folder != "" {
		meta += theme.HelpStyle.Render(" [" + ni.folder + "]")
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

// Model is the notes board: a note list with folder filtering, a viewer,
// clipboard yank, and YAML export.
type Model struct {
	list       list.Model
	store      store.Store
	keys       *keys.KeyMap
	folders    []model.NoteFolder
	folderIdx  int // 0 = all folders
	form       *noteForm
	viewing    *model.Note
	statusLine string
	width      int
	height     int
}

// New creates the notes board model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, noteDelegate{}, width, height-2)
	l.Title = "Notes"
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

// Init returns a command that loads notes and folders.
func (m Model) Init() tea.Cmd {
	return m.LoadNotes()
}

// Update handles messages for the notes board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form != nil {
		done, note, cmd := m.form.update(msg)
		if !done {
			return m, cmd
		}
		editing := m.form.editing
		m.form = nil
		if note == nil {
			return m, nil
		}
		return m, m.saveNote(*note, editing)
	}

	switch msg := msg.(type) {
	case NotesLoadedMsg:
		m.folders = msg.Folders
		names := make(map[string]string, len(msg.Folders))
		for _, f := range msg.Folders {
			names[f.ID] = f.Name
		}
		items := make([]list.Item, len(msg.Notes))
		for i, n := range msg.Notes {
			items[i] = noteItem{note: n, folder: names[n.FolderID]}
		}
		m.list.Title = m.folderTitle()
		cmd := m.list.SetItems(items)
		return m, cmd

	case noteMutatedMsg:
		return m, m.LoadNotes()

	case NoteYankedMsg:
		if msg.Err != nil {
			m.statusLine = "copy failed: " + msg.Err.Error()
		} else {
			m.statusLine = "copied to clipboard"
		}
		return m, nil

	case NotesExportedMsg:
		if msg.Err != nil {
			m.statusLine = "export failed: " + msg.Err.Error()
		} else {
			m.statusLine = "exported to " + msg.Path
		}
		return m, nil

	case tea.KeyMsg:
		m.statusLine = ""

		if m.viewing != nil {
			switch {
			case key.Matches(msg, m.keys.Back):
				m.viewing = nil
			case key.Matches(msg, m.keys.Yank):
				return m, yankNote(*m.viewing)
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Select):
			if item, ok := m.list.SelectedItem().(noteItem); ok {
				n := item.note
				m.viewing = &n
			}
			return m, nil

		case key.Matches(msg, m.keys.New):
			m.form = newNoteForm(nil, m.folders, m.width, m.height)
			return m, m.form.init()

		case key.Matches(msg, m.keys.Edit):
			if item, ok := m.list.SelectedItem().(noteItem); ok {
				n := item.note
				m.form = newNoteForm(&n, m.folders, m.width, m.height)
				return m, m.form.init()
			}

		case key.Matches(msg, m.keys.Delete):
			if item, ok := m.list.SelectedItem().(noteItem); ok {
				return m, m.deleteNote(item.note.ID)
			}

		case key.Matches(msg, m.keys.Yank):
			if item, ok := m.list.SelectedItem().(noteItem); ok {
				return m, yankNote(item.note)
			}

		case key.Matches(msg, m.keys.Export):
			return m, m.exportNotes()

		case msg.String() == "tab":
			m.folderIdx = (m.folderIdx + 1) % (len(m.folders) + 1)
			return m, m.LoadNotes()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the notes board.
func (m Model) View() string {
	if m.form != nil {
		return m.form.view()
	}

	if m.viewing != nil {
		return m.renderViewer()
	}

	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = lipgloss.NewStyle().
			Width(m.width).
			Height(m.height - 1).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No notes here.\n\nPress n to write one.")
	}

	if m.statusLine != "" {
		return lipgloss.JoinVertical(lipgloss.Left, body, theme.HelpStyle.Render(" "+m.statusLine))
	}
	return body
}

func (m Model) renderViewer() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Render(m.viewing.Title)
	meta := theme.HelpStyle.Render("edited " + m.viewing.UpdatedAt.Format("2006-01-02 15:04"))

	body := lipgloss.NewStyle().
		Width(m.width - 6).
		Render(m.viewing.Content)

	return theme.PanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, meta, "", body),
	)
}

// KeyHints returns the status bar hints for this board.
func (m Model) KeyHints() string {
	if m.form != nil {
		return "enter submit | esc cancel"
	}
	if m.viewing != nil {
		return "y copy | esc back"
	}
	return "enter open | n new | e edit | d delete | y copy | E export | tab folder"
}

// Capturing reports whether the board is consuming raw text input.
func (m Model) Capturing() bool {
	return m.form != nil
}

func (m Model) folderTitle() string {
	if m.folderIdx == 0 || m.folderIdx > len(m.folders) {
		return "Notes"
	}
	return "Notes / " + m.folders[m.folderIdx-1].Name
}

// LoadNotes returns a tea.Cmd that queries notes for the active folder.
func (m Model) LoadNotes() tea.Cmd {
	s := m.store
	var folderID *string
	if m.folderIdx > 0 && m.folderIdx <= len(m.folders) {
		id := m.folders[m.folderIdx-1].ID
		folderID = &id
	}
	return func() tea.Msg {
		ctx := context.Background()
		folders, err := s.GetFolders(ctx)
		if err != nil {
			return NotesLoadedMsg{}
		}
		notes, err := s.GetNotes(ctx, folderID)
		if err != nil {
			return NotesLoadedMsg{Folders: folders}
		}
		return NotesLoadedMsg{Notes: notes, Folders: folders}
	}
}

func (m Model) saveNote(n model.Note, editing bool) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		n.UpdatedAt = time.Now()
		if editing {
			_ = s.UpdateNote(context.Background(), n)
		} else {
			_ = s.CreateNote(context.Background(), n)
		}
		return noteMutatedMsg{}
	}
}

func (m Model) deleteNote(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_ = s.DeleteNote(context.Background(), id)
		return noteMutatedMsg{}
	}
}

// yankNote copies the note body (title + content) to the system clipboard.
func yankNote(n model.Note) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(n.Title + "\n\n" + n.Content)
		return NoteYankedMsg{Err: err}
	}
}

// exportNotes writes every note to a YAML file in the working directory.
func (m Model) exportNotes() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		path, err := ExportYAML(context.Background(), s)
		return NotesExportedMsg{Path: path, Err: err}
	}
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
