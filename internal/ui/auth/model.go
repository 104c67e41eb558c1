package auth

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/nvbach/omnitask/internal/credential"
	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/theme"
)

// SignedInMsg is sent once the user has a profile, either freshly entered
// or restored from the system keyring.
type SignedInMsg struct {
	User model.User
}

type formBindings struct {
	name     string
	email    string
	phone    string
	remember bool
}

// Model is the sign-in screen. Sign-in is local-only: the profile is a
// display identity, not a verified credential.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates the sign-in model.
func New(width, height int) Model {
	fb := &formBindings{remember: true}

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("How should we greet you?").
				Value(&fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("Name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Email").
				Placeholder("Optional").
				Value(&fb.email),
			huh.NewInput().
				Title("Phone").
				Placeholder("Optional").
				Value(&fb.phone),
			huh.NewConfirm().
				Title("Remember me").
				Affirmative("Yes").
				Negative("No").
				Value(&fb.remember),
		),
	).WithWidth(48)

	return Model{
		form:   f,
		fb:     fb,
		width:  width,
		height: height,
	}
}

// Init starts the form and tries to restore a remembered profile.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), restoreProfile)
}

// restoreProfile loads a remembered profile from the keyring, if any.
func restoreProfile() tea.Msg {
	raw, err := credential.Get(credential.ProfileKey)
	if err != nil || raw == "" {
		return nil
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.Name == "" {
		return nil
	}
	return SignedInMsg{User: u}
}

// Update handles messages for the sign-in screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		u := model.User{
			ID:    uuid.NewString(),
			Name:  strings.TrimSpace(m.fb.name),
			Email: strings.TrimSpace(m.fb.email),
			Phone: strings.TrimSpace(m.fb.phone),
		}
		remember := m.fb.remember
		return m, func() tea.Msg {
			if remember {
				if raw, err := json.Marshal(u); err == nil {
					_ = credential.Set(credential.ProfileKey, string(raw))
				}
			} else {
				_ = credential.Delete(credential.ProfileKey)
			}
			return SignedInMsg{User: u}
		}
	}

	return m, cmd
}

// View renders the sign-in screen centered in the terminal.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBlue).
		Render("OmniTask")
	subtitle := theme.HelpStyle.Render("your day, one dashboard")

	card := theme.PanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Center, title, subtitle, "", m.form.View()),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ForgetProfile removes any remembered profile; used on sign-out.
func ForgetProfile() {
	_ = credential.Delete(credential.ProfileKey)
}
