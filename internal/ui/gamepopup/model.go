// Package gamepopup hosts one mini-game session inside a centered popup.
// The session state machine lives in internal/game and is tick-driven;
// this model owns the actual timers (the one-second countdown, the
// wrong-answer shake, the result splash) and translates key presses into
// session actions.
package gamepopup

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvbach/omnitask/internal/game"
	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/sound"
	"github.com/nvbach/omnitask/internal/theme"
)

// ClosedMsg is sent when the popup is done and should be torn down.
// Result is present when the session reached a terminal state and had
// not reported yet; the app records it and releases the popup gate.
type ClosedMsg struct {
	Game   model.BrainGame
	Result *game.Result
}

// tickMsg drives the one-second countdown.
type tickMsg time.Time

// clearFeedbackMsg ends the wrong-answer shake.
type clearFeedbackMsg struct{}

// closeMsg tears the popup down after the result splash.
type closeMsg struct{}

const popupWidth = 52

// Model renders and drives one game session.
type Model struct {
	session *game.Session
	input   textinput.Model
	sounds  sound.Player
	shaking bool
}

// New creates a popup model around an already-constructed session.
func New(s *game.Session, p sound.Player) Model {
	ti := textinput.New()
	ti.Placeholder = "answer"
	ti.CharLimit = 16
	ti.Width = 20

	return Model{
		session: s,
		input:   ti,
		sounds:  p,
	}
}

// Init is a no-op; nothing runs until the player starts the session.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the popup.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m.handleTick()

	case clearFeedbackMsg:
		m.session.ClearFeedback()
		m.shaking = false
		return m, nil

	case closeMsg:
		return m, m.close()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleTick() (Model, tea.Cmd) {
	if m.session.Terminal() {
		// A submission or tap already ended the session and scheduled
		// the close timer; a countdown tick still in flight must not
		// replay the outcome cue.
		return m, nil
	}

	m.session.Tick()

	if m.session.Terminal() {
		m.playOutcomeCue()
		return m, closeAfter(game.ResultDisplayDelay)
	}
	return m, tickOnce()
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.session.State() {
	case game.StateNotStarted:
		switch msg.String() {
		case "enter":
			m.session.Start()
			m.sounds.Play(sound.CueStart)
			cmds := []tea.Cmd{tickOnce()}
			if m.typed() {
				cmds = append(cmds, m.input.Focus())
			}
			return m, tea.Batch(cmds...)
		case "esc":
			m.session.CancelBeforeStart()
			return m, m.close()
		}
		return m, nil

	case game.StateRunning:
		switch m.session.Game().Type {
		case model.GameTypeReflex:
			if msg.String() == " " {
				m.session.Tap()
				m.sounds.Play(sound.CueClick)
				if m.session.Terminal() {
					m.playOutcomeCue()
					return m, closeAfter(game.ResultDisplayDelay)
				}
			}
			return m, nil

		case model.GameTypeMath, model.GameTypeMemory, model.GameTypePuzzle:
			if msg.String() == "enter" {
				m.session.Submit(m.input.Value())
				switch m.session.State() {
				case game.StateSuccess:
					m.playOutcomeCue()
					return m, closeAfter(game.ResultDisplayDelay)
				case game.StateFailFeedback:
					m.shaking = true
					m.input.Reset()
					m.sounds.Play(sound.CueError)
					return m, clearFeedbackAfter(game.FailFeedbackDelay)
				}
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	// Feedback and terminal states absorb input; timers do the work.
	return m, nil
}

// close reports the session outcome (at most once) and tells the app to
// tear the popup down.
func (m Model) close() tea.Cmd {
	m.sounds.Close()
	g := m.session.Game()
	var result *game.Result
	if r, ok := m.session.Result(); ok {
		result = &r
	}
	return func() tea.Msg {
		return ClosedMsg{Game: g, Result: result}
	}
}

func (m Model) playOutcomeCue() {
	if m.session.State() == game.StateSuccess {
		m.sounds.Play(sound.CueSuccess)
	} else {
		m.sounds.Play(sound.CueError)
	}
}

// typed reports whether this game type takes typed answers.
func (m Model) typed() bool {
	switch m.session.Game().Type {
	case model.GameTypeMath, model.GameTypeMemory, model.GameTypePuzzle:
		return true
	}
	return false
}

// View renders the popup contents (the app centers it in the frame).
func (m Model) View() string {
	g := m.session.Game()

	header := theme.GameTypeStyle(string(g.Type)).Render(string(g.Type)) + "  " +
		lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Render(g.Title)

	var body string
	switch m.session.State() {
	case game.StateNotStarted:
		body = m.renderPreStart()
	case game.StateRunning, game.StateFailFeedback:
		body = m.renderRunning()
	case game.StateSuccess:
		body = theme.SuccessStyle.Render(fmt.Sprintf("Well done! +%d points", m.session.FinalScore()))
	case game.StateTimeout:
		body = theme.ErrorStyle.Render("Time's up!")
	case game.StateCanceled:
		body = theme.HelpStyle.Render("Skipped.")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", body)

	style := theme.PopupStyle.Width(popupWidth)
	if m.shaking {
		style = style.BorderForeground(theme.ColorRed)
	}
	return style.Render(content)
}

func (m Model) renderPreStart() string {
	g := m.session.Game()
	return lipgloss.JoinVertical(lipgloss.Left,
		g.Instructions,
		"",
		theme.HelpStyle.Render(fmt.Sprintf("%d seconds on the clock.", g.DurationSeconds)),
		"",
		theme.HelpStyle.Render("enter start | esc skip"),
	)
}

func (m Model) renderRunning() string {
	countdown := fmt.Sprintf("⏱  %ds", m.session.Remaining())

	var challenge string
	switch m.session.Game().Type {
	case model.GameTypeMath:
		challenge = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render(m.session.Math().Question()+" = ?"),
			"",
			m.input.View(),
		)

	case model.GameTypeMemory:
		if m.session.MemoryRevealed() {
			challenge = lipgloss.JoinVertical(lipgloss.Left,
				"Memorize:",
				lipgloss.NewStyle().Bold(true).Foreground(theme.ColorYellow).
					Render(m.session.MemorySequence()),
			)
		} else {
			challenge = lipgloss.JoinVertical(lipgloss.Left,
				"What was the number?",
				"",
				m.input.View(),
			)
		}

	case model.GameTypePuzzle:
		challenge = lipgloss.JoinVertical(lipgloss.Left,
			"Unscramble:",
			lipgloss.NewStyle().Bold(true).Foreground(theme.ColorOrange).
				Render(m.session.Scramble().Scrambled),
			"",
			m.input.View(),
		)

	case model.GameTypeReflex:
		challenge = lipgloss.JoinVertical(lipgloss.Left,
			m.renderReflexField(),
			theme.HelpStyle.Render(fmt.Sprintf("space to hit — %d/5", m.session.Hits())),
		)

	default: // EXERCISE, BREATHING
		challenge = m.session.Game().Instructions
	}

	status := ""
	if m.session.State() == game.StateFailFeedback {
		status = theme.ErrorStyle.Render("✗ try again")
	}

	return lipgloss.JoinVertical(lipgloss.Left, countdown, "", challenge, "", status)
}

// renderReflexField maps the target's percentage position onto a small
// character grid.
func (m Model) renderReflexField() string {
	const rows, cols = 7, 40
	pos := m.session.Target()
	tr := pos.Top * rows / 100
	tc := pos.Left * cols / 100

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if r == tr && c == tc {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorPink).Bold(true).Render("◉"))
			} else {
				b.WriteString("·")
			}
		}
		if r < rows-1 {
			b.WriteString("\n")
		}
	}
	return theme.HelpStyle.Render(b.String())
}

func tickOnce() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func clearFeedbackAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearFeedbackMsg{}
	})
}

func closeAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return closeMsg{}
	})
}
