package games

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/theme"
)

type formBindings struct {
	enabled     bool
	minInterval string
	maxInterval string
	gamesPerDay string
	volume      string
}

type settingsForm struct {
	form *huh.Form
	fb   *formBindings
}

func newSettingsForm(s model.GameSettings, width, height int) *settingsForm {
	fb := &formBindings{
		enabled:     s.Enabled,
		minInterval: strconv.Itoa(s.MinIntervalMinutes),
		maxInterval: strconv.Itoa(s.MaxIntervalMinutes),
		gamesPerDay: strconv.Itoa(s.GamesPerDay),
		volume:      strconv.FormatFloat(s.Volume, 'f', 1, 64),
	}

	w := width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	h := height - 4
	if h < 10 {
		h = 10
	}

	f := &settingsForm{fb: fb}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Popups enabled").
				Affirmative("On").
				Negative("Off").
				Value(&fb.enabled),
			huh.NewInput().
				Title("Min interval (minutes)").
				Value(&fb.minInterval).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Max interval (minutes)").
				Value(&fb.maxInterval).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Games per day").
				Value(&fb.gamesPerDay).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Volume (0.0 - 1.0)").
				Value(&fb.volume).
				Validate(validateVolume),
		),
	).WithWidth(w).WithHeight(h)

	return f
}

func (f *settingsForm) init() tea.Cmd {
	return f.form.Init()
}

func (f *settingsForm) update(msg tea.Msg) (done bool, settings *model.GameSettings, cmd tea.Cmd) {
	mdl, cmd := f.form.Update(msg)
	if hf, ok := mdl.(*huh.Form); ok {
		f.form = hf
	}

	switch f.form.State {
	case huh.StateCompleted:
		minI, _ := strconv.Atoi(strings.TrimSpace(f.fb.minInterval))
		maxI, _ := strconv.Atoi(strings.TrimSpace(f.fb.maxInterval))
		perDay, _ := strconv.Atoi(strings.TrimSpace(f.fb.gamesPerDay))
		vol, _ := strconv.ParseFloat(strings.TrimSpace(f.fb.volume), 64)
		if maxI < minI {
			maxI = minI
		}
		s := model.GameSettings{
			Enabled:            f.fb.enabled,
			MinIntervalMinutes: minI,
			MaxIntervalMinutes: maxI,
			GamesPerDay:        perDay,
			Volume:             vol,
		}
		return true, &s, nil
	case huh.StateAborted:
		return true, nil, nil
	}

	return false, nil, cmd
}

func (f *settingsForm) view() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(titleStyle.Render("Popup Settings") + "\n" + f.form.View())
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}

func validateVolume(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || v > 1 {
		return fmt.Errorf("enter a number between 0 and 1")
	}
	return nil
}
