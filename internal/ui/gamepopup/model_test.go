package gamepopup

import (
	"math/rand"
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvbach/omnitask/internal/game"
	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/sound"
)

// cueRecorder captures every cue so tests can assert on playback order.
type cueRecorder struct {
	cues   []sound.Cue
	closed bool
}

func (c *cueRecorder) Play(cue sound.Cue) { c.cues = append(c.cues, cue) }
func (c *cueRecorder) Close()             { c.closed = true }

func mathGame() model.BrainGame {
	return model.BrainGame{
		ID:              "g1",
		Title:           "Quick Math",
		Type:            model.GameTypeMath,
		DurationSeconds: 30,
		Active:          true,
	}
}

func TestLateTickDoesNotReplayOutcomeCue(t *testing.T) {
	s := game.NewSession(mathGame(), rand.New(rand.NewSource(1)))
	rec := &cueRecorder{}
	m := New(s, rec)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, game.StateRunning, s.State())

	// Type the correct answer and submit; the success cue plays and the
	// close timer is scheduled.
	for _, r := range strconv.Itoa(s.Math().Answer) {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, game.StateSuccess, s.State())
	require.Equal(t, []sound.Cue{sound.CueStart, sound.CueSuccess}, rec.cues)

	// A countdown tick still in flight lands after the win. It must not
	// play another cue or schedule anything.
	m, cmd := m.Update(tickMsg(time.Now()))
	assert.Nil(t, cmd)
	assert.Equal(t, []sound.Cue{sound.CueStart, sound.CueSuccess}, rec.cues)
	_ = m
}

func TestCloseReleasesPlayerAndReportsResultOnce(t *testing.T) {
	s := game.NewSession(mathGame(), rand.New(rand.NewSource(2)))
	rec := &cueRecorder{}
	m := New(s, rec)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	for _, r := range strconv.Itoa(s.Math().Answer) {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, game.StateSuccess, s.State())

	_, cmd := m.Update(closeMsg{})
	require.NotNil(t, cmd)

	closed, ok := cmd().(ClosedMsg)
	require.True(t, ok)
	require.NotNil(t, closed.Result)
	assert.True(t, closed.Result.Completed)
	assert.True(t, rec.closed)
}
