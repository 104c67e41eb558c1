package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvbach/omnitask/internal/model"
)

func newGame(t model.GameType, duration int) model.BrainGame {
	return model.BrainGame{
		ID:              "g1",
		Title:           "Test Game",
		Type:            t,
		DurationSeconds: duration,
		Active:          true,
	}
}

func TestSessionStartsOnlyOnExplicitAction(t *testing.T) {
	s := NewSession(newGame(model.GameTypeMath, 30), rand.New(rand.NewSource(1)))

	require.Equal(t, StateNotStarted, s.State())

	// Ticks before Start do nothing; the countdown never self-starts.
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	assert.Equal(t, StateNotStarted, s.State())
	assert.Equal(t, 30, s.Remaining())

	s.Start()
	assert.Equal(t, StateRunning, s.State())
}

func TestCancelBeforeStartOnly(t *testing.T) {
	s := NewSession(newGame(model.GameTypeMath, 30), rand.New(rand.NewSource(1)))
	s.CancelBeforeStart()
	require.Equal(t, StateCanceled, s.State())

	r, ok := s.Result()
	require.True(t, ok)
	assert.False(t, r.Completed)
	assert.Zero(t, r.Score)
}

func TestCancelIgnoredOnceRunning(t *testing.T) {
	s := NewSession(newGame(model.GameTypeMath, 30), rand.New(rand.NewSource(1)))
	s.Start()
	s.CancelBeforeStart()
	assert.Equal(t, StateRunning, s.State())
}

func TestMathCorrectAnswerScoresWithBonus(t *testing.T) {
	s := NewSession(newGame(model.GameTypeMath, 30), rand.New(rand.NewSource(1)))
	s.Start()
	s.Tick()
	s.Tick() // 28s remain

	s.Submit(fmt.Sprintf("%d", s.Math().Answer))

	require.Equal(t, StateSuccess, s.State())
	assert.Equal(t, 100+28*10, s.FinalScore())
}

func TestMathWrongAnswerPausesInFeedback(t *testing.T) {
	s := NewSession(newGame(model.GameTypeMath, 30), rand.New(rand.NewSource(1)))
	s.Start()

	s.Submit("0") // operands are >= 10 each, 0 is always wrong
	require.Equal(t, StateFailFeedback, s.State())

	// The clock pauses during feedback.
	before := s.Remaining()
	s.Tick()
	assert.Equal(t, before, s.Remaining())

	// Submissions during feedback are ignored too.
	s.Submit(fmt.Sprintf("%d", s.Math().Answer))
	assert.Equal(t, StateFailFeedback, s.State())

	s.ClearFeedback()
	require.Equal(t, StateRunning, s.State())
	s.Submit(fmt.Sprintf("%d", s.Math().Answer))
	assert.Equal(t, StateSuccess, s.State())
}

func TestMemoryRejectsSubmitDuringReveal(t *testing.T) {
	s := NewSession(newGame(model.GameTypeMemory, 30), rand.New(rand.NewSource(2)))
	s.Start()
	require.True(t, s.MemoryRevealed())

	// Even the correct sequence is ignored while the digits show.
	s.Submit(s.MemorySequence())
	assert.Equal(t, StateRunning, s.State())

	// Reveal runs 3 ticks, then submissions count.
	s.Tick()
	s.Tick()
	s.Tick()
	require.False(t, s.MemoryRevealed())

	s.Submit(s.MemorySequence())
	require.Equal(t, StateSuccess, s.State())
	assert.Equal(t, 200+s.Remaining()*15, s.FinalScore())
}

func TestPuzzleAnswerIsCaseInsensitive(t *testing.T) {
	s := NewSession(newGame(model.GameTypePuzzle, 45), rand.New(rand.NewSource(3)))
	s.Start()
	s.Tick()

	answer := "  " + s.Scramble().Word + "  " // whitespace tolerated too
	s.Submit(answer)

	require.Equal(t, StateSuccess, s.State())
	assert.Equal(t, 150+s.Remaining()*10, s.FinalScore())
}

func TestReflexFiveHitsWin(t *testing.T) {
	s := NewSession(newGame(model.GameTypeReflex, 20), rand.New(rand.NewSource(4)))
	s.Start()

	for i := 0; i < 4; i++ {
		s.Tap()
		require.Equal(t, StateRunning, s.State())
	}
	s.Tick() // 19s remain

	s.Tap()
	require.Equal(t, StateSuccess, s.State())
	assert.Equal(t, 150+19*20, s.FinalScore())
}

func TestReflexTimesOutShortOfRequiredHits(t *testing.T) {
	s := NewSession(newGame(model.GameTypeReflex, 3), rand.New(rand.NewSource(10)))
	s.Start()

	// Four hits is one short; running out the clock is a loss.
	for i := 0; i < 4; i++ {
		s.Tap()
	}
	require.Equal(t, StateRunning, s.State())

	s.Tick()
	s.Tick()
	s.Tick()

	require.Equal(t, StateTimeout, s.State())
	r, ok := s.Result()
	require.True(t, ok)
	assert.False(t, r.Completed)
	assert.Zero(t, r.Score)
}

func TestReflexTargetRelocatesOnTick(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	s := NewSession(newGame(model.GameTypeReflex, 20), r)
	s.Start()

	moved := false
	prev := s.Target()
	for i := 0; i < 10; i++ {
		s.Tick()
		if s.Target() != prev {
			moved = true
			break
		}
		prev = s.Target()
	}
	assert.True(t, moved, "target should relocate across ticks")
}

func TestPassiveGamesSucceedAtTimeout(t *testing.T) {
	for _, typ := range []model.GameType{model.GameTypeExercise, model.GameTypeBreathing} {
		t.Run(string(typ), func(t *testing.T) {
			s := NewSession(newGame(typ, 3), rand.New(rand.NewSource(6)))
			s.Start()

			s.Tick()
			s.Tick()
			require.Equal(t, StateRunning, s.State())
			s.Tick()

			require.Equal(t, StateSuccess, s.State())
			assert.Equal(t, 50, s.FinalScore())
		})
	}
}

func TestActiveGamesTimeOutWithZeroScore(t *testing.T) {
	s := NewSession(newGame(model.GameTypeMath, 2), rand.New(rand.NewSource(7)))
	s.Start()
	s.Tick()
	s.Tick()

	require.Equal(t, StateTimeout, s.State())
	assert.Zero(t, s.FinalScore())

	// Terminal states absorb everything.
	s.Submit(fmt.Sprintf("%d", s.Math().Answer))
	s.Tick()
	s.Tap()
	assert.Equal(t, StateTimeout, s.State())
}

func TestResultReportsAtMostOnce(t *testing.T) {
	s := NewSession(newGame(model.GameTypeMath, 30), rand.New(rand.NewSource(8)))

	// No result before the session ends.
	_, ok := s.Result()
	require.False(t, ok)

	s.Start()
	s.Submit(fmt.Sprintf("%d", s.Math().Answer))
	require.Equal(t, StateSuccess, s.State())

	r, ok := s.Result()
	require.True(t, ok)
	assert.True(t, r.Completed)
	assert.Equal(t, s.FinalScore(), r.Score)

	// Every later call reports nothing, no matter how teardown paths
	// interleave.
	_, ok = s.Result()
	assert.False(t, ok)
	_, ok = s.Result()
	assert.False(t, ok)
}

func TestTapIgnoredForNonReflexTypes(t *testing.T) {
	s := NewSession(newGame(model.GameTypeMath, 30), rand.New(rand.NewSource(9)))
	s.Start()
	s.Tap()
	assert.Zero(t, s.Hits())
	assert.Equal(t, StateRunning, s.State())
}
