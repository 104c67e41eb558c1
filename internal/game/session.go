package game

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/nvbach/omnitask/internal/model"
)

// State is a session's lifecycle position.
type State int

const (
	// StateNotStarted is the pre-start screen; closing here is a cancel.
	StateNotStarted State = iota
	// StateRunning is the active countdown accepting input.
	StateRunning
	// StateFailFeedback is the brief shake after a wrong answer; the
	// countdown pauses and the session returns to StateRunning when the
	// feedback clears.
	StateFailFeedback
	// StateSuccess is terminal: the player solved the challenge (or a
	// passive game ran its course).
	StateSuccess
	// StateTimeout is terminal: time ran out on an unsolved challenge.
	StateTimeout
	// StateCanceled is terminal: the player closed before starting.
	StateCanceled
)

// Result is the completion outcome reported to the caller exactly once.
type Result struct {
	Completed bool
	Score     int
}

// Timing constants for the popup's visual phases. The session itself is
// tick-driven; these are what the hosting view schedules its timers with.
const (
	// FailFeedbackDelay is how long the wrong-answer shake lasts.
	FailFeedbackDelay = 500 * time.Millisecond

	// ResultDisplayDelay is how long the success/timeout splash shows
	// before the popup tears down.
	ResultDisplayDelay = 2500 * time.Millisecond
)

// Scoring parameters per game type.
const (
	passiveScore      = 50
	mathBase          = 100
	mathPerSecond     = 10
	memoryBase        = 200
	memoryPerSecond   = 15
	puzzleBase        = 150
	puzzlePerSecond   = 10
	reflexBase        = 150
	reflexPerSecond   = 20
	reflexRequired    = 5
	memoryRevealSecs  = 3
)

// Session is one mini-game popup's state machine. It holds no timers and
// never reads the wall clock: the hosting view calls Tick once per second
// while the session runs, which keeps every transition simulatable in
// tests. All methods gate on the current state, so a tick, submission, or
// tap arriving after a terminal state is a no-op.
type Session struct {
	game      model.BrainGame
	r         *rand.Rand
	state     State
	remaining int
	score     int
	reported  bool

	math         MathProblem
	memory       string
	memoryReveal int
	scramble     Scramble
	target       TargetPos
	hits         int
}

// NewSession creates a session for the given catalog entry, generating
// the per-type working content from r.
func NewSession(g model.BrainGame, r *rand.Rand) *Session {
	s := &Session{
		game:      g,
		r:         r,
		state:     StateNotStarted,
		remaining: g.DurationSeconds,
	}

	switch g.Type {
	case model.GameTypeMath:
		s.math = NewMathProblem(r)
	case model.GameTypeMemory:
		s.memory = NewMemorySequence(r)
	case model.GameTypePuzzle:
		s.scramble = NewScramble(r)
	case model.GameTypeReflex:
		s.target = NewTargetPos(r)
	}

	return s
}

// Game returns the catalog entry this session runs.
func (s *Session) Game() model.BrainGame { return s.game }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Remaining returns the seconds left on the countdown.
func (s *Session) Remaining() int { return s.remaining }

// FinalScore returns the score locked in by a terminal transition.
func (s *Session) FinalScore() int { return s.score }

// Math returns the generated math problem.
func (s *Session) Math() MathProblem { return s.math }

// MemorySequence returns the digits the player must recall.
func (s *Session) MemorySequence() string { return s.memory }

// MemoryRevealed reports whether the reveal phase is still showing the
// sequence. Submissions are only accepted once it has ended.
func (s *Session) MemoryRevealed() bool { return s.memoryReveal > 0 }

// Scramble returns the word puzzle content.
func (s *Session) Scramble() Scramble { return s.scramble }

// Target returns the current reflex target position.
func (s *Session) Target() TargetPos { return s.target }

// Hits returns the reflex tap count so far.
func (s *Session) Hits() int { return s.hits }

// Terminal reports whether the session has reached an end state.
func (s *Session) Terminal() bool {
	return s.state == StateSuccess || s.state == StateTimeout || s.state == StateCanceled
}

// Start moves the session from the pre-start screen into the countdown.
// The countdown never begins on its own; only this explicit action does it.
func (s *Session) Start() {
	if s.state != StateNotStarted {
		return
	}
	s.state = StateRunning
	if s.game.Type == model.GameTypeMemory {
		s.memoryReveal = memoryRevealSecs
	}
}

// CancelBeforeStart closes the popup before the session began. It is only
// legal from the pre-start screen; once running, a session can end solely
// through success or timeout.
func (s *Session) CancelBeforeStart() {
	if s.state != StateNotStarted {
		return
	}
	s.state = StateCanceled
	s.score = 0
}

// Tick advances the countdown by one second. It does nothing while the
// session is not running (feedback pauses the clock, terminal states
// absorb everything). The reflex target relocates on every tick, and the
// memory reveal counts itself down here too.
func (s *Session) Tick() {
	if s.state != StateRunning {
		return
	}

	if s.memoryReveal > 0 {
		s.memoryReveal--
	}

	if s.game.Type == model.GameTypeReflex {
		s.target = NewTargetPos(s.r)
	}

	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		return
	}

	// Passive games cannot be failed; running out the clock is the win.
	switch s.game.Type {
	case model.GameTypeExercise, model.GameTypeBreathing:
		s.succeed(passiveScore)
	default:
		s.state = StateTimeout
		s.score = 0
	}
}

// ClearFeedback ends the wrong-answer shake and resumes the countdown.
// The hosting view calls it FailFeedbackDelay after the failed submission.
func (s *Session) ClearFeedback() {
	if s.state != StateFailFeedback {
		return
	}
	s.state = StateRunning
}

// Submit checks a typed answer for MATH, MEMORY, and PUZZLE sessions.
// A correct answer is terminal; a wrong one transitions to the transient
// feedback state and the session keeps running after ClearFeedback.
// Submissions outside StateRunning, for tap-driven or passive types, or
// during the memory reveal are ignored.
func (s *Session) Submit(input string) {
	if s.state != StateRunning {
		return
	}

	switch s.game.Type {
	case model.GameTypeMath:
		n, err := strconv.Atoi(strings.TrimSpace(input))
		if err == nil && n == s.math.Answer {
			s.succeed(mathBase + s.remaining*mathPerSecond)
			return
		}
		s.state = StateFailFeedback

	case model.GameTypeMemory:
		if s.memoryReveal > 0 {
			return
		}
		if strings.TrimSpace(input) == s.memory {
			s.succeed(memoryBase + s.remaining*memoryPerSecond)
			return
		}
		s.state = StateFailFeedback

	case model.GameTypePuzzle:
		if strings.EqualFold(strings.TrimSpace(input), s.scramble.Word) {
			s.succeed(puzzleBase + s.remaining*puzzlePerSecond)
			return
		}
		s.state = StateFailFeedback
	}
}

// Tap registers a reflex hit: the counter advances and the target
// relocates; the required count resolves the session. Ignored for other
// game types and outside StateRunning.
func (s *Session) Tap() {
	if s.state != StateRunning || s.game.Type != model.GameTypeReflex {
		return
	}

	s.hits++
	if s.hits >= reflexRequired {
		s.succeed(reflexBase + s.remaining*reflexPerSecond)
		return
	}
	s.target = NewTargetPos(s.r)
}

// Result reports the completion outcome the first time it is called on a
// terminal session; every later call (and any call before the session
// ends) returns ok=false. This is what keeps the completion callback
// at-most-once no matter how teardown paths interleave.
func (s *Session) Result() (Result, bool) {
	if !s.Terminal() || s.reported {
		return Result{}, false
	}
	s.reported = true
	return Result{
		Completed: s.state == StateSuccess,
		Score:     s.score,
	}, true
}

func (s *Session) succeed(score int) {
	s.state = StateSuccess
	s.score = score
}
