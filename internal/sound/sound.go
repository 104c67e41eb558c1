// Package sound plays short cue tones for game events. Sound is cosmetic:
// every implementation swallows its own failures so a missing audio path
// can never interrupt game logic.
package sound

import (
	"os/exec"
	"runtime"
)

// Cue identifies a short audio cue.
type Cue int

const (
	CueStart Cue = iota
	CueSuccess
	CueError
	CueClick
)

// Player produces audio cues. Play must be safe to call from any state
// and must never block on or surface audio failures.
type Player interface {
	Play(c Cue)
	// Close releases any acquired audio resource. Safe to call more
	// than once.
	Close()
}

// Nop is a Player that does nothing. Used in tests and when the user's
// volume is zero.
type Nop struct{}

func (Nop) Play(Cue) {}
func (Nop) Close()   {}

// Beeper plays cues as terminal/system beeps via external commands.
type Beeper struct {
	// Volume silences all cues when zero or negative.
	Volume float64
}

// New returns a Beeper at the given volume, or a Nop when volume is zero.
func New(volume float64) Player {
	if volume <= 0 {
		return Nop{}
	}
	return &Beeper{Volume: volume}
}

// Play fires the cue without waiting for the command to finish.
func (b *Beeper) Play(c Cue) {
	if b.Volume <= 0 {
		return
	}

	switch runtime.GOOS {
	case "windows":
		freq := "800"
		if c == CueError {
			freq = "200"
		}
		go exec.Command("powershell", "-Command", "[console]::beep("+freq+",150)").Run()
	default:
		go exec.Command("printf", "\a").Run()
	}
}

// Close releases the player. The beeper holds no persistent resource,
// so this only exists to satisfy the popup's unconditional teardown.
func (b *Beeper) Close() {
	b.Volume = 0
}
