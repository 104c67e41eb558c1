package game

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMathProblemOperandRange(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		p := NewMathProblem(r)
		assert.GreaterOrEqual(t, p.A, 10)
		assert.LessOrEqual(t, p.A, 59)
		assert.GreaterOrEqual(t, p.B, 10)
		assert.LessOrEqual(t, p.B, 59)
		assert.Equal(t, p.A+p.B, p.Answer)
	}
}

func TestNewMemorySequenceIsSixDigits(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		seq := NewMemorySequence(r)
		require.Len(t, seq, 6)
		assert.NotEqual(t, byte('0'), seq[0], "no leading zero")
	}
}

func TestNewScrambleKeepsLettersAndUsuallyDiffers(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		sc := NewScramble(r)

		// Same multiset of letters.
		want := strings.Split(sc.Word, "")
		got := strings.Split(sc.Scrambled, "")
		sort.Strings(want)
		sort.Strings(got)
		require.Equal(t, want, got)

		// Every word in the vocabulary has at least two distinct letters,
		// so the bounded re-shuffle should essentially always land on a
		// different arrangement.
		assert.NotEqual(t, sc.Word, sc.Scrambled)
	}
}

func TestNewTargetPosStaysInsideField(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 200; i++ {
		pos := NewTargetPos(r)
		assert.GreaterOrEqual(t, pos.Top, 15)
		assert.LessOrEqual(t, pos.Top, 84)
		assert.GreaterOrEqual(t, pos.Left, 15)
		assert.LessOrEqual(t, pos.Left, 84)
	}
}
