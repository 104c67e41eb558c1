package game

import (
	"fmt"
	"math/rand"
	"strings"
)

// puzzleWords is the fixed vocabulary the word scramble draws from.
var puzzleWords = []string{
	"FOCUS", "TASK", "GOAL", "TIME", "PLAN", "WORK",
	"MIND", "FAST", "DONE", "IDEA", "SUCCESS", "POWER",
}

// MathProblem is a generated addition challenge.
type MathProblem struct {
	A, B   int
	Answer int
}

// Question renders the problem as shown to the player.
func (p MathProblem) Question() string {
	return fmt.Sprintf("%d + %d", p.A, p.B)
}

// NewMathProblem generates two operands in [10, 59] and their sum.
func NewMathProblem(r *rand.Rand) MathProblem {
	a := r.Intn(50) + 10
	b := r.Intn(50) + 10
	return MathProblem{A: a, B: b, Answer: a + b}
}

// NewMemorySequence generates a 6-digit sequence in [100000, 999999].
func NewMemorySequence(r *rand.Rand) string {
	return fmt.Sprintf("%d", 100000+r.Intn(900000))
}

// Scramble is a word puzzle: the original word and its shuffled form.
type Scramble struct {
	Word      string
	Scrambled string
}

// NewScramble picks a vocabulary word and shuffles its letters,
// re-shuffling up to a fixed number of attempts so the scrambled form
// differs from the original. Words whose letters admit no distinct
// permutation keep the original form after the attempts run out.
func NewScramble(r *rand.Rand) Scramble {
	word := puzzleWords[r.Intn(len(puzzleWords))]
	return Scramble{Word: word, Scrambled: scrambleWord(r, word)}
}

func scrambleWord(r *rand.Rand, word string) string {
	letters := strings.Split(word, "")
	for attempt := 0; attempt < 8; attempt++ {
		r.Shuffle(len(letters), func(i, j int) {
			letters[i], letters[j] = letters[j], letters[i]
		})
		if s := strings.Join(letters, ""); s != word {
			return s
		}
	}
	return strings.Join(letters, "")
}

// TargetPos is a reflex target position as percentages of the play area.
type TargetPos struct {
	Top  int
	Left int
}

// NewTargetPos places the reflex target inside the central 70% box.
func NewTargetPos(r *rand.Rand) TargetPos {
	return TargetPos{
		Top:  r.Intn(70) + 15,
		Left: r.Intn(70) + 15,
	}
}
