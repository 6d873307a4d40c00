package problemgen

import (
	"strings"

	"github.com/aleksandri0/mathpower/internal/difficulty"
)

// Calculation is a single quiz item. It is comparable so it can key the
// answer log and be located within its ordered list.
type Calculation struct {
	// ID uniquely identifies the calculation, even when two banks contain
	// the same expression.
	ID string

	// Expression is the prompt shown to the learner, in plain ASCII,
	// e.g. "12 + 7" or "144 / 12".
	Expression string

	// Solution is the reference value of Expression, shown next to the
	// learner's answer on the result screen. It is never compared with the
	// learner's answer.
	Solution string
}

// Answer is the learner's response to a Calculation, as typed.
type Answer string

// Normalize trims surrounding whitespace.
func (a Answer) Normalize() Answer {
	return Answer(strings.TrimSpace(string(a)))
}

// GenerateInput holds everything needed to produce a batch of calculations.
type GenerateInput struct {
	// Level is the difficulty the batch is generated for.
	Level difficulty.Level

	// Count is the number of calculations wanted.
	Count int

	// PriorExpressions contains expressions already used for this level.
	// Generated batches never repeat them.
	PriorExpressions []string
}
