// Package presenter binds the quiz flow to the MathPower screens.
package presenter

import (
	"slices"

	"github.com/aleksandri0/mathpower/internal/calcset"
	"github.com/aleksandri0/mathpower/internal/difficulty"
	"github.com/aleksandri0/mathpower/internal/flow"
	"github.com/aleksandri0/mathpower/internal/problemgen"
)

// Router is the flow router for calculation sets.
type Router = flow.Router[problemgen.Calculation, problemgen.Answer, difficulty.Level]

// Flow is the quiz flow over calculation sets.
type Flow = flow.Flow[problemgen.Calculation, problemgen.Answer, difficulty.Level]

// NewFlow creates a flow over set whose chooser lists levels easiest first.
func NewFlow(r Router, set calcset.Set, policy flow.ResetPolicy) *Flow {
	return flow.New(r, set,
		flow.WithResetPolicy[difficulty.Level](policy),
		flow.WithDifficultyOrder(difficulty.Compare),
	)
}

// Answered pairs a calculation with the learner's answer.
type Answered struct {
	Calculation problemgen.Calculation
	Answer      problemgen.Answer
}

// Ordered returns the answered calculations of result in the order of
// list. Calculations without an answer are skipped. A nil result yields
// nil; any other result yields a non-nil slice.
func Ordered(list []problemgen.Calculation, result map[problemgen.Calculation]problemgen.Answer) []Answered {
	if result == nil {
		return nil
	}
	out := make([]Answered, 0, len(result))
	for _, c := range list {
		if a, ok := result[c]; ok {
			out = append(out, Answered{Calculation: c, Answer: a})
		}
	}
	return out
}

// Position reports where c sits in the level's list, 0-based, and the
// length of that list.
func Position(set calcset.Set, level difficulty.Level, c problemgen.Calculation) (index, total int) {
	list := set[level]
	return max(slices.Index(list, c), 0), len(list)
}
