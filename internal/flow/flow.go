// Package flow drives a quiz: difficulty selection, one calculation at a
// time, a result, and back to difficulty selection.
package flow

import (
	"maps"
	"slices"
)

// Flow is the quiz state machine. It is not safe for concurrent use; every
// method and continuation must run on the goroutine that owns the Router.
type Flow[C comparable, A any, D comparable] struct {
	router       Router[C, A, D]
	calculations map[D][]C
	order        func(a, b D) int
	policy       ResetPolicy

	answers    map[C]A
	difficulty D
	hasLevel   bool
	state      State
	index      int
}

// Option configures a Flow over difficulties of type D.
type Option[D comparable] func(*options[D])

type options[D comparable] struct {
	policy ResetPolicy
	order  func(a, b D) int
}

// WithResetPolicy sets when a finished run is discarded. The default is
// ResetOnChoose.
func WithResetPolicy[D comparable](p ResetPolicy) Option[D] {
	return func(o *options[D]) { o.policy = p }
}

// WithDifficultyOrder sorts the difficulties handed to the Router.
// Without it the order is unspecified.
func WithDifficultyOrder[D comparable](cmp func(a, b D) int) Option[D] {
	return func(o *options[D]) { o.order = cmp }
}

// New creates a Flow over the given calculations. The map and its slices
// are copied; later changes by the caller are not observed.
func New[C comparable, A any, D comparable](router Router[C, A, D], calculations map[D][]C, opts ...Option[D]) *Flow[C, A, D] {
	var o options[D]
	for _, opt := range opts {
		opt(&o)
	}

	f := &Flow[C, A, D]{
		router:       router,
		calculations: make(map[D][]C, len(calculations)),
		order:        o.order,
		policy:       o.policy,
		answers:      make(map[C]A),
	}
	for d, list := range calculations {
		f.calculations[d] = slices.Clone(list)
	}
	return f
}

// Difficulties returns the difficulties that have an entry in the
// calculation set, including ones with an empty list.
func (f *Flow[C, A, D]) Difficulties() []D {
	keys := slices.Collect(maps.Keys(f.calculations))
	if f.order != nil {
		slices.SortFunc(keys, f.order)
	}
	return keys
}

// SelectDifficulty hands the available difficulties to the Router. The
// chosen one becomes current once the Router calls back.
func (f *Flow[C, A, D]) SelectDifficulty() {
	f.state = StateDifficultyPending
	f.router.RouteToDifficulties(f.Difficulties(), f.chooseDifficulty)
}

// Start presents the first calculation of the current difficulty, or an
// absent result when that difficulty has nothing to answer. Calling Start
// again before an answer arrives presents the first calculation again.
func (f *Flow[C, A, D]) Start() error {
	if !f.hasLevel {
		return &ContractViolation{Op: "start", Reason: "difficulty is not set"}
	}

	list := f.calculations[f.difficulty]
	if len(list) == 0 {
		f.state = StateCompleted
		f.router.RouteToResult(nil, f.restart)
		return nil
	}

	f.state = StateRunning
	f.index = 0
	f.router.RouteToCalculation(list[0], f.difficulty, f.answerFor(list[0]))
	return nil
}

// State reports the current phase.
func (f *Flow[C, A, D]) State() State {
	return f.state
}

// Difficulty returns the current difficulty, if one has been chosen.
func (f *Flow[C, A, D]) Difficulty() (D, bool) {
	return f.difficulty, f.hasLevel
}

// Answers returns a copy of the answers recorded so far.
func (f *Flow[C, A, D]) Answers() map[C]A {
	return maps.Clone(f.answers)
}

// Index returns the position of the next unanswered calculation in the
// current list.
func (f *Flow[C, A, D]) Index() int {
	return f.index
}

func (f *Flow[C, A, D]) chooseDifficulty(d D) {
	if f.policy == ResetOnChoose {
		f.reset()
	}
	f.difficulty = d
	f.hasLevel = true
	f.state = StateIdle
}

func (f *Flow[C, A, D]) answerFor(c C) func(A) error {
	return func(a A) error {
		return f.handleAnswer(c, a)
	}
}

func (f *Flow[C, A, D]) handleAnswer(c C, a A) error {
	if !f.hasLevel {
		return &ContractViolation{Op: "answer", Reason: "difficulty is not set", Value: c}
	}
	if f.state != StateRunning {
		return &ContractViolation{Op: "answer", Reason: "no run in progress (" + f.state.String() + ")", Value: c}
	}

	list := f.calculations[f.difficulty]
	current := slices.Index(list, c)
	if current < 0 {
		return &ContractViolation{Op: "answer", Reason: "calculation is not part of the current difficulty", Value: c}
	}

	f.answers[c] = a
	next := current + 1
	f.index = next
	if next < len(list) {
		f.router.RouteToCalculation(list[next], f.difficulty, f.answerFor(list[next]))
		return nil
	}

	f.state = StateCompleted
	f.router.RouteToResult(maps.Clone(f.answers), f.restart)
	return nil
}

func (f *Flow[C, A, D]) restart() {
	if f.policy == ResetOnRestart {
		f.reset()
	}
	f.SelectDifficulty()
}

// reset drops the answer log and the difficulty together.
func (f *Flow[C, A, D]) reset() {
	clear(f.answers)
	var zero D
	f.difficulty = zero
	f.hasLevel = false
	f.index = 0
}
