package flow

// Router presents the quiz to the learner. The flow never renders anything
// itself; it hands each step to the Router along with a continuation the
// Router invokes once the learner has acted.
//
// Continuations must be invoked on the same goroutine that drives the Flow,
// one at a time.
type Router[C comparable, A any, D comparable] interface {
	// RouteToDifficulties asks the learner to pick one of the available
	// difficulties and reports the pick through onChosen.
	RouteToDifficulties(available []D, onChosen func(D))

	// RouteToCalculation shows a single calculation. onAnswered records the
	// learner's answer and advances the flow; it returns a
	// *ContractViolation when the calculation does not belong to the
	// current run.
	RouteToCalculation(c C, difficulty D, onAnswered func(A) error)

	// RouteToResult shows the answers collected during the run. A nil
	// result means there was nothing to answer for the chosen difficulty.
	RouteToResult(result map[C]A, onRestart func())
}
