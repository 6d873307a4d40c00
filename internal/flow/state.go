package flow

import "fmt"

// State is the phase the flow is in.
type State int

const (
	StateIdle              State = iota // No run in progress; a difficulty may be set
	StateDifficultyPending              // Waiting for the Router to report a difficulty
	StateRunning                        // Calculations are being presented
	StateCompleted                      // Result delivered; waiting for restart
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDifficultyPending:
		return "difficulty-pending"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ResetPolicy decides when the answer log and the selected difficulty of a
// finished run are discarded.
type ResetPolicy int

const (
	// ResetOnChoose clears the previous run when the learner picks a
	// difficulty again, so pressing restart alone leaves the old result
	// intact until the chooser is actually used.
	ResetOnChoose ResetPolicy = iota

	// ResetOnRestart clears the previous run as soon as the restart
	// continuation fires, before the chooser is shown.
	ResetOnRestart
)

func (p ResetPolicy) String() string {
	switch p {
	case ResetOnChoose:
		return "choose"
	case ResetOnRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// ParseResetPolicy accepts the names returned by ResetPolicy.String.
func ParseResetPolicy(s string) (ResetPolicy, error) {
	switch s {
	case "", "choose":
		return ResetOnChoose, nil
	case "restart":
		return ResetOnRestart, nil
	default:
		return 0, fmt.Errorf("unknown reset policy %q: must be choose or restart", s)
	}
}
