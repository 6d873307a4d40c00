package flow

import (
	"errors"
	"fmt"
)

// ErrContractViolation matches every *ContractViolation via errors.Is.
var ErrContractViolation = errors.New("flow contract violation")

// ContractViolation reports a Router integration bug: the flow was driven
// in a way its contract forbids. Hosts must not try to recover from it.
type ContractViolation struct {
	// Op is the flow operation that detected the violation ("start" or "answer").
	Op string
	// Reason describes the broken precondition.
	Reason string
	// Value is the offending calculation, when there is one.
	Value any
}

func (e *ContractViolation) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("flow %s: %s (%v)", e.Op, e.Reason, e.Value)
	}
	return fmt.Sprintf("flow %s: %s", e.Op, e.Reason)
}

func (e *ContractViolation) Is(target error) bool {
	return target == ErrContractViolation
}
