package problemgen

import "fmt"

// Validator checks a generated calculation.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error
	// messages), e.g. "structural", "math-check", "rules".
	Name() string

	// Validate checks the calculation and returns nil if it passes. The
	// validator receives the GenerateInput to know which level the
	// calculation was generated for.
	Validate(c *Calculation, input GenerateInput) *ValidationError
}

// ValidationError describes why a calculation failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// runValidators applies the chain to c and returns the first failure.
func runValidators(validators []Validator, c *Calculation, input GenerateInput) error {
	for _, v := range validators {
		if verr := v.Validate(c, input); verr != nil {
			return verr
		}
	}
	return nil
}
