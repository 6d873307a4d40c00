package problemgen

const (
	maxExpressionLen = 64
	maxSolutionLen   = 24
)

// StructuralValidator checks that required fields are present, within
// length limits, and plain printable ASCII.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c *Calculation, _ GenerateInput) *ValidationError {
	if c.Expression == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "expression is empty",
			Retryable: true,
		}
	}
	if len(c.Expression) > maxExpressionLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "expression exceeds 64 characters",
			Retryable: true,
		}
	}
	if !isPrintableASCII(c.Expression) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "expression must be plain ASCII",
			Retryable: true,
		}
	}
	if c.Solution == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "solution is empty",
			Retryable: true,
		}
	}
	if len(c.Solution) > maxSolutionLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "solution exceeds 24 characters",
			Retryable: true,
		}
	}
	if c.ID == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "id is empty",
		}
	}
	return nil
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
