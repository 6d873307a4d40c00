package problemgen

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/aleksandri0/mathpower/internal/difficulty"
)

// binaryExprRe matches "a op b" with optional surrounding whitespace.
// Both × and x are accepted for multiplication and ÷ for division.
var binaryExprRe = regexp.MustCompile(`^\s*(-?\d+)\s*([+\-*/×xX÷])\s*(-?\d+)\s*$`)

// Operation is a parsed binary calculation.
type Operation struct {
	Left  int64
	Op    difficulty.Operator
	Right int64
}

// ParseExpression parses a binary arithmetic expression such as "12 + 7".
func ParseExpression(expr string) (Operation, error) {
	m := binaryExprRe.FindStringSubmatch(expr)
	if m == nil {
		return Operation{}, fmt.Errorf("not a binary arithmetic expression: %q", expr)
	}
	left, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Operation{}, fmt.Errorf("invalid left operand: %w", err)
	}
	right, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return Operation{}, fmt.Errorf("invalid right operand: %w", err)
	}
	return Operation{Left: left, Op: normalizeOp(m[2]), Right: right}, nil
}

// Eval computes the exact integer value of the operation. Division must
// leave no remainder.
func (o Operation) Eval() (int64, error) {
	switch o.Op {
	case difficulty.OpAdd:
		return o.Left + o.Right, nil
	case difficulty.OpSub:
		return o.Left - o.Right, nil
	case difficulty.OpMul:
		return o.Left * o.Right, nil
	case difficulty.OpDiv:
		if o.Right == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		if o.Left%o.Right != 0 {
			return 0, fmt.Errorf("%d / %d is not a whole number", o.Left, o.Right)
		}
		return o.Left / o.Right, nil
	default:
		return 0, fmt.Errorf("unsupported operator: %s", o.Op)
	}
}

// String renders the canonical form, e.g. "12 + 7".
func (o Operation) String() string {
	return fmt.Sprintf("%d %s %d", o.Left, o.Op, o.Right)
}

// Evaluate parses and computes expr.
func Evaluate(expr string) (int64, error) {
	op, err := ParseExpression(expr)
	if err != nil {
		return 0, err
	}
	return op.Eval()
}

// MathCheckValidator independently recomputes the expression and rejects
// calculations whose claimed solution differs.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(c *Calculation, _ GenerateInput) *ValidationError {
	computed, err := Evaluate(c.Expression)
	if err != nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   err.Error(),
			Retryable: true,
		}
	}
	claimed, err := strconv.ParseInt(strings.TrimSpace(c.Solution), 10, 64)
	if err != nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("solution %q is not an integer", c.Solution),
			Retryable: true,
		}
	}
	if computed != claimed {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %d but generator claimed %q", computed, c.Solution),
			Retryable: true,
		}
	}
	return nil
}

// RulesValidator checks that a calculation stays within the operand bounds
// and operators of its level.
type RulesValidator struct{}

func (v *RulesValidator) Name() string { return "rules" }

func (v *RulesValidator) Validate(c *Calculation, input GenerateInput) *ValidationError {
	op, err := ParseExpression(c.Expression)
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error(), Retryable: true}
	}
	rules := input.Level.Rules()

	if !slices.Contains(rules.Operators, op.Op) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("operator %s not allowed for %s", op.Op, input.Level),
			Retryable: true,
		}
	}

	if op.Op == difficulty.OpDiv {
		// Division is generated as quotient * divisor / divisor, so the
		// dividend may exceed the operand range.
		q, err := op.Eval()
		if err != nil {
			return &ValidationError{Validator: v.Name(), Message: err.Error(), Retryable: true}
		}
		if !inRange(op.Right, rules) || !inRange(q, rules) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("%q is outside the %s range", c.Expression, input.Level),
				Retryable: true,
			}
		}
		return nil
	}

	if !inRange(op.Left, rules) || !inRange(op.Right, rules) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%q is outside the %s range", c.Expression, input.Level),
			Retryable: true,
		}
	}
	if op.Op == difficulty.OpSub && !rules.AllowNegative && op.Left < op.Right {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%q has a negative result", c.Expression),
			Retryable: true,
		}
	}
	return nil
}

func inRange(n int64, r difficulty.Rules) bool {
	return n >= int64(r.MinOperand) && n <= int64(r.MaxOperand)
}

// normalizeOp normalizes multiplication and division symbols.
func normalizeOp(op string) difficulty.Operator {
	switch op {
	case "×", "x", "X":
		return difficulty.OpMul
	case "÷":
		return difficulty.OpDiv
	default:
		return difficulty.Operator(op)
	}
}
