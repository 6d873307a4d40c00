package problemgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a math coach writing mental arithmetic drills.

Rules:
- Produce exactly the requested number of calculations for the given difficulty.
- Each calculation is a single binary operation written as "<a> <op> <b>" with one space around the operator.
- Use plain ASCII: + for addition, - for subtraction, * for multiplication, / for division.
- Only use the operators listed for the difficulty, and keep operands inside the given range.
- Division must divide exactly; the divisor and the quotient must be inside the operand range.
- Unless negative results are allowed, the first operand of a subtraction must not be smaller than the second.
- The solution is the exact integer value of the expression.
- Order the calculations from easier to harder.
- Do not repeat any calculation from the "already used" list or within the batch.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	rules := input.Level.Rules()

	ops := make([]string, len(rules.Operators))
	for i, op := range rules.Operators {
		ops[i] = string(op)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Difficulty: %s\n", input.Level)
	fmt.Fprintf(&b, "Count: %d\n", input.Count)
	fmt.Fprintf(&b, "Operators: %s\n", strings.Join(ops, " "))
	fmt.Fprintf(&b, "Operand range: %d to %d\n", rules.MinOperand, rules.MaxOperand)
	fmt.Fprintf(&b, "Negative results allowed: %t\n", rules.AllowNegative)

	b.WriteString("\nAlready used:\n")
	b.WriteString(buildDedup(input.PriorExpressions, cfg.MaxPriorExpressions))

	return b.String()
}
