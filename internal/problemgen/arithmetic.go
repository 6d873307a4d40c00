package problemgen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/aleksandri0/mathpower/internal/difficulty"
)

// ArithmeticGenerator implements Generator with locally generated binary
// arithmetic. The same seed always yields the same expressions.
type ArithmeticGenerator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	config Config
}

// NewArithmetic creates an ArithmeticGenerator seeded with seed.
func NewArithmetic(seed uint64, cfg Config) *ArithmeticGenerator {
	return &ArithmeticGenerator{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		config: cfg,
	}
}

// Generate draws input.Count distinct calculations within the level's rules.
func (g *ArithmeticGenerator) Generate(ctx context.Context, input GenerateInput) ([]Calculation, error) {
	if input.Count < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", input.Count)
	}
	if !input.Level.Valid() {
		return nil, fmt.Errorf("invalid difficulty %d", int(input.Level))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	seen := newDedupSet(input.PriorExpressions)
	rules := input.Level.Rules()
	maxDraws := g.config.MaxDraws
	if maxDraws <= 0 {
		maxDraws = 1
	}

	out := make([]Calculation, 0, input.Count)
	for len(out) < input.Count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var op Operation
		found := false
		for range maxDraws {
			op = g.draw(rules)
			if seen.add(op.String()) {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("could not draw %d distinct %s calculations (got %d)",
				input.Count, input.Level, len(out))
		}

		value, err := op.Eval()
		if err != nil {
			return nil, fmt.Errorf("generated invalid calculation %q: %w", op, err)
		}
		c := Calculation{
			ID:         g.config.NewID(),
			Expression: op.String(),
			Solution:   strconv.FormatInt(value, 10),
		}
		if err := runValidators(g.config.Validators, &c, input); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// draw picks one operation within rules.
func (g *ArithmeticGenerator) draw(rules difficulty.Rules) Operation {
	op := rules.Operators[g.rng.IntN(len(rules.Operators))]

	if op == difficulty.OpDiv {
		divisor := g.operand(max(rules.MinOperand, 1), rules.MaxOperand)
		quotient := g.operand(rules.MinOperand, rules.MaxOperand)
		return Operation{Left: quotient * divisor, Op: op, Right: divisor}
	}

	left := g.operand(rules.MinOperand, rules.MaxOperand)
	right := g.operand(rules.MinOperand, rules.MaxOperand)
	if op == difficulty.OpSub && !rules.AllowNegative && left < right {
		left, right = right, left
	}
	return Operation{Left: left, Op: op, Right: right}
}

func (g *ArithmeticGenerator) operand(lo, hi int) int64 {
	return int64(lo + g.rng.IntN(hi-lo+1))
}
