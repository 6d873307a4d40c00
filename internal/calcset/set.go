// Package calcset assembles calculation sets and reads and writes them as
// bank files.
package calcset

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/aleksandri0/mathpower/internal/difficulty"
	"github.com/aleksandri0/mathpower/internal/problemgen"
)

// Set maps each difficulty to its calculations in presentation order.
type Set map[difficulty.Level][]problemgen.Calculation

// Levels returns the levels present in the set, easiest first.
func (s Set) Levels() []difficulty.Level {
	levels := slices.Collect(maps.Keys(s))
	slices.SortFunc(levels, difficulty.Compare)
	return levels
}

// Len returns the total number of calculations across all levels.
func (s Set) Len() int {
	n := 0
	for _, list := range s {
		n += len(list)
	}
	return n
}

// Clone returns a deep copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for level, list := range s {
		out[level] = slices.Clone(list)
	}
	return out
}

// Expressions returns the expressions for level, in order. It is the input
// a generator needs to avoid repeating an earlier bank.
func (s Set) Expressions(level difficulty.Level) []string {
	out := make([]string, 0, len(s[level]))
	for _, c := range s[level] {
		out = append(out, c.Expression)
	}
	return out
}

// Build asks gen for count calculations per level. Levels are generated in
// the order given; a level listed twice is generated once.
func Build(ctx context.Context, gen problemgen.Generator, levels []difficulty.Level, count int) (Set, error) {
	return BuildAvoiding(ctx, gen, levels, count, nil)
}

// BuildAvoiding is Build with the expressions of prior excluded from every
// level.
func BuildAvoiding(ctx context.Context, gen problemgen.Generator, levels []difficulty.Level, count int, prior Set) (Set, error) {
	if count < 0 {
		return nil, fmt.Errorf("build calculation set: negative count %d", count)
	}

	set := make(Set, len(levels))
	for _, level := range levels {
		if !level.Valid() {
			return nil, fmt.Errorf("build calculation set: %w: %s", ErrUnknownLevel, level)
		}
		if _, done := set[level]; done {
			continue
		}

		calcs, err := gen.Generate(ctx, problemgen.GenerateInput{
			Level:            level,
			Count:            count,
			PriorExpressions: prior.Expressions(level),
		})
		if err != nil {
			return nil, fmt.Errorf("generate %s calculations: %w", level, err)
		}
		if calcs == nil {
			calcs = []problemgen.Calculation{}
		}
		set[level] = calcs
	}
	return set, nil
}
