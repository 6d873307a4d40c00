package problemgen

import (
	"fmt"
	"strings"
)

// buildDedup formats prior expressions for the prompt, respecting the max
// limit. Returns "None" if there are no prior expressions.
func buildDedup(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}

	// Keep only the most recent N expressions.
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, e := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, e)
	}
	return strings.TrimRight(b.String(), "\n")
}

// expressionKey canonicalizes an expression so "3+4" and "3 + 4" collide.
func expressionKey(expr string) string {
	if op, err := ParseExpression(expr); err == nil {
		return op.String()
	}
	return strings.Join(strings.Fields(expr), " ")
}

// dedupSet tracks the expressions seen so far.
type dedupSet map[string]struct{}

func newDedupSet(prior []string) dedupSet {
	s := make(dedupSet, len(prior))
	for _, p := range prior {
		s[expressionKey(p)] = struct{}{}
	}
	return s
}

// add records expr and reports whether it was new.
func (s dedupSet) add(expr string) bool {
	k := expressionKey(expr)
	if _, ok := s[k]; ok {
		return false
	}
	s[k] = struct{}{}
	return true
}
