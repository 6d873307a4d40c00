package calcset

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/aleksandri0/mathpower/internal/difficulty"
	"github.com/aleksandri0/mathpower/internal/problemgen"
)

var (
	// ErrUnknownLevel is returned for a level key that is not easy, medium
	// or hard.
	ErrUnknownLevel = errors.New("unknown difficulty level")

	// ErrDuplicateID is returned when two calculations in a bank share an ID.
	ErrDuplicateID = errors.New("duplicate calculation id")

	// ErrInvalidBank wraps schema validation failures.
	ErrInvalidBank = errors.New("invalid bank")
)

// Sources recorded on a bank.
const (
	SourceArithmetic = "arithmetic"
	SourceLLM        = "llm"
	SourceFile       = "file"
)

// Bank is a named, serialisable calculation set.
type Bank struct {
	ID        string            `json:"id" yaml:"id"`
	Name      string            `json:"name" yaml:"name"`
	Source    string            `json:"source,omitempty" yaml:"source,omitempty"`
	CreatedAt time.Time         `json:"created_at" yaml:"created_at"`
	Levels    map[string][]Item `json:"levels" yaml:"levels"`
}

// Item is one calculation in a bank file.
type Item struct {
	ID         string `json:"id" yaml:"id"`
	Expression string `json:"expression" yaml:"expression"`
	Solution   string `json:"solution" yaml:"solution"`
}

// NewBank wraps set in a Bank with a fresh ID.
func NewBank(name, source string, set Set) *Bank {
	b := &Bank{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    source,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Levels:    make(map[string][]Item, len(set)),
	}
	for level, list := range set {
		items := make([]Item, 0, len(list))
		for _, c := range list {
			items = append(items, Item{ID: c.ID, Expression: c.Expression, Solution: c.Solution})
		}
		b.Levels[level.String()] = items
	}
	return b
}

// Set converts the bank back into a calculation set. Level keys must be
// exactly "easy", "medium" or "hard" and IDs must be unique across the bank.
func (b *Bank) Set() (Set, error) {
	set := make(Set, len(b.Levels))
	seen := make(map[string]string)

	// Sorted so the reported duplicate does not depend on map order.
	keys := slices.Sorted(maps.Keys(b.Levels))
	for _, key := range keys {
		level, err := levelKey(key)
		if err != nil {
			return nil, err
		}

		list := make([]problemgen.Calculation, 0, len(b.Levels[key]))
		for _, it := range b.Levels[key] {
			if prev, dup := seen[it.ID]; dup {
				return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicateID, it.ID, prev, key)
			}
			seen[it.ID] = key
			list = append(list, problemgen.Calculation{
				ID:         it.ID,
				Expression: it.Expression,
				Solution:   it.Solution,
			})
		}
		set[level] = list
	}
	return set, nil
}

// Total returns the number of calculations in the bank.
func (b *Bank) Total() int {
	n := 0
	for _, items := range b.Levels {
		n += len(items)
	}
	return n
}

func levelKey(key string) (difficulty.Level, error) {
	for _, l := range difficulty.All() {
		if l.String() == key {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, key)
}
