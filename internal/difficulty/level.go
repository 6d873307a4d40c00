// Package difficulty defines the quiz difficulty levels.
package difficulty

import (
	"fmt"
	"strings"
)

// Level is a quiz difficulty.
type Level int

const (
	Easy Level = iota
	Medium
	Hard
)

// All returns every level, easiest first.
func All() []Level {
	return []Level{Easy, Medium, Hard}
}

// String returns the lowercase key used in config, flags and bank files.
func (l Level) String() string {
	switch l {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// DisplayName returns the label shown in the chooser.
func (l Level) DisplayName() string {
	switch l {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= Easy && l <= Hard
}

// Parse maps a level key (case-insensitive) to its Level.
func Parse(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "e", "1":
		return Easy, nil
	case "medium", "m", "2":
		return Medium, nil
	case "hard", "h", "3":
		return Hard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q: must be easy, medium or hard", s)
	}
}

// Compare orders levels from easiest to hardest.
func Compare(a, b Level) int {
	return int(a) - int(b)
}

// MarshalText implements encoding.TextMarshaler so levels can key JSON and
// YAML maps.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid difficulty %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
