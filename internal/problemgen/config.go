package problemgen

import "github.com/google/uuid"

// Config controls the behavior of the generators.
type Config struct {
	// Validators is the ordered list of validators run on every generated
	// calculation. The first failure stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorExpressions is the maximum number of prior expressions
	// included in the prompt for deduplication.
	MaxPriorExpressions int

	// MaxDraws bounds how many random draws the arithmetic generator makes
	// per requested calculation before giving up on finding a fresh one.
	MaxDraws int

	// NewID returns a fresh calculation ID.
	NewID func() string
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&MathCheckValidator{},
			&RulesValidator{},
		},
		MaxTokens:           2048,
		Temperature:         0.7,
		MaxPriorExpressions: 20,
		MaxDraws:            50,
		NewID:               uuid.NewString,
	}
}
