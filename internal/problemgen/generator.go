package problemgen

import "context"

// Generator produces calculations for a difficulty level.
type Generator interface {
	// Generate returns exactly input.Count calculations in presentation
	// order, or an error. All configured validators have passed for every
	// returned calculation.
	Generate(ctx context.Context, input GenerateInput) ([]Calculation, error)
}
