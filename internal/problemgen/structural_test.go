package problemgen

import (
	"strings"
	"testing"
)

func validCalculation() *Calculation {
	return &Calculation{
		ID:         "calc-1",
		Expression: "12 + 7",
		Solution:   "19",
	}
}

func TestStructural_ValidCalculation(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validCalculation(), GenerateInput{}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructural_Failures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Calculation)
		retryable bool
	}{
		{"empty expression", func(c *Calculation) { c.Expression = "" }, true},
		{"long expression", func(c *Calculation) { c.Expression = strings.Repeat("1", 65) }, true},
		{"non-ascii expression", func(c *Calculation) { c.Expression = "12 × 7" }, true},
		{"control character", func(c *Calculation) { c.Expression = "12\t+ 7" }, true},
		{"empty solution", func(c *Calculation) { c.Solution = "" }, true},
		{"long solution", func(c *Calculation) { c.Solution = strings.Repeat("9", 25) }, true},
		{"missing id", func(c *Calculation) { c.ID = "" }, false},
	}

	v := &StructuralValidator{}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := validCalculation()
			tc.mutate(c)
			err := v.Validate(c, GenerateInput{})
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Validator != "structural" {
				t.Errorf("expected validator %q, got %q", "structural", err.Validator)
			}
			if err.Retryable != tc.retryable {
				t.Errorf("Retryable = %v, want %v", err.Retryable, tc.retryable)
			}
		})
	}
}
