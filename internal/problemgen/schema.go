package problemgen

import "github.com/aleksandri0/mathpower/internal/llm"

// CalculationBatchSchema defines the JSON schema for LLM calculation batches.
var CalculationBatchSchema = &llm.Schema{
	Name:        "calculation-batch",
	Description: "A batch of mental arithmetic calculations with reference solutions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"calculations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"expression": map[string]any{
							"type":        "string",
							"description": "A single binary calculation in plain ASCII, e.g. \"12 + 7\"",
						},
						"solution": map[string]any{
							"type":        "string",
							"description": "The exact integer value of the expression",
						},
					},
					"required":             []any{"expression", "solution"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"calculations"},
		"additionalProperties": false,
	},
}
