package problemgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aleksandri0/mathpower/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// batchOutput is the raw LLM response before validation.
type batchOutput struct {
	Calculations []struct {
		Expression string `json:"expression"`
		Solution   string `json:"solution"`
	} `json:"calculations"`
}

// Generate asks the provider for one batch and validates every item.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]Calculation, error) {
	if input.Count <= 0 {
		return nil, nil
	}

	ctx = llm.WithTag(ctx, llm.PurposeCalculationBatch, input.Level.String())

	req := llm.UserRequest(systemPrompt, buildUserMessage(input, g.config), CalculationBatchSchema)
	req.MaxTokens = g.config.MaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	if len(raw.Calculations) < input.Count {
		return nil, &ValidationError{
			Validator: "batch",
			Message:   fmt.Sprintf("expected %d calculations, got %d", input.Count, len(raw.Calculations)),
			Retryable: true,
		}
	}

	seen := newDedupSet(input.PriorExpressions)
	out := make([]Calculation, 0, input.Count)
	for _, item := range raw.Calculations[:input.Count] {
		c := Calculation{
			ID:         g.config.NewID(),
			Expression: strings.TrimSpace(item.Expression),
			Solution:   strings.TrimSpace(item.Solution),
		}
		if err := runValidators(g.config.Validators, &c, input); err != nil {
			return nil, err
		}
		if !seen.add(c.Expression) {
			return nil, &ValidationError{
				Validator: "dedup",
				Message:   fmt.Sprintf("expression %q repeats an earlier calculation", c.Expression),
				Retryable: true,
			}
		}
		out = append(out, c)
	}
	return out, nil
}
