package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aleksandri0/mathpower/internal/store"
)

// LoggingProvider appends one store event per request, tagged with the
// context's Tag. A failed append is reported on stderr and does not fail
// the request.
type LoggingProvider struct {
	inner  Provider
	events store.EventRepo
	now    func() time.Time
}

// WithLogging records every call to p in events.
func WithLogging(p Provider, events store.EventRepo) Provider {
	return &LoggingProvider{inner: p, events: events, now: time.Now}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    providerName(l.inner),
		Model:       l.inner.ModelID(),
		Purpose:     TagFrom(ctx).String(),
		LatencyMs:   l.now().Sub(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	switch {
	case err != nil:
		ev.ErrorMessage = err.Error()
	case resp != nil:
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}

	if logErr := l.events.AppendLLMRequest(ctx, ev); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record LLM request: %v\n", logErr)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// transcript renders a request the way `mathpower llm show` prints it:
// one bracketed heading per part.
func transcript(req Request) string {
	var b strings.Builder
	part := func(heading, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", heading, body)
	}

	if req.System != "" {
		part("system", req.System)
	}
	for _, m := range req.Messages {
		part(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			part("schema: "+req.Schema.Name, string(def))
		}
	}
	fmt.Fprintf(&b, "[limits]\nmax_tokens=%d temperature=%.2f\n", req.MaxTokens, req.Temperature)
	return b.String()
}

func providerName(p Provider) string {
	switch p.(type) {
	case *AnthropicProvider:
		return ProviderAnthropic
	case *OpenRouterProvider:
		return ProviderOpenRouter
	case *OpenAIProvider:
		return ProviderOpenAI
	case *GeminiProvider:
		return ProviderGemini
	case *MockProvider:
		return ProviderMock
	}
	return p.ModelID()
}
