package llm

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
)

// MockResponse is one canned reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockCalculation is one item of a canned calculation batch.
type MockCalculation struct {
	Expression string `json:"expression"`
	Solution   string `json:"solution"`
}

// BatchResponse is a canned reply shaped like a calculation batch,
// {"calculations":[{"expression":...,"solution":...}]}.
func BatchResponse(items ...MockCalculation) MockResponse {
	if items == nil {
		items = []MockCalculation{}
	}
	content, _ := json.Marshal(struct {
		Calculations []MockCalculation `json:"calculations"`
	}{items})
	return MockResponse{Content: content}
}

// MockProvider replays canned replies in order and records requests. With
// no replies left it reports ErrProviderUnavailable. Content is validated
// against the request schema like a real provider does.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	requests  []Request
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.responses[0]
	m.responses = m.responses[1:]

	if next.Err != nil {
		return nil, next.Err
	}
	if err := validateResponse(req.Schema, next.Content); err != nil {
		return nil, err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      ProviderMock,
		StopReason: StopEnd,
	}, nil
}

func (m *MockProvider) ModelID() string {
	return ProviderMock
}

// Push queues more replies.
func (m *MockProvider) Push(responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, responses...)
}

// Requests returns a copy of the requests received so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.requests)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
