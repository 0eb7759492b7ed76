package llm

import (
	"context"
)

// MockClient is a CompletionClient for tests. Set Response/Err to control
// the outcome; Prompts records every prompt seen.
type MockClient struct {
	Response string
	Err      error
	Prompts  []string
}

// GenerateJSON returns the configured response or error.
func (m *MockClient) GenerateJSON(ctx context.Context, prompt, systemMessage string, temperature float64) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// GetModel returns a fixed test model name.
func (m *MockClient) GetModel() string { return "mock-model" }

// GetEndpoint returns a fixed test endpoint.
func (m *MockClient) GetEndpoint() string { return "http://mock" }

// Ensure MockClient implements CompletionClient at compile time.
var _ CompletionClient = (*MockClient)(nil)
