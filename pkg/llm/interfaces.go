package llm

import (
	"context"
)

// CompletionClient defines the interface for copy-generation completions.
// Use this interface for dependency injection to enable mocking in tests.
type CompletionClient interface {
	// GenerateJSON issues a single chat completion requesting a JSON object
	// response and returns the raw response text.
	GenerateJSON(ctx context.Context, prompt, systemMessage string, temperature float64) (string, error)

	// GetModel returns the configured model name.
	GetModel() string

	// GetEndpoint returns the configured endpoint.
	GetEndpoint() string
}

// Ensure Client implements CompletionClient at compile time.
var _ CompletionClient = (*Client)(nil)
