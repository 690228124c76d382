// Package llm provides OpenAI-compatible LLM client functionality.
package llm

import (
	"context"
)

// GenerateOptions control a single generation request.
type GenerateOptions struct {
	Temperature  float32
	MaxTokens    int  // hard output-length ceiling, 0 means backend default
	JSONResponse bool // constrain output to JSON
}

// UsageCounts holds token usage reported by the backend for one request.
type UsageCounts struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// GenerateResponseResult is the outcome of one generation request.
type GenerateResponseResult struct {
	Content      string
	ModelVersion string
	// Usage is nil when the response envelope carried no usage metadata.
	Usage *UsageCounts
}

// GenerativeClient defines the interface for LLM generation operations.
// Use this interface for dependency injection to enable mocking in tests.
type GenerativeClient interface {
	// GenerateResponse generates a chat completion response.
	GenerateResponse(ctx context.Context, prompt string, systemMessage string, opts GenerateOptions) (*GenerateResponseResult, error)

	// GetModel returns the configured model name.
	GetModel() string

	// GetEndpoint returns the configured endpoint.
	GetEndpoint() string
}

// Ensure Client implements GenerativeClient at compile time.
var _ GenerativeClient = (*Client)(nil)
