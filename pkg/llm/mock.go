package llm

import (
	"context"
)

// MockGenerativeClient is a configurable mock for testing LLM functionality.
// Set the function field to control behavior in tests.
type MockGenerativeClient struct {
	// GenerateResponseFunc is called when GenerateResponse is invoked.
	// If nil, returns an empty result and nil error.
	GenerateResponseFunc func(ctx context.Context, prompt string, systemMessage string, opts GenerateOptions) (*GenerateResponseResult, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Endpoint is returned by GetEndpoint. Defaults to "http://mock-endpoint".
	Endpoint string

	// Call tracking for verification
	GenerateResponseCalls int
}

// NewMockGenerativeClient creates a new mock with sensible defaults.
func NewMockGenerativeClient() *MockGenerativeClient {
	return &MockGenerativeClient{
		Model:    "mock-model",
		Endpoint: "http://mock-endpoint",
	}
}

var _ GenerativeClient = (*MockGenerativeClient)(nil)

// GenerateResponse implements GenerativeClient.
func (m *MockGenerativeClient) GenerateResponse(ctx context.Context, prompt string, systemMessage string, opts GenerateOptions) (*GenerateResponseResult, error) {
	m.GenerateResponseCalls++
	if m.GenerateResponseFunc != nil {
		return m.GenerateResponseFunc(ctx, prompt, systemMessage, opts)
	}
	return &GenerateResponseResult{}, nil
}

// GetModel implements GenerativeClient.
func (m *MockGenerativeClient) GetModel() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

// GetEndpoint implements GenerativeClient.
func (m *MockGenerativeClient) GetEndpoint() string {
	if m.Endpoint == "" {
		return "http://mock-endpoint"
	}
	return m.Endpoint
}
