package logging

import (
	"strings"
	"testing"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{
			name:     "shorter than max",
			input:    "hello",
			maxLen:   10,
			expected: "hello",
		},
		{
			name:     "exactly max",
			input:    "hello",
			maxLen:   5,
			expected: "hello",
		},
		{
			name:     "longer than max",
			input:    "hello world",
			maxLen:   5,
			expected: "hello...",
		},
		{
			name:     "empty string",
			input:    "",
			maxLen:   5,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TruncateString(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestTruncateString_LongResponse(t *testing.T) {
	long := strings.Repeat("x", MaxResponseLogLength*2)
	result := TruncateString(long, MaxResponseLogLength)
	if len(result) != MaxResponseLogLength+3 {
		t.Errorf("expected length %d, got %d", MaxResponseLogLength+3, len(result))
	}
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"prod", "local", ""} {
		logger, err := NewLogger(env)
		if err != nil {
			t.Fatalf("unexpected error for env %q: %v", env, err)
		}
		if logger == nil {
			t.Fatalf("nil logger for env %q", env)
		}
	}
}
