// Package logging provides logger construction and helpers for safe log output.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// MaxResponseLogLength is the maximum length of a raw LLM response to log.
const MaxResponseLogLength = 200

// NewLogger builds a zap logger appropriate for the environment.
// Production config for "prod", human-readable development config otherwise.
func NewLogger(env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// TruncateString truncates a string to maxLen and adds ellipsis if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
