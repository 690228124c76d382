// Package labeling implements the auto-labeling pipeline: providers that
// turn review text into validated per-aspect labels, and the orchestrator
// that drives unlabeled reviews through a provider and into storage.
package labeling

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reviewradar/labeling-engine/pkg/llm"
	"github.com/reviewradar/labeling-engine/pkg/models"
)

// Provider converts one review's text into a validated LabelResult.
type Provider interface {
	// Process labels a single review text. It returns a *ValidationError
	// when the backend output violates the response schema, or a transport
	// error when the backend call itself fails.
	Process(ctx context.Context, text string) (*models.LabelResult, error)

	// ModelVersion returns the backend model identifier.
	ModelVersion() string

	// Stats returns the provider's request/token counters.
	Stats() Stats

	// ResetStats resets the provider's counters.
	ResetStats()
}

// Stats holds per-provider request and token counters.
type Stats struct {
	TotalRequests   int64 `json:"total_requests"`
	TotalTokenUsage int64 `json:"total_token_usage"`
}

// AvgTokensPerRequest returns the mean token usage per request.
func (s Stats) AvgTokensPerRequest() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(s.TotalTokenUsage) / float64(s.TotalRequests)
}

// ValidationError reports which response-schema rule the backend output
// violated, carrying the offending raw text.
type ValidationError struct {
	Rule   string // failed rule, e.g. "structure", "length", "score_range"
	Detail string
	Raw    string // offending raw response text
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("response validation failed (%s): %s: %s", e.Rule, e.Detail, e.Raw)
}

// parseLabelResponse parses and validates a backend response against the
// two-array schema: [[S1..Sn], [C1..Cn]] with n equal to the aspect count.
// Validation rules are applied in documented order; out-of-range values are
// never coerced, since clamping would hide systematic prompting bugs.
func parseLabelResponse(raw string, aspectCount int) ([]*float64, []float64, error) {
	jsonStr, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, nil, &ValidationError{Rule: "structure", Detail: "response is not valid JSON", Raw: raw}
	}

	var outer []json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &outer); err != nil {
		return nil, nil, &ValidationError{Rule: "structure", Detail: "response is not a JSON array", Raw: raw}
	}
	if len(outer) != 2 {
		return nil, nil, &ValidationError{Rule: "structure", Detail: "response must be a pair of arrays", Raw: raw}
	}

	var scores []*float64
	if err := json.Unmarshal(outer[0], &scores); err != nil {
		return nil, nil, &ValidationError{Rule: "structure", Detail: "scores element is not a numeric array", Raw: raw}
	}
	var confidences []*float64
	if err := json.Unmarshal(outer[1], &confidences); err != nil {
		return nil, nil, &ValidationError{Rule: "structure", Detail: "confidences element is not a numeric array", Raw: raw}
	}

	if len(scores) != aspectCount || len(confidences) != aspectCount {
		return nil, nil, &ValidationError{
			Rule:   "length",
			Detail: fmt.Sprintf("expected %d scores and confidences, got %d and %d", aspectCount, len(scores), len(confidences)),
			Raw:    raw,
		}
	}

	for _, s := range scores {
		if s != nil && (*s < -1.0 || *s > 1.0) {
			return nil, nil, &ValidationError{
				Rule:   "score_range",
				Detail: fmt.Sprintf("score %v outside [-1.0, 1.0]", *s),
				Raw:    raw,
			}
		}
	}

	checked := make([]float64, aspectCount)
	for i, c := range confidences {
		if c == nil {
			return nil, nil, &ValidationError{Rule: "confidence_null", Detail: "confidence must never be null", Raw: raw}
		}
		if *c < 0.0 || *c > 1.0 {
			return nil, nil, &ValidationError{
				Rule:   "confidence_range",
				Detail: fmt.Sprintf("confidence %v outside [0.0, 1.0]", *c),
				Raw:    raw,
			}
		}
		checked[i] = *c
	}

	return scores, checked, nil
}

// zipLabels pairs aspect names with their (score, confidence) values in the
// construction-time aspect order.
func zipLabels(aspects []string, scores []*float64, confidences []float64) map[string]models.AspectLabel {
	labels := make(map[string]models.AspectLabel, len(aspects))
	for i, aspect := range aspects {
		labels[aspect] = models.AspectLabel{
			Score:      scores[i],
			Confidence: confidences[i],
		}
	}
	return labels
}

// validateAspects checks the construction-time aspect list: non-empty,
// names unique.
func validateAspects(aspects []string) error {
	if len(aspects) == 0 {
		return fmt.Errorf("aspect list must not be empty")
	}
	seen := make(map[string]struct{}, len(aspects))
	for _, aspect := range aspects {
		if aspect == "" {
			return fmt.Errorf("aspect names must not be empty")
		}
		if _, dup := seen[aspect]; dup {
			return fmt.Errorf("duplicate aspect name %q", aspect)
		}
		seen[aspect] = struct{}{}
	}
	return nil
}
