package models

// AspectLabel is the score/confidence pair for one aspect.
//
// Score is nil when the aspect is not mentioned in the text. When Score
// is present, Confidence measures certainty that the score is accurate;
// when Score is nil, Confidence measures certainty that the aspect was
// genuinely absent from the text.
type AspectLabel struct {
	Score      *float64 `json:"score"` // -1.0..1.0, nil if aspect not mentioned
	Confidence float64  `json:"confidence"`
}

// UsageMetadata holds token usage counters reported by a provider backend.
type UsageMetadata struct {
	PromptTokenCount     int `json:"prompt_token_count"`
	CandidatesTokenCount int `json:"candidates_token_count"`
}

// LabelMetadata is provider metadata attached to every label result.
// Usage is nil when the backend response carried no usage metadata; the
// orchestrator treats that as an unrecoverable run error rather than
// silently undercounting tokens.
type LabelMetadata struct {
	Usage        *UsageMetadata `json:"usage_metadata,omitempty"`
	TextLen      int            `json:"text_len"`
	ModelVersion string         `json:"model_version"`
}

// LabelResult is the outcome of one labeling attempt for one review.
// Labels has exactly one entry per aspect of the owning batch.
type LabelResult struct {
	Labels   map[string]AspectLabel `json:"labels"`
	Metadata LabelMetadata          `json:"metadata"`
}

// LabelRecord pairs a review id with its label result for persistence.
type LabelRecord struct {
	ReviewID int64        `json:"review_id"`
	Label    *LabelResult `json:"label"`
}
