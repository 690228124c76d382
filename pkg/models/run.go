package models

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus is the terminal (or starting) state of a labeling run.
type RunStatus string

const (
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusStoppedByLimit RunStatus = "stopped_due_to_token_limit"
	RunStatusFailedUsage    RunStatus = "failed_due_to_missing_usage"
	RunStatusFailedProvider RunStatus = "failed_due_to_provider_error"
	// RunStatusFailedPageBound means the pagination guard tripped before an
	// empty page was seen. That indicates a logical error, not normal exhaustion.
	RunStatusFailedPageBound RunStatus = "failed_page_bound"
)

// RunReport is one append-only row of the per-batch usage log.
type RunReport struct {
	ID            uuid.UUID `json:"id"`
	BatchID       int64     `json:"batch_id"`
	Status        RunStatus `json:"status"`
	InputTokens   int64     `json:"input_tokens"`
	OutputTokens  int64     `json:"output_tokens"`
	TotalRequests int64     `json:"total_requests"`
	CreatedAt     time.Time `json:"created_at"`
}
