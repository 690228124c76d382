package models

import "time"

// Review represents one unit of text to be labeled.
// A review is eligible for labeling iff Labels is nil.
type Review struct {
	ID        int64          `json:"id"`
	BatchID   int64          `json:"batch_id"`
	Text      string         `json:"text"`
	Labels    map[string]any `json:"labels,omitempty"` // nil until labeled
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Labeled reports whether the review already carries labels.
func (r *Review) Labeled() bool {
	return r.Labels != nil
}
