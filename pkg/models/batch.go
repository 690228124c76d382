package models

import "time"

// Batch is a logical grouping of reviews sharing a fixed aspect list.
// The aspect list length determines the expected shape of every LLM
// response for the batch, and its order is authoritative.
type Batch struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Aspects   []string  `json:"aspects"`
	CreatedAt time.Time `json:"created_at"`
}
