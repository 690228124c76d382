// Package storage provides the storage client contract consumed by the
// repository layer, with backends selected by a string kind.
package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/reviewradar/labeling-engine/pkg/apperrors"
	"github.com/reviewradar/labeling-engine/pkg/models"
)

// Client is the contract any storage backend must implement.
type Client interface {
	// FetchUnlabeled returns reviews of the batch whose labels are still null,
	// ordered by id, at the given limit/offset.
	FetchUnlabeled(ctx context.Context, batchID int64, limit, offset int) ([]*models.Review, error)

	// FetchByIDs returns the reviews with the given ids.
	FetchByIDs(ctx context.Context, ids []int64) ([]*models.Review, error)

	// Update applies fields to a single review. Fails loudly on backend error.
	Update(ctx context.Context, reviewID int64, fields map[string]any) error

	// BulkInsertLabels persists label records best-effort and returns the
	// number of reviews actually written.
	BulkInsertLabels(ctx context.Context, records []models.LabelRecord) (int, error)

	// FetchBatchAspects returns the ordered aspect list of a batch.
	FetchBatchAspects(ctx context.Context, batchID int64) ([]string, error)

	// InsertRunReport appends one row to the per-batch usage log.
	InsertRunReport(ctx context.Context, report *models.RunReport) error

	// Close releases backend resources.
	Close() error
}

// Constructor creates a storage client for one backend kind.
type Constructor func(ctx context.Context) (Client, error)

// Factory dispatches storage kinds to constructors. The constructor map is
// built explicitly at startup, so available kinds are statically inspectable.
type Factory struct {
	constructors map[string]Constructor
}

// NewFactory creates a factory over an explicit kind-to-constructor map.
func NewFactory(constructors map[string]Constructor) *Factory {
	return &Factory{constructors: constructors}
}

// Create instantiates the client for the given kind.
func (f *Factory) Create(ctx context.Context, kind string) (Client, error) {
	constructor, ok := f.constructors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", apperrors.ErrUnknownStorageKind, kind, f.Kinds())
	}
	return constructor(ctx)
}

// Kinds returns the registered storage kinds, sorted.
func (f *Factory) Kinds() []string {
	kinds := make([]string, 0, len(f.constructors))
	for kind := range f.constructors {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
