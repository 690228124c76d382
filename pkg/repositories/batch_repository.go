package repositories

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/reviewradar/labeling-engine/pkg/storage"
)

// BatchRepository provides data access for batch metadata.
type BatchRepository interface {
	// GetBatchAspects returns the ordered aspect list of a batch.
	// The list is non-empty for any batch configured for labeling.
	GetBatchAspects(ctx context.Context, batchID int64) ([]string, error)
}

type batchRepository struct {
	client storage.Client
	logger *zap.Logger
}

// NewBatchRepository creates a new BatchRepository.
func NewBatchRepository(client storage.Client, logger *zap.Logger) BatchRepository {
	return &batchRepository{
		client: client,
		logger: logger.Named("repo.batch"),
	}
}

var _ BatchRepository = (*batchRepository)(nil)

func (r *batchRepository) GetBatchAspects(ctx context.Context, batchID int64) ([]string, error) {
	if batchID <= 0 {
		return nil, fmt.Errorf("batch_id must be positive, got %d", batchID)
	}

	r.logger.Debug("Fetching batch aspects", zap.Int64("batch_id", batchID))

	aspects, err := r.client.FetchBatchAspects(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("get batch aspects: %w", err)
	}
	if len(aspects) == 0 {
		return nil, fmt.Errorf("batch %d has no aspects configured", batchID)
	}

	return aspects, nil
}
