package repositories

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/reviewradar/labeling-engine/pkg/models"
	"github.com/reviewradar/labeling-engine/pkg/storage"
)

// LabelRepository provides persistence for label results.
type LabelRepository interface {
	// InsertLabelsBatch writes label records in one best-effort round trip
	// and returns the number actually written.
	InsertLabelsBatch(ctx context.Context, records []models.LabelRecord) (int, error)
}

type labelRepository struct {
	client storage.Client
	logger *zap.Logger
}

// NewLabelRepository creates a new LabelRepository.
func NewLabelRepository(client storage.Client, logger *zap.Logger) LabelRepository {
	return &labelRepository{
		client: client,
		logger: logger.Named("repo.label"),
	}
}

var _ LabelRepository = (*labelRepository)(nil)

func (r *labelRepository) InsertLabelsBatch(ctx context.Context, records []models.LabelRecord) (int, error) {
	if len(records) == 0 {
		return 0, fmt.Errorf("records must not be empty")
	}
	for _, record := range records {
		if record.ReviewID <= 0 {
			return 0, fmt.Errorf("review_id must be positive, got %d", record.ReviewID)
		}
		if record.Label == nil {
			return 0, fmt.Errorf("label for review %d must not be nil", record.ReviewID)
		}
	}

	r.logger.Debug("Inserting label batch", zap.Int("count", len(records)))

	written, err := r.client.BulkInsertLabels(ctx, records)
	if err != nil {
		return written, fmt.Errorf("insert labels batch: %w", err)
	}

	if written < len(records) {
		r.logger.Warn("Partial label batch write",
			zap.Int("written", written),
			zap.Int("total", len(records)))
	}

	return written, nil
}
