// Package repositories provides domain-specific accessors over the storage
// client, adding input validation and logging around the CRUD primitives.
package repositories

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/reviewradar/labeling-engine/pkg/models"
	"github.com/reviewradar/labeling-engine/pkg/storage"
)

// ReviewRepository provides data access for reviews.
type ReviewRepository interface {
	// GetUnlabeled returns one page of unlabeled reviews for a batch.
	GetUnlabeled(ctx context.Context, batchID int64, limit, offset int) ([]*models.Review, error)

	// GetByIDs returns the reviews with the given ids.
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Review, error)

	// UpdateLabels writes labels (and optional metadata) to a single review.
	UpdateLabels(ctx context.Context, reviewID int64, labels map[string]models.AspectLabel, metadata *models.LabelMetadata) error
}

type reviewRepository struct {
	client storage.Client
	logger *zap.Logger
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(client storage.Client, logger *zap.Logger) ReviewRepository {
	return &reviewRepository{
		client: client,
		logger: logger.Named("repo.review"),
	}
}

var _ ReviewRepository = (*reviewRepository)(nil)

func (r *reviewRepository) GetUnlabeled(ctx context.Context, batchID int64, limit, offset int) ([]*models.Review, error) {
	if batchID <= 0 {
		return nil, fmt.Errorf("batch_id must be positive, got %d", batchID)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if offset < 0 {
		return nil, fmt.Errorf("offset must not be negative, got %d", offset)
	}

	r.logger.Debug("Fetching unlabeled reviews",
		zap.Int64("batch_id", batchID),
		zap.Int("limit", limit),
		zap.Int("offset", offset))

	reviews, err := r.client.FetchUnlabeled(ctx, batchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get unlabeled reviews: %w", err)
	}

	r.logger.Debug("Fetched unlabeled reviews", zap.Int("count", len(reviews)))
	return reviews, nil
}

func (r *reviewRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Review, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("ids must not be empty")
	}
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("review id must be positive, got %d", id)
		}
	}

	reviews, err := r.client.FetchByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get reviews by ids: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) UpdateLabels(ctx context.Context, reviewID int64, labels map[string]models.AspectLabel, metadata *models.LabelMetadata) error {
	if reviewID <= 0 {
		return fmt.Errorf("review_id must be positive, got %d", reviewID)
	}
	if len(labels) == 0 {
		return fmt.Errorf("labels must not be empty")
	}

	fields := map[string]any{"labels": labels}
	if metadata != nil {
		fields["metadata"] = metadata
	}

	r.logger.Debug("Updating review labels", zap.Int64("review_id", reviewID))

	if err := r.client.Update(ctx, reviewID, fields); err != nil {
		return fmt.Errorf("update labels for review %d: %w", reviewID, err)
	}

	return nil
}
