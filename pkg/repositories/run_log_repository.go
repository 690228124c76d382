package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reviewradar/labeling-engine/pkg/models"
	"github.com/reviewradar/labeling-engine/pkg/storage"
)

// RunLogRepository appends rows to the per-batch usage log.
type RunLogRepository interface {
	// Append records one run transition with its counters.
	Append(ctx context.Context, batchID int64, status models.RunStatus, inputTokens, outputTokens, totalRequests int64) error
}

type runLogRepository struct {
	client storage.Client
	logger *zap.Logger
}

// NewRunLogRepository creates a new RunLogRepository.
func NewRunLogRepository(client storage.Client, logger *zap.Logger) RunLogRepository {
	return &runLogRepository{
		client: client,
		logger: logger.Named("repo.runlog"),
	}
}

var _ RunLogRepository = (*runLogRepository)(nil)

func (r *runLogRepository) Append(ctx context.Context, batchID int64, status models.RunStatus, inputTokens, outputTokens, totalRequests int64) error {
	if batchID <= 0 {
		return fmt.Errorf("batch_id must be positive, got %d", batchID)
	}

	report := &models.RunReport{
		ID:            uuid.New(),
		BatchID:       batchID,
		Status:        status,
		InputTokens:   inputTokens,
		OutputTokens:  outputTokens,
		TotalRequests: totalRequests,
		CreatedAt:     time.Now(),
	}

	r.logger.Info("Recording run transition",
		zap.Int64("batch_id", batchID),
		zap.String("status", string(status)),
		zap.Int64("input_tokens", inputTokens),
		zap.Int64("output_tokens", outputTokens),
		zap.Int64("total_requests", totalRequests))

	if err := r.client.InsertRunReport(ctx, report); err != nil {
		return fmt.Errorf("append run report: %w", err)
	}

	return nil
}
