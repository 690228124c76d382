package labeling

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/reviewradar/labeling-engine/pkg/apperrors"
	"github.com/reviewradar/labeling-engine/pkg/models"
	"github.com/reviewradar/labeling-engine/pkg/repositories"
	"github.com/reviewradar/labeling-engine/pkg/storage"
)

// maxPages guards the pagination loop against a batch that never reaches the
// empty-page state. Hitting it is a logical error, not normal exhaustion.
const maxPages = 10000

// RunOptions tune one labeling run. Fetch page size and write batch size are
// decoupled: pagination governs how much is read per storage round trip, the
// write batch size governs how much is buffered before a write round trip.
type RunOptions struct {
	FetchPageSize     int
	WriteBatchSize    int
	InputTokenBudget  int64
	OutputTokenBudget int64
}

// DefaultRunOptions returns the run defaults.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		FetchPageSize:     100,
		WriteBatchSize:    20,
		InputTokenBudget:  1_000_000,
		OutputTokenBudget: 1_000_000,
	}
}

type runCounters struct {
	inputTokens   int64
	outputTokens  int64
	totalRequests int64
}

// Service orchestrates labeling for one batch: it drives a paginated scan of
// unlabeled reviews through the provider and into storage, subject to token
// budgets. It only touches reviews whose labels are null, so re-invoking it
// is safe by construction.
type Service struct {
	batchID  int64
	provider Provider
	reviews  repositories.ReviewRepository
	labels   repositories.LabelRepository
	runLog   repositories.RunLogRepository
	logger   *zap.Logger
	counters runCounters

	// client is set only when the service owns the storage connection, as
	// with NewServiceFromKinds.
	client storage.Client
}

// NewService creates an orchestrator from explicit collaborators.
func NewService(
	batchID int64,
	provider Provider,
	reviews repositories.ReviewRepository,
	labels repositories.LabelRepository,
	runLog repositories.RunLogRepository,
	logger *zap.Logger,
) (*Service, error) {
	if batchID <= 0 {
		return nil, fmt.Errorf("batch_id must be positive, got %d", batchID)
	}

	return &Service{
		batchID:  batchID,
		provider: provider,
		reviews:  reviews,
		labels:   labels,
		runLog:   runLog,
		logger:   logger.Named("labeling"),
	}, nil
}

// NewServiceFromKinds resolves the storage client and provider by their
// string kinds, fetches the batch's aspect list, and wires the orchestrator.
// Unknown kinds and bad aspect lists fail here, before any review is touched.
func NewServiceFromKinds(
	ctx context.Context,
	batchID int64,
	providerName string,
	storageKind string,
	storageFactory *storage.Factory,
	providerFactory *ProviderFactory,
	logger *zap.Logger,
) (*Service, error) {
	client, err := storageFactory.Create(ctx, storageKind)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	batches := repositories.NewBatchRepository(client, logger)
	aspects, err := batches.GetBatchAspects(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("resolve batch aspects: %w", err)
	}

	provider, err := providerFactory.Create(providerName, aspects)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	service, err := NewService(
		batchID,
		provider,
		repositories.NewReviewRepository(client, logger),
		repositories.NewLabelRepository(client, logger),
		repositories.NewRunLogRepository(client, logger),
		logger,
	)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	service.client = client
	return service, nil
}

// Close releases the storage connection when the service owns one.
func (s *Service) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// Run drives the fetch -> label -> validate -> persist -> count loop until
// exhaustion, a token budget, or an unrecoverable error stops it. The
// terminal status is returned and appended to the per-batch usage log; run
// counters are reset before returning.
func (s *Service) Run(ctx context.Context, opts RunOptions) (models.RunStatus, error) {
	defer s.resetCounters()

	if err := s.runLog.Append(ctx, s.batchID, models.RunStatusInProgress, 0, 0, 0); err != nil {
		s.logger.Warn("Failed to record run start", zap.Error(err))
	}

	buffer := make([]models.LabelRecord, 0, opts.WriteBatchSize)

	for page := 0; page < maxPages; page++ {
		reviews, err := s.reviews.GetUnlabeled(ctx, s.batchID, opts.FetchPageSize, page*opts.FetchPageSize)
		if err != nil {
			s.flush(ctx, &buffer)
			return "", fmt.Errorf("fetch page %d: %w", page, err)
		}

		if len(reviews) == 0 {
			s.logger.Info("No more unlabeled reviews to process",
				zap.Int64("batch_id", s.batchID),
				zap.Int("pages", page))
			s.flush(ctx, &buffer)
			s.recordTerminal(ctx, models.RunStatusCompleted)
			return models.RunStatusCompleted, nil
		}

		for _, review := range reviews {
			label, err := s.provider.Process(ctx, review.Text)
			if err != nil {
				// A malformed prompt or exhausted quota is likely to recur for
				// every subsequent review, so the whole run stops here rather
				// than skipping this record.
				s.logger.Error("Provider failed, aborting run",
					zap.Int64("review_id", review.ID),
					zap.Error(err))
				s.flush(ctx, &buffer)
				s.recordTerminal(ctx, models.RunStatusFailedProvider)
				return models.RunStatusFailedProvider, fmt.Errorf("label review %d: %w", review.ID, err)
			}

			if label.Metadata.Usage == nil {
				// Continuing would corrupt budget accounting.
				s.logger.Error("Provider response missing usage metadata, aborting run",
					zap.Int64("review_id", review.ID))
				s.flush(ctx, &buffer)
				s.recordTerminal(ctx, models.RunStatusFailedUsage)
				return models.RunStatusFailedUsage, fmt.Errorf("label review %d: %w", review.ID, apperrors.ErrMissingUsage)
			}

			s.counters.inputTokens += int64(label.Metadata.Usage.PromptTokenCount)
			s.counters.outputTokens += int64(label.Metadata.Usage.CandidatesTokenCount)
			s.counters.totalRequests++

			buffer = append(buffer, models.LabelRecord{ReviewID: review.ID, Label: label})

			if len(buffer) >= opts.WriteBatchSize {
				s.logger.Debug("Write batch full, persisting",
					zap.Int("size", len(buffer)))
				s.flush(ctx, &buffer)
			}

			if s.counters.inputTokens > opts.InputTokenBudget || s.counters.outputTokens > opts.OutputTokenBudget {
				s.logger.Info("Token budget exceeded, stopping run",
					zap.Int64("input_tokens", s.counters.inputTokens),
					zap.Int64("output_tokens", s.counters.outputTokens))
				s.flush(ctx, &buffer)
				s.recordTerminal(ctx, models.RunStatusStoppedByLimit)
				return models.RunStatusStoppedByLimit, nil
			}
		}
	}

	// The batch never produced an empty page within the bound.
	s.logger.Error("Pagination bound reached before batch exhaustion",
		zap.Int64("batch_id", s.batchID),
		zap.Int("max_pages", maxPages))
	s.flush(ctx, &buffer)
	s.recordTerminal(ctx, models.RunStatusFailedPageBound)
	return models.RunStatusFailedPageBound, fmt.Errorf("batch %d: pagination bound of %d pages reached", s.batchID, maxPages)
}

// flush persists the buffer via one batched insert and clears it. The bulk
// path is best-effort: a failed flush is logged and counted, not fatal.
func (s *Service) flush(ctx context.Context, buffer *[]models.LabelRecord) {
	if len(*buffer) == 0 {
		return
	}

	written, err := s.labels.InsertLabelsBatch(ctx, *buffer)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("Failed to persist label batch",
			zap.Int("size", len(*buffer)),
			zap.Int("written", written),
			zap.Error(err))
	}

	*buffer = (*buffer)[:0]
}

func (s *Service) recordTerminal(ctx context.Context, status models.RunStatus) {
	err := s.runLog.Append(ctx, s.batchID, status,
		s.counters.inputTokens, s.counters.outputTokens, s.counters.totalRequests)
	if err != nil {
		s.logger.Warn("Failed to record terminal status",
			zap.String("status", string(status)),
			zap.Error(err))
	}
}

func (s *Service) resetCounters() {
	s.counters = runCounters{}
}
