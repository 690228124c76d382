package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/reviewradar/labeling-engine/pkg/apperrors"
	"github.com/reviewradar/labeling-engine/pkg/database"
	"github.com/reviewradar/labeling-engine/pkg/models"
)

// KindPostgres selects the PostgreSQL backend.
const KindPostgres = "postgres"

// postgresClient implements Client over a pgx connection pool.
type postgresClient struct {
	db     *database.DB
	logger *zap.Logger
}

// NewPostgresClient creates a storage client backed by PostgreSQL.
func NewPostgresClient(db *database.DB, logger *zap.Logger) Client {
	return &postgresClient{
		db:     db,
		logger: logger.Named("storage.postgres"),
	}
}

var _ Client = (*postgresClient)(nil)

func (c *postgresClient) FetchUnlabeled(ctx context.Context, batchID int64, limit, offset int) ([]*models.Review, error) {
	query := `
		SELECT id, batch_id, review_text, labels, created_at, updated_at
		FROM reviews
		WHERE batch_id = $1 AND labels IS NULL
		ORDER BY id
		LIMIT $2 OFFSET $3`

	rows, err := c.db.Query(ctx, query, batchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unlabeled reviews: %w", err)
	}
	defer rows.Close()

	return scanReviews(rows)
}

func (c *postgresClient) FetchByIDs(ctx context.Context, ids []int64) ([]*models.Review, error) {
	query := `
		SELECT id, batch_id, review_text, labels, created_at, updated_at
		FROM reviews
		WHERE id = ANY($1)
		ORDER BY id`

	rows, err := c.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews by ids: %w", err)
	}
	defer rows.Close()

	return scanReviews(rows)
}

func (c *postgresClient) Update(ctx context.Context, reviewID int64, fields map[string]any) error {
	if len(fields) == 0 {
		return fmt.Errorf("no fields to update")
	}

	setClauses := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+2)
	i := 1
	for column, value := range fields {
		if column == "labels" || column == "metadata" {
			encoded, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("failed to marshal %s: %w", column, err)
			}
			value = encoded
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, i))
		args = append(args, value)
		i++
	}
	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", i))
	args = append(args, time.Now())
	i++
	args = append(args, reviewID)

	query := fmt.Sprintf("UPDATE reviews SET %s WHERE id = $%d", strings.Join(setClauses, ", "), i)

	result, err := c.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update review %d: %w", reviewID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %d: %w", reviewID, apperrors.ErrNotFound)
	}

	return nil
}

func (c *postgresClient) BulkInsertLabels(ctx context.Context, records []models.LabelRecord) (int, error) {
	query := `UPDATE reviews SET labels = $1, updated_at = $2 WHERE id = $3`

	now := time.Now()
	written := 0
	for _, record := range records {
		encoded, err := json.Marshal(record.Label)
		if err != nil {
			c.logger.Error("Failed to marshal label",
				zap.Int64("review_id", record.ReviewID),
				zap.Error(err))
			continue
		}

		result, err := c.db.Exec(ctx, query, encoded, now, record.ReviewID)
		if err != nil {
			c.logger.Error("Failed to write label",
				zap.Int64("review_id", record.ReviewID),
				zap.Error(err))
			continue
		}
		written += int(result.RowsAffected())
	}

	return written, nil
}

func (c *postgresClient) FetchBatchAspects(ctx context.Context, batchID int64) ([]string, error) {
	query := `SELECT aspects FROM batches WHERE id = $1`

	var aspects []string
	err := c.db.QueryRow(ctx, query, batchID).Scan(&aspects)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("batch %d: %w", batchID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch batch aspects: %w", err)
	}

	return aspects, nil
}

func (c *postgresClient) InsertRunReport(ctx context.Context, report *models.RunReport) error {
	query := `
		INSERT INTO labeling_runs (id, batch_id, status, input_tokens, output_tokens, total_requests, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := c.db.Exec(ctx, query,
		report.ID, report.BatchID, report.Status,
		report.InputTokens, report.OutputTokens, report.TotalRequests,
		report.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run report: %w", err)
	}

	return nil
}

func (c *postgresClient) Close() error {
	c.db.Close()
	return nil
}

func scanReviews(rows pgx.Rows) ([]*models.Review, error) {
	reviews := make([]*models.Review, 0)
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.BatchID, &r.Text, &r.Labels, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}
