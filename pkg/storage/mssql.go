package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb" // SQL Server driver
	"go.uber.org/zap"

	"github.com/reviewradar/labeling-engine/pkg/apperrors"
	"github.com/reviewradar/labeling-engine/pkg/models"
)

// KindMSSQL selects the SQL Server backend.
const KindMSSQL = "mssql"

// mssqlClient implements Client over database/sql with the go-mssqldb driver.
// JSON columns (labels, aspects) are stored as NVARCHAR(MAX).
type mssqlClient struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMSSQLClient opens a SQL Server connection and wraps it as a storage client.
func NewMSSQLClient(ctx context.Context, connURL string, logger *zap.Logger) (Client, error) {
	db, err := sql.Open("sqlserver", connURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlserver connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlserver: %w", err)
	}

	return &mssqlClient{
		db:     db,
		logger: logger.Named("storage.mssql"),
	}, nil
}

var _ Client = (*mssqlClient)(nil)

func (c *mssqlClient) FetchUnlabeled(ctx context.Context, batchID int64, limit, offset int) ([]*models.Review, error) {
	query := `
		SELECT id, batch_id, review_text, labels, created_at, updated_at
		FROM reviews
		WHERE batch_id = @p1 AND labels IS NULL
		ORDER BY id
		OFFSET @p2 ROWS FETCH NEXT @p3 ROWS ONLY`

	rows, err := c.db.QueryContext(ctx, query, batchID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unlabeled reviews: %w", err)
	}
	defer rows.Close()

	return scanSQLReviews(rows)
}

func (c *mssqlClient) FetchByIDs(ctx context.Context, ids []int64) ([]*models.Review, error) {
	if len(ids) == 0 {
		return []*models.Review{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("@p%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, batch_id, review_text, labels, created_at, updated_at
		FROM reviews
		WHERE id IN (%s)
		ORDER BY id`, strings.Join(placeholders, ", "))

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews by ids: %w", err)
	}
	defer rows.Close()

	return scanSQLReviews(rows)
}

func (c *mssqlClient) Update(ctx context.Context, reviewID int64, fields map[string]any) error {
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
			value = string(encoded)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = @p%d", column, i))
		args = append(args, value)
		i++
	}
	setClauses = append(setClauses, fmt.Sprintf("updated_at = @p%d", i))
	args = append(args, time.Now())
	i++
	args = append(args, reviewID)

	query := fmt.Sprintf("UPDATE reviews SET %s WHERE id = @p%d", strings.Join(setClauses, ", "), i)

	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update review %d: %w", reviewID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("review %d: %w", reviewID, apperrors.ErrNotFound)
	}

	return nil
}

func (c *mssqlClient) BulkInsertLabels(ctx context.Context, records []models.LabelRecord) (int, error) {
	query := `UPDATE reviews SET labels = @p1, updated_at = @p2 WHERE id = @p3`

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

		result, err := c.db.ExecContext(ctx, query, string(encoded), now, record.ReviewID)
		if err != nil {
			c.logger.Error("Failed to write label",
				zap.Int64("review_id", record.ReviewID),
				zap.Error(err))
			continue
		}
		if affected, err := result.RowsAffected(); err == nil {
			written += int(affected)
		}
	}

	return written, nil
}

func (c *mssqlClient) FetchBatchAspects(ctx context.Context, batchID int64) ([]string, error) {
	query := `SELECT aspects FROM batches WHERE id = @p1`

	var raw string
	err := c.db.QueryRowContext(ctx, query, batchID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("batch %d: %w", batchID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch batch aspects: %w", err)
	}

	var aspects []string
	if err := json.Unmarshal([]byte(raw), &aspects); err != nil {
		return nil, fmt.Errorf("failed to decode batch aspects: %w", err)
	}

	return aspects, nil
}

func (c *mssqlClient) InsertRunReport(ctx context.Context, report *models.RunReport) error {
	query := `
		INSERT INTO labeling_runs (id, batch_id, status, input_tokens, output_tokens, total_requests, created_at)
		VALUES (@p1, @p2, @p3, @p4, @p5, @p6, @p7)`

	_, err := c.db.ExecContext(ctx, query,
		report.ID.String(), report.BatchID, string(report.Status),
		report.InputTokens, report.OutputTokens, report.TotalRequests,
		report.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run report: %w", err)
	}

	return nil
}

func (c *mssqlClient) Close() error {
	return c.db.Close()
}

func scanSQLReviews(rows *sql.Rows) ([]*models.Review, error) {
	reviews := make([]*models.Review, 0)
	for rows.Next() {
		var r models.Review
		var labels sql.NullString
		if err := rows.Scan(&r.ID, &r.BatchID, &r.Text, &labels, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		if labels.Valid {
			if err := json.Unmarshal([]byte(labels.String), &r.Labels); err != nil {
				return nil, fmt.Errorf("failed to decode labels for review %d: %w", r.ID, err)
			}
		}
		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}
