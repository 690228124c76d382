package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reviewradar/labeling-engine/pkg/models"
	"github.com/reviewradar/labeling-engine/pkg/storage"
)

func someLabel() *models.LabelResult {
	score := 0.9
	return &models.LabelResult{
		Labels: map[string]models.AspectLabel{
			"food": {Score: &score, Confidence: 0.95},
		},
	}
}

func TestLabelRepository_InsertLabelsBatch(t *testing.T) {
	var got []models.LabelRecord
	client := &storage.MockClient{
		BulkInsertLabelsFunc: func(ctx context.Context, records []models.LabelRecord) (int, error) {
			got = records
			return len(records), nil
		},
	}

	repo := NewLabelRepository(client, zap.NewNop())
	records := []models.LabelRecord{
		{ReviewID: 1, Label: someLabel()},
		{ReviewID: 2, Label: someLabel()},
	}

	written, err := repo.InsertLabelsBatch(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 2, written)
	assert.Equal(t, records, got)
}

func TestLabelRepository_InsertLabelsBatch_PartialWrite(t *testing.T) {
	client := &storage.MockClient{
		BulkInsertLabelsFunc: func(ctx context.Context, records []models.LabelRecord) (int, error) {
			return len(records) - 1, nil
		},
	}

	repo := NewLabelRepository(client, zap.NewNop())
	written, err := repo.InsertLabelsBatch(context.Background(), []models.LabelRecord{
		{ReviewID: 1, Label: someLabel()},
		{ReviewID: 2, Label: someLabel()},
	})
	// A reduced success count is not an error on the bulk path.
	require.NoError(t, err)
	assert.Equal(t, 1, written)
}

func TestLabelRepository_InsertLabelsBatch_Validation(t *testing.T) {
	repo := NewLabelRepository(&storage.MockClient{}, zap.NewNop())
	ctx := context.Background()

	_, err := repo.InsertLabelsBatch(ctx, nil)
	assert.ErrorContains(t, err, "must not be empty")

	_, err = repo.InsertLabelsBatch(ctx, []models.LabelRecord{{ReviewID: 0, Label: someLabel()}})
	assert.ErrorContains(t, err, "must be positive")

	_, err = repo.InsertLabelsBatch(ctx, []models.LabelRecord{{ReviewID: 1, Label: nil}})
	assert.ErrorContains(t, err, "must not be nil")
}

func TestRunLogRepository_Append(t *testing.T) {
	var got *models.RunReport
	client := &storage.MockClient{
		InsertRunReportFunc: func(ctx context.Context, report *models.RunReport) error {
			got = report
			return nil
		},
	}

	repo := NewRunLogRepository(client, zap.NewNop())
	err := repo.Append(context.Background(), 7, models.RunStatusCompleted, 500, 100, 5)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.BatchID)
	assert.Equal(t, models.RunStatusCompleted, got.Status)
	assert.Equal(t, int64(500), got.InputTokens)
	assert.Equal(t, int64(100), got.OutputTokens)
	assert.Equal(t, int64(5), got.TotalRequests)
	assert.False(t, got.CreatedAt.IsZero())
	assert.NotEmpty(t, got.ID)
}

func TestRunLogRepository_Append_Validation(t *testing.T) {
	repo := NewRunLogRepository(&storage.MockClient{}, zap.NewNop())
	err := repo.Append(context.Background(), 0, models.RunStatusCompleted, 0, 0, 0)
	assert.ErrorContains(t, err, "batch_id must be positive")
}
