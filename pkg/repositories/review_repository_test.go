package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reviewradar/labeling-engine/pkg/models"
	"github.com/reviewradar/labeling-engine/pkg/storage"
)

func TestReviewRepository_GetUnlabeled(t *testing.T) {
	reviews := []*models.Review{
		{ID: 1, BatchID: 7, Text: "great food"},
		{ID: 2, BatchID: 7, Text: "slow service"},
	}

	var gotBatchID int64
	var gotLimit, gotOffset int
	client := &storage.MockClient{
		FetchUnlabeledFunc: func(ctx context.Context, batchID int64, limit, offset int) ([]*models.Review, error) {
			gotBatchID, gotLimit, gotOffset = batchID, limit, offset
			return reviews, nil
		},
	}

	repo := NewReviewRepository(client, zap.NewNop())
	got, err := repo.GetUnlabeled(context.Background(), 7, 100, 200)
	require.NoError(t, err)
	assert.Equal(t, reviews, got)
	assert.Equal(t, int64(7), gotBatchID)
	assert.Equal(t, 100, gotLimit)
	assert.Equal(t, 200, gotOffset)
}

func TestReviewRepository_GetUnlabeled_Repeatable(t *testing.T) {
	// Before any write happens, the same page request returns the same ids.
	reviews := []*models.Review{{ID: 1, BatchID: 7}, {ID: 2, BatchID: 7}}
	client := &storage.MockClient{
		FetchUnlabeledFunc: func(ctx context.Context, batchID int64, limit, offset int) ([]*models.Review, error) {
			return reviews, nil
		},
	}
	repo := NewReviewRepository(client, zap.NewNop())

	first, err := repo.GetUnlabeled(context.Background(), 7, 10, 0)
	require.NoError(t, err)
	second, err := repo.GetUnlabeled(context.Background(), 7, 10, 0)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
	assert.Equal(t, 2, client.FetchUnlabeledCalls)
}

func TestReviewRepository_GetUnlabeled_Validation(t *testing.T) {
	repo := NewReviewRepository(&storage.MockClient{}, zap.NewNop())
	ctx := context.Background()

	_, err := repo.GetUnlabeled(ctx, 0, 100, 0)
	assert.ErrorContains(t, err, "batch_id must be positive")

	_, err = repo.GetUnlabeled(ctx, 7, 0, 0)
	assert.ErrorContains(t, err, "limit must be positive")

	_, err = repo.GetUnlabeled(ctx, 7, 100, -1)
	assert.ErrorContains(t, err, "offset must not be negative")
}

func TestReviewRepository_GetByIDs_Validation(t *testing.T) {
	repo := NewReviewRepository(&storage.MockClient{}, zap.NewNop())
	ctx := context.Background()

	_, err := repo.GetByIDs(ctx, nil)
	assert.ErrorContains(t, err, "must not be empty")

	_, err = repo.GetByIDs(ctx, []int64{1, -2})
	assert.ErrorContains(t, err, "must be positive")
}

func TestReviewRepository_UpdateLabels(t *testing.T) {
	score := 0.9
	labels := map[string]models.AspectLabel{
		"food": {Score: &score, Confidence: 0.95},
	}

	var gotFields map[string]any
	client := &storage.MockClient{
		UpdateFunc: func(ctx context.Context, reviewID int64, fields map[string]any) error {
			gotFields = fields
			return nil
		},
	}

	repo := NewReviewRepository(client, zap.NewNop())
	err := repo.UpdateLabels(context.Background(), 42, labels, &models.LabelMetadata{TextLen: 11})
	require.NoError(t, err)
	assert.Contains(t, gotFields, "labels")
	assert.Contains(t, gotFields, "metadata")
}

func TestReviewRepository_UpdateLabels_PropagatesError(t *testing.T) {
	wantErr := errors.New("backend down")
	client := &storage.MockClient{
		UpdateFunc: func(ctx context.Context, reviewID int64, fields map[string]any) error {
			return wantErr
		},
	}

	score := 0.1
	repo := NewReviewRepository(client, zap.NewNop())
	err := repo.UpdateLabels(context.Background(), 42,
		map[string]models.AspectLabel{"food": {Score: &score, Confidence: 0.5}}, nil)
	assert.ErrorIs(t, err, wantErr)
}
