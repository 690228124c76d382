package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reviewradar/labeling-engine/pkg/storage"
)

func TestBatchRepository_GetBatchAspects(t *testing.T) {
	client := &storage.MockClient{
		FetchBatchAspectsFunc: func(ctx context.Context, batchID int64) ([]string, error) {
			return []string{"food", "service", "price"}, nil
		},
	}

	repo := NewBatchRepository(client, zap.NewNop())
	aspects, err := repo.GetBatchAspects(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"food", "service", "price"}, aspects)
}

func TestBatchRepository_GetBatchAspects_Validation(t *testing.T) {
	repo := NewBatchRepository(&storage.MockClient{}, zap.NewNop())

	_, err := repo.GetBatchAspects(context.Background(), -1)
	assert.ErrorContains(t, err, "batch_id must be positive")
}

func TestBatchRepository_GetBatchAspects_Empty(t *testing.T) {
	client := &storage.MockClient{
		FetchBatchAspectsFunc: func(ctx context.Context, batchID int64) ([]string, error) {
			return []string{}, nil
		},
	}

	repo := NewBatchRepository(client, zap.NewNop())
	_, err := repo.GetBatchAspects(context.Background(), 7)
	assert.ErrorContains(t, err, "no aspects configured")
}
