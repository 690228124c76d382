package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewradar/labeling-engine/pkg/apperrors"
)

func TestFactory_Create(t *testing.T) {
	mock := &MockClient{}
	factory := NewFactory(map[string]Constructor{
		KindPostgres: func(ctx context.Context) (Client, error) {
			return mock, nil
		},
	})

	client, err := factory.Create(context.Background(), KindPostgres)
	require.NoError(t, err)
	assert.Same(t, mock, client)
}

func TestFactory_Create_UnknownKind(t *testing.T) {
	factory := NewFactory(map[string]Constructor{
		KindPostgres: func(ctx context.Context) (Client, error) {
			return &MockClient{}, nil
		},
	})

	_, err := factory.Create(context.Background(), "dynamodb")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnknownStorageKind))
	assert.Contains(t, err.Error(), "dynamodb")
}

func TestFactory_Create_ConstructorError(t *testing.T) {
	wantErr := errors.New("connection refused")
	factory := NewFactory(map[string]Constructor{
		KindMSSQL: func(ctx context.Context) (Client, error) {
			return nil, wantErr
		},
	})

	_, err := factory.Create(context.Background(), KindMSSQL)
	assert.ErrorIs(t, err, wantErr)
}

func TestFactory_Kinds(t *testing.T) {
	noop := func(ctx context.Context) (Client, error) { return &MockClient{}, nil }
	factory := NewFactory(map[string]Constructor{
		KindPostgres: noop,
		KindMSSQL:    noop,
	})

	assert.Equal(t, []string{KindMSSQL, KindPostgres}, factory.Kinds())
}
