package labeling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewradar/labeling-engine/pkg/apperrors"
)

func TestProviderFactory_Create(t *testing.T) {
	built := 0
	factory := NewProviderFactory(map[string]ProviderConstructor{
		"stub": func(aspects []string) (Provider, error) {
			built++
			assert.Equal(t, []string{"food", "service"}, aspects)
			return &stubProvider{}, nil
		},
	})

	provider, err := factory.Create("stub", []string{"food", "service"})
	require.NoError(t, err)
	assert.NotNil(t, provider)
	assert.Equal(t, 1, built)
}

func TestProviderFactory_UnknownProvider(t *testing.T) {
	factory := NewProviderFactory(map[string]ProviderConstructor{
		"stub": func(aspects []string) (Provider, error) { return &stubProvider{}, nil },
	})

	_, err := factory.Create("gpt-oss", []string{"food"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownProvider)
	assert.Contains(t, err.Error(), "gpt-oss")
	// The error names the providers that are available.
	assert.Contains(t, err.Error(), "stub")
}

func TestProviderFactory_Kinds(t *testing.T) {
	factory := NewProviderFactory(map[string]ProviderConstructor{
		KindGeminiFlashLite: func(aspects []string) (Provider, error) { return &stubProvider{}, nil },
		KindClaudeHaiku:     func(aspects []string) (Provider, error) { return &stubProvider{}, nil },
	})

	assert.Equal(t, []string{KindClaudeHaiku, KindGeminiFlashLite}, factory.Kinds())
}
