package labeling

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/reviewradar/labeling-engine/pkg/llm"
	"github.com/reviewradar/labeling-engine/pkg/logging"
	"github.com/reviewradar/labeling-engine/pkg/models"
)

// KindGeminiFlashLite selects the Gemini Flash Lite provider.
const KindGeminiFlashLite = "gemini-2.5-flash-lite"

const (
	// Generation parameters tuned for determinism and bounded cost.
	labelTemperature = 0.1
	labelMaxTokens   = 100
)

// GeminiProvider labels reviews through Gemini's OpenAI-compatible endpoint.
type GeminiProvider struct {
	client       llm.GenerativeClient
	aspects      []string
	systemPrompt string
	logger       *zap.Logger
	stats        Stats
}

// NewGeminiProvider creates a Gemini provider for the given aspect list.
// The system prompt is compiled once here; the aspect order given is
// authoritative for every subsequent response.
func NewGeminiProvider(client llm.GenerativeClient, aspects []string, logger *zap.Logger) (*GeminiProvider, error) {
	if err := validateAspects(aspects); err != nil {
		return nil, fmt.Errorf("invalid aspect list: %w", err)
	}

	return &GeminiProvider{
		client:       client,
		aspects:      aspects,
		systemPrompt: BuildSystemPrompt(aspects),
		logger:       logger.Named("provider.gemini"),
	}, nil
}

var _ Provider = (*GeminiProvider)(nil)

// Process implements Provider.
func (p *GeminiProvider) Process(ctx context.Context, text string) (*models.LabelResult, error) {
	resp, err := p.client.GenerateResponse(ctx, text, p.systemPrompt, llm.GenerateOptions{
		Temperature:  labelTemperature,
		MaxTokens:    labelMaxTokens,
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini call: %w", err)
	}

	scores, confidences, err := parseLabelResponse(resp.Content, len(p.aspects))
	if err != nil {
		p.logger.Error("Label parsing failed",
			zap.Strings("aspects", p.aspects),
			zap.String("response", logging.TruncateString(resp.Content, logging.MaxResponseLogLength)),
			zap.Error(err))
		return nil, err
	}

	p.stats.TotalRequests++

	metadata := models.LabelMetadata{
		TextLen:      len(text),
		ModelVersion: resp.ModelVersion,
	}
	if resp.Usage != nil {
		metadata.Usage = &models.UsageMetadata{
			PromptTokenCount:     resp.Usage.PromptTokens,
			CandidatesTokenCount: resp.Usage.CompletionTokens,
		}
		p.stats.TotalTokenUsage += int64(resp.Usage.TotalTokens)
	}

	return &models.LabelResult{
		Labels:   zipLabels(p.aspects, scores, confidences),
		Metadata: metadata,
	}, nil
}

// ModelVersion implements Provider.
func (p *GeminiProvider) ModelVersion() string {
	return p.client.GetModel()
}

// Stats implements Provider.
func (p *GeminiProvider) Stats() Stats {
	return p.stats
}

// ResetStats implements Provider.
func (p *GeminiProvider) ResetStats() {
	p.stats = Stats{}
}
