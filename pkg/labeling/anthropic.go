package labeling

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/reviewradar/labeling-engine/pkg/logging"
	"github.com/reviewradar/labeling-engine/pkg/models"
)

// KindClaudeHaiku selects the Claude Haiku provider.
const KindClaudeHaiku = "claude-3-5-haiku"

// messagesAPI is the slice of the Anthropic client used by the provider.
// It exists so tests can substitute a mock.
type messagesAPI interface {
	CreateMessages(ctx context.Context, request anthropic.MessagesRequest) (anthropic.MessagesResponse, error)
}

// ClaudeProvider labels reviews through the Anthropic Messages API.
type ClaudeProvider struct {
	client       messagesAPI
	model        string
	aspects      []string
	systemPrompt string
	logger       *zap.Logger
	stats        Stats
}

// NewClaudeProvider creates a Claude provider for the given aspect list.
func NewClaudeProvider(client messagesAPI, model string, aspects []string, logger *zap.Logger) (*ClaudeProvider, error) {
	if err := validateAspects(aspects); err != nil {
		return nil, fmt.Errorf("invalid aspect list: %w", err)
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &ClaudeProvider{
		client:       client,
		model:        model,
		aspects:      aspects,
		systemPrompt: BuildSystemPrompt(aspects),
		logger:       logger.Named("provider.claude"),
	}, nil
}

var _ Provider = (*ClaudeProvider)(nil)

// Process implements Provider.
func (p *ClaudeProvider) Process(ctx context.Context, text string) (*models.LabelResult, error) {
	temperature := float32(labelTemperature)

	resp, err := p.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(p.model),
		System:      p.systemPrompt,
		MaxTokens:   labelMaxTokens,
		Temperature: &temperature,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(text),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic call: %w", err)
	}

	content := extractTextContent(resp)

	scores, confidences, err := parseLabelResponse(content, len(p.aspects))
	if err != nil {
		p.logger.Error("Label parsing failed",
			zap.Strings("aspects", p.aspects),
			zap.String("response", logging.TruncateString(content, logging.MaxResponseLogLength)),
			zap.Error(err))
		return nil, err
	}

	p.stats.TotalRequests++
	p.stats.TotalTokenUsage += int64(resp.Usage.InputTokens + resp.Usage.OutputTokens)

	return &models.LabelResult{
		Labels: zipLabels(p.aspects, scores, confidences),
		Metadata: models.LabelMetadata{
			Usage: &models.UsageMetadata{
				PromptTokenCount:     resp.Usage.InputTokens,
				CandidatesTokenCount: resp.Usage.OutputTokens,
			},
			TextLen:      len(text),
			ModelVersion: string(resp.Model),
		},
	}, nil
}

// ModelVersion implements Provider.
func (p *ClaudeProvider) ModelVersion() string {
	return p.model
}

// Stats implements Provider.
func (p *ClaudeProvider) Stats() Stats {
	return p.stats
}

// ResetStats implements Provider.
func (p *ClaudeProvider) ResetStats() {
	p.stats = Stats{}
}

func extractTextContent(resp anthropic.MessagesResponse) string {
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			return *block.Text
		}
	}
	return ""
}
