// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package completion

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// DefaultClaudeModel is used when no model is configured for the claude
// backend.
const DefaultClaudeModel = "claude-sonnet-4-5"

// Claude calls the Anthropic Messages API.
type Claude struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
	log         *zap.Logger
}

// NewClaude creates a Claude provider. The SDK's built-in retries are
// disabled; a failed call is reported to the caller as is.
func NewClaude(cfg types.AIConfig, log *zap.Logger) (*Claude, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("anthropic API key is not configured")
	}
	if log == nil {
		log = zap.NewNop()
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultClaudeModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &Claude{
		client:      anthropic.NewClient(opts...),
		model:       model,
		maxTokens:   int64(maxTokens),
		temperature: cfg.Temperature,
		log:         log,
	}, nil
}

// Name returns the provider name.
func (c *Claude) Name() string {
	return "claude"
}

// Complete sends prompt as one user message and joins the text blocks of
// the reply.
func (c *Claude) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}
	if len(msg.Content) == 0 {
		return "", fmt.Errorf("Claude API returned empty content")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type != "text" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(block.Text)
	}
	c.log.Debug("claude completion",
		zap.String("model", c.model),
		zap.String("stop_reason", string(msg.StopReason)),
		zap.Int64("output_tokens", msg.Usage.OutputTokens))
	return sb.String(), nil
}
