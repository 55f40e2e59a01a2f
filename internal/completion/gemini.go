// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package completion

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// DefaultGeminiModel is used when no model is configured for the gemini
// backend.
const DefaultGeminiModel = "gemini-1.5-flash-latest"

// Gemini calls the Google Generative AI API.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
	log         *zap.Logger
}

// NewGemini creates a Gemini provider. A non-empty cfg.BaseURL overrides
// the API endpoint. cfg.Temperature is sent as given, including 0.
func NewGemini(ctx context.Context, cfg types.AIConfig, log *zap.Logger) (*Gemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}
	if log == nil {
		log = zap.NewNop()
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &Gemini{
		client:      client,
		model:       model,
		temperature: float32(cfg.Temperature),
		log:         log,
	}, nil
}

// Name returns the provider name.
func (g *Gemini) Name() string {
	return "gemini"
}

// Complete sends prompt as a single user turn and returns the text parts of
// the first candidate. A response without candidates yields "".
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	temp := g.temperature
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temp,
	})
	if err != nil {
		return "", fmt.Errorf("calling gemini API: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		g.log.Warn("gemini returned no candidates", zap.String("model", g.model))
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
