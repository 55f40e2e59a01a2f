// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package completion sends rendered prompts to a hosted language model and
// returns the raw text it produces. Backends are interchangeable behind
// Provider; the assistant never inspects anything but the returned text.
package completion

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Provider abstracts the Generative AI API so tests can supply a mock.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

const defaultMaxTokens = 4096

// New builds the provider selected by cfg.Backend. An empty backend means
// gemini.
func New(ctx context.Context, cfg types.AIConfig, log *zap.Logger) (Provider, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Backend {
	case types.BackendGemini, "":
		return NewGemini(ctx, cfg, log)
	case types.BackendClaude:
		return NewClaude(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported completion backend %q: use gemini or claude", cfg.Backend)
	}
}
