// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries a web search API and returns raw result snippets
// for the completion prompt and the fallback source extractor.
package search

import (
	"context"
	"strings"
)

// Provider searches the web for a free-text query. Each snippet is one
// unit of result text; implementations keep result URLs inside the
// snippets so downstream source recovery can find them.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]string, error)
}

// Join flattens snippets into the single text blob the prompt embeds.
// Snippets are separated by one space.
func Join(snippets []string) string {
	return strings.Join(snippets, " ")
}
