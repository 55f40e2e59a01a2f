// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research answers a query by searching the web, asking a language
// model to synthesize the results, and parsing the reply into a note.
package research

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/completion"
	"github.com/pdiddy/research-assistant/internal/note"
	"github.com/pdiddy/research-assistant/internal/search"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// ErrEmptyQuery is returned when the query is empty or only whitespace.
var ErrEmptyQuery = errors.New("query must not be empty")

// NoResultsMessage is the summary of the note returned when search finds
// nothing.
const NoResultsMessage = "No search results found for this query."

const noKeyPoints = "No key points available due to search failure"

// Assistant runs research queries. It holds no per-request state, so one
// Assistant may serve concurrent calls to Run.
type Assistant struct {
	search     search.Provider
	completion completion.Provider
	parser     *note.Parser
	log        *zap.Logger
}

// New returns an Assistant. A nil logger discards output.
func New(sp search.Provider, cp completion.Provider, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assistant{
		search:     sp,
		completion: cp,
		parser:     note.NewParser(log),
		log:        log,
	}
}

// Run researches query and returns a validated note. Empty search results
// produce EmptyResult without calling the completion provider.
func (a *Assistant) Run(ctx context.Context, query string) (types.ResearchNote, error) {
	if strings.TrimSpace(query) == "" {
		return types.ResearchNote{}, ErrEmptyQuery
	}
	log := a.log.With(zap.String("query", query))
	log.Info("starting research")

	log.Debug("performing web search", zap.String("provider", a.search.Name()))
	snippets, err := a.search.Search(ctx, query)
	if err != nil {
		log.Error("research failed", zap.Error(err))
		return types.ResearchNote{}, fmt.Errorf("searching %s: %w", a.search.Name(), err)
	}

	searchText := search.Join(snippets)
	log.Info("search completed", zap.Int("snippets", len(snippets)), zap.Int("search_results_length", len(searchText)))
	if strings.TrimSpace(searchText) == "" {
		log.Warn("no search results found")
		return EmptyResult(query, NoResultsMessage), nil
	}

	prompt, err := completion.RenderPrompt(query, searchText)
	if err != nil {
		return types.ResearchNote{}, fmt.Errorf("rendering prompt: %w", err)
	}

	raw, err := a.completion.Complete(ctx, prompt)
	if err != nil {
		log.Error("research failed", zap.Error(err))
		return types.ResearchNote{}, fmt.Errorf("completing with %s: %w", a.completion.Name(), err)
	}
	log.Info("completion finished", zap.String("provider", a.completion.Name()), zap.Int("response_length", len(raw)))

	n := a.parser.Parse(raw, searchText)
	if err := note.Validate(&n); err != nil {
		log.Error("research failed", zap.Error(err))
		return types.ResearchNote{}, fmt.Errorf("validating note: %w", err)
	}

	log.Info("research completed",
		zap.Int("key_points", len(n.KeyPoints)),
		zap.Int("sources", len(n.Sources)))
	return n, nil
}

// EmptyResult is the degraded note for a query whose search found nothing.
func EmptyResult(query, message string) types.ResearchNote {
	return types.ResearchNote{
		Title:     "Research Results: " + query,
		Summary:   message,
		KeyPoints: []string{noKeyPoints},
		Sources:   []types.Source{},
	}
}
