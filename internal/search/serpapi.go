// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

const (
	defaultSerpAPIBaseURL = "https://serpapi.com"
	defaultEngine         = "google"
	defaultMaxResults     = 10
	defaultTimeout        = 30 * time.Second
)

// serpAPIResponse holds the parts of a SerpAPI response that carry text.
type serpAPIResponse struct {
	Error          string              `json:"error"`
	AnswerBox      *serpAPIAnswerBox   `json:"answer_box"`
	KnowledgeGraph *serpAPIKnowledge   `json:"knowledge_graph"`
	OrganicResults []serpAPIOrganicHit `json:"organic_results"`
}

type serpAPIAnswerBox struct {
	Answer  string `json:"answer"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

type serpAPIKnowledge struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type serpAPIOrganicHit struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// SerpAPI searches Google through serpapi.com.
type SerpAPI struct {
	cfg    types.SearchConfig
	client *http.Client
	log    *zap.Logger
}

// NewSerpAPI returns a SerpAPI provider. Zero-valued settings fall back to
// the google engine, 10 results, and a 30 s timeout.
func NewSerpAPI(cfg types.SearchConfig, log *zap.Logger) *SerpAPI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultSerpAPIBaseURL
	}
	if cfg.Engine == "" {
		cfg.Engine = defaultEngine
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SerpAPI{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

// Name returns the provider name.
func (s *SerpAPI) Name() string {
	return "serpapi"
}

// Validate checks that the provider has credentials.
func (s *SerpAPI) Validate() error {
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		return fmt.Errorf("serpapi API key is not configured")
	}
	return nil
}

// Search runs one query and returns the answer box, knowledge graph and
// organic results as snippets, in that order.
func (s *SerpAPI) Search(ctx context.Context, query string) ([]string, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("engine", s.cfg.Engine)
	params.Set("q", query)
	params.Set("api_key", s.cfg.APIKey)
	params.Set("num", strconv.Itoa(s.cfg.MaxResults))

	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	var resp serpAPIResponse
	if err := httputil.DoJSON(ctx, s.client, req, &resp); err != nil {
		return nil, fmt.Errorf("calling serpapi: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("serpapi error: %s", resp.Error)
	}

	snippets := resp.snippets()
	s.log.Debug("serpapi search completed",
		zap.String("query", query),
		zap.Int("organic_results", len(resp.OrganicResults)),
		zap.Int("snippets", len(snippets)))
	return snippets, nil
}

// snippets renders the response as text units. Organic hits become
// "title: snippet link" so their URLs stay attached to the text. The link
// is separated by a space so URL scanners do not pick up punctuation.
func (r serpAPIResponse) snippets() []string {
	var out []string

	if ab := r.AnswerBox; ab != nil {
		text := ab.Answer
		if text == "" {
			text = ab.Snippet
		}
		if text != "" {
			out = append(out, withLink(text, ab.Link))
		}
	}

	if kg := r.KnowledgeGraph; kg != nil && kg.Description != "" {
		if kg.Title != "" {
			out = append(out, kg.Title+": "+kg.Description)
		} else {
			out = append(out, kg.Description)
		}
	}

	for _, hit := range r.OrganicResults {
		text := strings.TrimSpace(hit.Title)
		if snip := strings.TrimSpace(hit.Snippet); snip != "" {
			if text != "" {
				text += ": "
			}
			text += snip
		}
		text = withLink(text, hit.Link)
		if text != "" {
			out = append(out, text)
		}
	}

	return out
}

func withLink(text, link string) string {
	if link == "" {
		return text
	}
	if text == "" {
		return link
	}
	return text + " " + link
}
