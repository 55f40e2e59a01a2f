// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

const serpAPIFixture = `{
  "search_metadata": {"status": "Success"},
  "answer_box": {"answer": "About 1.5 degrees", "link": "https://climate.nasa.gov/facts"},
  "knowledge_graph": {"title": "Global warming", "description": "Long-term heating of Earth's surface."},
  "organic_results": [
    {"position": 1, "title": "IPCC AR6 Synthesis", "link": "https://www.ipcc.ch/report/ar6/syr/", "snippet": "Human activities have unequivocally caused global warming."},
    {"position": 2, "title": "", "link": "https://www.noaa.gov/climate", "snippet": ""},
    {"position": 3, "title": "No link result", "snippet": "Snippet only."}
  ]
}`

func newTestSerpAPI(t *testing.T, handler http.HandlerFunc) *SerpAPI {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewSerpAPI(types.SearchConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "research-assistant/test"},
		APIKey:     "serp-key",
		BaseURL:    ts.URL,
		MaxResults: 7,
	}, nil)
}

func TestSerpAPI_Search(t *testing.T) {
	var gotReq *http.Request
	s := newTestSerpAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(serpAPIFixture))
	})

	snippets, err := s.Search(context.Background(), "global warming")
	require.NoError(t, err)

	require.NotNil(t, gotReq)
	assert.Equal(t, "/search", gotReq.URL.Path)
	q := gotReq.URL.Query()
	assert.Equal(t, "google", q.Get("engine"))
	assert.Equal(t, "global warming", q.Get("q"))
	assert.Equal(t, "serp-key", q.Get("api_key"))
	assert.Equal(t, "7", q.Get("num"))
	assert.Equal(t, "application/json", gotReq.Header.Get("Accept"))
	assert.Equal(t, "research-assistant/test", gotReq.Header.Get("User-Agent"))

	assert.Equal(t, []string{
		"About 1.5 degrees https://climate.nasa.gov/facts",
		"Global warming: Long-term heating of Earth's surface.",
		"IPCC AR6 Synthesis: Human activities have unequivocally caused global warming. https://www.ipcc.ch/report/ar6/syr/",
		"https://www.noaa.gov/climate",
		"No link result: Snippet only.",
	}, snippets)
}

func TestSerpAPI_EmptyResults(t *testing.T) {
	s := newTestSerpAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"organic_results": []}`))
	})

	snippets, err := s.Search(context.Background(), "nothing matches this")
	require.NoError(t, err)
	assert.Empty(t, snippets)
	assert.Equal(t, "", Join(snippets))
}

func TestSerpAPI_ErrorField(t *testing.T) {
	s := newTestSerpAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error": "Invalid API key."}`))
	})

	_, err := s.Search(context.Background(), "q")
	assert.EqualError(t, err, "serpapi error: Invalid API key.")
}

func TestSerpAPI_HTTPError(t *testing.T) {
	s := newTestSerpAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Invalid API key."}`))
	})

	_, err := s.Search(context.Background(), "q")
	require.Error(t, err)

	var se *httputil.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
}

func TestSerpAPI_TransportErrorHidesKey(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := ts.URL
	ts.Close()

	s := NewSerpAPI(types.SearchConfig{APIKey: "SECRET-serp-key-123", BaseURL: base}, nil)

	_, err := s.Search(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calling serpapi")
	assert.NotContains(t, err.Error(), "SECRET-serp-key-123")
}

func TestSerpAPI_MissingKey(t *testing.T) {
	s := NewSerpAPI(types.SearchConfig{}, nil)

	_, err := s.Search(context.Background(), "q")
	assert.EqualError(t, err, "serpapi API key is not configured")
}

func TestNewSerpAPI_Defaults(t *testing.T) {
	s := NewSerpAPI(types.SearchConfig{APIKey: "k"}, nil)

	assert.Equal(t, "serpapi", s.Name())
	assert.Equal(t, defaultSerpAPIBaseURL, s.cfg.BaseURL)
	assert.Equal(t, defaultEngine, s.cfg.Engine)
	assert.Equal(t, defaultMaxResults, s.cfg.MaxResults)
	assert.Equal(t, defaultTimeout, s.client.Timeout)
	assert.NoError(t, s.Validate())
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a b  c", Join([]string{"a", "b ", "c"}))
}
