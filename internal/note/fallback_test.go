// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-assistant/pkg/types"
)

func TestSupplementSources_AppendsArticleFromDomain(t *testing.T) {
	p := NewParser(nil)

	got := p.SupplementSources([]types.Source{}, "see https://news.example.org/article-1 for details")

	require.Len(t, got, 1)
	assert.Equal(t, types.Source{
		Title: "Article from news.example.org",
		URL:   "https://news.example.org/article-1",
	}, got[0])
}

func TestSupplementSources_StripsWWW(t *testing.T) {
	got := NewParser(nil).SupplementSources(nil, "https://www.reuters.com/technology/ai-chips")

	require.Len(t, got, 1)
	assert.Equal(t, "Article from reuters.com", got[0].Title)
}

func TestSupplementSources_CapsAtFive(t *testing.T) {
	existing := []types.Source{
		{Title: "Cited One", URL: "https://cited-one.org/a"},
		{Title: "Cited Two", URL: "https://cited-two.org/b"},
	}
	var text strings.Builder
	for _, host := range []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"} {
		text.WriteString("https://" + host + ".org/story-page ")
	}

	got := NewParser(nil).SupplementSources(existing, text.String())

	require.Len(t, got, maxSources)
	assert.Equal(t, "https://alpha.org/story-page", got[2].URL)
	assert.Equal(t, "https://charlie.org/story-page", got[4].URL)
}

func TestSupplementSources_NoDuplicates(t *testing.T) {
	existing := []types.Source{{Title: "Already Cited", URL: "https://cited.org/report"}}
	text := "https://cited.org/report https://fresh.org/report https://fresh.org/report"

	got := NewParser(nil).SupplementSources(existing, text)

	assert.Equal(t, []types.Source{
		{Title: "Already Cited", URL: "https://cited.org/report"},
		{Title: "Article from fresh.org", URL: "https://fresh.org/report"},
	}, got)
}

func TestSupplementSources_SkipsShortAndInvalid(t *testing.T) {
	text := strings.Join([]string{
		"https://a.co/x",                    // 14 characters
		"http://example.com/page",           // blocklisted
		"https://placeholder.org/source",    // blocklisted
		"https://localhost:8080/dashboard",  // no dotted TLD
		"ftp://files.archive.org/item",      // not http
		"https://valid-site.net/article-42", // accepted
	}, " ")

	got := NewParser(nil).SupplementSources(nil, text)

	assert.Equal(t, []types.Source{
		{Title: "Article from valid-site.net", URL: "https://valid-site.net/article-42"},
	}, got)
}

func TestSupplementSources_StopsAtBracketsAndQuotes(t *testing.T) {
	text := `<a href="https://quoted.org/page-1">link</a> [https://bracketed.org/page-2]`

	got := NewParser(nil).SupplementSources(nil, text)

	require.Len(t, got, 2)
	assert.Equal(t, "https://quoted.org/page-1", got[0].URL)
	assert.Equal(t, "https://bracketed.org/page-2", got[1].URL)
}

func TestSupplementSources_UnicodeWhitespaceEndsURL(t *testing.T) {
	tests := []struct {
		name string
		sep  string
	}{
		{"no-break space", "\u00a0"},
		{"vertical tab", "\v"},
		{"next line", "\u0085"},
		{"ideographic space", "\u3000"},
		{"line separator", "\u2028"},
		{"unit separator", "\x1f"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := "Story at https://news.site.org/a1" + tt.sep + "Read more here"

			got := NewParser(nil).SupplementSources(nil, text)

			assert.Equal(t, []types.Source{
				{Title: "Article from news.site.org", URL: "https://news.site.org/a1"},
			}, got)
		})
	}
}

func TestSupplementSources_FullListUnchanged(t *testing.T) {
	existing := []types.Source{
		{Title: "One cited", URL: "https://one.org/a"},
		{Title: "Two cited", URL: "https://two.org/b"},
		{Title: "Three cited", URL: "https://three.org/c"},
		{Title: "Four cited", URL: "https://four.org/d"},
		{Title: "Five cited", URL: "https://five.org/e"},
		{Title: "Six cited", URL: "https://six.org/f"},
	}

	got := NewParser(nil).SupplementSources(existing[:5], "https://fresh-site.org/report")
	assert.Len(t, got, maxSources)

	got = NewParser(nil).SupplementSources(existing, "https://fresh-site.org/report")
	assert.Equal(t, existing, got)
}

func TestSupplementSources_EmptyTextReturnsInput(t *testing.T) {
	existing := []types.Source{{Title: "Only One", URL: ""}}

	got := NewParser(nil).SupplementSources(existing, "")

	assert.Equal(t, existing, got)
}

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"plain article", "https://news.example.org/article-1", true},
		{"http scheme", "http://blog.golang.org/intro", true},
		{"blocklisted domain", "http://example.com/page", false},
		{"blocklisted case insensitive", "https://EXAMPLE.COM/page-one", false},
		{"placeholder", "https://site.org/placeholder", false},
		{"encoded no url", "https://site.org/no%20url", false},
		{"too short", "https://a.co/x", false},
		{"exactly fifteen", "https://ab.org/", true},
		{"no tld", "https://localhost/some/path", false},
		{"numeric tld", "https://10.0.0.1/some/path", false},
		{"uppercase scheme", "HTTPS://upper.org/page", false},
		{"missing scheme", "www.noscheme.org/page", false},
		{"too long", "https://long.org/" + strings.Repeat("a", 490), false},
		{"at max length", "https://long.org/" + strings.Repeat("a", 483), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidURL(tt.url))
		})
	}
}
