// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// maxSources caps the source list once fallback extraction runs.
const maxSources = 5

// URL patterns. The excluded characters are whitespace and <>"{}|\^`[].
// Whitespace includes \v, the \x1c-\x1f separators, NEL and every Unicode
// space (\p{Z}), since RE2's \s is ASCII only.
var (
	// searchURLRe finds URL-shaped runs in free text.
	searchURLRe = regexp.MustCompile("https?://[^\\s\\v\\x1c-\\x1f\\x85\\p{Z}<>\"{}|\\\\^`\\[\\]]+(?:[^\\s\\v\\x1c-\\x1f\\x85\\p{Z}<>\"{}|\\\\^`\\[\\]]*[a-zA-Z0-9])?")

	// validURLRe requires a scheme, a host-ish run, a dot and an alphabetic TLD.
	validURLRe = regexp.MustCompile("^https?://[^\\s\\v\\x1c-\\x1f\\x85\\p{Z}<>\"{}|\\\\^`\\[\\]]+\\.[a-zA-Z]{2,}")

	// domainRe captures the host after the scheme and an optional www.
	domainRe = regexp.MustCompile(`https?://(?:www\.)?([^/]+)`)
)

// Length bounds for URLs accepted by IsValidURL, inclusive.
const (
	minURLLength = 15
	maxURLLength = 500
)

// blockedURLFragments mark placeholder URLs the model or a template produced.
var blockedURLFragments = []string{"example.com", "placeholder", "no%20url"}

// SupplementSources appends sources discovered in searchText until the list
// holds maxSources entries. URLs already cited are never added twice. The
// returned slice may share its backing array with sources. On failure the
// input is returned unchanged.
func (p *Parser) SupplementSources(sources []types.Source, searchText string) (out []types.Source) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("failed to extract sources from search results", zap.Error(fmt.Errorf("%v", r)))
			out = sources
		}
	}()

	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		seen[s.URL] = true
	}

	out = sources
	added := 0
	for _, url := range searchURLRe.FindAllString(searchText, -1) {
		if len(out) >= maxSources {
			break
		}
		if seen[url] || utf8.RuneCountInString(url) < minURLLength {
			continue
		}
		if !IsValidURL(url) {
			continue
		}

		if domain := extractDomain(url); domain != "" {
			out = append(out, types.Source{Title: "Article from " + domain, URL: url})
			seen[url] = true
			added++
		}
	}

	if added > 0 {
		p.log.Debug("supplemented sources from search results", zap.Int("added", added))
	}
	return out
}

// IsValidURL reports whether url looks like a real, non-placeholder web
// address of reasonable length.
func IsValidURL(url string) bool {
	if !validURLRe.MatchString(url) {
		return false
	}

	lower := strings.ToLower(url)
	for _, frag := range blockedURLFragments {
		if strings.Contains(lower, frag) {
			return false
		}
	}

	n := utf8.RuneCountInString(url)
	return n >= minURLLength && n <= maxURLLength
}

// extractDomain returns the host portion of url without a leading www.
func extractDomain(url string) string {
	m := domainRe.FindStringSubmatch(url)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
