package note

import (
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// minSourceTitleLength is the exclusive lower bound on source title length.
const minSourceTitleLength = 3

// ParseSourceLine parses a citation line such as
//
//	[1] Attention Is All You Need (https://arxiv.org/abs/1706.03762)
//	[2] Go Memory Model - go.dev/ref/mem
//	[3] An uncited report
//
// The URL is taken from the last parenthesized group, else from the text
// after " - ". It reports false when the title is 3 characters or shorter.
func ParseSourceLine(line string) (types.Source, bool) {
	content := strings.TrimSpace(line)
	if _, after, found := strings.Cut(line, "]"); found {
		content = strings.TrimSpace(after)
	}

	var title, url string
	open := strings.LastIndex(content, "(")
	closing := strings.LastIndex(content, ")")

	switch {
	case open >= 0 && closing >= 0:
		if closing > open {
			url = strings.TrimSpace(content[open+1 : closing])
		}
		title = strings.TrimSpace(content[:open])
	case strings.Contains(content, " - "):
		left, right, _ := strings.Cut(content, " - ")
		title = strings.TrimSpace(left)
		url = strings.TrimSpace(right)
	default:
		title = content
	}

	url = NormalizeURL(url)

	if utf8.RuneCountInString(title) <= minSourceTitleLength {
		return types.Source{}, false
	}
	return types.Source{Title: title, URL: url}, true
}

// NormalizeURL removes spaces and ensures a scheme. A schemeless value is
// given https:// when it contains a dot; otherwise it is not a plausible
// address and the empty string is returned.
func NormalizeURL(url string) string {
	url = strings.ReplaceAll(url, " ", "")
	if url == "" || hasHTTPScheme(url) {
		return url
	}
	if strings.Contains(url, ".") {
		return "https://" + url
	}
	return ""
}

func hasHTTPScheme(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
