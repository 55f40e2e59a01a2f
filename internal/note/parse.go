// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package note turns free-form model output into a validated ResearchNote.
// The parser is a line-oriented state machine keyed on the section labels the
// prompt asks the model to reproduce (TITLE:, SUMMARY:, KEY POINTS:,
// SOURCES:). When the model cites too few sources, the raw search text is
// mined for URLs to fill the gap.
package note

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Defaults used when the model output omits a section.
const (
	DefaultTitle   = "Research Results"
	DefaultSummary = "No summary available"
	ErrorSummary   = "Error parsing research results"
)

// Section labels, matched case-insensitively at the start of a trimmed line.
const (
	labelTitle      = "TITLE:"
	labelSummary    = "SUMMARY:"
	labelKeyPoints  = "KEY POINTS:"
	labelSources    = "SOURCES:"
	labelGuidelines = "IMPORTANT GUIDELINES:"
	labelCritical   = "CRITICAL"
)

const (
	// minRawLength is the trimmed length below which output is not parsed.
	minRawLength = 10

	// minKeyPointLength is the exclusive lower bound on key point length.
	minKeyPointLength = 10

	// fallbackThreshold is the source count below which search text is mined.
	fallbackThreshold = 3
)

// section is the parser state: the last label seen.
type section int

const (
	sectionNone section = iota
	sectionTitle
	sectionSummary
	sectionKeyPoints
	sectionSources
)

// Parser converts completion text into a ResearchNote. It holds no
// per-request state and is safe for concurrent use.
type Parser struct {
	log *zap.Logger
}

// NewParser returns a Parser that reports recovered problems to log.
// A nil logger discards them.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log}
}

// Parse builds a note from raw model output. searchText is the raw search
// provider text for this request; it backs the fallback source extractor
// and may be empty. Parse never fails: unexpected errors yield ErrorNote.
func (p *Parser) Parse(raw, searchText string) (note types.ResearchNote) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("parsing research note failed", zap.Error(fmt.Errorf("%v", r)))
			note = ErrorNote()
		}
	}()

	note = DefaultNote()

	if utf8.RuneCountInString(strings.TrimSpace(raw)) < minRawLength {
		p.log.Warn("raw text is too short", zap.String("raw", raw))
		return note
	}

	var (
		current      = sectionNone
		summaryLines []string
	)

	// flush moves buffered summary lines into the note. When onlyDefault is
	// set, an already assigned summary is kept.
	flush := func(onlyDefault bool) {
		if len(summaryLines) == 0 {
			return
		}
		if onlyDefault && note.Summary != DefaultSummary {
			return
		}
		note.Summary = strings.TrimSpace(strings.Join(summaryLines, " "))
	}

lines:
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)

		switch {
		case strings.HasPrefix(upper, labelTitle):
			if title := extractTitle(line); title != "" {
				note.Title = title
			}
			current = sectionTitle
		case strings.HasPrefix(upper, labelSummary):
			current = sectionSummary
			summaryLines = nil
		case strings.HasPrefix(upper, labelKeyPoints):
			current = sectionKeyPoints
			flush(false)
		case strings.HasPrefix(upper, labelSources):
			current = sectionSources
			flush(true)
		case strings.HasPrefix(upper, labelGuidelines), strings.HasPrefix(upper, labelCritical):
			// The model echoed prompt instructions; nothing after this is content.
			flush(true)
			break lines
		case current == sectionSummary && line != "" && !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "["):
			summaryLines = append(summaryLines, line)
		case current == sectionKeyPoints && strings.HasPrefix(line, "-"):
			point := strings.TrimSpace(strings.TrimLeft(line, "-"))
			if utf8.RuneCountInString(point) > minKeyPointLength {
				note.KeyPoints = append(note.KeyPoints, point)
			}
		case current == sectionSources && strings.HasPrefix(line, "["):
			if src, ok := p.sourceFromLine(line); ok {
				note.Sources = append(note.Sources, src)
			}
		}
	}

	flush(true)

	if note.Summary != DefaultSummary {
		note.Summary = strings.TrimSpace(strings.ReplaceAll(note.Summary, labelSummary, ""))
		if note.Summary == "" {
			note.Summary = DefaultSummary
		}
	}

	if len(note.Sources) < fallbackThreshold && searchText != "" {
		note.Sources = p.SupplementSources(note.Sources, searchText)
	}

	return note
}

// extractTitle returns the text following the TITLE: label. The label is
// matched in any case; literal upper and lower case copies in the remainder
// are removed as well.
func extractTitle(line string) string {
	title := line[len(labelTitle):]
	title = strings.ReplaceAll(title, labelTitle, "")
	title = strings.ReplaceAll(title, strings.ToLower(labelTitle), "")
	return strings.TrimSpace(title)
}

// sourceFromLine parses one source line, dropping it on any failure.
func (p *Parser) sourceFromLine(line string) (src types.Source, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("could not parse source line", zap.String("line", line), zap.Any("error", r))
			src, ok = types.Source{}, false
		}
	}()

	src, ok = ParseSourceLine(line)
	if !ok {
		p.log.Debug("dropped source line", zap.String("line", line))
	}
	return src, ok
}

// DefaultNote returns the note produced when the model output has no
// usable content.
func DefaultNote() types.ResearchNote {
	return types.ResearchNote{
		Title:     DefaultTitle,
		Summary:   DefaultSummary,
		KeyPoints: []string{},
		Sources:   []types.Source{},
	}
}

// ErrorNote returns the note produced when parsing fails unexpectedly.
func ErrorNote() types.ResearchNote {
	n := DefaultNote()
	n.Summary = ErrorSummary
	return n
}
