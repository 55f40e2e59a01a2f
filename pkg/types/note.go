// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-assistant.
// ResearchNote is the only artifact the assistant returns; AssistantConfig
// groups the settings of every stage that talks to an external provider.
package types

// ResearchNote is the structured record synthesized for one query.
// All four fields are always present: slices are non-nil so the record
// serializes with empty lists rather than null.
type ResearchNote struct {
	// Title is the note heading. Never empty.
	Title string `json:"title" yaml:"title"`

	// Summary is a short prose synthesis of the search results.
	Summary string `json:"summary" yaml:"summary"`

	// KeyPoints lists the bullet findings in order of appearance.
	KeyPoints []string `json:"key_points" yaml:"key_points"`

	// Sources lists cited pages: model citations first, then URLs
	// recovered from the raw search text.
	Sources []Source `json:"sources" yaml:"sources"`
}

// Source is one cited page.
type Source struct {
	// Title is the page title as cited, longer than 3 characters.
	Title string `json:"title" yaml:"title"`

	// URL is empty or starts with http:// or https://.
	URL string `json:"url" yaml:"url"`
}
