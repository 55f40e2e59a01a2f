// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Format selects how a note is rendered.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// Valid reports whether Write accepts f.
func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatText, "":
		return true
	}
	return false
}

// Write renders n to w in the given format.
func Write(w io.Writer, n types.ResearchNote, format Format) error {
	switch format {
	case FormatJSON, "":
		return FormatJSONTo(w, n)
	case FormatYAML:
		return FormatYAMLTo(w, n)
	case FormatText:
		FormatTextTo(w, n)
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use json, yaml, or text", format)
	}
}

// FormatJSONTo writes the note as indented JSON to w.
func FormatJSONTo(w io.Writer, n types.ResearchNote) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(n)
}

// FormatYAMLTo writes the note as YAML to w.
func FormatYAMLTo(w io.Writer, n types.ResearchNote) error {
	data, err := yaml.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshaling note: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// FormatTextTo writes a human-readable report to w.
func FormatTextTo(w io.Writer, n types.ResearchNote) {
	fmt.Fprintln(w, "=== RESEARCH RESULTS ===")
	fmt.Fprintf(w, "Title: %s\n", n.Title)
	fmt.Fprintf(w, "Summary: %s\n", n.Summary)

	fmt.Fprintln(w, "\nKey Points:")
	for i, p := range n.KeyPoints {
		fmt.Fprintf(w, "%d. %s\n", i+1, p)
	}

	fmt.Fprintln(w, "\nSources:")
	for i, s := range n.Sources {
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, s.Title, s.URL)
	}
}
