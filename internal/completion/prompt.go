// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package completion

import (
	"bytes"
	"text/template"
)

// researchPromptTmpl asks the model for a note in the labelled layout the
// note parser reads. The labels TITLE:, SUMMARY:, KEY POINTS: and SOURCES:
// must stay verbatim.
var researchPromptTmpl = template.Must(template.New("research").Parse(`You are a research assistant. Based on the search results below, create a research note.

QUERY: {{.Query}}

SEARCH RESULTS: {{.SearchResults}}

Create a research note with exactly this format:

TITLE: [Write a clear title here]

SUMMARY: [Write 3-5 sentences summarizing the key findings]

KEY POINTS:
- [First key point]
- [Second key point]
- [Third key point]
- [Fourth key point]
- [Fifth key point]

SOURCES:
[1] [Source title] ([URL])
[2] [Source title] ([URL])
[3] [Source title] ([URL])

CRITICAL SOURCE FORMATTING RULES:
- Look for actual URLs in the search results and include them
- Use EXACT format: [number] Title (URL)
- Title should be the actual article/page title from the search results
- URL must be a real web address from the search results (http:// or https://)
- Copy URLs exactly as they appear in the search results
- If you see URLs in the search results, you MUST include them
- Do NOT use placeholder text like "Source title" or "no url"
- Do NOT make up URLs - only use ones found in the search results
- Make titles descriptive and specific to the content
- Include at least 3 sources with real URLs if available in search results

Be specific and use information from the search results.`))

// RenderPrompt fills the research prompt with the query and the joined
// search results.
func RenderPrompt(query, searchResults string) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Query         string
		SearchResults string
	}{Query: query, SearchResults: searchResults}
	if err := researchPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
