package utils

import (
	"html"
	"html/template"
	"regexp"
	"sort"
	"strings"
)

const highlightOpen = `<span class="keyword-highlight">`
const highlightClose = `</span>`

// HighlightKeywords escapes text for HTML and wraps every
// case-insensitive occurrence of every keyword in a highlight span.
// Longer keywords are applied first so that a match is not fragmented
// by a shorter keyword contained within it. Matching runs on the raw
// text and each segment is escaped on output, so a keyword can never
// match inside an entity the escaping itself inserted. Purely
// presentational: it has no effect on matching or ordering.
func HighlightKeywords(text string, keywords []string) template.HTML {
	sorted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw != "" {
			sorted = append(sorted, kw)
		}
	}
	if text == "" || len(sorted) == 0 {
		return template.HTML(html.EscapeString(text))
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	// Single alternation, longest keyword first: Go's regexp prefers the
	// leftmost alternative, so a shorter keyword cannot split a longer one.
	quoted := make([]string, len(sorted))
	for i, kw := range sorted {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	re, err := regexp.Compile(`(?i)` + strings.Join(quoted, "|"))
	if err != nil {
		return template.HTML(html.EscapeString(text))
	}

	var b strings.Builder
	last := 0
	for _, m := range re.FindAllStringIndex(text, -1) {
		b.WriteString(html.EscapeString(text[last:m[0]]))
		b.WriteString(highlightOpen)
		b.WriteString(html.EscapeString(text[m[0]:m[1]]))
		b.WriteString(highlightClose)
		last = m[1]
	}
	b.WriteString(html.EscapeString(text[last:]))
	return template.HTML(b.String())
}
