// Package sanitize cleans user-provided text (review and order comments,
// product descriptions) before it is stored.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
	spacesPattern = regexp.MustCompile(`[ \t]+`)
)

// StripHTML drops markup, including tags smuggled in as entities.
func StripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = tagPattern.ReplaceAllString(html.UnescapeString(s), "")
	return strings.TrimSpace(s)
}

// Text strips HTML and collapses blanks inside each line. Line breaks are kept,
// trailing blanks on a line are not.
func Text(s string) string {
	lines := strings.Split(StripHTML(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spacesPattern.ReplaceAllString(line, " "))
	}
	return strings.Join(lines, "\n")
}

// TextPtr applies Text to an optional field.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	out := Text(*s)
	return &out
}
