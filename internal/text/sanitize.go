// Package text implements the response-normalization pipeline: markup
// sanitization, structural formatting and title inference. Everything here is
// a pure function over strings.
package text

import "regexp"

var (
	boldRe      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe    = regexp.MustCompile(`\*(.*?)\*`)
	underlineRe = regexp.MustCompile(`_(.*?)_`)
	headingRe   = regexp.MustCompile(`#+\s?`)
	fencedRe    = regexp.MustCompile("```[\\s\\S]*?```")
	inlineRe    = regexp.MustCompile("`([^`]*)`")
)

// Sanitize strips lightweight markdown markup from raw model output, leaving
// plain prose. Emphasis and inline-code markers are removed with their content
// kept; fenced code blocks are dropped entirely.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	s := boldRe.ReplaceAllString(raw, "${1}")
	s = italicRe.ReplaceAllString(s, "${1}")
	s = underlineRe.ReplaceAllString(s, "${1}")
	s = headingRe.ReplaceAllString(s, "")
	s = fencedRe.ReplaceAllString(s, "")
	s = inlineRe.ReplaceAllString(s, "${1}")
	return s
}
