package text

import (
	"regexp"
	"strings"
)

var (
	// listLikeRe detects input that already reads as an enumeration: a line
	// starting with a bullet glyph, a dash, or numerals followed by . or ).
	// Known limits: a sentence ending in a decimal number can trip the
	// sentence splitter, and a leading negative number reads as a bullet.
	listLikeRe = regexp.MustCompile(`(^|\n)\s*([-•\d]+[.)]|[-•])`)

	newlineRunRe    = regexp.MustCompile(`\n+`)
	sentenceEndRe   = regexp.MustCompile(`[.!?]\s+`)
	leadingMarkerRe = regexp.MustCompile(`^[-•\d.)\s]+`)
	headDelimiterRe = regexp.MustCompile(`[:\-—]\s`)
)

const maxHeadWords = 4

// Item is one entry of structured content: an emphasized head and an
// optional trailing detail.
type Item struct {
	Head string
	Tail string
}

// Content is the safe, displayable representation produced by Format. It is
// either an ordered list of items or a single pre-escaped fallback block;
// in both cases every character that originated in the input has been
// HTML-escaped.
type Content struct {
	Items    []Item
	Fallback string
}

// IsList reports whether the content carries structured items rather than a
// fallback block.
func (c Content) IsList() bool {
	return len(c.Items) > 0
}

// HTML renders the content as a numbered list with emphasized heads, or the
// escaped fallback text when no items were extracted.
func (c Content) HTML() string {
	if len(c.Items) == 0 {
		return c.Fallback
	}
	var sb strings.Builder
	sb.WriteString(`<ol class="ai-list">`)
	for _, it := range c.Items {
		sb.WriteString("<li><strong>")
		sb.WriteString(it.Head)
		sb.WriteString("</strong>")
		if it.Tail != "" {
			sb.WriteString(" — ")
			sb.WriteString(it.Tail)
		}
		sb.WriteString("</li>")
	}
	sb.WriteString("</ol>")
	return sb.String()
}

// Format classifies cleaned text as list-like or prose, splits it into
// discrete items and produces structured content. Escaping happens before
// any slicing, so injected markup cannot survive into heads or tails.
// Already-numbered input is re-numbered: original numerals are discarded.
func Format(clean string) Content {
	if clean == "" {
		return Content{}
	}

	var candidates []string
	if listLikeRe.MatchString(clean) {
		for _, l := range newlineRunRe.Split(clean, -1) {
			if t := strings.TrimSpace(l); t != "" {
				candidates = append(candidates, t)
			}
		}
	} else {
		for _, s := range splitSentences(clean) {
			if t := strings.TrimSpace(s); len([]rune(t)) > 1 {
				candidates = append(candidates, t)
			}
		}
	}

	if len(candidates) == 0 {
		return Content{Fallback: EscapeHTML(clean)}
	}

	items := make([]Item, 0, len(candidates))
	for _, line := range candidates {
		safe := leadingMarkerRe.ReplaceAllString(EscapeHTML(line), "")

		if loc := headDelimiterRe.FindStringIndex(safe); loc != nil {
			items = append(items, Item{
				Head: strings.TrimSpace(safe[:loc[0]]),
				Tail: strings.TrimSpace(safe[loc[1]:]),
			})
			continue
		}

		words := strings.Fields(safe)
		n := min(maxHeadWords, len(words))
		items = append(items, Item{
			Head: strings.Join(words[:n], " "),
			Tail: strings.Join(words[n:], " "),
		})
	}
	return Content{Items: items}
}

// splitSentences splits after sentence-ending punctuation followed by
// whitespace, keeping the punctuation with its sentence.
func splitSentences(s string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(s, -1) {
		out = append(out, s[start:loc[0]+1])
		start = loc[1]
	}
	return append(out, s[start:])
}
