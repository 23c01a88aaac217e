package text

import "strings"

// htmlEscaper covers the five HTML-significant characters. The entity
// spellings (&#039;, &quot;) match what clients already render.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes &, <, >, " and ' so model-influenced text can never
// carry live markup.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
