package text

import (
	"strings"
	"unicode"
)

// DefaultTitle is the placeholder title for conversations that have not been
// named yet.
const DefaultTitle = "New Chat"

const (
	titleMaxWords = 7
	titleMaxRunes = 50
	titleCutRunes = 47
)

var titleStripper = strings.NewReplacer(
	"`", "", "_", "", "*", "", "#", "", ">", "",
	"[", "", "]", "", "(", "", ")", "", "{", "", "}", "",
)

// TitleFromText derives a short, readable conversation title from the user's
// first message: markup characters stripped, first seven words, each
// capitalized, truncated to fifty runes.
func TitleFromText(s string) string {
	if s == "" {
		return DefaultTitle
	}
	words := strings.Fields(titleStripper.Replace(s))
	if len(words) > titleMaxWords {
		words = words[:titleMaxWords]
	}
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	title := strings.Join(words, " ")
	if r := []rune(title); len(r) > titleMaxRunes {
		return string(r[:titleCutRunes]) + "…"
	}
	return title
}
