package text

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTitleFromText_FirstSevenWordsCapitalized(t *testing.T) {
	out := TitleFromText("what is the capital of france and why")
	require.Equal(t, "What Is The Capital Of France And", out)
}

func TestTitleFromText_Empty(t *testing.T) {
	require.Equal(t, "New Chat", TitleFromText(""))
}

func TestTitleFromText_StripsMarkupAndCollapsesWhitespace(t *testing.T) {
	out := TitleFromText("  `how`   do  *closures*  work  ")
	require.Equal(t, "How Do Closures Work", out)
}

func TestTitleFromText_Truncates(t *testing.T) {
	out := TitleFromText("incomprehensibilities incomprehensibilities incomprehensibilities")
	r := []rune(out)
	require.LessOrEqual(t, len(r), 50)
	require.Equal(t, '…', r[len(r)-1])
}

func TestTitleFromText_ShortInputNoEllipsis(t *testing.T) {
	out := TitleFromText("hello there")
	require.Equal(t, "Hello There", out)
}
