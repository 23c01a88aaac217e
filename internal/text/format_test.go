package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat_ProseSplitsOnSentences(t *testing.T) {
	c := Format("Buy milk. Call mom. Go home.")
	require.True(t, c.IsList())
	require.Len(t, c.Items, 3)
	require.Equal(t, "Buy milk.", c.Items[0].Head)
	require.Equal(t, "Call mom.", c.Items[1].Head)
	require.Equal(t, "Go home.", c.Items[2].Head)
	for _, it := range c.Items {
		require.Empty(t, it.Tail)
	}
}

func TestFormat_DelimiterSplitsHeadAndTail(t *testing.T) {
	c := Format("Speed: fast and cheap")
	require.Len(t, c.Items, 1)
	require.Equal(t, "Speed", c.Items[0].Head)
	require.Equal(t, "fast and cheap", c.Items[0].Tail)
	require.Contains(t, c.HTML(), "<strong>Speed</strong> — fast and cheap")
}

func TestFormat_LongSentenceHeadCappedAtFourWords(t *testing.T) {
	c := Format("one two three four five six seven")
	require.Len(t, c.Items, 1)
	require.Equal(t, "one two three four", c.Items[0].Head)
	require.Equal(t, "five six seven", c.Items[0].Tail)
}

func TestFormat_NumberedListIsRenumbered(t *testing.T) {
	c := Format("3. Alpha\n7. Beta\n1. Gamma")
	require.Len(t, c.Items, 3)
	require.Equal(t, "Alpha", c.Items[0].Head)
	require.Equal(t, "Beta", c.Items[1].Head)
	require.Equal(t, "Gamma", c.Items[2].Head)
	html := c.HTML()
	require.True(t, strings.HasPrefix(html, `<ol class="ai-list">`))
	require.NotContains(t, html, "3.")
	require.NotContains(t, html, "7.")
}

func TestFormat_BulletList(t *testing.T) {
	c := Format("- first point\n• second point")
	require.Len(t, c.Items, 2)
	require.Equal(t, "first point", c.Items[0].Head)
	require.Equal(t, "second point", c.Items[1].Head)
}

func TestFormat_EscapesInjectedMarkup(t *testing.T) {
	c := Format("<script>alert('x')</script> is dangerous. Really.")
	html := c.HTML()
	require.Contains(t, html, "&lt;script&gt;")
	require.NotContains(t, html, "<script>")
	require.NotContains(t, html, "alert('x')")
}

func TestFormat_EscapesBeforeHeadSlicing(t *testing.T) {
	// The delimiter scan runs over escaped text, so a quote right before a
	// colon cannot straddle the head boundary unescaped.
	c := Format(`say "hi": to everyone`)
	require.Len(t, c.Items, 1)
	require.Equal(t, "say &quot;hi&quot;", c.Items[0].Head)
	require.Equal(t, "to everyone", c.Items[0].Tail)
}

func TestFormat_EmptyAndWhitespace(t *testing.T) {
	require.Equal(t, "", Format("").HTML())

	c := Format("   ")
	require.False(t, c.IsList())
	require.Equal(t, "   ", c.HTML())
}

func TestFormat_SingleSentenceStillOneItem(t *testing.T) {
	c := Format("Just one thought")
	require.Len(t, c.Items, 1)
}

func TestEscapeHTML(t *testing.T) {
	require.Equal(t, "&amp;&lt;&gt;&quot;&#039;", EscapeHTML(`&<>"'`))
	require.Equal(t, "plain", EscapeHTML("plain"))
}
