package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairKatex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no math", "plain text", "plain text"},
		{"inline kept", "area $a^2$ here", "area $a^2$ here"},
		{"inline joined", "x $a +\nb$ y", "x $a +b$ y"},
		{"display newlines", "$$\na = b\n$$", "$$a = b$$"},
		{"display trailing space", "$$ x  $$", "$$ x$$"},
		{"two spans", "$a$ and\n$b\n+c$", "$a$ and\n$b+c$"},
		{"space after opening", "pay $ 5 and $x$", "pay $ 5 and $x$"},
		{"space before closing", "x $a + b $ y", "x $a + b $ y"},
		{"closing before digit", "from $5 to $10\nper day", "from $5 to $10\nper day"},
		{"dollar amounts across paragraphs", "Costs $5 today.\n\nTomorrow it is $10.", "Costs $5 today.\n\nTomorrow it is $10."},
		{"display stops at blank line", "$$a\n\nb$$", "$$a\n\nb$$"},
		{"escaped dollar", "\\$a\nb$", "\\$a\nb$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RepairKatex(tt.in))
		})
	}
}

func TestMarkdownConvert(t *testing.T) {
	c := NewMarkdown()

	out, err := c.Convert("# Title\n\nSome **bold** text.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<table>")
}

func TestMarkdownKeepsDollarAmounts(t *testing.T) {
	out, err := NewMarkdown().Convert("Costs $5 today.\n\nTomorrow it is $10.")
	require.NoError(t, err)
	assert.Equal(t, "<p>Costs $5 today.</p>\n<p>Tomorrow it is $10.</p>\n", out)
}

func TestMarkdownKeepsRawHTML(t *testing.T) {
	out, err := NewMarkdown().Convert(`<img src="data:image/png;base64,AAAA">`)
	require.NoError(t, err)
	assert.Contains(t, out, `<img src="data:image/png;base64,AAAA">`)
}

func TestIdentity(t *testing.T) {
	out, err := Identity{}.Convert("# raw")
	require.NoError(t, err)
	assert.Equal(t, "# raw", out)
}

func TestToMarkdown(t *testing.T) {
	md, err := ToMarkdown("<p>Some <strong>bold</strong> text</p>")
	require.NoError(t, err)
	assert.Contains(t, md, "**bold**")

	md, err = ToMarkdown("  ")
	require.NoError(t, err)
	assert.Empty(t, md)
}

func TestMarkdownRoundTrip(t *testing.T) {
	html, err := NewMarkdown().Convert("Hello *world*")
	require.NoError(t, err)
	md, err := ToMarkdown(html)
	require.NoError(t, err)
	assert.Equal(t, "Hello *world*", strings.TrimSpace(md))
}
