// Package convert turns Joplin markdown bodies into the rich text stored in
// FeatherNotes nodes, and back.
package convert

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter renders a note body to node content.
type Converter interface {
	Convert(body string) (string, error)
}

// Markdown converts CommonMark with GFM extensions to HTML.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown returns a Markdown converter. Raw HTML in bodies is kept.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Convert repairs inline math then renders body to HTML.
func (m *Markdown) Convert(body string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(RepairKatex(body)), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RepairKatex joins each math span onto one line and drops whitespace before
// the closing $$ of display math. Spans follow pandoc's dollar rules: inline
// math opens with $ before a non-space and closes with $ after a non-space
// that is not followed by a digit, and no span crosses a blank line. Dollar
// signs outside such spans, and escaped \$, are left as they are.
func RepairKatex(md string) string {
	var b strings.Builder
	b.Grow(len(md))
	for i := 0; i < len(md); {
		switch {
		case md[i] == '\\' && i+1 < len(md):
			b.WriteString(md[i : i+2])
			i += 2
		case strings.HasPrefix(md[i:], "$$"):
			end := displayEnd(md, i+2)
			if end < 0 {
				b.WriteString("$$")
				i += 2
				continue
			}
			inner := strings.ReplaceAll(md[i+2:end], "\n", "")
			b.WriteString("$$" + strings.TrimRightFunc(inner, unicode.IsSpace) + "$$")
			i = end + 2
		case md[i] == '$':
			end := inlineEnd(md, i+1)
			if end < 0 {
				b.WriteByte('$')
				i++
				continue
			}
			b.WriteString("$" + strings.ReplaceAll(md[i+1:end], "\n", "") + "$")
			i = end + 1
		default:
			b.WriteByte(md[i])
			i++
		}
	}
	return b.String()
}

// displayEnd returns the index of the $$ closing a display span whose body
// starts at start, or -1.
func displayEnd(md string, start int) int {
	for j := start; j < len(md); j++ {
		switch {
		case md[j] == '\\':
			j++
		case blankLineAt(md, j):
			return -1
		case strings.HasPrefix(md[j:], "$$"):
			return j
		}
	}
	return -1
}

// inlineEnd returns the index of the $ closing an inline span whose body
// starts at start, or -1.
func inlineEnd(md string, start int) int {
	if start >= len(md) || isSpace(md[start]) {
		return -1
	}
	for j := start; j < len(md); j++ {
		switch {
		case md[j] == '\\':
			j++
		case blankLineAt(md, j):
			return -1
		case md[j] == '$':
			if isSpace(md[j-1]) || (j+1 < len(md) && isDigit(md[j+1])) {
				continue
			}
			return j
		}
	}
	return -1
}

// blankLineAt reports whether md[j] is a newline followed by a line holding
// only spaces and tabs.
func blankLineAt(md string, j int) bool {
	if md[j] != '\n' {
		return false
	}
	for k := j + 1; k < len(md); k++ {
		switch md[k] {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return true
		}
		return false
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Identity leaves bodies untouched.
type Identity struct{}

func (Identity) Convert(body string) (string, error) { return body, nil }
