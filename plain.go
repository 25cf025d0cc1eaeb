package richtext

import (
	"regexp"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Plain is content rendered as plain text. Exactly one of Text and
// Paragraphs is meaningful: a single block keeps the content unchanged
// in Text, and multi-line content is split into Paragraphs.
type Plain struct {
	Text       string   // content of a single block
	Paragraphs []string // one entry per non-blank line, in order
}

// FormatPlain splits s on line breaks ("\n" or "\r\n") and drops blank
// lines. If two or more lines remain they become Paragraphs, otherwise
// s is returned whole, unwrapped, as Text. Kept lines are not trimmed.
func FormatPlain(s string) Plain {
	var lines []string
	for _, line := range lineBreak.Split(s, -1) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) <= 1 {
		return Plain{Text: s}
	}
	return Plain{Paragraphs: lines}
}

// IsBlock reports whether p is a single unwrapped block.
func (p Plain) IsBlock() bool {
	return len(p.Paragraphs) == 0
}

var paragraphs = template.Must(template.New("paragraphs").Parse(`{{range .}}<p>{{.}}</p>{{end}}`))

// HTML returns p as escaped HTML: a block as bare text, paragraphs each
// wrapped in <p>. Nothing in p is ever interpreted as markup.
func (p Plain) HTML() safehtml.HTML {
	if p.IsBlock() {
		return safehtml.HTMLEscaped(p.Text)
	}
	h, err := paragraphs.ExecuteToHTML(p.Paragraphs)
	if err != nil {
		// Only a write failure could get here, and ExecuteToHTML
		// writes to memory.
		return safehtml.HTML{}
	}
	return h
}
