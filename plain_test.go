package richtext_test

import (
	"testing"

	"github.com/DipjyotiTCS/richtext"
	"github.com/google/go-cmp/cmp"
)

func TestFormatPlain(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want richtext.Plain
	}{
		{"", richtext.Plain{Text: ""}},
		{"Hello world", richtext.Plain{Text: "Hello world"}},
		{"\n\nonly\n\n", richtext.Plain{Text: "\n\nonly\n\n"}},
		{"Line1\nLine2", richtext.Plain{Paragraphs: []string{"Line1", "Line2"}}},
		{"Line1\n\nLine2", richtext.Plain{Paragraphs: []string{"Line1", "Line2"}}},
		{"Line1\r\n  \r\nLine2\r\n", richtext.Plain{Paragraphs: []string{"Line1", "Line2"}}},
		{"  indented\nnext ", richtext.Plain{Paragraphs: []string{"  indented", "next "}}},
		{"a <b> c\nd", richtext.Plain{Paragraphs: []string{"a <b> c", "d"}}},
	} {
		got := richtext.FormatPlain(tt.in)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("FormatPlain(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestPlain_HTML(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want string
	}{
		{"Hello world", "Hello world"},
		{"a < b", "a &lt; b"},
		{"Line1\n\nLine2", "<p>Line1</p><p>Line2</p>"},
		{"x < y\n<b>z</b>", "<p>x &lt; y</p><p>&lt;b&gt;z&lt;/b&gt;</p>"},
	} {
		p := richtext.FormatPlain(tt.in)
		if got := p.HTML().String(); got != tt.want {
			t.Errorf("FormatPlain(%q).HTML() = %q, want %q", tt.in, got, tt.want)
		}
	}
}
