package richtext_test

import (
	"testing"

	"github.com/DipjyotiTCS/richtext"
)

func TestLooksLikeMarkup(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want bool
	}{
		{"", false},
		{"Hello world", false},
		{"a < b", false},
		{"a < b > c", false},
		{"1 <2> 3", false},
		{"use <b>bold</b> text", true},
		{"</p>", true},
		{"<B>", true},
		{"x <a\nhref='/'>y", true},
		{"3 <x and y> 2", true},
		{"<p", false},
	} {
		if got := richtext.LooksLikeMarkup(tt.in); got != tt.want {
			t.Errorf("LooksLikeMarkup(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
