package richtext_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/DipjyotiTCS/richtext"
	"github.com/google/go-cmp/cmp"
)

func TestRender(t *testing.T) {
	empty := ""
	for _, tt := range []struct {
		name string
		got  richtext.Rendered
		want richtext.Rendered
		html string
	}{
		{
			name: "markup",
			got:  richtext.Render(`<b onclick="x">x</b>`),
			want: richtext.Rendered{Kind: richtext.KindMarkup, Markup: "<b>x</b>"},
			html: "<b>x</b>",
		},
		{
			name: "single line",
			got:  richtext.Render("Hello world"),
			want: richtext.Rendered{Kind: richtext.KindPlain, Plain: richtext.Plain{Text: "Hello world"}},
			html: "Hello world",
		},
		{
			name: "lines",
			got:  richtext.Render("Line1\n\nLine2"),
			want: richtext.Rendered{Kind: richtext.KindPlain, Plain: richtext.Plain{Paragraphs: []string{"Line1", "Line2"}}},
			html: "<p>Line1</p><p>Line2</p>",
		},
		{
			name: "prose with angle bracket",
			got:  richtext.Render("a < b"),
			want: richtext.Rendered{Kind: richtext.KindPlain, Plain: richtext.Plain{Text: "a < b"}},
			html: "a &lt; b",
		},
		{
			name: "nil",
			got:  richtext.RenderOptional(nil),
			want: richtext.Rendered{Kind: richtext.KindPlain, Plain: richtext.Plain{Text: ""}},
			html: "",
		},
		{
			name: "non-nil",
			got:  richtext.RenderOptional(&empty),
			want: richtext.Rendered{Kind: richtext.KindPlain, Plain: richtext.Plain{Text: ""}},
			html: "",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if h := tt.got.HTML().String(); h != tt.html {
				t.Errorf("HTML() = %q, want %q", h, tt.html)
			}
			if h := string(tt.got.TemplateHTML()); h != tt.html {
				t.Errorf("TemplateHTML() = %q, want %q", h, tt.html)
			}
		})
	}
}

func TestRenderAll(t *testing.T) {
	var in, want []string
	for i := range 50 {
		in = append(in, fmt.Sprintf(`<p onclick="x">msg %d</p>`, i))
		want = append(want, fmt.Sprintf(`<p>msg %d</p>`, i))
	}
	in = append(in, "plain\ntext")
	want = append(want, "<p>plain</p><p>text</p>")

	out, err := richtext.RenderAll(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, r := range out {
		got = append(got, r.HTML().String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderAll mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := richtext.RenderAll(ctx, []string{"a", "<b>b</b>"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RenderAll with canceled context: err = %v, want context.Canceled", err)
	}
}

func TestRenderMarkdown(t *testing.T) {
	got := richtext.RenderMarkdown("**bold** and [x](javascript:void) and [y](https://go.dev)\n\nhi <script>x()</script> <!-- c -->").String()
	for _, want := range []string{"<strong>bold</strong>", `href="https://go.dev"`, `target="_blank"`, "hi "} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderMarkdown output missing %q:\n%s", want, got)
		}
	}
	for _, bad := range []string{"javascript", "<script", "<!--"} {
		if strings.Contains(got, bad) {
			t.Errorf("RenderMarkdown output contains %q:\n%s", bad, got)
		}
	}
	checkSafe(t, got)
}
