package richtext

import (
	"context"
	htmltemplate "html/template"
	"runtime"

	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Kind says which path [Render] took.
type Kind int

const (
	KindPlain  Kind = iota // content was plain text
	KindMarkup             // content looked like markup and was sanitized
)

func (k Kind) String() string {
	if k == KindMarkup {
		return "markup"
	}
	return "plain"
}

// Rendered is content ready for display.
type Rendered struct {
	Kind   Kind
	Markup string // sanitized markup, if Kind is KindMarkup
	Plain  Plain  // plain text, if Kind is KindPlain
}

// HTML returns r as trusted HTML.
func (r Rendered) HTML() safehtml.HTML {
	if r.Kind == KindMarkup {
		return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(r.Markup)
	}
	return r.Plain.HTML()
}

// TemplateHTML returns r as an html/template value, for pages that are
// not built with safehtml templates.
func (r Rendered) TemplateHTML() htmltemplate.HTML {
	return htmltemplate.HTML(r.HTML().String())
}

// Render renders content with the default sanitizer.
// See [Sanitizer.Render].
func Render(content string) Rendered {
	return defaultSanitizer.Render(content)
}

// RenderOptional is like [Render] but accepts an absent value,
// which renders as the empty string.
func RenderOptional(content *string) Rendered {
	if content == nil {
		return Render("")
	}
	return Render(*content)
}

// Render decides whether content is markup or plain text. Markup is
// sanitized; plain text is split into paragraphs by [FormatPlain].
func (s *Sanitizer) Render(content string) Rendered {
	if LooksLikeMarkup(content) {
		return Rendered{Kind: KindMarkup, Markup: s.Sanitize(content)}
	}
	return Rendered{Kind: KindPlain, Plain: FormatPlain(content)}
}

// RenderAll renders with the default sanitizer.
// See [Sanitizer.RenderAll].
func RenderAll(ctx context.Context, contents []string) ([]Rendered, error) {
	return defaultSanitizer.RenderAll(ctx, contents)
}

// RenderAll renders every entry of contents, such as the messages of a
// chat transcript, in parallel. The result is in the same order as
// contents. The only possible error is cancellation of ctx.
func (s *Sanitizer) RenderAll(ctx context.Context, contents []string) ([]Rendered, error) {
	out := make([]Rendered, len(contents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range contents {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = s.Render(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "render all")
	}
	return out, nil
}
