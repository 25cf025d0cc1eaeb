package richtext

import (
	"bytes"

	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// RenderMarkdown converts untrusted markdown to HTML and sanitizes
// the result. Raw HTML in the markdown is dropped by the converter;
// whatever the converter emits is then held to the same allowlist as
// [Sanitizer.Sanitize], so tables and task lists degrade to text.
func (s *Sanitizer) RenderMarkdown(src string) safehtml.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		s.slog.Debug("richtext: markdown conversion failed", "err", err)
		return safehtml.HTMLEscaped(src)
	}
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(s.Sanitize(buf.String()))
}

// RenderMarkdown renders src with the default sanitizer.
// See [Sanitizer.RenderMarkdown].
func RenderMarkdown(src string) safehtml.HTML {
	return defaultSanitizer.RenderMarkdown(src)
}
