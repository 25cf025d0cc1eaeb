// Package richtext renders untrusted text, which may carry a small
// subset of HTML, into markup that is safe to inject into a page.
//
// # Overview
//
// Content from an upstream service (article bodies, generated analysis,
// chat replies) arrives as a string of unknown shape. [Render] decides
// what it is:
//   - If it contains anything tag-shaped ([LooksLikeMarkup]) it is parsed
//     with golang.org/x/net/html and rewritten by a [Sanitizer].
//   - Otherwise it is plain text and [FormatPlain] turns its non-blank
//     lines into paragraphs.
//
// Either way [Rendered.HTML] yields a safehtml.HTML value.
//
// # Policy
//
// The allowlist is fixed ([DefaultPolicy]):
//   - p, br, hr, blockquote, ul, ol, li, b, strong, i, em, u, code, pre,
//     span, a and h1 to h6 are kept.
//   - Any other element is replaced by its text. Its attributes and any
//     markup inside it are lost, the words are not.
//   - Comments are removed.
//   - No attribute survives except href and title on a. An href must
//     start with http://, https://, mailto:, / or #.
//   - Every a gets target="_blank" and rel="noopener noreferrer".
//
// # Failure
//
// Sanitizing never returns an error. If the input cannot be parsed or
// the result cannot be serialized, the output is the empty string,
// never the raw input.
//
// # Thread Safety
//
// The policy is read-only and every call builds its own tree, so all
// functions and [Sanitizer] methods are safe for concurrent use.
// [RenderAll] renders a batch in parallel.
//
// # Example
//
//	out := richtext.Render(`<p onclick="x()">Hi <script>alert(1)</script></p>`)
//	fmt.Println(out.HTML()) // <p>Hi alert(1)</p>
package richtext
