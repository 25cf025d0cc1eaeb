package richtext

import "regexp"

// markupPattern matches anything shaped like a start or end tag:
// "<", an optional "/", an ASCII letter, anything, then ">".
var markupPattern = regexp.MustCompile(`(?is)</?[a-z].*>`)

// LooksLikeMarkup reports whether s contains something shaped like an
// HTML tag and should therefore go through the [Sanitizer] rather than
// be treated as plain text.
//
// It is a heuristic, not a parser: prose such as "use <b> for bold"
// is classified as markup, which is safe because the sanitizer handles
// it. A lone "<" as in "a < b" is not.
func LooksLikeMarkup(s string) bool {
	return markupPattern.MatchString(s)
}
