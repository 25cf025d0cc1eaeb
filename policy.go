package richtext

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// attrRule says which attributes survive on an allowed tag.
type attrRule int

const (
	attrNone attrRule = iota // every attribute is stripped
	attrLink                 // href with a safe prefix, and title
)

// Policy is the allowlist applied by a [Sanitizer]: the permitted tags,
// the attributes each of them may keep, and the values forced onto links.
//
// A Policy is immutable. The only instance is the one returned by
// [DefaultPolicy], built once when the package is initialized and shared
// by every Sanitizer.
type Policy struct {
	tags map[string]attrRule

	// linkPrefixes are the lower-case prefixes an href may start with
	// after surrounding whitespace is trimmed.
	linkPrefixes []string

	linkTarget string
	linkRel    string
}

var defaultPolicy = newDefaultPolicy()

func newDefaultPolicy() *Policy {
	p := &Policy{
		tags:         make(map[string]attrRule),
		linkPrefixes: []string{"http://", "https://", "mailto:", "/", "#"},
		linkTarget:   "_blank",
		linkRel:      "noopener noreferrer",
	}
	for _, tag := range []string{
		"p", "br", "hr", "blockquote",
		"ul", "ol", "li",
		"b", "strong", "i", "em", "u",
		"code", "pre", "span",
		"h1", "h2", "h3", "h4", "h5", "h6",
	} {
		p.tags[tag] = attrNone
	}
	p.tags["a"] = attrLink
	return p
}

// DefaultPolicy returns the process-wide allowlist:
//
//	p br hr blockquote ul ol li b strong i em u code pre span a h1-h6
//
// Links keep href (http://, https://, mailto:, / or # only) and title,
// and always get target="_blank" rel="noopener noreferrer". Every other
// allowed tag keeps no attributes at all.
func DefaultPolicy() *Policy {
	return defaultPolicy
}

// AllowedTags returns the permitted tag names in sorted order.
func (p *Policy) AllowedTags() []string {
	return slices.Sorted(maps.Keys(p.tags))
}

// AllowsTag reports whether tag is permitted. The comparison ignores case.
func (p *Policy) AllowsTag(tag string) bool {
	_, ok := p.tags[strings.ToLower(tag)]
	return ok
}

// SafeHref reports whether v may be kept as the href of a link.
func (p *Policy) SafeHref(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, prefix := range p.linkPrefixes {
		if strings.HasPrefix(v, prefix) {
			return true
		}
	}
	return false
}

// Bluemonday returns a bluemonday policy for the same allowlist.
// It is the first stage of [EngineBluemonday]; link target and rel are
// left to the tree pass that follows it.
func (p *Policy) Bluemonday() *bluemonday.Policy {
	bm := bluemonday.NewPolicy()
	bm.AllowElements(p.AllowedTags()...)
	bm.AllowAttrs("href").Matching(p.hrefPattern()).OnElements("a")
	bm.AllowAttrs("title").OnElements("a")
	bm.AllowURLSchemes("http", "https", "mailto")
	bm.AllowRelativeURLs(true)
	return bm
}

func (p *Policy) hrefPattern() *regexp.Regexp {
	quoted := make([]string, len(p.linkPrefixes))
	for i, prefix := range p.linkPrefixes {
		quoted[i] = regexp.QuoteMeta(prefix)
	}
	return regexp.MustCompile(`(?i)^\s*(` + strings.Join(quoted, "|") + `)`)
}

// filterAttrs returns the attributes of the allowed element tag that
// survive p. It reuses the backing array of attrs.
func (p *Policy) filterAttrs(tag string, attrs []html.Attribute) []html.Attribute {
	rule := p.tags[tag]
	out := attrs[:0]
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		switch {
		case a.Namespace != "":
			continue
		case strings.HasPrefix(key, "on"), key == "style":
			// Event handlers and inline styles never survive.
			continue
		case rule != attrLink:
			continue
		case key == "href":
			if !p.SafeHref(a.Val) {
				continue
			}
		case key == "title":
		default:
			continue
		}
		out = append(out, html.Attribute{Key: key, Val: a.Val})
	}
	return out
}
