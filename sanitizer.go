package richtext

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Engine selects how a [Sanitizer] processes markup.
type Engine int

const (
	// EngineTree parses the input into a tree and rewrites it.
	// Content of disallowed elements survives as text.
	EngineTree Engine = iota

	// EngineBluemonday first runs the input through a bluemonday
	// policy built from the same allowlist, which drops the content of
	// script and style elements outright, then applies the tree pass.
	EngineBluemonday
)

func (e Engine) String() string {
	switch e {
	case EngineTree:
		return "tree"
	case EngineBluemonday:
		return "bluemonday"
	}
	return fmt.Sprintf("Engine(%d)", int(e))
}

// ParseEngine returns the Engine named name ("tree" or "bluemonday").
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(name) {
	case "", "tree":
		return EngineTree, nil
	case "bluemonday":
		return EngineBluemonday, nil
	}
	return 0, errors.Errorf("unknown engine %q", name)
}

// A Sanitizer applies the [DefaultPolicy] allowlist to markup.
// A Sanitizer is safe for concurrent use.
type Sanitizer struct {
	policy *Policy
	engine Engine
	bm     *bluemonday.Policy
	slog   *slog.Logger
}

// An Option configures a [Sanitizer].
type Option func(*Sanitizer)

// WithEngine selects the sanitizing engine. The default is [EngineTree].
func WithEngine(e Engine) Option {
	return func(s *Sanitizer) { s.engine = e }
}

// WithLogger sets the logger that receives fail-closed diagnostics.
// By default nothing is logged.
func WithLogger(lg *slog.Logger) Option {
	return func(s *Sanitizer) { s.slog = lg }
}

// New returns a Sanitizer for the [DefaultPolicy].
func New(opts ...Option) *Sanitizer {
	s := &Sanitizer{
		policy: DefaultPolicy(),
		slog:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == EngineBluemonday {
		s.bm = s.policy.Bluemonday()
	}
	return s
}

var defaultSanitizer = New()

// Sanitize applies the default policy to input using the tree engine.
// See [Sanitizer.Sanitize].
func Sanitize(input string) string {
	return defaultSanitizer.Sanitize(input)
}

// Sanitize parses input as an HTML fragment and returns it with every
// disallowed element replaced by its text, every disallowed attribute
// removed, and comments dropped. Links are forced to open in a new
// browsing context without opener or referrer.
//
// Sanitize never fails: if the input cannot be processed it returns ""
// rather than anything derived from the raw input.
func (s *Sanitizer) Sanitize(input string) string {
	return s.SanitizeReader(strings.NewReader(input))
}

// SanitizeReader is like [Sanitizer.Sanitize] but reads the markup
// from r. A read error yields "".
func (s *Sanitizer) SanitizeReader(r io.Reader) (out string) {
	defer func() {
		if e := recover(); e != nil {
			s.slog.Error("richtext: sanitizer panic", "panic", e)
			out = ""
		}
	}()
	if s.engine == EngineBluemonday {
		data, err := io.ReadAll(r)
		if err != nil {
			s.slog.Debug("richtext: sanitize failed closed", "engine", s.engine, "err", errors.Wrap(err, "read input"))
			return ""
		}
		r = s.bm.SanitizeReader(bytes.NewReader(data))
	}
	clean, err := s.sanitize(r)
	if err != nil {
		s.slog.Debug("richtext: sanitize failed closed", "engine", s.engine, "err", err)
		return ""
	}
	return clean
}

// SanitizeHTML is like [Sanitizer.Sanitize] but returns the result
// typed as trusted HTML.
func (s *Sanitizer) SanitizeHTML(input string) safehtml.HTML {
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(s.Sanitize(input))
}

// maxPasses bounds how many times output is sanitized again while it
// still changes.
const maxPasses = 4

// sanitize rewrites the markup read from r, then feeds the result back
// through the rewrite until it no longer changes. A single pass can
// leave trees the parser would not build, such as an a inside an a once
// a table between them is flattened; re-parsing repairs them.
func (s *Sanitizer) sanitize(r io.Reader) (string, error) {
	out, err := s.pass(r)
	if err != nil {
		return "", err
	}
	for range maxPasses {
		next, err := s.pass(strings.NewReader(out))
		if err != nil {
			return "", err
		}
		if next == out {
			return out, nil
		}
		out = next
	}
	return "", errors.Errorf("output not stable after %d passes", maxPasses)
}

// pass parses r as a fragment, applies the policy and renders the tree.
func (s *Sanitizer) pass(r io.Reader) (string, error) {
	nodes, err := html.ParseFragment(r, bodyContext())
	if err != nil {
		return "", errors.Wrap(err, "parse fragment")
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	s.rewriteChildren(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", errors.Wrap(err, "render")
	}
	return buf.String(), nil
}

// StripTags returns the text of the HTML fragment htmlStr with all markup
// removed. Entity references are decoded.
func StripTags(htmlStr string) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(htmlStr), bodyContext())
	if err != nil {
		return "", errors.Wrap(err, "parse fragment")
	}
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(flatten(n))
	}
	return sb.String(), nil
}

// rewriteChildren applies the policy to every child of n.
// The child list is copied first because visit may detach or replace
// the child it is given.
func (s *Sanitizer) rewriteChildren(n *html.Node) {
	var kids []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		kids = append(kids, c)
	}
	for _, c := range kids {
		s.visit(c)
	}
}

func (s *Sanitizer) visit(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		return

	case html.CommentNode, html.DoctypeNode:
		n.Parent.RemoveChild(n)
		return

	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if n.Namespace != "" || !s.policy.AllowsTag(tag) {
			replaceWithText(n)
			return
		}
		n.Attr = s.policy.filterAttrs(tag, n.Attr)
		if tag == "a" {
			setAttr(n, "target", s.policy.linkTarget)
			setAttr(n, "rel", s.policy.linkRel)
		}

	default:
		// Raw or error nodes never come out of the parser.
		n.Parent.RemoveChild(n)
		return
	}
	s.rewriteChildren(n)
}

// --- helpers ---------------------------------------------------------

func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

// replaceWithText swaps n for a text node holding its flattened text.
func replaceWithText(n *html.Node) {
	t := &html.Node{Type: html.TextNode, Data: flatten(n)}
	n.Parent.InsertBefore(t, n)
	n.Parent.RemoveChild(n)
}

// flatten returns the concatenated text of every text node under n.
func flatten(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// setAttr sets (or adds) the attribute key=val on n.
func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
