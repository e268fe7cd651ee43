package pipeline

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NoteRenderer turns user note text into HTML for the update paragraph.
type NoteRenderer interface {
	RenderNote(note string) (string, error)
}

// RawNote inserts note text exactly as given.
type RawNote struct{}

// RenderNote returns note unchanged.
func (RawNote) RenderNote(note string) (string, error) {
	return note, nil
}

// MarkdownNote renders inline Markdown (emphasis, links, code) and inline
// HTML, keeps only inline tags and balances them, so a note can never break
// out of its paragraph.
type MarkdownNote struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewMarkdownNote creates a MarkdownNote with strikethrough and autolinks.
func NewMarkdownNote() *MarkdownNote {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough, // ~~old~~
			extension.Linkify,       // bare URLs
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(), // author HTML such as <a href>; filtered by policy
		),
	)

	policy := bluemonday.NewPolicy()
	policy.AllowElements("em", "strong", "code", "del", "s", "br")
	policy.AllowAttrs("href").OnElements("a")
	policy.RequireParseableURLs(true)
	policy.AllowRelativeURLs(true)
	policy.AllowURLSchemes("http", "https", "mailto")

	return &MarkdownNote{md: md, policy: policy}
}

// RenderNote converts note to sanitized inline HTML. Paragraph wrappers are
// removed and line breaks collapse to single spaces.
func (m *MarkdownNote) RenderNote(note string) (string, error) {
	if strings.TrimSpace(note) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := m.md.Convert([]byte(note), &buf); err != nil {
		return "", err
	}

	clean, err := balance(strings.TrimSpace(m.policy.Sanitize(buf.String())))
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(clean), " "), nil
}

// noteContext is the element a rendered note is inserted into.
var noteContext = &html.Node{Type: html.ElementNode, Data: "strong", DataAtom: atom.Strong}

// balance re-serializes fragment as parsed inside the note's <strong>, which
// drops stray end tags and closes tags left open.
func balance(fragment string) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), noteContext)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
