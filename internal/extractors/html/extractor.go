package html

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/custodia-labs/docstats/internal/core/domain"
	"github.com/custodia-labs/docstats/internal/core/ports/driven"
	"github.com/custodia-labs/docstats/internal/normaliser"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// boilerplateSelectors are removed from the document before text is collected.
// They contribute no meaningful prose to a readability score.
var boilerplateSelectors = []string{
	"head", "script", "style", "noscript", "template",
	"svg", "canvas", "iframe", "object", "embed",
	"video", "audio", "picture",
	"nav", "footer", "aside",
	"form", "button", "select", "textarea", "input",
	"[hidden]", "[aria-hidden=true]",
	"[role=navigation]", "[role=banner]", "[role=contentinfo]", "[role=complementary]",
	".sidebar", ".menu", ".navigation", ".navbar", ".breadcrumb", ".breadcrumbs",
	".ads", ".advertisement", ".share", ".social",
	"[id*=cookie]", "[class*=cookie]", "[id*=consent]", "[class*=consent]", "[class*=gdpr]",
}

// contentRoots are tried in order; the first with visible text wins.
var contentRoots = []string{"article", "main", "[role=main]", "body"}

// protectedRoots are never removed as boilerplate, even when a class or id
// matches (consent plugins tag <body> with "cookie" classes).
const protectedRoots = "html, body, article, main, [role=main]"

// blockElements start and end a paragraph.
var blockElements = map[string]bool{
	"address": true, "article": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true,
	"figure": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "ol": true, "p": true, "pre": true, "section": true,
	"table": true, "tr": true, "ul": true, "caption": true, "summary": true,
	"details": true,
}

// Extractor handles HTML documents.
type Extractor struct{}

// New creates a new HTML extractor.
func New() *Extractor {
	return &Extractor{}
}

// Class returns the content class this extractor handles.
func (e *Extractor) Class() domain.ContentClass {
	return domain.ContentHTML
}

// Origin returns the provenance recorded for HTML documents.
func (e *Extractor) Origin() domain.Origin {
	return domain.OriginHTML
}

// Extract returns the main-content text of an HTML document.
// Malformed markup is parsed best-effort; only an empty result is an error.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	doc, err := goquery.NewDocumentFromReader(decode(raw.Content, raw.MIMEType))
	if err != nil {
		return "", fmt.Errorf("%w: parsing HTML: %v", domain.ErrExtractionFailure, err)
	}

	text := FromDocument(doc)
	if text == "" {
		return "", fmt.Errorf("%w: no text content found in HTML", domain.ErrExtractionFailure)
	}
	return text, nil
}

// FromDocument strips boilerplate from doc and returns the normalised text
// of its main content. It returns "" when nothing readable remains.
func FromDocument(doc *goquery.Document) string {
	doc.Find(strings.Join(boilerplateSelectors, ", ")).
		Not(protectedRoots).
		FilterFunction(func(_ int, s *goquery.Selection) bool {
			// Wrappers around the main content stay.
			return s.Find("article, main, [role=main]").Length() == 0
		}).
		Remove()
	// Page-level headers are chrome; headers inside an article carry its title.
	doc.Find("header").Not("article header, main header").Remove()

	for _, sel := range contentRoots {
		var text string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text = collect(s)
			return text == ""
		})
		if text != "" {
			return text
		}
	}
	return collect(doc.Selection)
}

// decode converts content to UTF-8 using the declared charset, a <meta>
// declaration, or byte-order marks. On failure the bytes are used as-is.
func decode(content []byte, contentType string) io.Reader {
	r, err := charset.NewReader(bytes.NewReader(content), contentType)
	if err != nil {
		return bytes.NewReader(content)
	}
	return r
}

// collect walks the selection's nodes in document order and returns their
// normalised text.
func collect(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		collectText(&b, n, false)
	}
	return normaliser.Normalise(b.String())
}

// collectText appends the text under n. Inline whitespace collapses to a
// single space; block elements are separated by newlines.
func collectText(b *strings.Builder, n *html.Node, inPre bool) {
	switch n.Type {
	case html.TextNode:
		if inPre {
			b.WriteString(n.Data)
			return
		}
		b.WriteString(collapseSpaces(n.Data))
		return
	case html.CommentNode, html.DoctypeNode:
		return
	}

	name := ""
	if n.Type == html.ElementNode {
		name = strings.ToLower(n.Data)
		if name == "pre" {
			inPre = true
		}
		if blockElements[name] {
			b.WriteByte('\n')
		} else if name == "td" || name == "th" {
			b.WriteByte(' ')
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c, inPre)
	}

	if blockElements[name] {
		b.WriteByte('\n')
	}
}

// collapseSpaces replaces each run of whitespace, including newlines that
// only reflect source formatting, with a single space.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
