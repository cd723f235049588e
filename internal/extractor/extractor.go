// Package extractor turns fetched markup into the concatenated Chinese text
// the rest of the pipeline works on.
package extractor

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// ErrNoChineseText is returned when no text run contains a CJK ideograph.
var ErrNoChineseText = errors.New("no chinese text found")

// Mode selects which part of the document text is taken from.
type Mode string

const (
	// ModeAll takes every visible text run in the page.
	ModeAll Mode = "all"
	// ModeArticle narrows the page to its main article with readability first.
	ModeArticle Mode = "article"
)

// skipped elements hold code or inert markup rather than visible text.
var skipped = map[string]struct{}{
	"script":   {},
	"style":    {},
	"template": {},
}

// Extractor pulls Chinese text out of HTML.
type Extractor struct {
	mode Mode
}

// New creates an extractor for the given mode. Unknown modes behave like ModeAll.
func New(mode Mode) *Extractor {
	if mode != ModeArticle {
		mode = ModeAll
	}
	return &Extractor{mode: mode}
}

// Extract returns every text run containing Chinese, concatenated with no
// separator. It fails with ErrNoChineseText when nothing qualifies.
func (e *Extractor) Extract(pageURL, markup string) (string, error) {
	source := markup
	if e.mode == ModeArticle {
		if content, err := articleContent(pageURL, markup); err != nil {
			slog.Warn("readability failed, using full document", "url", pageURL, "error", err)
		} else {
			source = content
		}
	}

	doc, err := Parse(source)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, run := range TextRuns(doc) {
		if ContainsChinese(run) {
			sb.WriteString(run)
		}
	}

	if sb.Len() == 0 {
		return "", ErrNoChineseText
	}
	return sb.String(), nil
}

// Parse builds a document with scripting disabled, so noscript content is
// parsed as markup and only its text reaches TextRuns.
func Parse(markup string) (*goquery.Document, error) {
	root, err := html.ParseWithOptions(strings.NewReader(markup), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// TextRuns returns the whitespace-trimmed, non-empty text nodes of a document
// in document order, skipping script, style and template content.
func TextRuns(doc *goquery.Document) []string {
	var runs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" {
				runs = append(runs, text)
			}
			return
		case html.ElementNode:
			if _, skip := skipped[n.Data]; skip {
				return
			}
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return runs
}

// IsCJK reports whether r is in the CJK Unified Ideographs block (U+4E00–U+9FFF).
func IsCJK(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// ContainsChinese reports whether s has at least one CJK Unified Ideograph.
func ContainsChinese(s string) bool {
	return strings.IndexFunc(s, IsCJK) >= 0
}

// articleContent runs readability over the page and returns the main
// content as HTML.
func articleContent(pageURL, markup string) (string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(markup), parsedURL)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(article.Content) == "" {
		return "", errors.New("readability returned no content")
	}

	// Keep the title; readability drops it from Content.
	if article.Title != "" {
		return "<h1>" + html.EscapeString(article.Title) + "</h1>" + article.Content, nil
	}
	return article.Content, nil
}
