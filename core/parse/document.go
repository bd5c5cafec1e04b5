// Package parse turns raw listing markup into a read-only queryable document.
// Parsing is tolerant: malformed or partial HTML still yields a tree, only
// empty input is rejected.
package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrEmptyMarkup is returned for empty or whitespace-only input.
var ErrEmptyMarkup = errors.New("empty markup")

// skipText lists elements whose text never belongs to the visible page.
var skipText = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// Document is a parsed page. It is never mutated after Parse returns.
type Document struct {
	doc  *goquery.Document
	text string
}

// Parse parses markup into a Document.
func Parse(markup string) (*Document, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, ErrEmptyMarkup
	}

	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	d := &Document{doc: goquery.NewDocumentFromNode(root)}
	d.text = visibleText(root)
	return d, nil
}

// First returns the first element matched by m.
func (d *Document) First(m goquery.Matcher) (*goquery.Selection, bool) {
	sel := d.doc.FindMatcher(m).First()
	return sel, sel.Length() > 0
}

// All returns every element matched by m in document order.
func (d *Document) All(m goquery.Matcher) []*goquery.Selection {
	sel := d.doc.FindMatcher(m)
	out := make([]*goquery.Selection, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}

// Text returns the visible text of the whole document, one text node per
// line, with script and style content left out.
func (d *Document) Text() string {
	return d.text
}

func visibleText(root *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipText[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if b.Len() > 0 {
					b.WriteByte('\n')
				}
				b.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return b.String()
}
