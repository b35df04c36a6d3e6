// Package goquery provides HTML text linearization and whole-document
// extraction built on goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gradscout"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skippedElements never contribute visible text.
var skippedElements = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Svg:      true,
}

// blockElements end the current line before and after their content.
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Body: true, atom.Br: true, atom.Caption: true, atom.Dd: true,
	atom.Details: true, atom.Dialog: true, atom.Div: true, atom.Dl: true,
	atom.Dt: true, atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true,
	atom.Footer: true, atom.Form: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Html: true, atom.Legend: true,
	atom.Li: true, atom.Main: true, atom.Nav: true, atom.Ol: true,
	atom.Option: true, atom.P: true, atom.Pre: true, atom.Section: true,
	atom.Summary: true, atom.Table: true, atom.Tbody: true, atom.Td: true,
	atom.Tfoot: true, atom.Th: true, atom.Thead: true, atom.Tr: true,
	atom.Ul: true,
}

// Text returns the visible text of the selection with one block-level run
// of text per line. Inline markup is joined into the surrounding run,
// whitespace is collapsed and empty lines are dropped.
func Text(sel *goquery.Selection) string {
	var l linearizer
	for _, n := range sel.Nodes {
		l.walk(n)
	}
	l.flush()
	return strings.Join(l.lines, "\n")
}

// TextFromNode is like Text for a single parsed node.
func TextFromNode(n *html.Node) string {
	if n == nil {
		return ""
	}
	return Text(goquery.NewDocumentFromNode(n).Selection)
}

// TextFromHTML parses an HTML document or fragment and returns its text.
func TextFromHTML(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", gradscout.Errorf(gradscout.EINVALID, "failed to parse HTML: %v", err)
	}
	return Text(doc.Selection), nil
}

// Title returns the document's <title> text with whitespace collapsed.
func Title(doc *goquery.Document) string {
	return collapse(doc.Find("title").First().Text())
}

type linearizer struct {
	lines []string
	cur   strings.Builder
}

func (l *linearizer) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		l.cur.WriteString(n.Data)
		return
	case html.ElementNode:
		if skippedElements[n.DataAtom] {
			return
		}
	case html.DocumentNode:
	default:
		return
	}

	block := n.Type == html.ElementNode && blockElements[n.DataAtom]
	if block {
		l.flush()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		l.walk(c)
	}
	if block {
		l.flush()
	}
}

func (l *linearizer) flush() {
	if line := collapse(l.cur.String()); line != "" {
		l.lines = append(l.lines, line)
	}
	l.cur.Reset()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
