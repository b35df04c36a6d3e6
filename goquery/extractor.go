package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gradscout"
)

// Ensure Extractor implements gradscout.Extractor at compile time.
var _ gradscout.Extractor = (*Extractor)(nil)

// Extractor extracts the text of the whole document without pruning
// boilerplate. It is the fallback of the structural extractors.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the document title and every visible text node.
func (e *Extractor) Extract(rawHTML, _ string) *gradscout.Document {
	return Fallback(rawHTML)
}

// Fallback extracts the <title> and the full-document text of rawHTML.
// Empty input, or input that cannot be read, yields an empty document.
func Fallback(rawHTML string) *gradscout.Document {
	if strings.TrimSpace(rawHTML) == "" {
		return &gradscout.Document{Method: gradscout.ExtractNone}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return &gradscout.Document{Method: gradscout.ExtractNone}
	}

	return &gradscout.Document{
		Text:   Text(doc.Selection),
		Title:  Title(doc),
		Method: gradscout.ExtractFallback,
	}
}
