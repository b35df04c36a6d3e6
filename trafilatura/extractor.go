// Package trafilatura provides a gradscout.Extractor backed by go-trafilatura.
package trafilatura

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/gradscout"
	"github.com/fwojciec/gradscout/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements gradscout.Extractor at compile time.
var _ gradscout.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main content from HTML.
// When trafilatura finds no content the whole document text is used.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of rawHTML as linearized text.
func (e *Extractor) Extract(rawHTML, pageURL string) *gradscout.Document {
	if strings.TrimSpace(rawHTML) == "" {
		return &gradscout.Document{Method: gradscout.ExtractNone}
	}

	doc, err := e.extract(rawHTML, pageURL)
	if err != nil {
		return goquery.Fallback(rawHTML)
	}
	return doc
}

func (e *Extractor) extract(rawHTML, pageURL string) (doc *gradscout.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("trafilatura: %v", r)
		}
	}()

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	text := goquery.TextFromNode(result.ContentNode)
	if text == "" {
		return nil, gradscout.Errorf(gradscout.ENOTFOUND, "no readable content")
	}

	return &gradscout.Document{
		Text:   text,
		Title:  strings.Join(strings.Fields(result.Metadata.Title), " "),
		Method: gradscout.ExtractTrafilatura,
	}, nil
}
