// Package readability provides a gradscout.Extractor backed by go-readability.
package readability

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/gradscout"
	"github.com/fwojciec/gradscout/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements gradscout.Extractor at compile time.
var _ gradscout.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main content from HTML.
// When readability finds no content the whole document text is used.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the readable region of rawHTML as linearized text.
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
			err = fmt.Errorf("readability: %v", r)
		}
	}()

	article, err := readability.FromReader(strings.NewReader(rawHTML), parseURL(pageURL))
	if err != nil {
		return nil, err
	}

	text, err := goquery.TextFromHTML(article.Content)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, gradscout.Errorf(gradscout.ENOTFOUND, "no readable content")
	}

	return &gradscout.Document{
		Text:   text,
		Title:  strings.Join(strings.Fields(article.Title), " "),
		Method: gradscout.ExtractReadability,
	}, nil
}

// parseURL returns the absolute page URL used to resolve relative links,
// or nil when pageURL is not absolute.
func parseURL(pageURL string) *url.URL {
	u, err := url.Parse(pageURL)
	if err != nil || !u.IsAbs() {
		return nil
	}
	return u
}
