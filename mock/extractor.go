package mock

import "github.com/fwojciec/gradscout"

var _ gradscout.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of gradscout.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) *gradscout.Document
}

func (e *Extractor) Extract(html, pageURL string) *gradscout.Document {
	return e.ExtractFn(html, pageURL)
}
