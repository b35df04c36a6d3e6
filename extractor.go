package gradscout

import "unicode/utf8"

// MinTextLength is the minimum number of characters of extracted text
// required before a page is scored.
const MinTextLength = 500

// ExtractMethod identifies the strategy that produced a Document.
type ExtractMethod string

// Extraction strategies.
const (
	ExtractNone        ExtractMethod = "none"
	ExtractReadability ExtractMethod = "readability"
	ExtractTrafilatura ExtractMethod = "trafilatura"
	ExtractFallback    ExtractMethod = "fallback"
)

// Document holds the readable content extracted from a page.
type Document struct {
	// Text is the main content, one block of text per line.
	Text string

	// Title is a best-effort page title, possibly empty.
	Title string

	// Method records which extraction strategy produced the document.
	Method ExtractMethod
}

// Len returns the length of the text in characters.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return utf8.RuneCountInString(d.Text)
}

// Scoreable reports whether the document has enough text to be scored.
func (d *Document) Scoreable() bool {
	return d.Len() >= MinTextLength
}

// Extractor extracts the main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML fetched from pageURL.
	// Empty HTML yields an empty document. Extract never fails: when the
	// structural heuristic cannot find content it falls back to the text of
	// the whole document.
	Extract(html, pageURL string) *Document
}
