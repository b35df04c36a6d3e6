package gradscout

import "context"

// FetchResult holds the outcome of fetching a candidate page.
type FetchResult struct {
	// HTML is the response body. Empty when the fetch failed or the
	// server answered with a non-success status.
	HTML string

	// ResolvedURL is the URL after following redirects.
	// Equal to the requested URL when the fetch failed.
	ResolvedURL string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Err describes why HTML is empty. It is informational only.
	Err error
}

// OK reports whether the fetch produced a body.
func (r *FetchResult) OK() bool {
	return r != nil && r.HTML != ""
}

// Fetcher retrieves candidate pages.
type Fetcher interface {
	// Fetch retrieves the URL, following redirects.
	// Fetch never returns an error: network failures, DNS failures and
	// non-success statuses all produce a result with empty HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) *FetchResult
}

// DomainResolver derives the registrable domain of a URL.
type DomainResolver interface {
	// Domain returns the eTLD+1 of the URL's host, or the raw host when
	// it cannot be derived.
	Domain(rawURL string) string
}
