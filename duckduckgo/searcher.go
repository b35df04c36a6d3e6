// Package duckduckgo implements gradscout.Searcher by scraping the
// DuckDuckGo HTML endpoint.
package duckduckgo

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gradscout"
	"github.com/microcosm-cc/bluemonday"
)

// DefaultBaseURL is the DuckDuckGo HTML-only search endpoint.
const DefaultBaseURL = "https://html.duckduckgo.com/html/"

// DefaultTimeout is the default timeout for a search request.
const DefaultTimeout = 20 * time.Second

// userAgent mimics a desktop browser; the HTML endpoint serves a
// challenge page to unknown agents.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Ensure Searcher implements gradscout.Searcher at compile time.
var _ gradscout.Searcher = (*Searcher)(nil)

// Searcher runs queries against DuckDuckGo.
type Searcher struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
	policy  *bluemonday.Policy
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithBaseURL overrides the search endpoint.
func WithBaseURL(u string) Option {
	return func(s *Searcher) {
		s.baseURL = u
	}
}

// WithTimeout sets the timeout for search requests.
func WithTimeout(d time.Duration) Option {
	return func(s *Searcher) {
		s.timeout = d
	}
}

// NewSearcher creates a new Searcher.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		policy:  bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = &http.Client{Timeout: s.timeout}
	return s
}

// Host returns the host of the search endpoint, used to key rate limiting.
func (s *Searcher) Host() string {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return s.baseURL
	}
	return u.Host
}

// Search returns at most max organic results for the query. Ads are
// skipped and redirect links are unwrapped to their target URL.
func (s *Searcher) Search(ctx context.Context, query string, max int) ([]gradscout.Hit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, gradscout.Errorf(gradscout.EINVALID, "empty search query")
	}

	endpoint, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, gradscout.Errorf(gradscout.EINVALID, "invalid search endpoint %q", s.baseURL)
	}
	params := endpoint.Query()
	params.Set("q", query)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search HTTP %d for %q", resp.StatusCode, query)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	return s.parseResults(doc, max), nil
}

// parseResults reads hits out of a results page in ranking order.
func (s *Searcher) parseResults(doc *goquery.Document, max int) []gradscout.Hit {
	var hits []gradscout.Hit
	doc.Find("div.result").EachWithBreak(func(_ int, result *goquery.Selection) bool {
		if max > 0 && len(hits) >= max {
			return false
		}
		if result.HasClass("result--ad") {
			return true
		}

		link := result.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		target := unwrapRedirect(href)
		if target == "" {
			return true
		}

		hits = append(hits, gradscout.Hit{
			URL:     target,
			Title:   s.clean(link),
			Snippet: s.clean(result.Find(".result__snippet").First()),
		})
		return true
	})
	return hits
}

// clean returns the plain text of a selection with markup removed and
// whitespace collapsed.
func (s *Searcher) clean(sel *goquery.Selection) string {
	raw, err := sel.Html()
	if err != nil {
		return ""
	}
	text := html.UnescapeString(s.policy.Sanitize(raw))
	return strings.Join(strings.Fields(text), " ")
}

// unwrapRedirect returns the destination of a DuckDuckGo redirect link
// ("//duckduckgo.com/l/?uddg=..."), or href itself when it is a direct
// absolute http(s) link.
func unwrapRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" && !strings.HasSuffix(u.Host, "duckduckgo.com") {
		return u.String()
	}
	return ""
}
