package crawl

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/gradscout"
)

// Collector defaults.
const (
	DefaultMaxPerQuery = 20
	DefaultMaxTotal    = 120

	// seenFalsePositiveRate is the acceptable false positive rate for
	// URL deduplication.
	seenFalsePositiveRate = 0.001
)

// Collector runs queries against a Searcher and gathers unique hits.
type Collector struct {
	Searcher    gradscout.Searcher
	RateLimiter gradscout.DomainLimiter

	// Backend keys the rate limiter for search requests.
	Backend string

	MaxPerQuery int
	MaxTotal    int
	RetryDelays []time.Duration
}

// Collect runs each query in order and returns hits with unique, non-empty
// URLs, at most MaxTotal of them. A query that still fails after its retries
// is reported and skipped. Collect only returns an error when the context
// is canceled.
func (c *Collector) Collect(ctx context.Context, queries []string, progress ProgressFunc) ([]gradscout.Hit, error) {
	maxPerQuery := c.MaxPerQuery
	if maxPerQuery <= 0 {
		maxPerQuery = DefaultMaxPerQuery
	}
	maxTotal := c.MaxTotal
	if maxTotal <= 0 {
		maxTotal = DefaultMaxTotal
	}
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	seen := NewSeenSet(uint(maxTotal*2), seenFalsePositiveRate)
	var hits []gradscout.Hit

	for i, q := range queries {
		if len(hits) >= maxTotal {
			break
		}

		search := func(ctx context.Context) ([]gradscout.Hit, error) {
			if c.RateLimiter != nil {
				if err := c.RateLimiter.Wait(ctx, c.Backend); err != nil {
					return nil, err
				}
			}
			return c.Searcher.Search(ctx, q, maxPerQuery)
		}
		results, err := WithRetry(ctx, search, nil, delays)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressQueryFailed,
					Completed: i + 1,
					Total:     len(queries),
					Query:     q,
					Error:     err,
				})
			}
			continue
		}

		for _, h := range results {
			h.URL = strings.TrimSpace(h.URL)
			if h.URL == "" || !seen.Add(h.URL) {
				continue
			}
			hits = append(hits, h)
		}

		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressQuery,
				Completed: i + 1,
				Total:     len(queries),
				Query:     q,
			})
		}
	}

	if len(hits) > maxTotal {
		hits = hits[:maxTotal]
	}
	return hits, nil
}
