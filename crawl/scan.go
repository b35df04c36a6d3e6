// Package crawl provides candidate discovery and scanning orchestration.
// It coordinates searching, fetching, extraction and scoring of
// candidate pages.
package crawl

import (
	"context"
	"net/url"

	"github.com/fwojciec/gradscout"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of candidates processed at once.
const DefaultConcurrency = 5

// Scanner fetches, extracts and scores candidate pages.
type Scanner struct {
	Fetcher     gradscout.Fetcher
	Extractor   gradscout.Extractor
	Detector    *gradscout.Detector
	Domains     gradscout.DomainResolver
	RateLimiter gradscout.DomainLimiter
	Weights     *gradscout.Weights
	Concurrency int
}

// Result holds the outcome of a scan.
type Result struct {
	Total       int
	Scored      int
	FetchFailed int
	TooShort    int
}

// Outcome describes what happened to a single candidate.
type Outcome string

// Candidate outcomes.
const (
	OutcomeScored      Outcome = "scored"
	OutcomeFetchFailed Outcome = "fetch_failed"
	OutcomeTooShort    Outcome = "too_short"
)

// ProgressEvent reports progress during a scan or a collection.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Query     string
	Outcome   Outcome
	Score     float64
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressScored
	ProgressSkipped
	ProgressFinished
	ProgressQuery
	ProgressQueryFailed
)

// ProgressFunc is a callback for reporting progress.
type ProgressFunc func(event ProgressEvent)

// scanResult holds the outcome of processing a single hit.
type scanResult struct {
	position  int
	url       string
	outcome   Outcome
	candidate *gradscout.ScoredCandidate
	err       error
}

// Scan processes hits concurrently and returns the scored candidates in hit
// order. Candidates that could not be fetched or whose text is too short
// are skipped. The progress callback, if provided, receives events as
// scanning proceeds and is never called concurrently.
func (s *Scanner) Scan(ctx context.Context, hits []gradscout.Hit, progress ProgressFunc) ([]*gradscout.ScoredCandidate, *Result, error) {
	total := len(hits)
	if total == 0 {
		return nil, &Result{}, nil
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	resultCh := make(chan scanResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, hit := range hits {
			g.Go(func() error {
				resultCh <- s.processHit(gctx, i, hit)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results by position so callers observe hit order.
	results := make([]scanResult, total)
	completed := 0
	for r := range resultCh {
		completed++
		results[r.position] = r

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressSkipped,
			Completed: completed,
			Total:     total,
			URL:       r.url,
			Outcome:   r.outcome,
			Error:     r.err,
		}
		if r.candidate != nil {
			event.Type = ProgressScored
			event.Score = r.candidate.Score
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	result := &Result{Total: total}
	candidates := make([]*gradscout.ScoredCandidate, 0, total)
	for _, r := range results {
		switch r.outcome {
		case OutcomeScored:
			result.Scored++
			candidates = append(candidates, r.candidate)
		case OutcomeFetchFailed:
			result.FetchFailed++
		case OutcomeTooShort:
			result.TooShort++
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return candidates, result, nil
}

// processHit fetches, extracts and scores a single hit.
func (s *Scanner) processHit(ctx context.Context, position int, hit gradscout.Hit) scanResult {
	result := scanResult{
		position: position,
		url:      hit.URL,
		outcome:  OutcomeFetchFailed,
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, hostOf(hit.URL)); err != nil {
			result.err = err
			return result
		}
	}

	fetched := s.Fetcher.Fetch(ctx, hit.URL)
	if !fetched.OK() {
		if fetched != nil {
			result.err = fetched.Err
		}
		return result
	}

	finalURL := fetched.ResolvedURL
	if finalURL == "" {
		finalURL = hit.URL
	}
	result.url = finalURL

	doc := s.Extractor.Extract(fetched.HTML, finalURL)
	if !doc.Scoreable() {
		result.outcome = OutcomeTooShort
		return result
	}

	signals := s.Detector.Detect(doc.Text)
	weights := gradscout.DefaultWeights
	if s.Weights != nil {
		weights = *s.Weights
	}

	result.outcome = OutcomeScored
	result.candidate = weights.NewCandidate(hit, finalURL, s.domain(finalURL), *doc, signals)
	return result
}

func (s *Scanner) domain(rawURL string) string {
	if s.Domains == nil {
		return hostOf(rawURL)
	}
	return s.Domains.Domain(rawURL)
}

// hostOf returns the host of rawURL, or rawURL itself when it has none.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
