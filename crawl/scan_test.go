package crawl_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/gradscout"
	"github.com/fwojciec/gradscout/crawl"
	"github.com/fwojciec/gradscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// filler pads page text past gradscout.MinTextLength without adding signals.
var filler = strings.Repeat("The department welcomes applicants from all backgrounds. ", 12)

func fixedDates() *mock.DateParser {
	return &mock.DateParser{
		ParseDateFn: func(_ string) (time.Time, error) {
			return time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), nil
		},
	}
}

// htmlFetcher serves the URL as the page body and echoes the URL back.
func htmlFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) *gradscout.FetchResult {
			return &gradscout.FetchResult{HTML: url, ResolvedURL: url, StatusCode: 200}
		},
	}
}

// pageExtractor returns the document registered for the page URL.
func pageExtractor(pages map[string]gradscout.Document) *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(_ string, pageURL string) *gradscout.Document {
			doc := pages[pageURL]
			return &doc
		},
	}
}

func hostDomains() *mock.DomainResolver {
	return &mock.DomainResolver{
		DomainFn: func(rawURL string) string {
			rawURL = strings.TrimPrefix(rawURL, "https://")
			host, _, _ := strings.Cut(rawURL, "/")
			return strings.TrimPrefix(host, "www.")
		},
	}
}

func TestScanner_Scan(t *testing.T) {
	t.Parallel()

	t.Run("returns empty result for no hits", func(t *testing.T) {
		t.Parallel()

		s := &crawl.Scanner{
			Fetcher:   &mock.Fetcher{},
			Extractor: &mock.Extractor{},
			Detector:  gradscout.NewDetector(fixedDates()),
		}

		candidates, result, err := s.Scan(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Empty(t, candidates)
		assert.Equal(t, &crawl.Result{}, result)
	})

	t.Run("scores candidate with detected signals", func(t *testing.T) {
		t.Parallel()

		url := "https://www.example.edu/msc"
		s := &crawl.Scanner{
			Fetcher: htmlFetcher(),
			Extractor: pageExtractor(map[string]gradscout.Document{
				url: {Title: "MSc", Text: filler + "A fellowship with a stipend. GRE not required.", Method: gradscout.ExtractReadability},
			}),
			Detector: gradscout.NewDetector(fixedDates()),
			Domains:  hostDomains(),
		}

		hit := gradscout.Hit{URL: url, Title: "Hit title", Snippet: "snippet"}
		candidates, result, err := s.Scan(context.Background(), []gradscout.Hit{hit}, nil)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		c := candidates[0]
		assert.InDelta(t, 1.5, c.Score, 1e-9)
		assert.Equal(t, []string{"fellowship", "stipend"}, c.Signals.Funding)
		assert.Equal(t, []string{"gre not required"}, c.Signals.NoGRE)
		assert.Equal(t, "example.edu", c.Domain)
		assert.Equal(t, url, c.FinalURL)
		assert.Equal(t, "Hit title", c.OriginalTitle)
		assert.Equal(t, "snippet", c.OriginalSnippet)
		assert.Equal(t, gradscout.ExtractReadability, c.Document.Method)
		assert.Equal(t, &crawl.Result{Total: 1, Scored: 1}, result)
	})

	t.Run("uses resolved URL for domain and extraction", func(t *testing.T) {
		t.Parallel()

		var extractedURL string
		s := &crawl.Scanner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) *gradscout.FetchResult {
					return &gradscout.FetchResult{HTML: "<html/>", ResolvedURL: "https://grad.uni.edu/final", StatusCode: 200}
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string, pageURL string) *gradscout.Document {
					extractedURL = pageURL
					return &gradscout.Document{Text: filler}
				},
			},
			Detector: gradscout.NewDetector(fixedDates()),
			Domains:  hostDomains(),
		}

		candidates, _, err := s.Scan(context.Background(), []gradscout.Hit{{URL: "https://short.link/x"}}, nil)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "https://grad.uni.edu/final", extractedURL)
		assert.Equal(t, "https://grad.uni.edu/final", candidates[0].FinalURL)
		assert.Equal(t, "grad.uni.edu", candidates[0].Domain)
		assert.Equal(t, "https://short.link/x", candidates[0].OriginalURL)
	})

	t.Run("skips failed fetches and short pages", func(t *testing.T) {
		t.Parallel()

		s := &crawl.Scanner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) *gradscout.FetchResult {
					if strings.HasSuffix(url, "/down") {
						return &gradscout.FetchResult{ResolvedURL: url, Err: errors.New("connection refused")}
					}
					return &gradscout.FetchResult{HTML: url, ResolvedURL: url, StatusCode: 200}
				},
			},
			Extractor: pageExtractor(map[string]gradscout.Document{
				"https://a.edu/short": {Text: "Scholarship available."},
				"https://a.edu/long":  {Text: filler + "scholarship"},
			}),
			Detector: gradscout.NewDetector(fixedDates()),
			Domains:  hostDomains(),
		}

		hits := []gradscout.Hit{
			{URL: "https://a.edu/down"},
			{URL: "https://a.edu/short"},
			{URL: "https://a.edu/long"},
		}

		var mu sync.Mutex
		var skipped []crawl.Outcome
		candidates, result, err := s.Scan(context.Background(), hits, func(e crawl.ProgressEvent) {
			if e.Type == crawl.ProgressSkipped {
				mu.Lock()
				skipped = append(skipped, e.Outcome)
				mu.Unlock()
			}
		})

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "https://a.edu/long", candidates[0].FinalURL)
		assert.Equal(t, &crawl.Result{Total: 3, Scored: 1, FetchFailed: 1, TooShort: 1}, result)
		assert.ElementsMatch(t, []crawl.Outcome{crawl.OutcomeFetchFailed, crawl.OutcomeTooShort}, skipped)
	})

	t.Run("treats empty fetch as failure and yields zero rows", func(t *testing.T) {
		t.Parallel()

		s := &crawl.Scanner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) *gradscout.FetchResult {
					return &gradscout.FetchResult{ResolvedURL: url, StatusCode: 404}
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string, _ string) *gradscout.Document {
					t.Error("extractor must not run without HTML")
					return &gradscout.Document{}
				},
			},
			Detector: gradscout.NewDetector(fixedDates()),
		}

		candidates, result, err := s.Scan(context.Background(), []gradscout.Hit{{URL: "https://gone.edu/"}}, nil)

		require.NoError(t, err)
		assert.Empty(t, candidates)
		assert.Equal(t, 1, result.FetchFailed)
		assert.Empty(t, gradscout.Aggregate(candidates, gradscout.DefaultMinScore))
	})

	t.Run("preserves hit order under concurrency", func(t *testing.T) {
		t.Parallel()

		hits := []gradscout.Hit{
			{URL: "https://a.edu/1"},
			{URL: "https://b.edu/2"},
			{URL: "https://c.edu/3"},
			{URL: "https://d.edu/4"},
		}
		delays := map[string]time.Duration{
			"https://a.edu/1": 40 * time.Millisecond,
			"https://b.edu/2": 0,
			"https://c.edu/3": 20 * time.Millisecond,
			"https://d.edu/4": 10 * time.Millisecond,
		}

		s := &crawl.Scanner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) *gradscout.FetchResult {
					time.Sleep(delays[url])
					return &gradscout.FetchResult{HTML: url, ResolvedURL: url, StatusCode: 200}
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string, _ string) *gradscout.Document {
					return &gradscout.Document{Text: filler}
				},
			},
			Detector:    gradscout.NewDetector(fixedDates()),
			Domains:     hostDomains(),
			Concurrency: 4,
		}

		candidates, _, err := s.Scan(context.Background(), hits, nil)

		require.NoError(t, err)
		require.Len(t, candidates, 4)
		for i, c := range candidates {
			assert.Equal(t, hits[i].URL, c.FinalURL)
		}
	})

	t.Run("limits concurrent fetches", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var active, peak int
		s := &crawl.Scanner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) *gradscout.FetchResult {
					mu.Lock()
					active++
					peak = max(peak, active)
					mu.Unlock()

					time.Sleep(10 * time.Millisecond)

					mu.Lock()
					active--
					mu.Unlock()
					return &gradscout.FetchResult{ResolvedURL: url}
				},
			},
			Extractor:   &mock.Extractor{},
			Detector:    gradscout.NewDetector(fixedDates()),
			Concurrency: 2,
		}

		hits := make([]gradscout.Hit, 8)
		for i := range hits {
			hits[i] = gradscout.Hit{URL: "https://x.edu/" + string(rune('a'+i))}
		}

		_, result, err := s.Scan(context.Background(), hits, nil)

		require.NoError(t, err)
		assert.Equal(t, 8, result.FetchFailed)
		assert.LessOrEqual(t, peak, 2)
	})

	t.Run("waits on rate limiter keyed by host", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var waited []string
		s := &crawl.Scanner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) *gradscout.FetchResult {
					return &gradscout.FetchResult{ResolvedURL: url}
				},
			},
			Extractor: &mock.Extractor{},
			Detector:  gradscout.NewDetector(fixedDates()),
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					mu.Lock()
					waited = append(waited, domain)
					mu.Unlock()
					return nil
				},
			},
		}

		_, _, err := s.Scan(context.Background(), []gradscout.Hit{{URL: "https://grad.example.edu/p"}}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"grad.example.edu"}, waited)
	})

	t.Run("applies custom weights", func(t *testing.T) {
		t.Parallel()

		s := &crawl.Scanner{
			Fetcher: htmlFetcher(),
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string, _ string) *gradscout.Document {
					return &gradscout.Document{Text: filler + "scholarship"}
				},
			},
			Detector: gradscout.NewDetector(fixedDates()),
			Weights:  &gradscout.Weights{FundingHit: 2},
		}

		candidates, _, err := s.Scan(context.Background(), []gradscout.Hit{{URL: "https://a.edu/"}}, nil)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.InDelta(t, 2.0, candidates[0].Score, 1e-9)
	})

	t.Run("reports progress lifecycle", func(t *testing.T) {
		t.Parallel()

		s := &crawl.Scanner{
			Fetcher: htmlFetcher(),
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string, _ string) *gradscout.Document {
					return &gradscout.Document{Text: filler}
				},
			},
			Detector:    gradscout.NewDetector(fixedDates()),
			Concurrency: 1,
		}

		var events []crawl.ProgressEvent
		_, _, err := s.Scan(context.Background(), []gradscout.Hit{{URL: "https://a.edu/"}, {URL: "https://b.edu/"}}, func(e crawl.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, crawl.ProgressScored, events[1].Type)
		assert.Equal(t, 1, events[1].Completed)
		assert.Equal(t, crawl.ProgressScored, events[2].Type)
		assert.Equal(t, 2, events[2].Completed)
		assert.Equal(t, crawl.ProgressFinished, events[3].Type)
	})

	t.Run("returns error when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := &crawl.Scanner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) *gradscout.FetchResult {
					return &gradscout.FetchResult{ResolvedURL: url, Err: ctx.Err()}
				},
			},
			Extractor: &mock.Extractor{},
			Detector:  gradscout.NewDetector(fixedDates()),
		}

		_, _, err := s.Scan(ctx, []gradscout.Hit{{URL: "https://a.edu/"}}, nil)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestScanner_Aggregate_duplicate_titles(t *testing.T) {
	t.Parallel()

	first := "https://example.edu/programs/msc"
	second := "https://www.example.edu/msc-funded"
	s := &crawl.Scanner{
		Fetcher: htmlFetcher(),
		Extractor: pageExtractor(map[string]gradscout.Document{
			// Four funding hits, no GRE, IELTS waiver and a deadline: 3.2.
			first: {
				Title: "MSc Funded Program",
				Text:  filler + "Fellowship, stipend, tuition waiver and living allowance. No GRE. IELTS waiver. Application deadline: March 15, 2026.",
			},
			// Seven funding hits and no GRE: 4.0.
			second: {
				Title: "  msc funded program ",
				Text:  filler + "Fellowship, stipend, tuition waiver, living allowance, full funding, tuition remission, tuition covered. No GRE.",
			},
		}),
		Detector:    gradscout.NewDetector(fixedDates()),
		Domains:     hostDomains(),
		Concurrency: 2,
	}

	candidates, _, err := s.Scan(context.Background(), []gradscout.Hit{{URL: first}, {URL: second}}, nil)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.InDelta(t, 3.2, candidates[0].Score, 1e-9)
	assert.InDelta(t, 4.0, candidates[1].Score, 1e-9)

	rows := gradscout.Aggregate(candidates, gradscout.DefaultMinScore)

	require.Len(t, rows, 1)
	assert.Equal(t, "MSc Funded Program", rows[0].Title)
	assert.Equal(t, first, rows[0].URL)
	assert.Equal(t, "example.edu", rows[0].Domain)
	assert.InDelta(t, 3.2, rows[0].Score, 1e-9)
	assert.Equal(t, "2026-03-15", rows[0].Deadlines)
}
