package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/gradscout"
	"github.com/fwojciec/gradscout/mock"
	gsslog "github.com/fwojciec/gradscout/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) *gradscout.FetchResult {
				return &gradscout.FetchResult{HTML: "<html>content</html>", ResolvedURL: url, StatusCode: 200}
			},
		}

		fetcher := gsslog.NewLoggingFetcher(inner, logger)
		result := fetcher.Fetch(context.Background(), "https://example.edu/msc")

		require.NoError(t, result.Err)
		assert.Equal(t, "<html>content</html>", result.HTML)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.edu/msc")
		assert.Contains(t, output, "status=200")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "resolved=")
	})

	t.Run("logs resolved URL after redirect", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) *gradscout.FetchResult {
				return &gradscout.FetchResult{HTML: "x", ResolvedURL: "https://example.edu/final", StatusCode: 200}
			},
		}

		gsslog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), "https://example.edu/start")

		assert.Contains(t, buf.String(), "resolved=https://example.edu/final")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) *gradscout.FetchResult {
				return &gradscout.FetchResult{ResolvedURL: url, Err: errors.New("network error")}
			},
		}

		fetcher := gsslog.NewLoggingFetcher(inner, logger)
		result := fetcher.Fetch(context.Background(), "https://example.edu/msc")

		require.Error(t, result.Err)
		assert.False(t, result.OK())
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "err=\"network error\"")
	})
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs method and length", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html, pageURL string) *gradscout.Document {
				return &gradscout.Document{Text: "héllo", Method: gradscout.ExtractFallback}
			},
		}

		doc := gsslog.NewLoggingExtractor(inner, logger).Extract("<html/>", "https://example.edu/")

		assert.Equal(t, "héllo", doc.Text)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "method=fallback")
		assert.Contains(t, output, "length=5")
	})

	t.Run("replaces nil document with empty one", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html, pageURL string) *gradscout.Document { return nil },
		}

		doc := gsslog.NewLoggingExtractor(inner, logger).Extract("", "")

		require.NotNil(t, doc)
		assert.Equal(t, gradscout.ExtractNone, doc.Method)
		assert.Contains(t, buf.String(), "method=none")
	})
}

func TestLoggingSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("logs query and count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, max int) ([]gradscout.Hit, error) {
				return []gradscout.Hit{{URL: "https://a.edu"}, {URL: "https://b.edu"}}, nil
			},
		}

		hits, err := gsslog.NewLoggingSearcher(inner, logger).Search(context.Background(), "funded msc", 20)

		require.NoError(t, err)
		assert.Len(t, hits, 2)
		output := buf.String()
		assert.Contains(t, output, "search")
		assert.Contains(t, output, `query="funded msc"`)
		assert.Contains(t, output, "count=2")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, max int) ([]gradscout.Hit, error) {
				return nil, errors.New("rate limited")
			},
		}

		_, err := gsslog.NewLoggingSearcher(inner, logger).Search(context.Background(), "q", 20)

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="rate limited"`)
	})
}
