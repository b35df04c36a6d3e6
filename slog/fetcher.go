// Package slog provides log/slog decorators for the pipeline's
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gradscout"
)

// Ensure LoggingFetcher implements gradscout.Fetcher.
var _ gradscout.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   gradscout.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next gradscout.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (result *gradscout.FetchResult) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs,
				"status", result.StatusCode,
				"bytes", len(result.HTML),
			)
			if result.ResolvedURL != url {
				attrs = append(attrs, "resolved", result.ResolvedURL)
			}
			if result.Err != nil {
				attrs = append(attrs, "err", result.Err)
			}
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
