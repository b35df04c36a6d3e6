package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/gradscout"
)

// Ensure LoggingExtractor implements gradscout.Extractor.
var _ gradscout.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   gradscout.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next gradscout.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs which strategy won.
func (e *LoggingExtractor) Extract(html, pageURL string) (doc *gradscout.Document) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"url", pageURL,
			"method", string(doc.Method),
			"length", doc.Len(),
			"duration", time.Since(begin),
		)
	}(time.Now())
	doc = e.next.Extract(html, pageURL)
	if doc == nil {
		doc = &gradscout.Document{Method: gradscout.ExtractNone}
	}
	return doc
}
