// Package slog provides logging decorators for the core service interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/rfqscrape"
)

// Ensure LoggingExtractor implements rfqscrape.RecordExtractor.
var _ rfqscrape.RecordExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a RecordExtractor with debug logging.
type LoggingExtractor struct {
	next   rfqscrape.RecordExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next rfqscrape.RecordExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html, pageURL string) (records []*rfqscrape.Record, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"url", pageURL,
			"bytes", len(html),
			"candidates", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, pageURL)
}
