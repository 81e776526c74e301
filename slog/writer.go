package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/rfqscrape"
)

// Ensure LoggingWriter implements rfqscrape.RecordWriter.
var _ rfqscrape.RecordWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a RecordWriter with debug logging.
type LoggingWriter struct {
	next   rfqscrape.RecordWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next rfqscrape.RecordWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// WriteRecords delegates to the wrapped writer and logs the operation.
func (w *LoggingWriter) WriteRecords(ctx context.Context, records []*rfqscrape.Record) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write records",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteRecords(ctx, records)
}
