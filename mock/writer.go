package mock

import (
	"context"

	"github.com/fwojciec/rfqscrape"
)

var _ rfqscrape.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of rfqscrape.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, records []*rfqscrape.Record) error
}

func (w *RecordWriter) WriteRecords(ctx context.Context, records []*rfqscrape.Record) error {
	return w.WriteRecordsFn(ctx, records)
}
