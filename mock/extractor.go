package mock

import "github.com/fwojciec/rfqscrape"

var _ rfqscrape.RecordExtractor = (*RecordExtractor)(nil)

// RecordExtractor is a mock implementation of rfqscrape.RecordExtractor.
type RecordExtractor struct {
	ExtractFn func(html string, pageURL string) ([]*rfqscrape.Record, error)
}

func (e *RecordExtractor) Extract(html string, pageURL string) ([]*rfqscrape.Record, error) {
	return e.ExtractFn(html, pageURL)
}
