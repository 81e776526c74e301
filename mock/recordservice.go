package mock

import (
	"context"

	"github.com/fwojciec/rfqscrape"
)

var _ rfqscrape.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of rfqscrape.RecordService.
type RecordService struct {
	CreateRecordFn func(ctx context.Context, record *rfqscrape.Record) error
	FindRecordsFn  func(ctx context.Context, filter rfqscrape.RecordFilter) ([]*rfqscrape.Record, error)
}

func (s *RecordService) CreateRecord(ctx context.Context, record *rfqscrape.Record) error {
	return s.CreateRecordFn(ctx, record)
}

func (s *RecordService) FindRecords(ctx context.Context, filter rfqscrape.RecordFilter) ([]*rfqscrape.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}
