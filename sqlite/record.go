package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/rfqscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ rfqscrape.RecordService = (*RecordService)(nil)

// RecordService implements rfqscrape.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// CreateRecord archives a record. A record whose inquiry URL is already
// archived is not inserted again; the call returns an ECONFLICT error so
// callers can distinguish a fresh insert from a repeat.
func (s *RecordService) CreateRecord(ctx context.Context, rec *rfqscrape.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO records (
			id, rfq_id, title, buyer_name, buyer_image_url, inquiry_time,
			quotes_left, country, quantity_required, email_confirmed,
			experienced_buyer, complete_order_via_rfq, typical_replies,
			interactive_user, inquiry_url, inquiry_date, scraping_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), rec.RFQID, rec.Title, rec.BuyerName, rec.BuyerImageURL,
		rec.InquiryTime, rec.QuotesLeft, rec.Country, rec.QuantityRequired,
		rec.EmailConfirmed, rec.ExperiencedBuyer, rec.CompleteOrderViaRFQ,
		rec.TypicalReplies, rec.InteractiveUser, rec.InquiryURL,
		rec.InquiryDate, rec.ScrapingDate)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return rfqscrape.Errorf(rfqscrape.ECONFLICT, "record already archived: %s", rec.InquiryURL)
	}

	return nil
}

// FindRecords retrieves archived records matching the filter, in insertion
// order.
func (s *RecordService) FindRecords(ctx context.Context, filter rfqscrape.RecordFilter) ([]*rfqscrape.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT rfq_id, title, buyer_name, buyer_image_url, inquiry_time,
			quotes_left, country, quantity_required, email_confirmed,
			experienced_buyer, complete_order_via_rfq, typical_replies,
			interactive_user, inquiry_url, inquiry_date, scraping_date
		FROM records WHERE 1=1`)

	if filter.InquiryURL != nil {
		query.WriteString(" AND inquiry_url = ?")
		args = append(args, *filter.InquiryURL)
	}
	if filter.Country != nil {
		query.WriteString(" AND country = ?")
		args = append(args, *filter.Country)
	}

	query.WriteString(" ORDER BY rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*rfqscrape.Record
	for rows.Next() {
		var rec rfqscrape.Record
		if err := rows.Scan(&rec.RFQID, &rec.Title, &rec.BuyerName, &rec.BuyerImageURL,
			&rec.InquiryTime, &rec.QuotesLeft, &rec.Country, &rec.QuantityRequired,
			&rec.EmailConfirmed, &rec.ExperiencedBuyer, &rec.CompleteOrderViaRFQ,
			&rec.TypicalReplies, &rec.InteractiveUser, &rec.InquiryURL,
			&rec.InquiryDate, &rec.ScrapingDate); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}
