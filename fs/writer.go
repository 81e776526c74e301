// Package fs writes scraped records to CSV files on disk.
package fs

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/fwojciec/rfqscrape"
)

// Header is the fixed CSV column order. Consumers rely on this layout, so
// the order never changes between runs.
var Header = []string{
	"RFQ ID",
	"Title",
	"Buyer Name",
	"Buyer Image",
	"Inquiry Time",
	"Quotes Left",
	"Country",
	"Quantity Required",
	"Email Confirmed",
	"Experienced Buyer",
	"Complete Order via RFQ",
	"Typical Replies",
	"Interactive User",
	"Inquiry URL",
	"Inquiry Date",
	"Scraping Date",
}

// Ensure Writer implements rfqscrape.RecordWriter at compile time.
var _ rfqscrape.RecordWriter = (*Writer)(nil)

// Writer writes records as a CSV file with atomic update semantics.
// Rows are written to a temporary file first and moved into place once the
// whole set has been flushed, so an interrupted run never leaves a
// truncated CSV behind.
type Writer struct {
	path string
}

// NewWriter creates a new Writer that writes to the given file path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteRecords writes all records to the CSV file, header first. Records
// sharing an inquiry URL with an earlier record in the batch are skipped.
func (w *Writer) WriteRecords(ctx context.Context, records []*rfqscrape.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmpPath := w.path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	if err := writeAll(f, records); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	// Atomically rename temp to final
	return os.Rename(tmpPath, w.path)
}

func writeAll(f *os.File, records []*rfqscrape.Record) error {
	cw := csv.NewWriter(f)
	if err := cw.Write(Header); err != nil {
		return err
	}

	// The run-scoped seen-set is probabilistic; this exact-match pass
	// guarantees the file itself carries no duplicate inquiry URLs.
	written := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.InquiryURL != rfqscrape.NA && written[rec.InquiryURL] {
			continue
		}
		written[rec.InquiryURL] = true
		if err := cw.Write(row(rec)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// row lays out a record in Header order.
func row(rec *rfqscrape.Record) []string {
	return []string{
		rec.RFQID,
		rec.Title,
		rec.BuyerName,
		rec.BuyerImageURL,
		rec.InquiryTime,
		rec.QuotesLeft,
		rec.Country,
		rec.QuantityRequired,
		rec.EmailConfirmed,
		rec.ExperiencedBuyer,
		rec.CompleteOrderViaRFQ,
		rec.TypicalReplies,
		rec.InteractiveUser,
		rec.InquiryURL,
		rec.InquiryDate,
		rec.ScrapingDate,
	}
}
