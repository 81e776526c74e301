package rfqscrape

import (
	"context"
	"time"
)

// NA is the sentinel stored in any string field whose value could not be
// extracted. Consumers never need to distinguish a missing key from an
// empty value: every field is always present, absent data is always NA.
const NA = "N/A"

// Flag values for the boolean-flag fields. The flags are derived from
// literal phrase presence in container text, so they are kept as the
// display strings the output table expects rather than Go booleans.
const (
	FlagYes = "Yes"
	FlagNo  = "No"
)

// DateFormat is the day-month-year layout used for InquiryDate and
// ScrapingDate.
const DateFormat = "02-01-2006"

// Record is one structured RFQ listing. A Record is constructed fresh per
// candidate container, fully populated by the extractor in one pass, and
// becomes immutable once accepted. InquiryURL is the record's identity:
// at most one record with a given InquiryURL is ever accepted in a run.
type Record struct {
	// RFQID is a best-effort identifier parsed from the detail URL.
	// It is derived from a URL substring heuristic and is not
	// guaranteed unique; the reliable key is always InquiryURL.
	RFQID string

	// Title is required for a record to be valid and must meet the
	// filter's minimum length.
	Title string

	BuyerName     string
	BuyerImageURL string

	// InquiryTime is the free-text relative time shown on the listing
	// ("3 hours ago"). It is deliberately not normalized to an absolute
	// timestamp; the source only exposes the relative form.
	InquiryTime string

	QuotesLeft string

	// Country is a configured constant, not extracted per record.
	Country string

	QuantityRequired string

	// Boolean-flag fields, each FlagYes iff the corresponding literal
	// phrase appears in the container's flattened text. Presence is
	// sufficient even in a negative or conditional context; negation is
	// not handled (inherited source behavior).
	EmailConfirmed      string
	ExperiencedBuyer    string
	CompleteOrderViaRFQ string
	TypicalReplies      string
	InteractiveUser     string

	// InquiryURL is the absolute detail URL and the deduplication key.
	InquiryURL string

	InquiryDate  string
	ScrapingDate string
}

// NewRecord returns a Record with every field set to its sentinel
// default: NA for text fields, FlagNo for flags, the given country, and
// the given run date for both date fields.
func NewRecord(country string, runDate time.Time) *Record {
	date := runDate.Format(DateFormat)
	return &Record{
		RFQID:               NA,
		Title:               NA,
		BuyerName:           NA,
		BuyerImageURL:       NA,
		InquiryTime:         NA,
		QuotesLeft:          NA,
		Country:             country,
		QuantityRequired:    NA,
		EmailConfirmed:      FlagNo,
		ExperiencedBuyer:    FlagNo,
		CompleteOrderViaRFQ: FlagNo,
		TypicalReplies:      FlagNo,
		InteractiveUser:     FlagNo,
		InquiryURL:          NA,
		InquiryDate:         date,
		ScrapingDate:        date,
	}
}

// Validate returns an error if the record is not a genuine listing:
// records must carry a title and an inquiry URL.
func (r *Record) Validate() error {
	if r.Title == "" || r.Title == NA {
		return Errorf(EINVALID, "record title required")
	}
	if r.InquiryURL == "" || r.InquiryURL == NA {
		return Errorf(EINVALID, "record inquiry URL required")
	}
	return nil
}

// RecordExtractor extracts candidate records from a rendered listing
// page. Implementations hide container location and per-field heuristics.
type RecordExtractor interface {
	// Extract locates candidate record containers in the rendered HTML
	// and returns one Record per container. Extraction is total: a
	// sub-field that cannot be parsed keeps its sentinel default and
	// never fails the whole record. Candidates are returned unfiltered;
	// callers apply Filter and deduplication.
	Extract(html string, pageURL string) ([]*Record, error)
}

// RecordWriter persists an accepted result set. Implementations must not
// leave partial output behind on failure.
type RecordWriter interface {
	WriteRecords(ctx context.Context, records []*Record) error
}

// RecordService archives records for later inspection.
type RecordService interface {
	// CreateRecord stores a record. Duplicate inquiry URLs are ignored.
	CreateRecord(ctx context.Context, record *Record) error

	// FindRecords retrieves records matching the filter.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	InquiryURL *string
	Country    *string

	Offset int
	Limit  int
}
