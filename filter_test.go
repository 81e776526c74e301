package rfqscrape_test

import (
	"testing"
	"time"

	"github.com/fwojciec/rfqscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapSeen is a trivial SeenSet for filter tests.
type mapSeen map[string]bool

func (m mapSeen) Add(url string)       { m[url] = true }
func (m mapSeen) Seen(url string) bool { return m[url] }

func validRecord() *rfqscrape.Record {
	r := rfqscrape.NewRecord("United Arab Emirates", time.Now())
	r.Title = "Need 200 pieces of packaging film"
	r.InquiryURL = "https://sourcing.example.com/rfq/rfq_detail.htm?p=ID1234567890"
	return r
}

func TestFilterAccept(t *testing.T) {
	t.Parallel()

	t.Run("accepts a genuine unseen record", func(t *testing.T) {
		t.Parallel()

		f := rfqscrape.NewFilter()
		assert.True(t, f.Accept(validRecord(), mapSeen{}))
	})

	t.Run("rejects sentinel title", func(t *testing.T) {
		t.Parallel()

		rec := validRecord()
		rec.Title = rfqscrape.NA

		f := rfqscrape.NewFilter()
		assert.False(t, f.Accept(rec, mapSeen{}))
	})

	t.Run("rejects title shorter than minimum", func(t *testing.T) {
		t.Parallel()

		rec := validRecord()
		rec.Title = "Too short"

		f := rfqscrape.NewFilter()
		assert.False(t, f.Accept(rec, mapSeen{}))
	})

	t.Run("rejects already seen inquiry URL", func(t *testing.T) {
		t.Parallel()

		rec := validRecord()
		seen := mapSeen{rec.InquiryURL: true}

		f := rfqscrape.NewFilter()
		assert.False(t, f.Accept(rec, seen))
	})

	t.Run("rejects denylisted title phrases case-insensitively", func(t *testing.T) {
		t.Parallel()

		f := rfqscrape.NewFilter()
		for _, title := range []string{
			"Buy Access to premium listings today",
			"Submit Buying Request here now",
			"Join Free and start sourcing",
			"Sign In to view more details",
		} {
			rec := validRecord()
			rec.Title = title
			assert.False(t, f.Accept(rec, mapSeen{}), "title %q should be rejected", title)
		}
	})

	t.Run("is idempotent for a fixed seen-set", func(t *testing.T) {
		t.Parallel()

		rec := validRecord()
		seen := mapSeen{}

		f := rfqscrape.NewFilter()
		first := f.Accept(rec, seen)
		second := f.Accept(rec, seen)
		assert.Equal(t, first, second)
	})

	t.Run("zero value uses defaults", func(t *testing.T) {
		t.Parallel()

		var f rfqscrape.Filter
		assert.True(t, f.Accept(validRecord(), mapSeen{}))

		rec := validRecord()
		rec.Title = "sign in"
		assert.False(t, f.Accept(rec, mapSeen{}))
	})
}

func TestRecordValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid record passes", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, validRecord().Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		t.Parallel()

		rec := validRecord()
		rec.Title = rfqscrape.NA
		err := rec.Validate()
		require.Error(t, err)
		assert.Equal(t, rfqscrape.EINVALID, rfqscrape.ErrorCode(err))
	})

	t.Run("missing inquiry URL", func(t *testing.T) {
		t.Parallel()

		rec := validRecord()
		rec.InquiryURL = ""
		err := rec.Validate()
		require.Error(t, err)
		assert.Equal(t, rfqscrape.EINVALID, rfqscrape.ErrorCode(err))
	})
}

func TestNewRecordDefaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	rec := rfqscrape.NewRecord("United Arab Emirates", now)

	assert.Equal(t, rfqscrape.NA, rec.RFQID)
	assert.Equal(t, rfqscrape.NA, rec.Title)
	assert.Equal(t, rfqscrape.NA, rec.BuyerName)
	assert.Equal(t, rfqscrape.NA, rec.BuyerImageURL)
	assert.Equal(t, rfqscrape.NA, rec.InquiryTime)
	assert.Equal(t, rfqscrape.NA, rec.QuotesLeft)
	assert.Equal(t, rfqscrape.NA, rec.QuantityRequired)
	assert.Equal(t, rfqscrape.NA, rec.InquiryURL)
	assert.Equal(t, "United Arab Emirates", rec.Country)
	assert.Equal(t, rfqscrape.FlagNo, rec.EmailConfirmed)
	assert.Equal(t, rfqscrape.FlagNo, rec.ExperiencedBuyer)
	assert.Equal(t, rfqscrape.FlagNo, rec.CompleteOrderViaRFQ)
	assert.Equal(t, rfqscrape.FlagNo, rec.TypicalReplies)
	assert.Equal(t, rfqscrape.FlagNo, rec.InteractiveUser)
	assert.Equal(t, "23-08-2026", rec.InquiryDate)
	assert.Equal(t, "23-08-2026", rec.ScrapingDate)
}
