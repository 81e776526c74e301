package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/rfqscrape/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	t.Parallel()

	t.Run("collapses whitespace", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Need 200 pieces", goquery.CleanText("  Need \n\t 200   pieces  "))
	})

	t.Run("strips unsafe characters", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Film (BOPP) - 25, grade A/B", goquery.CleanText(`Film (BOPP) - 25µ*, grade A/B`))
	})

	t.Run("keeps punctuation used in titles", func(t *testing.T) {
		t.Parallel()
		in := "Qty: 100% cotton, 50-60 GSM & #3 bags! Why? See www.example.com/x; @supplier"
		assert.Equal(t, in, goquery.CleanText(in))
	})

	t.Run("keeps non-Latin letters", func(t *testing.T) {
		t.Parallel()
		in := "حاجة إلى فيلم تغليف صناعي بكمية كبيرة"
		assert.Equal(t, in, goquery.CleanText(in))
	})

	t.Run("keeps mixed-script titles", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "BOPP فيلم 25 micron, grade A",
			goquery.CleanText("BOPP فيلم 25µ* micron, grade A"))
	})
}

func TestMatchBuyerName(t *testing.T) {
	t.Parallel()

	t.Run("matches two-token name", func(t *testing.T) {
		t.Parallel()

		name, ok := goquery.MatchBuyerName("Posted by Ahmed Hassan 3 hours ago")
		require.True(t, ok)
		assert.Equal(t, "Ahmed Hassan", name)
	})

	t.Run("matches three-token name", func(t *testing.T) {
		t.Parallel()

		name, ok := goquery.MatchBuyerName("posted by Maria Del Carmen for details")
		require.True(t, ok)
		assert.Equal(t, "Maria Del Carmen", name)
	})

	t.Run("skips matches containing boilerplate vocabulary", func(t *testing.T) {
		t.Parallel()

		// "Quantity Required" and "Email Confirmed" are name-shaped but
		// excluded; the genuine name later in the text wins.
		name, ok := goquery.MatchBuyerName("Quantity Required Email Confirmed John Smith")
		require.True(t, ok)
		assert.Equal(t, "John Smith", name)
	})

	t.Run("no qualifying match", func(t *testing.T) {
		t.Parallel()

		_, ok := goquery.MatchBuyerName("quotes left 5 posted today")
		assert.False(t, ok)
	})

	t.Run("rejects too-short matches", func(t *testing.T) {
		t.Parallel()

		_, ok := goquery.MatchBuyerName("xx Al Bo xx")
		assert.False(t, ok)
	})
}

func TestMatchInquiryTime(t *testing.T) {
	t.Parallel()

	t.Run("matches qualified relative time", func(t *testing.T) {
		t.Parallel()

		got, ok := goquery.MatchInquiryTime("Posted 3 hours ago by someone")
		require.True(t, ok)
		assert.Equal(t, "3 hours ago", got)
	})

	t.Run("matches before qualifier", func(t *testing.T) {
		t.Parallel()

		got, ok := goquery.MatchInquiryTime("listed 2 days before")
		require.True(t, ok)
		assert.Equal(t, "2 days before", got)
	})

	t.Run("falls back to bare form", func(t *testing.T) {
		t.Parallel()

		got, ok := goquery.MatchInquiryTime("Inquiry Time: 45 minutes")
		require.True(t, ok)
		assert.Equal(t, "45 minutes", got)
	})

	t.Run("case-insensitive", func(t *testing.T) {
		t.Parallel()

		got, ok := goquery.MatchInquiryTime("1 Hour Ago")
		require.True(t, ok)
		assert.Equal(t, "1 Hour Ago", got)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		_, ok := goquery.MatchInquiryTime("posted recently")
		assert.False(t, ok)
	})
}

func TestMatchQuotesLeft(t *testing.T) {
	t.Parallel()

	t.Run("label-first order", func(t *testing.T) {
		t.Parallel()

		got, ok := goquery.MatchQuotesLeft("Quotes Left 5 of 10")
		require.True(t, ok)
		assert.Equal(t, "5", got)
	})

	t.Run("number-first order", func(t *testing.T) {
		t.Parallel()

		got, ok := goquery.MatchQuotesLeft("only 3 quotes left for this inquiry")
		require.True(t, ok)
		assert.Equal(t, "3", got)
	})

	t.Run("singular form", func(t *testing.T) {
		t.Parallel()

		got, ok := goquery.MatchQuotesLeft("Quote Left 1")
		require.True(t, ok)
		assert.Equal(t, "1", got)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		_, ok := goquery.MatchQuotesLeft("no quota information")
		assert.False(t, ok)
	})
}

func TestMatchQuantity(t *testing.T) {
	t.Parallel()

	t.Run("labeled quantity", func(t *testing.T) {
		t.Parallel()

		got, ok := goquery.MatchQuantity("Quantity Required: 200 Pieces of film")
		require.True(t, ok)
		assert.Contains(t, got, "200 Pieces")
	})

	t.Run("bare quantity with unit", func(t *testing.T) {
		t.Parallel()

		got, ok := goquery.MatchQuantity("need 50 Cartons delivered monthly")
		require.True(t, ok)
		assert.Contains(t, got, "50 Cartons")
	})

	t.Run("supports the full unit vocabulary", func(t *testing.T) {
		t.Parallel()

		for _, unit := range []string{"Piece", "Unit", "Box", "Carton", "Meter", "Kilogram", "Ton", "Liter"} {
			_, ok := goquery.MatchQuantity("Quantity Required: 10 " + unit)
			assert.True(t, ok, "unit %q should match", unit)
		}
	})

	t.Run("rejects runaway matches", func(t *testing.T) {
		t.Parallel()

		_, ok := goquery.MatchQuantity("Quantity Required: 10 Pieces " + strings.Repeat("x", 150))
		assert.False(t, ok)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		_, ok := goquery.MatchQuantity("quantity to be discussed")
		assert.False(t, ok)
	})
}

func TestMatchRFQID(t *testing.T) {
	t.Parallel()

	t.Run("extracts fixed-length id", func(t *testing.T) {
		t.Parallel()

		id, ok := goquery.MatchRFQID("https://sourcing.example.com/rfq/rfq_detail.htm?p=ID1234567890")
		require.True(t, ok)
		assert.Equal(t, "ID12345678", id)
	})

	t.Run("truncates at next query parameter", func(t *testing.T) {
		t.Parallel()

		id, ok := goquery.MatchRFQID("https://sourcing.example.com/rfq/rfq_detail.htm?p=ID123&spm=x")
		require.True(t, ok)
		assert.Equal(t, "ID123", id)
	})

	t.Run("no marker", func(t *testing.T) {
		t.Parallel()

		_, ok := goquery.MatchRFQID("https://sourcing.example.com/rfq/rfq_detail.htm?x=1")
		assert.False(t, ok)
	})
}
