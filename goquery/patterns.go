package goquery

import (
	"regexp"
	"strings"

	"github.com/fwojciec/rfqscrape"
)

// DetailLinkSelector matches anchors pointing at an RFQ detail page. The
// listing site exposes no stable container markup, so the detail link is
// the only reliable structural hook.
const DetailLinkSelector = `a[href*='rfq_detail.htm']`

// Text cleaning: collapse runs of whitespace, then strip characters
// outside a safe printable subset so titles and quantities survive
// delimited output untouched. Letters and digits from any script are
// kept; listings for this market routinely carry Arabic titles.
var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	unsafeCharRe = regexp.MustCompile(`[^\p{L}\p{N}_\s\-\.\,\(\)\/\&\%\#\@\!\?\:\;]`)
)

// CleanText normalizes whitespace and filters text to a safe printable
// subset.
func CleanText(text string) string {
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	return unsafeCharRe.ReplaceAllString(text, "")
}

// Buyer names are recognized as sequences of 2-3 capitalized tokens. A
// match qualifies only if it is long enough and contains no token from
// the exclusion vocabulary (site boilerplate that happens to be
// capitalized).
var buyerNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?`),
	regexp.MustCompile(`[A-Z][a-z]+\s+[A-Z]+[a-z]*`),
}

var buyerNameExclusions = []string{
	"Posted", "Quote", "United", "Arab", "Emirates", "Date", "Quantity",
	"Required", "Email", "Confirmed", "Quotes", "Left", "Before", "Piece",
}

const minBuyerNameLength = 6

// MatchBuyerName scans flattened container text for a name-shaped match.
// The first qualifying match across the pattern list wins.
func MatchBuyerName(text string) (string, bool) {
	for _, re := range buyerNamePatterns {
		for _, match := range re.FindAllString(text, -1) {
			if len(match) < minBuyerNameLength {
				continue
			}
			if containsAnyWord(match, buyerNameExclusions) {
				continue
			}
			return strings.TrimSpace(match), true
		}
	}
	return "", false
}

func containsAnyWord(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Relative-time expressions. The qualified form ("3 hours ago") is
// preferred; the bare form is a fallback for layouts that drop the
// trailing qualifier.
var inquiryTimePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\s+(?:hour|hours|minute|minutes|day|days)\s+(?:ago|before)`),
	regexp.MustCompile(`(?i)\d+\s+(?:hour|hours|minute|minutes|day|days)`),
}

// MatchInquiryTime returns the first relative-time expression in the
// text. The value is kept as free text; the source never exposes an
// absolute timestamp.
func MatchInquiryTime(text string) (string, bool) {
	for _, re := range inquiryTimePatterns {
		if m := re.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}

// Quotes-left counts appear in either word order.
var quotesLeftPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Quotes?\s+Left\s+(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s+quotes?\s+left`),
}

// MatchQuotesLeft returns the numeric quotes-left value from the text.
func MatchQuotesLeft(text string) (string, bool) {
	for _, re := range quotesLeftPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// Quantity expressions: a number followed by a unit from a fixed
// vocabulary, with any trailing qualifier up to the next field boundary.
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Quantity\s+Required:\s*(\d+[^,\n\r]*(?:Piece|Unit|Box|Carton|Meter|Kilogram|Ton|Liter)[^,\n\r]*)`),
	regexp.MustCompile(`(?i)(\d+\s*(?:Piece|Pieces|Unit|Units|Box|Boxes|Carton|Cartons|Meter|Meters|Kilogram|Ton|Liter)[^,\n\r]*)`),
}

// maxQuantityLength rejects runaway matches where the trailing qualifier
// swallows unrelated page text.
const maxQuantityLength = 100

// MatchQuantity returns the quantity-with-unit expression from the text.
// Matches longer than maxQuantityLength are discarded and the next
// pattern is tried.
func MatchQuantity(text string) (string, bool) {
	for _, re := range quantityPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		quantity := CleanText(m[1])
		if len(quantity) < maxQuantityLength {
			return quantity, true
		}
	}
	return "", false
}

// rfqIDMarker anchors the best-effort RFQ ID parse. The ID is a
// fixed-length substring of the p query parameter; treat it as metadata,
// not as a reliable key.
const (
	rfqIDMarker = "p=ID1"
	rfqIDLength = 10
)

// MatchRFQID extracts the RFQ identifier from a detail URL.
func MatchRFQID(url string) (string, bool) {
	idx := strings.Index(url, rfqIDMarker)
	if idx == -1 {
		return "", false
	}
	id := url[idx+len("p="):]
	if amp := strings.Index(id, "&"); amp != -1 {
		id = id[:amp]
	}
	if len(id) > rfqIDLength {
		id = id[:rfqIDLength]
	}
	return id, true
}

// Boolean flags are set by literal phrase presence in lowercased
// container text. Presence is sufficient even in a negative or
// conditional context; negation is not handled (inherited source
// behavior, kept as-is).
var flagPhrases = []struct {
	phrase string
	set    func(r *rfqscrape.Record)
}{
	{"email confirmed", func(r *rfqscrape.Record) { r.EmailConfirmed = rfqscrape.FlagYes }},
	{"experienced buyer", func(r *rfqscrape.Record) { r.ExperiencedBuyer = rfqscrape.FlagYes }},
	{"complete order via rfq", func(r *rfqscrape.Record) { r.CompleteOrderViaRFQ = rfqscrape.FlagYes }},
	{"typically replies", func(r *rfqscrape.Record) { r.TypicalReplies = rfqscrape.FlagYes }},
	{"interactive user", func(r *rfqscrape.Record) { r.InteractiveUser = rfqscrape.FlagYes }},
}

// applyFlags sets each boolean-flag field whose phrase appears in the
// container text.
func applyFlags(text string, rec *rfqscrape.Record) {
	lowered := strings.ToLower(text)
	for _, f := range flagPhrases {
		if strings.Contains(lowered, f.phrase) {
			f.set(rec)
		}
	}
}
