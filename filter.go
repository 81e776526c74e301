package rfqscrape

import "strings"

// DefaultMinTitleLength is the minimum title length for a candidate to be
// considered a genuine record rather than a stray link.
const DefaultMinTitleLength = 10

// DefaultTitleDenylist rejects promotional and navigational elements that
// carry detail links but are not listings.
var DefaultTitleDenylist = []string{
	"buy access",
	"submit buying",
	"join free",
	"sign in",
}

// SeenSet is a run-scoped identity set of accepted inquiry URLs. The set
// grows monotonically for the lifetime of one run; there is no eviction
// and no persistence across runs.
type SeenSet interface {
	// Add records a URL as seen.
	Add(url string)

	// Seen reports whether the URL has already been accepted.
	Seen(url string) bool
}

// Filter decides whether an extracted candidate is a genuine, not yet
// seen record. Accept does not mutate the seen-set: on acceptance the
// caller must insert the record's InquiryURL before processing the next
// candidate, so no two candidates in one page can both pass with the
// same key.
type Filter struct {
	// MinTitleLength rejects candidates with shorter titles.
	// Defaults to DefaultMinTitleLength when zero.
	MinTitleLength int

	// TitleDenylist rejects candidates whose lowercase title contains
	// any of these phrases. Defaults to DefaultTitleDenylist when nil.
	TitleDenylist []string
}

// NewFilter returns a Filter with default thresholds.
func NewFilter() *Filter {
	return &Filter{
		MinTitleLength: DefaultMinTitleLength,
		TitleDenylist:  DefaultTitleDenylist,
	}
}

// Accept reports whether the record should be kept. It is pure with
// respect to its inputs: calling it twice with the same record and
// seen-set yields the same decision.
func (f *Filter) Accept(record *Record, seen SeenSet) bool {
	minLen := f.MinTitleLength
	if minLen == 0 {
		minLen = DefaultMinTitleLength
	}
	denylist := f.TitleDenylist
	if denylist == nil {
		denylist = DefaultTitleDenylist
	}

	if record.Title == NA || len(record.Title) < minLen {
		return false
	}
	if seen != nil && seen.Seen(record.InquiryURL) {
		return false
	}

	title := strings.ToLower(record.Title)
	for _, phrase := range denylist {
		if strings.Contains(title, phrase) {
			return false
		}
	}

	return true
}
