// Package bloom provides the run-scoped seen-set used to deduplicate
// records by inquiry URL.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/rfqscrape"
)

// Sizing for one run. Per-page and per-run caps bound accepted records to
// the low hundreds, so the filter stays far below its design load. A false
// positive can only cause an extra rejection, never a duplicate
// acceptance, which preserves the uniqueness invariant.
const (
	defaultExpectedURLs      = 10000
	defaultFalsePositiveRate = 0.001
)

// Compile-time interface verification.
var _ rfqscrape.SeenSet = (*SeenSet)(nil)

// SeenSet tracks accepted inquiry URLs with a Bloom filter. The set grows
// monotonically for the lifetime of one run and is never persisted.
type SeenSet struct {
	f *bloom.BloomFilter
}

// NewSeenSet creates a SeenSet sized for one scraping run.
func NewSeenSet() *SeenSet {
	return NewSeenSetWithEstimates(defaultExpectedURLs, defaultFalsePositiveRate)
}

// NewSeenSetWithEstimates creates a SeenSet sized for n expected URLs
// with the given false positive rate.
func NewSeenSetWithEstimates(n uint, fpRate float64) *SeenSet {
	return &SeenSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL as seen. URL fragments are stripped first, so URLs
// differing only by fragment are considered the same record.
func (s *SeenSet) Add(url string) {
	s.f.AddString(stripFragment(url))
}

// Seen reports whether the URL has been accepted before.
// False positives are possible; false negatives are not.
func (s *SeenSet) Seen(url string) bool {
	return s.f.TestString(stripFragment(url))
}

// EstimatedCount returns the approximate number of URLs in the set.
func (s *SeenSet) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
