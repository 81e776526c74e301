// Package crawl drives the locate → extract → filter pipeline across
// listing pages. Pages are processed strictly sequentially: one page is
// fully rendered, extracted, and filtered before the next fetch begins.
// This is a deliberate politeness design, not an accident; a future
// concurrent fetch strategy must keep serializing writes to the seen-set
// and the result accumulation.
package crawl

import (
	"context"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/rfqscrape"
	"github.com/fwojciec/rfqscrape/bloom"
)

// DefaultPerPageLimit caps accepted records per page so navigation-heavy
// pages cannot flood a run.
const DefaultPerPageLimit = 20

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types emitted during a run.
const (
	ProgressPageStarted ProgressType = iota
	ProgressPageFailed
	ProgressPageRetried
	ProgressPageCompleted
	ProgressStopped
	ProgressFinished
)

// ProgressEvent reports progress during a scraping run.
type ProgressEvent struct {
	Type     ProgressType
	Page     int
	URL      string
	Accepted int // records accepted on this page
	Total    int // records accepted so far in the run
	Error    error
}

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Scraper paginates through a listing and accumulates accepted records.
// It owns the run-scoped seen-set consulted by the filter; acceptance and
// seen-set insertion happen together inside the page loop, so no two
// candidates in a run can both pass with the same inquiry URL.
type Scraper struct {
	Fetcher   rfqscrape.Fetcher
	Extractor rfqscrape.RecordExtractor

	// Filter decides candidate acceptance. Defaults to
	// rfqscrape.NewFilter().
	Filter *rfqscrape.Filter

	// Seen is the run-scoped deduplication set. Defaults to
	// bloom.NewSeenSet().
	Seen rfqscrape.SeenSet

	// Limiter, when set, paces page fetches.
	Limiter *Limiter

	// PerPageLimit caps accepted records per page.
	// Defaults to DefaultPerPageLimit when zero.
	PerPageLimit int
}

// Run scrapes pages 1..maxPages sequentially and returns the accepted
// records in acceptance order.
//
// A page that yields zero accepted records (including fetch failures,
// which are treated as zero-yield) is retried once with the alternate
// offset-based URL; if the retry also yields zero the run stops early,
// treating zero-yield as an end-of-results signal. Context cancellation
// stops the run promptly and preserves records accumulated so far.
func (s *Scraper) Run(ctx context.Context, baseURL string, maxPages int, progress ProgressFunc) []*rfqscrape.Record {
	filter := s.Filter
	if filter == nil {
		filter = rfqscrape.NewFilter()
	}
	seen := s.Seen
	if seen == nil {
		seen = bloom.NewSeenSet()
	}
	perPage := s.PerPageLimit
	if perPage == 0 {
		perPage = DefaultPerPageLimit
	}

	notify := func(ev ProgressEvent) {
		if progress != nil {
			progress(ev)
		}
	}

	var records []*rfqscrape.Record
	var lastHash uint64

	for page := 1; page <= maxPages; page++ {
		if ctx.Err() != nil {
			break
		}
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx); err != nil {
				break
			}
		}

		url := PageURL(baseURL, page)
		notify(ProgressEvent{Type: ProgressPageStarted, Page: page, URL: url})

		accepted, hash, err := s.scrapePage(ctx, url, lastHash, perPage, filter, seen, &records)
		if err != nil {
			notify(ProgressEvent{Type: ProgressPageFailed, Page: page, URL: url, Error: err})
		}
		if hash != 0 {
			lastHash = hash
		}

		if accepted == 0 {
			if ctx.Err() != nil {
				break
			}
			altURL := AlternatePageURL(baseURL, page)
			if altURL != url {
				notify(ProgressEvent{Type: ProgressPageRetried, Page: page, URL: altURL})
				var altErr error
				accepted, hash, altErr = s.scrapePage(ctx, altURL, lastHash, perPage, filter, seen, &records)
				if altErr != nil {
					notify(ProgressEvent{Type: ProgressPageFailed, Page: page, URL: altURL, Error: altErr})
				}
				if hash != 0 {
					lastHash = hash
				}
				if accepted > 0 {
					// the alternate is the URL that actually yielded
					url = altURL
				}
			}
			if accepted == 0 {
				notify(ProgressEvent{Type: ProgressStopped, Page: page, Total: len(records)})
				break
			}
		}

		notify(ProgressEvent{Type: ProgressPageCompleted, Page: page, URL: url, Accepted: accepted, Total: len(records)})
	}

	notify(ProgressEvent{Type: ProgressFinished, Total: len(records)})
	return records
}

// scrapePage fetches and processes a single page URL, appending accepted
// records. It returns the number accepted and the rendered page's content
// fingerprint. A render identical to the previous page means the site
// ignored the pagination parameter; such pages are treated as zero-yield
// without extraction.
func (s *Scraper) scrapePage(ctx context.Context, url string, lastHash uint64, perPage int, filter *rfqscrape.Filter, seen rfqscrape.SeenSet, records *[]*rfqscrape.Record) (int, uint64, error) {
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return 0, 0, err
	}

	hash := xxhash.Sum64String(html)
	if lastHash != 0 && hash == lastHash {
		return 0, hash, nil
	}

	candidates, err := s.Extractor.Extract(html, url)
	if err != nil {
		return 0, hash, err
	}

	accepted := 0
	for _, rec := range candidates {
		if !filter.Accept(rec, seen) {
			continue
		}
		seen.Add(rec.InquiryURL)
		*records = append(*records, rec)
		accepted++
		if accepted >= perPage {
			break
		}
	}
	return accepted, hash, nil
}
