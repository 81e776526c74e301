// Package goquery implements record extraction from rendered listing
// pages using DOM traversal and pattern matching.
package goquery

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rfqscrape"
)

// DefaultCountry is the configured buyer country. The listing is filtered
// by country at the URL level, so the value is constant per run rather
// than extracted per record.
const DefaultCountry = "United Arab Emirates"

// assetHost is the CDN serving buyer avatars. Images from other hosts are
// page chrome, not buyer images.
const assetHost = "alicdn.com"

// Ensure Extractor implements rfqscrape.RecordExtractor at compile time.
var _ rfqscrape.RecordExtractor = (*Extractor)(nil)

// Extractor extracts candidate records from rendered listing HTML.
// Extraction is total: any sub-field that cannot be parsed keeps its
// sentinel default and the remaining fields are still extracted.
type Extractor struct {
	// Locator finds candidate containers. Defaults to NewLocator().
	Locator *Locator

	// Country is stamped on every record. Defaults to DefaultCountry.
	Country string

	// Now returns the run date for the record date fields.
	// Defaults to time.Now; injectable for tests.
	Now func() time.Time
}

// NewExtractor returns an Extractor with default configuration.
func NewExtractor() *Extractor {
	return &Extractor{
		Locator: NewLocator(),
		Country: DefaultCountry,
	}
}

// Extract locates candidate containers in the HTML and returns one Record
// per container, unfiltered. The pageURL is used to resolve relative
// detail links to absolute form.
func (e *Extractor) Extract(html string, pageURL string) ([]*rfqscrape.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, rfqscrape.Errorf(rfqscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, rfqscrape.Errorf(rfqscrape.EINVALID, "invalid page URL: %v", err)
	}

	locator := e.Locator
	if locator == nil {
		locator = NewLocator()
	}
	country := e.Country
	if country == "" {
		country = DefaultCountry
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	containers := locator.Locate(doc)
	records := make([]*rfqscrape.Record, 0, len(containers))
	for _, container := range containers {
		records = append(records, extractRecord(container, base, country, now()))
	}
	return records, nil
}

// extractRecord populates one Record from a candidate container in a
// single pass. First match wins within each field; fields with no match
// keep their sentinel.
func extractRecord(container *goquery.Selection, base *url.URL, country string, runDate time.Time) *rfqscrape.Record {
	rec := rfqscrape.NewRecord(country, runDate)
	text := container.Text()

	// Title and detail URL come from the first detail anchor. A title at
	// or below the minimum length is left as the sentinel so the filter
	// rejects the candidate.
	anchor := container.Find(DetailLinkSelector).First()
	if anchor.Length() == 0 && container.Is(DetailLinkSelector) {
		// The container may be the detail anchor itself when no
		// ancestor qualified during widening.
		anchor = container
	}
	if anchor.Length() > 0 {
		if title := CleanText(anchor.Text()); len(title) > rfqscrape.DefaultMinTitleLength {
			rec.Title = title
		}
		if href, ok := anchor.Attr("href"); ok && href != "" {
			if resolved := resolveURL(base, href); resolved != "" {
				rec.InquiryURL = resolved
				if id, ok := MatchRFQID(resolved); ok {
					rec.RFQID = id
				}
			}
		}
	}

	if name, ok := MatchBuyerName(text); ok {
		rec.BuyerName = name
	}

	// Buyer image: first img with an avatar-size marker or the word
	// "avatar" on the known asset host. Protocol-relative URLs are
	// upgraded to explicit https.
	container.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			return true
		}
		if !strings.Contains(src, assetHost) {
			return true
		}
		if !strings.Contains(src, "50x50") && !strings.Contains(strings.ToLower(src), "avatar") {
			return true
		}
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		}
		rec.BuyerImageURL = src
		return false
	})

	if inquiryTime, ok := MatchInquiryTime(text); ok {
		rec.InquiryTime = inquiryTime
	}
	if quotes, ok := MatchQuotesLeft(text); ok {
		rec.QuotesLeft = quotes
	}
	if quantity, ok := MatchQuantity(text); ok {
		rec.QuantityRequired = quantity
	}

	applyFlags(text, rec)

	return rec
}

// resolveURL resolves a relative href against the page URL. Returns empty
// string if the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
