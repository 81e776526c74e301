package crawl

import (
	"fmt"
	"strings"
)

// RecencyMarker is the query fragment that enables the offset-based
// alternate pagination scheme. Listings sorted by recency accept a
// startIndex offset that the default page parameter does not honor on
// every deployment of the source site.
const RecencyMarker = "&recently=Y"

// recordsPerPage is the page size assumed by the offset-based scheme.
const recordsPerPage = 20

// PageURL returns the listing URL for the given 1-based page. Page 1 uses
// the base URL verbatim; later pages append a page query parameter with
// "&" or "?" depending on whether the base URL already has a query
// string.
func PageURL(baseURL string, page int) string {
	if page <= 1 {
		return baseURL
	}
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spage=%d", baseURL, sep, page)
}

// AlternatePageURL returns the offset-based fallback URL for the page,
// tried when the primary scheme yields no records. The scheme only
// applies when the base URL carries the recency marker; otherwise the
// primary URL is returned unchanged and the retry is a no-op.
func AlternatePageURL(baseURL string, page int) string {
	if !strings.Contains(baseURL, RecencyMarker) {
		return PageURL(baseURL, page)
	}
	withOffset := fmt.Sprintf("%s&startIndex=%d", RecencyMarker, (page-1)*recordsPerPage)
	return strings.Replace(baseURL, RecencyMarker, withOffset, 1)
}
