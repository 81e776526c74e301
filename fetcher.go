package rfqscrape

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations use browser automation so that JavaScript-rendered and
// scroll-triggered lazy content is present in the returned markup.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the page to render, and
	// returns the rendered HTML. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
