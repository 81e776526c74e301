// Package rod fetches rendered listing HTML using headless Chrome.
package rod

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/fwojciec/rfqscrape"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements rfqscrape.Fetcher at compile time.
var _ rfqscrape.Fetcher = (*Fetcher)(nil)

const (
	// DefaultFetchTimeout bounds a single page fetch, rendering included.
	DefaultFetchTimeout = 60 * time.Second

	// DefaultMinSettleDelay and DefaultMaxSettleDelay bound the randomized
	// pause after page load that lets late JavaScript populate the listing.
	DefaultMinSettleDelay = 4 * time.Second
	DefaultMaxSettleDelay = 7 * time.Second

	// DefaultScrollPause is the pause after each scroll step that gives
	// lazily loaded rows time to render.
	DefaultScrollPause = 2 * time.Second
)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// After navigation it waits a randomized settle delay, then scrolls the page
// in two steps to trigger lazy-loaded content before serializing the DOM.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	closed   atomic.Bool

	fetchTimeout time.Duration
	minSettle    time.Duration
	maxSettle    time.Duration
	scrollPause  time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-fetch timeout. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithSettleDelay sets the bounds of the randomized post-load delay.
func WithSettleDelay(min, max time.Duration) Option {
	return func(f *Fetcher) {
		f.minSettle = min
		f.maxSettle = max
	}
}

// WithScrollPause sets the pause after each scroll step.
func WithScrollPause(d time.Duration) Option {
	return func(f *Fetcher) {
		f.scrollPause = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
		minSettle:    DefaultMinSettleDelay,
		maxSettle:    DefaultMaxSettleDelay,
		scrollPause:  DefaultScrollPause,
	}
	for _, opt := range opts {
		opt(f)
	}

	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = lnchr
	return f, nil
}

// Fetch navigates to the URL, waits for the listing to render, scrolls to
// the middle and then the bottom of the page, and returns the final HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", rfqscrape.Errorf(rfqscrape.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Bind the page to the fetch context so navigation and evaluation
	// honor cancellation and the fetch timeout.
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if err := sleep(ctx, f.settleDelay()); err != nil {
		return "", err
	}

	// Scroll in two steps to trigger lazily loaded rows. A failed scroll
	// does not abort the fetch; the markup rendered so far is still usable.
	if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight / 2)`); err == nil {
		if err := sleep(ctx, f.scrollPause); err != nil {
			return "", err
		}
	}
	if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err == nil {
		if err := sleep(ctx, f.scrollPause); err != nil {
			return "", err
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := f.browser.Close()
	f.launcher.Kill()
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}

// settleDelay picks a random delay within the configured settle bounds.
func (f *Fetcher) settleDelay() time.Duration {
	if f.maxSettle <= f.minSettle {
		return f.minSettle
	}
	return f.minSettle + rand.N(f.maxSettle-f.minSettle)
}

// sleep waits for d or until the context is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
