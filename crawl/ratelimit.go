package crawl

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

// Politeness defaults between page fetches. The source site throttles
// clients that page through listings at machine speed.
const (
	DefaultMinPageInterval = 3 * time.Second
	DefaultPageJitter      = 3 * time.Second
)

// Limiter paces page fetches to emulate human browsing: a token-bucket
// minimum interval plus random jitter on top.
type Limiter struct {
	limiter *rate.Limiter
	jitter  time.Duration
}

// NewLimiter creates a Limiter enforcing at least minInterval between
// waits, with up to jitter of additional random delay per wait.
func NewLimiter(minInterval, jitter time.Duration) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
		jitter:  jitter,
	}
}

// Wait blocks until the next page fetch is allowed. Returns an error if
// the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}
	if l.jitter <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(rand.N(l.jitter)):
		return nil
	}
}
