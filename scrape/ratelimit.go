package scrape

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/gridiron"
	"golang.org/x/time/rate"
)

// Limiter throttles requests per host.
type Limiter interface {
	Wait(ctx context.Context, host string) error
}

var _ Limiter = (*HostLimiter)(nil)

// HostLimiter provides per-host rate limiting using token buckets.
// Every classification page is usually served by the same host, so the
// per-host bucket is what actually bounds request rate during a run.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second
// per host with the given burst. A burst below 1 is treated as 1.
func NewHostLimiter(rps float64, burst int) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    max(burst, 1),
	}
}

// Wait blocks until the rate limit allows a request to host.
// Returns an error if the context is canceled before the wait completes.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), l.burst)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}

// hostOf returns the host part of rawURL.
func hostOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", gridiron.Errorf(gridiron.EINVALID, "invalid source URL %q: %v", rawURL, err)
	}
	return u.Host, nil
}
