package pipedrive

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/pdsync/internal/logger"
)

// Pipedrive rate limit response headers.
const (
	HeaderRateLimit     = "X-Ratelimit-Limit"
	HeaderRateRemaining = "X-Ratelimit-Remaining"
	// HeaderRateReset is the number of seconds until the window resets.
	HeaderRateReset = "X-Ratelimit-Reset"
)

// RateLimiter paces requests with a token bucket and holds the next request
// back while the server reports an exhausted quota.
type RateLimiter struct {
	mu        sync.Mutex
	bucket    *rate.Limiter
	remaining int
	resetAt   time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second with the
// given burst. A negative rps disables pacing.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	limit := rate.Limit(rps)
	if rps < 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		bucket:    rate.NewLimiter(limit, burst),
		remaining: -1,
		now:       time.Now,
	}
}

// Wait blocks until a request may be sent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining := r.remaining
	resetAt := r.resetAt
	now := r.now()
	r.mu.Unlock()

	if remaining != 0 || !now.Before(resetAt) {
		return nil
	}

	wait := resetAt.Sub(now)
	logger.Debug("Rate limit quota exhausted, waiting %s", wait)
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// UpdateFromResponse records the quota reported by a response.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}
	remaining, err := strconv.Atoi(resp.Header.Get(HeaderRateRemaining))
	if err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.remaining = remaining
	if reset, err := strconv.Atoi(resp.Header.Get(HeaderRateReset)); err == nil && reset > 0 {
		r.resetAt = r.now().Add(time.Duration(reset) * time.Second)
	} else {
		r.resetAt = time.Time{}
	}
	logger.Debug("Rate limit: %d of %s requests remaining", remaining, resp.Header.Get(HeaderRateLimit))
}

// Remaining returns the last reported quota, or -1 if none was seen.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}
