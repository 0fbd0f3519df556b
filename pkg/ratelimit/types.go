package ratelimit

import (
	"context"
	"time"
)

// Result contains the outcome of a rate limit check.
type Result struct {
	// Allowed indicates whether the request may proceed.
	Allowed bool

	// Limit is the maximum number of requests allowed per window.
	Limit int

	// Remaining is the number of requests left in the current window.
	Remaining int

	// ResetAt is when the current window expires.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before the next request is allowed.
// Returns 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Config defines a fixed window.
type Config struct {
	MaxRequests int           `env:"RATELIMIT_MAX_REQUESTS" envDefault:"300"`
	Window      time.Duration `env:"RATELIMIT_WINDOW" envDefault:"1m"`
}

// Store is the counter backend. IncrementAndGet must be atomic: create the
// window on first use, reset it when expired, and return the post-increment
// count together with the window's reset time.
type Store interface {
	IncrementAndGet(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)

	// Delete removes the counter for a key.
	Delete(ctx context.Context, key string) error
}
