package ratelimit

import (
	"context"
	"math"
	"time"
)

// Policy configures a fixed-window limiter.
type Policy struct {
	// Max is the number of hits admitted per window.
	Max int
	// Window is the length of a window, measured from its first hit.
	Window time.Duration
}

// Validate reports ErrInvalidPolicy when Max or Window is not positive.
func (p Policy) Validate() error {
	if p.Max <= 0 || p.Window <= 0 {
		return ErrInvalidPolicy
	}
	return nil
}

// Decision is the outcome of a single Allow call.
type Decision struct {
	ResetAt   time.Time
	Count     int
	Remaining int
	Allowed   bool
}

// RetryAfter returns the time left until the window resets relative to now.
// It never returns a negative duration.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	return max(d.ResetAt.Sub(now), 0)
}

// RetryAfterSeconds rounds the remaining window up to whole seconds,
// suitable for the Retry-After header. The result is at least 1.
func (d Decision) RetryAfterSeconds(now time.Time) int {
	secs := int(math.Ceil(d.RetryAfter(now).Seconds()))
	return max(secs, 1)
}

// Limiter admits or rejects hits for a key.
type Limiter interface {
	// Allow records a hit for key and reports whether it is admitted.
	// Rejected hits do not extend or restart the window.
	Allow(ctx context.Context, key string) (Decision, error)
}

func decide(p Policy, count int, resetAt time.Time, allowed bool) Decision {
	return Decision{
		Allowed:   allowed,
		Count:     count,
		Remaining: max(p.Max-count, 0),
		ResetAt:   resetAt,
	}
}
