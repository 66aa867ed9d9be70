package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// BucketOption configures Buckets.
type BucketOption func(*Buckets)

// WithIdleTTL sets how long an unused bucket is kept. Default: 15m.
func WithIdleTTL(d time.Duration) BucketOption {
	return func(b *Buckets) { b.idleTTL = d }
}

// WithBucketCleanup sets the janitor interval. Default: 2m.
func WithBucketCleanup(d time.Duration) BucketOption {
	return func(b *Buckets) { b.cleanupEvery = d }
}

// WithBucketClock overrides the time source. Intended for tests.
func WithBucketClock(now func() time.Time) BucketOption {
	return func(b *Buckets) {
		if now != nil {
			b.now = now
		}
	}
}

// Buckets keeps one token bucket per key.
type Buckets struct {
	entries      map[string]*bucket
	now          func() time.Time
	rps          rate.Limit
	burst        int
	idleTTL      time.Duration
	cleanupEvery time.Duration
	mu           sync.Mutex
}

// NewBuckets creates a keyed token-bucket store refilling rps tokens per
// second up to burst.
func NewBuckets(rps float64, burst int, opts ...BucketOption) *Buckets {
	b := &Buckets{
		entries:      make(map[string]*bucket),
		now:          time.Now,
		rps:          rate.Limit(rps),
		burst:        burst,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Allow takes one token from the key's bucket.
func (b *Buckets) Allow(key string) bool {
	return b.limiter(key).AllowN(b.now(), 1)
}

// Reserve returns the delay until a token is available for key, without
// consuming it.
func (b *Buckets) Reserve(key string) time.Duration {
	now := b.now()
	r := b.limiter(key).ReserveN(now, 1)
	if !r.OK() {
		return b.idleTTL
	}
	d := r.DelayFrom(now)
	r.CancelAt(now)
	return d
}

// Len returns the number of tracked buckets.
func (b *Buckets) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Cleanup drops buckets that have been idle longer than the idle TTL.
func (b *Buckets) Cleanup() {
	cutoff := b.now().Add(-b.idleTTL)

	b.mu.Lock()
	defer b.mu.Unlock()

	for k, e := range b.entries {
		if e.lastSeen.Before(cutoff) {
			delete(b.entries, k)
		}
	}
}

// Run purges idle buckets until ctx is cancelled. Blocks.
func (b *Buckets) Run(ctx context.Context) {
	if b.cleanupEvery <= 0 {
		<-ctx.Done()
		return
	}

	t := time.NewTicker(b.cleanupEvery)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			b.Cleanup()
		}
	}
}

func (b *Buckets) limiter(key string) *rate.Limiter {
	now := b.now()

	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.entries[key]; ok {
		e.lastSeen = now
		return e.lim
	}

	lim := rate.NewLimiter(b.rps, b.burst)
	b.entries[key] = &bucket{lim: lim, lastSeen: now}
	return lim
}
