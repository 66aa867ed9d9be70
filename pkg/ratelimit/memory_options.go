package ratelimit

import "time"

// MemoryOption configures the in-memory limiter.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	now             func() time.Time
	cleanupInterval time.Duration
	maxKeys         int
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		now:             time.Now,
		cleanupInterval: time.Minute,
		maxKeys:         100_000,
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithCleanupInterval sets how often expired windows are purged.
// Zero or negative disables the background janitor.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}

// WithMaxKeys bounds the number of tracked keys. When full, the least
// recently hit key is dropped. Zero means unlimited.
func WithMaxKeys(n int) MemoryOption {
	return func(o *memoryOptions) {
		o.maxKeys = max(n, 0)
	}
}
