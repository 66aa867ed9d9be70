// Package ratelimit provides per-key request limiters.
//
// Two algorithms are available:
//
//   - Fixed window (Memory, Redis): at most Max hits per key within a window
//     that starts on the first hit and resets once the window has elapsed.
//   - Token bucket (Buckets): a smoothed rate with a burst allowance,
//     backed by golang.org/x/time/rate.
//
// Fixed-window limiters implement Limiter and return a Decision describing
// whether the hit was admitted and when the window resets:
//
//	lim := ratelimit.NewMemory(ratelimit.Policy{Max: 5, Window: 15 * time.Minute})
//	defer lim.Close()
//
//	d, err := lim.Allow(ctx, clientIP)
//	if err != nil {
//	    // backend unavailable
//	}
//	if !d.Allowed {
//	    w.Header().Set("Retry-After", strconv.Itoa(d.RetryAfterSeconds(time.Now())))
//	}
//
// The Redis backend shares counters across instances:
//
//	lim := ratelimit.NewRedis(client, policy, ratelimit.WithRedisPrefix("quota:contact"))
package ratelimit
