package middlewares

import (
	"math"
	"strconv"

	"github.com/dmitrymomot/portfolio/internal/web"
	"github.com/dmitrymomot/portfolio/pkg/ratelimit"
)

// Throttle smooths bursts per client with token buckets. Unlike Quota it
// never counts toward a window; it only rejects while the bucket is empty.
func Throttle(buckets *ratelimit.Buckets, sources ...web.ExtractorSource) web.Middleware {
	if len(sources) == 0 {
		sources = []web.ExtractorSource{web.FromForwardedFor(), web.FromRemoteAddr(), web.Fixed("unknown")}
	}
	ext := web.NewExtractor(sources...)

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			key, _ := ext.Extract(c)
			if !buckets.Allow(key) {
				secs := max(int(math.Ceil(buckets.Reserve(key).Seconds())), 1)
				c.SetHeader("Retry-After", strconv.Itoa(secs))
				return web.ErrTooManyRequests(DefaultQuotaMessage, web.WithError(ratelimit.ErrLimitExceeded))
			}
			return next(c)
		}
	}
}
