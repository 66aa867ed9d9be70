package middlewares

import (
	"strconv"
	"time"

	"github.com/dmitrymomot/portfolio/internal/web"
	"github.com/dmitrymomot/portfolio/pkg/ratelimit"
)

// DefaultQuotaMessage is returned to clients over their quota.
const DefaultQuotaMessage = "Rate limit exceeded. Please try again later."

// QuotaConfig configures the Quota middleware.
type QuotaConfig struct {
	Now       func() time.Time
	Message   string
	Extractor web.Extractor
}

// QuotaOption configures QuotaConfig.
type QuotaOption func(*QuotaConfig)

// WithQuotaKey sets where the client key comes from.
// Default: first X-Forwarded-For hop, then "unknown".
func WithQuotaKey(sources ...web.ExtractorSource) QuotaOption {
	return func(cfg *QuotaConfig) { cfg.Extractor = web.NewExtractor(sources...) }
}

func WithQuotaMessage(msg string) QuotaOption {
	return func(cfg *QuotaConfig) { cfg.Message = msg }
}

func WithQuotaClock(now func() time.Time) QuotaOption {
	return func(cfg *QuotaConfig) { cfg.Now = now }
}

// Quota admits requests through limiter, keyed per client. Rejected requests
// get 429 with Retry-After. A failing limiter admits the request.
func Quota(limiter ratelimit.Limiter, opts ...QuotaOption) web.Middleware {
	cfg := &QuotaConfig{
		Now:       time.Now,
		Message:   DefaultQuotaMessage,
		Extractor: web.NewExtractor(web.FromForwardedFor(), web.Fixed("unknown")),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			key, _ := cfg.Extractor.Extract(c)

			d, err := limiter.Allow(c.Context(), key)
			if err != nil {
				c.LogWarn("rate limiter unavailable, admitting request", "error", err)
				return next(c)
			}
			if !d.Allowed {
				c.SetHeader("Retry-After", strconv.Itoa(d.RetryAfterSeconds(cfg.Now())))
				return web.ErrTooManyRequests(cfg.Message, web.WithError(ratelimit.ErrLimitExceeded))
			}

			return next(c)
		}
	}
}
