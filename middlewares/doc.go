// Package middlewares provides HTTP middleware for the web package.
//
// # Request ID
//
// RequestID assigns every request an ID (UUIDv7 unless a well-formed
// X-Request-ID arrives) and echoes it in the response. Pair it with
// RequestIDExtractor so every log record carries request_id:
//
//	log, closeLog := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	app := web.New(
//	    web.WithLogger(log),
//	    web.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover and Timeout
//
// Recover converts panics to *PanicError. Timeout attaches a deadline to the
// request context and returns *TimeoutError, which reports status 504; writes
// the handler makes after the deadline are discarded.
//
// # CORS
//
// CORS is origin driven. PublicCORS is the open variant used by the JSON API:
// headers go on every response and preflight gets an empty 200.
//
// # Quota and Throttle
//
// Quota enforces a fixed window per client through a ratelimit.Limiter and
// fails open when the limiter errors. Throttle smooths bursts with token
// buckets. Both answer 429 with Retry-After.
//
//	api.POST("/contact", h.Submit, middlewares.Quota(limiter))
package middlewares
