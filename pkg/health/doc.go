// Package health serves liveness and readiness endpoints.
//
// Readiness runs a set of named checks concurrently under a shared timeout.
// Checks use the same func(context.Context) error signature as the
// Healthcheck helpers in pkg/db, pkg/redis and pkg/job:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	    "redis":    redis.Healthcheck(client),
//	}, health.WithTimeout(3*time.Second), health.WithLogger(log)))
//
// Both endpoints answer JSON and are never cached. Readiness answers 503 when
// any check fails:
//
//	{"status":"unhealthy","checks":{"redis":{"status":"unhealthy","error":"connection refused","latency_ms":2}}}
package health
