// Package redis opens go-redis clients with startup retries and exposes the
// readiness check and shutdown hook used by the server runtime.
//
//	client, err := redis.Open(ctx, cfg.Redis.URL, cfg.Redis.Options()...)
//	if err != nil {
//	    return err
//	}
//	checks["redis"] = redis.Healthcheck(client)
//	hooks = append(hooks, redis.Shutdown(client))
//
// Redis is optional: when REDIS_URL is empty the quota limiter and content
// cache use their in-memory backends.
package redis
