// Package cache provides a generic TTL cache with in-memory and Redis
// backends, plus GetOrSet for read-through loading without stampedes.
//
//	var c cache.Cache[[]repository.BlogPost] = cache.NewMemory[[]repository.BlogPost]()
//	if client != nil {
//	    c = cache.NewRedis[[]repository.BlogPost](client, cache.WithPrefix("content"))
//	}
//
//	posts, err := cache.GetOrSet(ctx, c, "posts", func(ctx context.Context) ([]repository.BlogPost, time.Duration, error) {
//	    p, err := q.ListPublishedPosts(ctx)
//	    return p, ttl, err
//	})
//
// The Redis backend stores values as JSON.
package cache
