// Package ratelimiter is a token bucket limiter with in-memory and Redis
// backed stores, plus an HTTP middleware.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//	    Capacity:       5,
//	    RefillRate:     1,
//	    RefillInterval: time.Minute,
//	})
//
//	r.With(ratelimiter.Middleware(limiter, bySession, nil)).Post("/share", share)
//
// Buckets start full. A request that finds too few tokens is denied without
// spending any, so a client hammering the endpoint recovers as soon as the
// next refill lands. RedisStore runs the same arithmetic in a Lua script and
// lets several instances share one budget.
package ratelimiter
