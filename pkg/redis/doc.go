// Package redis connects to Redis with github.com/redis/go-redis/v9 and
// exposes a readiness check for it.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := notifications.NewRedisStorage(client)
//	checks = append(checks, redis.Healthcheck(client))
//
// Redis is optional for qrshare: Config.Enabled is false when REDIS_URL is
// empty.
package redis
