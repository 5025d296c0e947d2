// Package redis connects to Redis with go-redis/v9.
//
// Connect retries until the server answers a ping; Healthcheck returns a ping
// closure suitable for readiness probes. The returned client satisfies
// redis.UniversalClient and is shared by the Redis-backed billing stores.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := ledger.NewRedisStore(client, "")
package redis
