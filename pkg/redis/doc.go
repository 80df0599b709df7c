// Package redis provides connection helpers for the Redis instance backing
// the replay buffer.
//
// Config is populated from environment variables via pkg/config; Connect
// parses the connection URL and retries until the server answers a ping or
// the attempts are exhausted; Healthcheck returns a probe suitable for
// readiness endpoints.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    log.Error("redis unavailable", logger.Error(err))
//	}
//	store := replaybuffer.NewRedisStore(client)
package redis
