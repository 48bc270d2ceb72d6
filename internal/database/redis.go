package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zaijudeng/toolstation/internal/config"
)

// NewRedis creates the Redis client backing the login rate limiter. That is
// Redis's only job in this app: sessions are stateless signed tokens and
// all durable state lives in MariaDB, so the keyspace holds nothing but
// short-lived ratelimit:* counters.
//
// Startup still fails if Redis is unreachable. The limiter itself fails
// open at request time, but a dead Redis at boot is a deployment fault
// worth surfacing immediately rather than running unprotected.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	opts.ClientName = "toolstation-ratelimit"

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}
