package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// WeatherCache is the best-effort Redis accelerator for weather payloads.
// Store failures are logged and swallowed: a broken cache degrades to
// origin fetches, it never fails a request.
type WeatherCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewWeatherCache(client *redis.Client, log zerolog.Logger) *WeatherCache {
	return &WeatherCache{client: client, log: log}
}

// Get returns the cached value and whether it was present. Errors (including
// an unreachable Redis) are reported as misses.
func (c *WeatherCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		c.log.Debug().Str("key", key).Msg("cache miss")
		return "", false
	}
	if err != nil {
		c.log.Error().Err(err).Str("key", key).Msg("redis GET failed")
		return "", false
	}
	c.log.Debug().Str("key", key).Msg("cache hit")
	return val, true
}

// Set stores a value with the given TTL. Failure is logged and ignored.
func (c *WeatherCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Error().Err(err).Str("key", key).Msg("redis SET failed")
		return
	}
	c.log.Debug().Str("key", key).Dur("ttl", ttl).Msg("cache set")
}
