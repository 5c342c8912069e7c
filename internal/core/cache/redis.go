package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"mealprint/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// RedisCache stores whole estimate responses keyed by a content hash of the
// ingredient block and servings, so repeated bulk imports of the same recipe
// skip the pipeline entirely.
type RedisCache struct {
	client *redis.Client
	config *config.RedisConfig
}

// NewRedisCache connects to redis, or returns a disabled cache when the
// feature is off.
func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	if !cfg.Enabled {
		return &RedisCache{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{
		client: client,
		config: cfg,
	}, nil
}

// Get fetches a cached payload. The boolean is false on miss or when the
// cache is disabled.
func (c *RedisCache) Get(ctx context.Context, block string, servings float64) ([]byte, bool) {
	if c == nil || !c.config.Enabled || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, c.key(block, servings)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a payload under the content hash with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, block string, servings float64, payload []byte) error {
	if c == nil || !c.config.Enabled || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, c.key(block, servings), payload, c.config.TTL).Err()
}

func (c *RedisCache) key(block string, servings float64) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%g", block, servings)))
	return "estimate:" + hex.EncodeToString(hash[:])
}

// Flush deletes every cached estimate. Estimates computed against a replaced
// catalog snapshot must not be served, so the reload path calls this.
func (c *RedisCache) Flush(ctx context.Context) error {
	if c == nil || !c.config.Enabled || c.client == nil {
		return nil
	}

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, "estimate:*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan estimate keys: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete estimate keys: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close releases the redis connection.
func (c *RedisCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
