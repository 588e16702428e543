package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdentityTTL bounds how long a resolved identity is served from cache.
// A deleted user keeps authenticating for at most this long.
const IdentityTTL = 5 * time.Minute

// IdentityCache caches the middleware's per-request "does this user id
// still resolve" store lookup in Redis. Only positive results are cached.
type IdentityCache struct {
	rdb *redis.Client
}

func NewIdentityCache(rdb *redis.Client) *IdentityCache {
	return &IdentityCache{rdb: rdb}
}

// Get returns the cached user id, or "" on a miss.
func (c *IdentityCache) Get(ctx context.Context, userID string) (string, error) {
	val, err := c.rdb.Get(ctx, "identity:"+userID).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// Set records that userID resolved against the store.
func (c *IdentityCache) Set(ctx context.Context, userID string) error {
	return c.rdb.Set(ctx, "identity:"+userID, userID, IdentityTTL).Err()
}
