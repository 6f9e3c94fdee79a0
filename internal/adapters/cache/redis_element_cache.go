package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis-backed cache for raw Overpass responses. Entries expire after TTL
// so stale survey data eventually refetches; queries are hashed to keep
// Redis keys short.
type RedisElementCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisElementCache(client *redis.Client, ttl time.Duration) *RedisElementCache {
	return &RedisElementCache{Client: client, TTL: ttl}
}

func redisKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return "overpass:" + hex.EncodeToString(sum[:])
}

// Get returns the cached payload for key, or ok=false on a miss.
func (r *RedisElementCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if r.Client == nil {
		return nil, false, errors.New("element cache: redis client is nil")
	}

	payload, err := r.Client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get element cache: %w", err)
	}

	return payload, true, nil
}

// Put stores a payload under key, replacing any previous value.
func (r *RedisElementCache) Put(ctx context.Context, key string, payload []byte) error {
	if r.Client == nil {
		return errors.New("element cache: redis client is nil")
	}

	if err := r.Client.Set(ctx, redisKey(key), payload, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert element cache: %w", err)
	}

	return nil
}
