package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/creatorly/videos-ms-go/internal/port"
	"github.com/redis/go-redis/v9"
)

// Cache keeps processing-status payloads for a couple of seconds so that
// client polling does not translate one-to-one into remote calls.
type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetProcessingStatus(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, cacheKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) SetProcessingStatus(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, cacheKey(key), data, ttl).Err(); err != nil {
		log.Printf("failed to cache processing status for task %q: %v", key, err)
	}
}

func (c *Cache) DeleteProcessingStatus(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, cacheKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func cacheKey(key string) string {
	return "processing:" + key
}
