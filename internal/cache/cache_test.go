package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func makeTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	// spin up in-memory Redis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(mr.Close)
	// point the real client at it
	rdb := redis.NewClient(&redis.Options{
		Addr:     mr.Addr(),
		Password: "",
		DB:       0,
	})
	return &Cache{client: rdb}, mr
}

func TestGetSetDeleteProcessingStatus(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	const key = "3f1b0a9e-0000-0000-0000-000000000001"
	payload := []byte(`{"status":"pending","progress":40}`)

	// 1) Cache miss
	got, err := c.GetProcessingStatus(ctx, key)
	if err != nil {
		t.Fatalf("GetProcessingStatus miss: %v", err)
	}
	if got != nil {
		t.Errorf("GetProcessingStatus miss: got %q; want nil", got)
	}

	// 2) Set + Get
	c.SetProcessingStatus(ctx, key, payload, 2*time.Second)
	if ttl := mr.TTL(cacheKey(key)); ttl <= 0 || ttl > 2*time.Second {
		t.Errorf("redis TTL = %v; want ~2s", ttl)
	}
	got, err = c.GetProcessingStatus(ctx, key)
	if err != nil {
		t.Fatalf("GetProcessingStatus hit: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("roundtrip mismatch: got %q; want %q", got, payload)
	}

	// 3) Delete + miss again
	if err := c.DeleteProcessingStatus(ctx, key); err != nil {
		t.Fatalf("DeleteProcessingStatus: %v", err)
	}
	if got, _ := c.GetProcessingStatus(ctx, key); got != nil {
		t.Errorf("after delete, GetProcessingStatus = %q; want nil", got)
	}
}

func TestGetProcessingStatus_RedisError(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	// Simulate Redis unreachable
	mr.Close()

	got, err := c.GetProcessingStatus(ctx, "some-key")
	if got != nil {
		t.Errorf("Expected nil on Redis error, got %q", got)
	}
	if err == nil || !strings.Contains(err.Error(), "redis get failed") {
		t.Errorf("Expected redis get failed error, got %v", err)
	}
}

func TestDeleteProcessingStatus_RedisError(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	// Simulate Redis unreachable before Delete
	mr.Close()

	err := c.DeleteProcessingStatus(ctx, "some-key")
	if err == nil || !strings.Contains(err.Error(), "redis del failed") {
		t.Errorf("Expected redis del failed error, got %v", err)
	}
}

func TestCacheKey(t *testing.T) {
	if got := cacheKey("abc"); got != "processing:abc" {
		t.Errorf("cacheKey = %q; want %q", got, "processing:abc")
	}
}
