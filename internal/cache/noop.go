package cache

import (
	"context"
	"time"

	"github.com/creatorly/videos-ms-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetProcessingStatus(ctx context.Context, key string) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) SetProcessingStatus(ctx context.Context, key string, data []byte, ttl time.Duration) {
}

func (n *NoopCache) DeleteProcessingStatus(ctx context.Context, key string) error { return nil }
