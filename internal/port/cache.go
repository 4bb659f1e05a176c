package port

import (
	"context"
	"time"
)

// Cache provides short-lived caching for processing-status lookups, so
// client-side polling does not hammer the remote transcoder.
type Cache interface {
	GetProcessingStatus(ctx context.Context, key string) ([]byte, error)
	SetProcessingStatus(ctx context.Context, key string, data []byte, ttl time.Duration)
	DeleteProcessingStatus(ctx context.Context, key string) error
}
