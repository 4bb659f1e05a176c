package port

import (
	"context"
	"io"
)

// Storage defines durable object storage operations. Writes are append-only
// by object key: every upload gets fresh key names, so concurrent tasks never
// conflict.
type Storage interface {
	InitBucket(bucket string) error
	// UploadFile stores a local file and returns its public URL.
	UploadFile(ctx context.Context, bucket, fileKey, localPath, contentType string) (string, error)
	// SaveFile stores a stream and returns its public URL.
	SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, size int64, contentType string) (string, error)
	RemoveFile(ctx context.Context, bucket, fileKey string) error
	// KeyFromURL maps a public URL back to its object key inside the bucket,
	// reporting false for URLs this storage did not produce.
	KeyFromURL(bucket, url string) (string, bool)
}
