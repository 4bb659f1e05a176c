package mock

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Storage implements the storage interface for tests. Uploaded keys are
// recorded per bucket; per-key errors simulate partial upload failures.
type Storage struct {
	UploadErrs map[string]error
	SaveErr    error
	RemoveErr  error
	InitErr    error

	InitCalled    bool
	Uploaded      map[string][]string
	SavedKey      string
	SavedBucket   string
	SavedData     []byte
	RemovedKeys   []string
	RemoveBuckets []string
}

func (m *Storage) InitBucket(bucket string) error {
	m.InitCalled = true
	return m.InitErr
}

func (m *Storage) UploadFile(ctx context.Context, bucket, fileKey, localPath, contentType string) (string, error) {
	if err := m.UploadErrs[fileKey]; err != nil {
		return "", err
	}
	if m.Uploaded == nil {
		m.Uploaded = map[string][]string{}
	}
	m.Uploaded[bucket] = append(m.Uploaded[bucket], fileKey)
	return fmt.Sprintf("http://storage.test/%s/%s", bucket, fileKey), nil
}

func (m *Storage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, size int64, contentType string) (string, error) {
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	m.SavedBucket = bucket
	m.SavedKey = fileKey
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	m.SavedData = data
	return fmt.Sprintf("http://storage.test/%s/%s", bucket, fileKey), nil
}

func (m *Storage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.RemoveBuckets = append(m.RemoveBuckets, bucket)
	m.RemovedKeys = append(m.RemovedKeys, fileKey)
	return m.RemoveErr
}

func (m *Storage) KeyFromURL(bucket, url string) (string, bool) {
	prefix := fmt.Sprintf("http://storage.test/%s/", bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
