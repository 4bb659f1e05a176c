package testutil

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type TestBuckets struct {
	Cleanup func() error
}

// SetupTestBuckets (re)creates the videos and thumbs buckets on the test
// MinIO instance and returns a cleanup emptying and dropping them.
func SetupTestBuckets(endpoint, accessKey, secretKey string) (*TestBuckets, error) {
	buckets := []string{"videos", "thumbs"}
	ctx := context.Background()

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create minio admin client: %w", err)
	}

	for _, b := range buckets {
		// drop any leftovers from a previous run, then start fresh
		_ = client.RemoveBucket(ctx, b)
		if err := client.MakeBucket(ctx, b, minio.MakeBucketOptions{}); err != nil {
			exists, err2 := client.BucketExists(ctx, b)
			if err2 != nil || !exists {
				return nil, fmt.Errorf("could not create bucket %q: %w", b, err)
			}
		}
	}

	cleanup := func() error {
		for _, b := range buckets {
			for obj := range client.ListObjects(ctx, b, minio.ListObjectsOptions{Recursive: true}) {
				if obj.Err != nil {
					continue
				}
				_ = client.RemoveObject(ctx, b, obj.Key, minio.RemoveObjectOptions{})
			}
			if err := client.RemoveBucket(ctx, b); err != nil {
				return fmt.Errorf("could not remove bucket %q: %w", b, err)
			}
		}
		return nil
	}

	return &TestBuckets{Cleanup: cleanup}, nil
}

// ObjectExists reports whether the given key is present in the bucket.
func ObjectExists(endpoint, accessKey, secretKey, bucket, key string) (bool, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		return false, err
	}
	_, err = client.StatObject(context.Background(), bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
