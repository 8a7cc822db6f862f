// Package minio owns the process-wide MinIO client of the minio storage backend.
package minio

import (
	"context"
	"fmt"
	"sync"

	"report-srv/config"
	"report-srv/pkg/minio"
)

var (
	mu       sync.Mutex
	instance minio.MinIO
)

// Connect returns the shared client, creating it and the artifact bucket on
// first use. A failed attempt is not cached.
func Connect(ctx context.Context, cfg *config.MinIOConfig) (minio.MinIO, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	client, err := minio.NewMinIO(cfg)
	if err != nil {
		return nil, fmt.Errorf("config.minio.Connect: %w", err)
	}
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("config.minio.Connect %s: %w", cfg.Endpoint, err)
	}
	if err := ensureBucket(ctx, client, cfg.Bucket); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("config.minio.Connect bucket %s: %w", cfg.Bucket, err)
	}

	instance = client
	return instance, nil
}

type bucketClient interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	CreateBucket(ctx context.Context, bucket string) error
}

func ensureBucket(ctx context.Context, client bucketClient, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return client.CreateBucket(ctx, bucket)
}

// Disconnect releases the shared client. Safe to call when not connected.
func Disconnect() error {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		return nil
	}
	err := instance.Close()
	instance = nil
	return err
}
