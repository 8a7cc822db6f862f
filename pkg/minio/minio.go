// Package minio is the object-store client behind the minio artifact backend.
package minio

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"report-srv/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	// MaxObjectSize bounds a single report artifact upload.
	MaxObjectSize = 1 << 30

	defaultPort = ":9000"
)

// MinIO is safe for concurrent use.
type MinIO interface {
	// Connect checks that the configured bucket is reachable.
	Connect(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Close() error

	BucketExists(ctx context.Context, bucket string) (bool, error)
	CreateBucket(ctx context.Context, bucket string) error

	PutObject(ctx context.Context, in PutObjectInput) (ObjectInfo, error)
	// GetObject stats before reading so a missing key fails before any
	// bytes are streamed.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error)
	StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error)
}

type PutObjectInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
	Metadata    map[string]string
}

type ObjectInfo struct {
	Bucket       string
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
	Metadata     map[string]string
}

type implMinIO struct {
	client    *minio.Client
	bucket    string
	region    string
	connected atomic.Bool
}

// NewMinIO builds a client for cfg. No request is made until Connect.
func NewMinIO(cfg *config.MinIOConfig) (MinIO, error) {
	endpoint, err := validateConfig(cfg)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
		Transport: &http.Transport{
			MaxIdleConns:          32,
			MaxIdleConnsPerHost:   32,
			IdleConnTimeout:       60 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
			DisableCompression:    true,
		},
	})
	if err != nil {
		return nil, err
	}

	return &implMinIO{client: client, bucket: cfg.Bucket, region: cfg.Region}, nil
}

func (m *implMinIO) Connect(ctx context.Context) error {
	if _, err := m.client.BucketExists(ctx, m.bucket); err != nil {
		m.connected.Store(false)
		return wrapError("connect", err)
	}
	m.connected.Store(true)
	return nil
}

func (m *implMinIO) HealthCheck(ctx context.Context) error {
	if !m.connected.Load() {
		return &OpError{Op: "health_check", Kind: ErrUnavailable}
	}
	if _, err := m.client.BucketExists(ctx, m.bucket); err != nil {
		return wrapError("health_check", err)
	}
	return nil
}

func (m *implMinIO) Close() error {
	m.connected.Store(false)
	return nil
}

func (m *implMinIO) BucketExists(ctx context.Context, bucket string) (bool, error) {
	ok, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return false, wrapError("bucket_exists", err)
	}
	return ok, nil
}

func (m *implMinIO) CreateBucket(ctx context.Context, bucket string) error {
	err := m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: m.region})
	if err == nil {
		return nil
	}
	// Another replica may have created it first.
	if ok, existsErr := m.client.BucketExists(ctx, bucket); existsErr == nil && ok {
		return nil
	}
	return wrapError("create_bucket", err)
}

func (m *implMinIO) PutObject(ctx context.Context, in PutObjectInput) (ObjectInfo, error) {
	if err := validatePut(in); err != nil {
		return ObjectInfo{}, err
	}

	info, err := m.client.PutObject(ctx, in.Bucket, in.Key, in.Body, in.Size, minio.PutObjectOptions{
		ContentType:  in.ContentType,
		UserMetadata: in.Metadata,
	})
	if err != nil {
		return ObjectInfo{}, wrapError("put_object", err)
	}
	return ObjectInfo{
		Bucket:       in.Bucket,
		Key:          in.Key,
		Size:         info.Size,
		ContentType:  in.ContentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
		Metadata:     in.Metadata,
	}, nil
}

func (m *implMinIO) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error) {
	info, err := m.StatObject(ctx, bucket, key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	obj, err := m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, wrapError("get_object", err)
	}
	return obj, info, nil
}

func (m *implMinIO) StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error) {
	if err := validateRef(bucket, key); err != nil {
		return ObjectInfo{}, err
	}
	st, err := m.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, wrapError("stat_object", err)
	}
	return ObjectInfo{
		Bucket:       bucket,
		Key:          key,
		Size:         st.Size,
		ContentType:  st.ContentType,
		ETag:         st.ETag,
		LastModified: st.LastModified,
		Metadata:     st.UserMetadata,
	}, nil
}
