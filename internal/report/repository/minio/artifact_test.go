package minio

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"report-srv/internal/model"
	"report-srv/internal/report/repository"
	"report-srv/pkg/log"
	pkgMinio "report-srv/pkg/minio"

	"github.com/stretchr/testify/require"
)

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	uploads int
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) key(bucket, object string) string { return bucket + "/" + object }

func (m *memStorage) Connect(context.Context) error     { return nil }
func (m *memStorage) HealthCheck(context.Context) error { return nil }
func (m *memStorage) Close() error                      { return nil }

func (m *memStorage) CreateBucket(context.Context, string) error { return nil }
func (m *memStorage) BucketExists(context.Context, string) (bool, error) {
	return true, nil
}

func (m *memStorage) PutObject(_ context.Context, in pkgMinio.PutObjectInput) (pkgMinio.ObjectInfo, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return pkgMinio.ObjectInfo{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[m.key(in.Bucket, in.Key)] = data
	m.uploads++
	return pkgMinio.ObjectInfo{Bucket: in.Bucket, Key: in.Key, Size: int64(len(data))}, nil
}

func (m *memStorage) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, pkgMinio.ObjectInfo, error) {
	info, err := m.StatObject(ctx, bucket, key)
	if err != nil {
		return nil, pkgMinio.ObjectInfo{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return io.NopCloser(bytes.NewReader(m.objects[m.key(bucket, key)])), info, nil
}

func (m *memStorage) StatObject(_ context.Context, bucket, key string) (pkgMinio.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[m.key(bucket, key)]
	if !ok {
		return pkgMinio.ObjectInfo{}, &pkgMinio.OpError{Op: "stat_object", Kind: pkgMinio.ErrNotFound}
	}
	return pkgMinio.ObjectInfo{Bucket: bucket, Key: key, Size: int64(len(data))}, nil
}

const testChecksum = "ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12"

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSaveAndOpen(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	repo := New(storage, "reports", log.NewNop())

	loc, err := repo.Save(ctx, repository.SaveArtifactOptions{
		LocalPath: writeTemp(t, "pdf-bytes"),
		Checksum:  testChecksum,
		Format:    model.OutputFormatPDF,
	})
	require.NoError(t, err)
	require.Equal(t, "minio://reports/reports/ab/"+testChecksum+".pdf", loc)

	rc, size, err := repo.Open(ctx, loc)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "pdf-bytes", string(body))
	require.Equal(t, int64(len("pdf-bytes")), size)
}

func TestSave_SkipsExistingChecksum(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	repo := New(storage, "reports", log.NewNop())

	opts := repository.SaveArtifactOptions{LocalPath: writeTemp(t, "same"), Checksum: testChecksum, Format: model.OutputFormatPDF}
	first, err := repo.Save(ctx, opts)
	require.NoError(t, err)
	second, err := repo.Save(ctx, opts)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, storage.uploads)
}

func TestOpen_Missing(t *testing.T) {
	repo := New(newMemStorage(), "reports", log.NewNop())

	_, _, err := repo.Open(context.Background(), "minio://reports/reports/ab/nothing.pdf")
	require.ErrorIs(t, err, repository.ErrArtifactNotFound)
}

func TestOpen_InvalidLocation(t *testing.T) {
	repo := New(newMemStorage(), "reports", log.NewNop())

	for _, loc := range []string{"", "/tmp/report.pdf", "minio://other/reports/x.pdf", "minio://reports/"} {
		_, _, err := repo.Open(context.Background(), loc)
		require.ErrorIs(t, err, repository.ErrInvalidLocation, loc)
	}
}
