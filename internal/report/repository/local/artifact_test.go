package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"report-srv/internal/report/repository"
	"report-srv/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (repository.ArtifactRepository, string) {
	t.Helper()
	root := t.TempDir()
	repo, err := New(log.NewNop(), root)
	require.NoError(t, err)
	return repo, root
}

func TestSaveAndOpen(t *testing.T) {
	repo, root := newTestRepo(t)
	ctx := context.Background()

	path := filepath.Join(root, "2025", "6", "job-1", "Report_2025-06_X.pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("pdf-bytes"), 0o644))

	location, err := repo.Save(ctx, repository.SaveArtifactOptions{LocalPath: path})
	require.NoError(t, err)
	assert.Equal(t, path, location)

	rc, size, err := repo.Open(ctx, location)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))
	assert.Equal(t, int64(len("pdf-bytes")), size)
}

func TestOpen_Missing(t *testing.T) {
	repo, root := newTestRepo(t)

	_, _, err := repo.Open(context.Background(), filepath.Join(root, "gone.pdf"))
	assert.ErrorIs(t, err, repository.ErrArtifactNotFound)
}

func TestOutsideRoot(t *testing.T) {
	repo, root := newTestRepo(t)
	ctx := context.Background()

	tcs := map[string]string{
		"parent":    filepath.Join(root, "..", "escape.pdf"),
		"absolute":  "/etc/passwd",
		"empty":     "",
		"traversal": filepath.Join(root, "a", "..", "..", "x"),
	}
	for name, location := range tcs {
		t.Run(name, func(t *testing.T) {
			_, _, err := repo.Open(ctx, location)
			assert.ErrorIs(t, err, repository.ErrInvalidLocation)
		})
	}
}

func TestSave_Missing(t *testing.T) {
	repo, root := newTestRepo(t)

	_, err := repo.Save(context.Background(), repository.SaveArtifactOptions{LocalPath: filepath.Join(root, "nope.pdf")})
	assert.Error(t, err)
}
