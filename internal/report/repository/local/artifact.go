package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"report-srv/internal/report/repository"
)

// Save checks the rendered file and returns its path as the location.
func (r *implRepository) Save(ctx context.Context, opts repository.SaveArtifactOptions) (string, error) {
	path, err := r.resolve(opts.LocalPath)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.local.Save: %v", err)
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", repository.ErrInvalidLocation, path)
	}

	return path, nil
}

func (r *implRepository) Open(ctx context.Context, location string) (io.ReadCloser, int64, error) {
	path, err := r.resolve(location)
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, repository.ErrArtifactNotFound
		}
		r.l.Errorf(ctx, "report.repository.local.Open: %v", err)
		return nil, 0, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	if info.IsDir() {
		f.Close()
		return nil, 0, repository.ErrArtifactNotFound
	}

	return f, info.Size(), nil
}

// resolve makes location absolute and rejects anything outside the root.
func (r *implRepository) resolve(location string) (string, error) {
	if strings.TrimSpace(location) == "" {
		return "", repository.ErrInvalidLocation
	}

	abs, err := filepath.Abs(location)
	if err != nil {
		return "", fmt.Errorf("%w: %v", repository.ErrInvalidLocation, err)
	}

	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside the storage root", repository.ErrInvalidLocation, location)
	}

	return abs, nil
}
