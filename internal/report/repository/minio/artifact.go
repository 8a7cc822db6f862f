package minio

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"report-srv/internal/report/repository"
	pkgMinio "report-srv/pkg/minio"
)

const (
	locationScheme = "minio://"
	objectPrefix   = "reports"
)

// objectName spreads objects over 256 prefixes by the first checksum byte.
func objectName(checksum, ext string) string {
	return fmt.Sprintf("%s/%s/%s.%s", objectPrefix, checksum[:2], checksum, ext)
}

func (r *implRepository) location(object string) string {
	return locationScheme + r.bucket + "/" + object
}

// parseLocation splits minio://bucket/key. Only this repository's bucket is accepted.
func (r *implRepository) parseLocation(location string) (string, error) {
	rest, ok := strings.CutPrefix(location, locationScheme)
	if !ok {
		return "", fmt.Errorf("%w: %s", repository.ErrInvalidLocation, location)
	}
	bucket, object, ok := strings.Cut(rest, "/")
	if !ok || bucket != r.bucket || object == "" {
		return "", fmt.Errorf("%w: %s", repository.ErrInvalidLocation, location)
	}
	return object, nil
}

// Save uploads the rendered file unless an object with the same checksum is
// already stored.
func (r *implRepository) Save(ctx context.Context, opts repository.SaveArtifactOptions) (string, error) {
	if len(opts.Checksum) < 2 {
		return "", fmt.Errorf("%w: checksum is required", repository.ErrInvalidLocation)
	}
	object := objectName(opts.Checksum, opts.Format.Extension())

	_, err := r.storage.StatObject(ctx, r.bucket, object)
	if err == nil {
		return r.location(object), nil
	}
	if !pkgMinio.IsNotFound(err) {
		r.l.Errorf(ctx, "report.repository.minio.Save.StatObject: %v", err)
		return "", err
	}

	f, err := os.Open(opts.LocalPath)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.minio.Save.Open: %v", err)
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	if _, err := r.storage.PutObject(ctx, pkgMinio.PutObjectInput{
		Bucket:      r.bucket,
		Key:         object,
		Body:        f,
		Size:        info.Size(),
		ContentType: opts.Format.ContentType(),
		Metadata:    map[string]string{"checksum": opts.Checksum},
	}); err != nil {
		r.l.Errorf(ctx, "report.repository.minio.Save.PutObject: %v", err)
		return "", err
	}

	return r.location(object), nil
}

func (r *implRepository) Open(ctx context.Context, location string) (io.ReadCloser, int64, error) {
	object, err := r.parseLocation(location)
	if err != nil {
		return nil, 0, err
	}

	rc, info, err := r.storage.GetObject(ctx, r.bucket, object)
	if err != nil {
		if pkgMinio.IsNotFound(err) {
			return nil, 0, repository.ErrArtifactNotFound
		}
		r.l.Errorf(ctx, "report.repository.minio.Open: %v", err)
		return nil, 0, err
	}

	return rc, info.Size, nil
}
