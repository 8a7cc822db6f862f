package minio

import (
	"report-srv/internal/report/repository"
	"report-srv/pkg/log"
	pkgMinio "report-srv/pkg/minio"
)

type implRepository struct {
	storage pkgMinio.MinIO
	bucket  string
	l       log.Logger
}

// New returns an ArtifactRepository that uploads rendered files into bucket,
// keyed by content checksum.
func New(storage pkgMinio.MinIO, bucket string, l log.Logger) repository.ArtifactRepository {
	return &implRepository{
		storage: storage,
		bucket:  bucket,
		l:       l,
	}
}
