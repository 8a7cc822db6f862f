package local

import (
	"path/filepath"

	"report-srv/internal/report/repository"
	"report-srv/pkg/log"
)

type implRepository struct {
	l    log.Logger
	root string
}

// New returns an ArtifactRepository that keeps rendered files where they were
// written. Locations are file paths that must stay under root.
func New(l log.Logger, root string) (repository.ArtifactRepository, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &implRepository{
		l:    l,
		root: abs,
	}, nil
}
