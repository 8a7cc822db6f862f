package usecase

import (
	"time"

	"report-srv/internal/report"
	"report-srv/internal/report/repository"
	"report-srv/pkg/log"
	"report-srv/pkg/metrics"

	"github.com/google/uuid"
)

const (
	defaultStorageRoot  = "storage"
	maxErrorMessageLen  = 1000
	directoryPermission = 0o755
)

// Config holds configuration for report generation.
type Config struct {
	// StorageRoot is the directory rendered artifacts are written under.
	StorageRoot string
	// Location is the time zone periods and job directories are computed in.
	Location *time.Location
}

type implUseCase struct {
	l         log.Logger
	repo      repository.PostgresRepository
	cache     repository.CacheRepository
	artifacts repository.ArtifactRepository
	renderer  report.Renderer
	publisher report.Publisher
	metrics   metrics.Metrics
	registry  report.Registry
	config    Config

	now   func() time.Time
	newID func() string
}

// New creates a new report UseCase implementation. cache and publisher may be nil.
func New(
	l log.Logger,
	repo repository.PostgresRepository,
	cache repository.CacheRepository,
	artifacts repository.ArtifactRepository,
	renderer report.Renderer,
	publisher report.Publisher,
	m metrics.Metrics,
	registry report.Registry,
	cfg Config,
) report.UseCase {
	if cfg.StorageRoot == "" {
		cfg.StorageRoot = defaultStorageRoot
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &implUseCase{
		l:         l,
		repo:      repo,
		cache:     cache,
		artifacts: artifacts,
		renderer:  renderer,
		publisher: publisher,
		metrics:   m,
		registry:  registry,
		config:    cfg,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}
