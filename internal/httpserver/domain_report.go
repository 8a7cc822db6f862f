package httpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"report-srv/config"
	"report-srv/internal/middleware"
	"report-srv/internal/report"
	reportHTTP "report-srv/internal/report/delivery/http"
	reportProducer "report-srv/internal/report/delivery/kafka/producer"
	"report-srv/internal/report/renderer"
	"report-srv/internal/report/repository"
	reportLocal "report-srv/internal/report/repository/local"
	reportMinio "report-srv/internal/report/repository/minio"
	reportPostgre "report-srv/internal/report/repository/postgre"
	reportRedis "report-srv/internal/report/repository/redis"
	reportUsecase "report-srv/internal/report/usecase"
	"report-srv/pkg/metrics"
)

const metricsNamespace = "report"

func (srv *HTTPServer) setupReportDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	repo := reportPostgre.New(srv.l, srv.postgresDB)
	cache := reportRedis.New(srv.redisClient, srv.l, srv.config.Storage.CacheTTL)

	artifacts, err := srv.newArtifactRepository()
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(srv.config.Report.Timezone)
	if err != nil {
		return fmt.Errorf("failed to load report timezone: %w", err)
	}

	var publisher report.Publisher
	if srv.kafkaProducer != nil {
		publisher = reportProducer.New(srv.l, srv.kafkaProducer)
	}

	uc := reportUsecase.New(
		srv.l,
		repo,
		cache,
		artifacts,
		renderer.New(srv.l),
		publisher,
		metrics.New(srv.registry, metricsNamespace),
		report.DefaultRegistry(),
		reportUsecase.Config{
			StorageRoot: srv.config.Storage.Root,
			Location:    loc,
		},
	)

	handler := reportHTTP.New(srv.l, uc)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Report domain registered (storage backend: %s)", srv.config.Storage.Backend)
	return nil
}

func (srv *HTTPServer) newArtifactRepository() (repository.ArtifactRepository, error) {
	if srv.config.Storage.Backend == config.StorageBackendMinIO {
		return reportMinio.New(srv.minioClient, srv.config.MinIO.Bucket, srv.l), nil
	}

	artifacts, err := reportLocal.New(srv.l, srv.config.Storage.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to create local artifact storage: %w", err)
	}
	return artifacts, nil
}
