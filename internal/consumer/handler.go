package consumer

import (
	"context"
	"fmt"
	"time"

	"report-srv/config"
	"report-srv/internal/report"
	reportConsumer "report-srv/internal/report/delivery/kafka/consumer"
	reportProducer "report-srv/internal/report/delivery/kafka/producer"
	"report-srv/internal/report/renderer"
	"report-srv/internal/report/repository"
	reportLocal "report-srv/internal/report/repository/local"
	reportMinio "report-srv/internal/report/repository/minio"
	reportPostgre "report-srv/internal/report/repository/postgre"
	reportRedis "report-srv/internal/report/repository/redis"
	reportUsecase "report-srv/internal/report/usecase"
	"report-srv/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "report_consumer"

// domainConsumers holds references to all domain consumers for cleanup
type domainConsumers struct {
	reportConsumer *reportConsumer.Consumer
}

// setupDomains initializes all domain layers (repositories, usecases, consumers)
func (srv *ConsumerServer) setupDomains(ctx context.Context) (*domainConsumers, error) {
	cfg := srv.config

	repo := reportPostgre.New(srv.l, srv.postgresDB)
	cache := reportRedis.New(srv.redisClient, srv.l, cfg.Storage.CacheTTL)

	artifacts, err := srv.newArtifactRepository()
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load report timezone: %w", err)
	}

	reportUC := reportUsecase.New(
		srv.l,
		repo,
		cache,
		artifacts,
		renderer.New(srv.l),
		reportProducer.New(srv.l, srv.kafkaProducer),
		metrics.New(prometheus.DefaultRegisterer, metricsNamespace),
		report.DefaultRegistry(),
		reportUsecase.Config{
			StorageRoot: cfg.Storage.Root,
			Location:    loc,
		},
	)

	reportCons, err := reportConsumer.New(reportConsumer.Config{
		Logger:  srv.l,
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.GenerateTopic,
		GroupID: cfg.Kafka.GroupID,
		UseCase: reportUC,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create report consumer: %w", err)
	}

	srv.l.Infof(ctx, "Report domain initialized (storage backend: %s)", cfg.Storage.Backend)

	return &domainConsumers{
		reportConsumer: reportCons,
	}, nil
}

func (srv *ConsumerServer) newArtifactRepository() (repository.ArtifactRepository, error) {
	if srv.config.Storage.Backend == config.StorageBackendMinIO {
		return reportMinio.New(srv.minioClient, srv.config.MinIO.Bucket, srv.l), nil
	}

	artifacts, err := reportLocal.New(srv.l, srv.config.Storage.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to create local artifact storage: %w", err)
	}
	return artifacts, nil
}

// startConsumers starts all domain consumers in background goroutines
func (srv *ConsumerServer) startConsumers(ctx context.Context, consumers *domainConsumers) error {
	if err := consumers.reportConsumer.ConsumeGenerateRequests(ctx); err != nil {
		return fmt.Errorf("failed to start report consumer: %w", err)
	}

	srv.l.Infof(ctx, "All consumers started successfully")
	return nil
}

// stopConsumers gracefully stops all domain consumers
func (srv *ConsumerServer) stopConsumers(ctx context.Context, consumers *domainConsumers) {
	if consumers.reportConsumer != nil {
		if err := consumers.reportConsumer.Close(); err != nil {
			srv.l.Errorf(ctx, "Error closing report consumer: %v", err)
		}
	}

	srv.l.Infof(ctx, "All consumers stopped")
}
