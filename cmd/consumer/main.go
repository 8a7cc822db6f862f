// Command consumer generates reports requested over Kafka.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"report-srv/config"
	"report-srv/config/kafka"
	"report-srv/config/minio"
	"report-srv/config/postgre"
	"report-srv/config/redis"
	"report-srv/internal/consumer"
	"report-srv/pkg/log"
	pkgMinio "report-srv/pkg/minio"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Errorf(ctx, "report consumer: %v", err)
		stop()
		os.Exit(1)
	}
}

// run owns every connection so the deferred closes happen before main exits.
func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	producer, err := kafka.ConnectProducer(cfg.Kafka)
	if err != nil {
		return err
	}
	defer kafka.DisconnectProducer()

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redis.Disconnect()

	db, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer postgre.Disconnect(ctx, db)

	var minioClient pkgMinio.MinIO
	if cfg.Storage.Backend == config.StorageBackendMinIO {
		if minioClient, err = minio.Connect(ctx, &cfg.MinIO); err != nil {
			return err
		}
		defer minio.Disconnect()
	}
	logger.Infof(ctx, "dependencies ready, storage backend %s", cfg.Storage.Backend)

	srv, err := consumer.New(consumer.Config{
		Logger:        logger,
		Config:        cfg,
		RedisClient:   redisClient,
		PostgresDB:    db,
		MinIOClient:   minioClient,
		KafkaProducer: producer,
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
