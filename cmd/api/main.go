package main

import (
	"context"
	"fmt"
	"os"

	"report-srv/config"
	configKafka "report-srv/config/kafka"
	configMinio "report-srv/config/minio"
	configPostgre "report-srv/config/postgre"
	configRedis "report-srv/config/redis"
	"report-srv/internal/httpserver"
	"report-srv/pkg/encrypter"
	pkgJWT "report-srv/pkg/jwt"
	pkgKafka "report-srv/pkg/kafka"
	"report-srv/pkg/log"
	pkgMinio "report-srv/pkg/minio"
)

// @title       Report Service API
// @description Report generation, download and audit API.
// @version     1
// @BasePath    /
//
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name auth_token
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Format: "Bearer {token}"
//
// @securityDefinitions.apikey ServiceKey
// @in header
// @name X-Service-Key
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

	ctx := context.Background()
	if err := run(ctx, cfg, logger); err != nil {
		logger.Errorf(ctx, "report api: %v", err)
		os.Exit(1)
	}
}

// run owns every connection so the deferred closes happen before main exits.
// The HTTP server handles SIGINT/SIGTERM itself.
func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	enc, err := encrypter.New(cfg.Encrypter.Key)
	if err != nil {
		return err
	}

	db, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer configPostgre.Disconnect(ctx, db)

	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer configRedis.Disconnect()

	var minioClient pkgMinio.MinIO
	if cfg.Storage.Backend == config.StorageBackendMinIO {
		if minioClient, err = configMinio.Connect(ctx, &cfg.MinIO); err != nil {
			return err
		}
		defer configMinio.Disconnect()
	}

	// Job events are best effort on the API side: without a broker the
	// service still generates and serves reports.
	var producer pkgKafka.IProducer
	if producer, err = configKafka.ConnectProducer(cfg.Kafka); err != nil {
		logger.Warnf(ctx, "kafka producer unavailable, job events disabled: %v", err)
		producer = nil
	} else {
		defer configKafka.DisconnectProducer()
	}

	jwtManager, err := pkgJWT.New(pkgJWT.Config{
		SecretKey: cfg.JWT.SecretKey,
		Issuer:    cfg.JWT.Issuer,
		Audience:  cfg.JWT.Audience,
		TTL:       cfg.JWT.TTL,
	})
	if err != nil {
		return err
	}
	logger.Infof(ctx, "dependencies ready, storage backend %s", cfg.Storage.Backend)

	srv, err := httpserver.New(logger, httpserver.Config{
		Logger:        logger,
		Host:          cfg.HTTPServer.Host,
		Port:          cfg.HTTPServer.Port,
		Mode:          cfg.HTTPServer.Mode,
		Environment:   cfg.Environment.Name,
		PostgresDB:    db,
		RedisClient:   redisClient,
		MinIOClient:   minioClient,
		KafkaProducer: producer,
		Config:        cfg,
		JWTManager:    jwtManager,
		Encrypter:     enc,
	})
	if err != nil {
		return err
	}
	return srv.Run()
}
