package consumer

import (
	"context"
	"database/sql"

	"report-srv/config"
	pkgKafka "report-srv/pkg/kafka"
	"report-srv/pkg/log"
	"report-srv/pkg/minio"
	"report-srv/pkg/redis"
)

// ConsumerServer runs the queue-driven side of report generation.
type ConsumerServer struct {
	l      log.Logger
	config *config.Config

	redisClient   redis.IRedis
	postgresDB    *sql.DB
	minioClient   minio.MinIO
	kafkaProducer pkgKafka.IProducer
}

// Config wires a ConsumerServer. MinIOClient is only needed for the minio
// storage backend.
type Config struct {
	Logger log.Logger
	Config *config.Config

	RedisClient   redis.IRedis
	PostgresDB    *sql.DB
	MinIOClient   minio.MinIO
	KafkaProducer pkgKafka.IProducer
}

// Run blocks until ctx is done. Consumers are stopped on a detached context so
// in-flight jobs can reach a terminal status.
func (srv *ConsumerServer) Run(ctx context.Context) error {
	consumers, err := srv.setupDomains(ctx)
	if err != nil {
		srv.l.Errorf(ctx, "consumer.Run.setupDomains: %v", err)
		return err
	}

	if err := srv.startConsumers(ctx, consumers); err != nil {
		srv.l.Errorf(ctx, "consumer.Run.startConsumers: %v", err)
		return err
	}
	srv.l.Infof(ctx, "consuming %s as group %s", srv.config.Kafka.GenerateTopic, srv.config.Kafka.GroupID)

	<-ctx.Done()
	srv.stopConsumers(context.WithoutCancel(ctx), consumers)
	srv.l.Info(ctx, "consumers stopped")
	return nil
}
