package consumer

import (
	"errors"

	"report-srv/config"
)

// New checks cfg and returns a server ready to Run.
func New(cfg Config) (*ConsumerServer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &ConsumerServer{
		l:             cfg.Logger,
		config:        cfg.Config,
		redisClient:   cfg.RedisClient,
		postgresDB:    cfg.PostgresDB,
		minioClient:   cfg.MinIOClient,
		kafkaProducer: cfg.KafkaProducer,
	}, nil
}

func (cfg Config) validate() error {
	switch {
	case cfg.Logger == nil:
		return errors.New("logger is required")
	case cfg.Config == nil:
		return errors.New("config is required")
	case len(cfg.Config.Kafka.Brokers) == 0:
		return errors.New("kafka brokers are required")
	case cfg.RedisClient == nil:
		return errors.New("redis client is required")
	case cfg.PostgresDB == nil:
		return errors.New("postgres db is required")
	case cfg.KafkaProducer == nil:
		// Finished-job events are part of the queue contract.
		return errors.New("kafka producer is required")
	case cfg.Config.Storage.Backend == config.StorageBackendMinIO && cfg.MinIOClient == nil:
		return errors.New("minio client is required for the minio storage backend")
	}
	return nil
}
