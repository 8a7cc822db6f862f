package httpserver

import (
	"database/sql"
	"errors"

	"report-srv/config"
	"report-srv/pkg/encrypter"
	pkgKafka "report-srv/pkg/kafka"
	"report-srv/pkg/log"
	pkgMinio "report-srv/pkg/minio"
	pkgRedis "report-srv/pkg/redis"
	"report-srv/pkg/scope"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTPServer serves the report API, health probes and /metrics.
type HTTPServer struct {
	gin  *gin.Engine
	l    log.Logger
	host string
	port int
	env  string

	postgresDB    *sql.DB
	redisClient   pkgRedis.IRedis
	minioClient   pkgMinio.MinIO
	kafkaProducer pkgKafka.IProducer

	config     *config.Config
	jwtManager scope.Manager
	encrypter  encrypter.Encrypter

	registry *prometheus.Registry
}

// Config wires an HTTPServer. MinIOClient is required only for the minio
// storage backend. Without KafkaProducer no job events are published.
type Config struct {
	Logger      log.Logger
	Host        string
	Port        int
	Mode        string
	Environment string

	PostgresDB    *sql.DB
	RedisClient   pkgRedis.IRedis
	MinIOClient   pkgMinio.MinIO
	KafkaProducer pkgKafka.IProducer

	Config     *config.Config
	JWTManager scope.Manager
	Encrypter  encrypter.Encrypter
}

func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	cfg.Logger = logger
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	gin.SetMode(cfg.Mode)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &HTTPServer{
		gin:           gin.New(),
		l:             logger,
		host:          cfg.Host,
		port:          cfg.Port,
		env:           cfg.Environment,
		postgresDB:    cfg.PostgresDB,
		redisClient:   cfg.RedisClient,
		minioClient:   cfg.MinIOClient,
		kafkaProducer: cfg.KafkaProducer,
		config:        cfg.Config,
		jwtManager:    cfg.JWTManager,
		encrypter:     cfg.Encrypter,
		registry:      registry,
	}, nil
}

// validate allows an empty Host, which listens on every interface.
func (cfg Config) validate() error {
	switch {
	case cfg.Logger == nil:
		return errors.New("logger is required")
	case cfg.Mode == "":
		return errors.New("mode is required")
	case cfg.Port == 0:
		return errors.New("port is required")
	case cfg.PostgresDB == nil:
		return errors.New("postgresDB is required")
	case cfg.RedisClient == nil:
		return errors.New("redisClient is required")
	case cfg.Config == nil:
		return errors.New("config is required")
	case cfg.JWTManager == nil:
		return errors.New("jwtManager is required")
	case cfg.Encrypter == nil:
		return errors.New("encrypter is required")
	case cfg.Config.Storage.Backend == config.StorageBackendMinIO && cfg.MinIOClient == nil:
		return errors.New("minioClient is required for the minio storage backend")
	}
	return nil
}
