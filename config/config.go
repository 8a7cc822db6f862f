// Package config loads report-srv settings from report-config.yaml and the
// environment. Environment keys are the upper-cased yaml path with dots
// replaced by underscores, e.g. STORAGE_BACKEND.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageBackendLocal = "local"
	StorageBackendMinIO = "minio"
)

type Config struct {
	Environment EnvironmentConfig
	HTTPServer  HTTPServerConfig
	Logger      LoggerConfig

	Postgres PostgresConfig
	Redis    RedisConfig
	MinIO    MinIOConfig
	Kafka    KafkaConfig

	JWT            JWTConfig
	Cookie         CookieConfig
	Encrypter      EncrypterConfig
	InternalConfig InternalConfig

	Storage StorageConfig
	Report  ReportConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Host string
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Schema is used as the search_path.
	Schema string
}

// RedisConfig addresses the cache of finished jobs.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// MinIOConfig is only read when storage.backend is minio.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
}

type KafkaConfig struct {
	Brokers []string
	// Topic receives report.job.finished events.
	Topic string
	// GenerateTopic carries generate requests to the consumer process.
	GenerateTopic string
	GroupID       string
}

// JWTConfig verifies tokens issued by the identity service. Tokens are never
// issued here.
type JWTConfig struct {
	Issuer    string
	Audience  []string
	SecretKey string
	TTL       time.Duration
}

// CookieConfig names the cookie read when no Authorization header is sent.
type CookieConfig struct {
	Name string
}

type EncrypterConfig struct {
	Key string
}

type InternalConfig struct {
	// ServiceKeys maps a service name to the bcrypt hash of its key.
	ServiceKeys map[string]string
}

type StorageConfig struct {
	// Root is the local directory reports are rendered into.
	Root     string
	Backend  string
	CacheTTL time.Duration
}

type ReportConfig struct {
	// Timezone resolves report periods and the on-disk layout.
	Timezone string
}

// Load reads the config file if one exists, applies environment overrides
// and validates the result.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("report-config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/report/")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{
		Environment: EnvironmentConfig{Name: v.GetString("environment.name")},
		HTTPServer: HTTPServerConfig{
			Host: v.GetString("http_server.host"),
			Port: v.GetInt("http_server.port"),
			Mode: v.GetString("http_server.mode"),
		},
		Logger: LoggerConfig{
			Level:        v.GetString("logger.level"),
			Mode:         v.GetString("logger.mode"),
			Encoding:     v.GetString("logger.encoding"),
			ColorEnabled: v.GetBool("logger.color_enabled"),
		},
		Postgres: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetInt("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			DBName:   v.GetString("postgres.dbname"),
			SSLMode:  v.GetString("postgres.sslmode"),
			Schema:   v.GetString("postgres.schema"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			PoolSize: v.GetInt("redis.pool_size"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("minio.endpoint"),
			AccessKey: v.GetString("minio.access_key"),
			SecretKey: v.GetString("minio.secret_key"),
			UseSSL:    v.GetBool("minio.use_ssl"),
			Region:    v.GetString("minio.region"),
			Bucket:    v.GetString("minio.bucket"),
		},
		Kafka: KafkaConfig{
			Brokers:       v.GetStringSlice("kafka.brokers"),
			Topic:         v.GetString("kafka.topic"),
			GenerateTopic: v.GetString("kafka.generate_topic"),
			GroupID:       v.GetString("kafka.group_id"),
		},
		JWT: JWTConfig{
			Issuer:    v.GetString("jwt.issuer"),
			Audience:  v.GetStringSlice("jwt.audience"),
			SecretKey: v.GetString("jwt.secret_key"),
			TTL:       v.GetDuration("jwt.ttl"),
		},
		Cookie:         CookieConfig{Name: v.GetString("cookie.name")},
		Encrypter:      EncrypterConfig{Key: v.GetString("encrypter.key")},
		InternalConfig: InternalConfig{ServiceKeys: v.GetStringMapString("internal.service_keys")},
		Storage: StorageConfig{
			Root:     v.GetString("storage.root"),
			Backend:  strings.ToLower(strings.TrimSpace(v.GetString("storage.backend"))),
			CacheTTL: v.GetDuration("storage.cache_ttl"),
		},
		Report: ReportConfig{Timezone: v.GetString("report.timezone")},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := map[string]any{
		"environment.name": "production",

		"http_server.port": 8080,
		"http_server.mode": "release",

		"logger.level":    "info",
		"logger.mode":     "production",
		"logger.encoding": "json",

		"postgres.host":    "localhost",
		"postgres.port":    5432,
		"postgres.user":    "postgres",
		"postgres.dbname":  "postgres",
		"postgres.sslmode": "disable",
		"postgres.schema":  "report",

		"redis.host": "localhost",
		"redis.port": 6379,

		"minio.endpoint": "localhost:9000",
		"minio.region":   "us-east-1",
		"minio.bucket":   "reports",

		"kafka.brokers":        []string{"localhost:9092"},
		"kafka.topic":          "report.events",
		"kafka.generate_topic": "report.generate.requests",
		"kafka.group_id":       "report-generate-requests",

		"jwt.issuer":   "auth-service",
		"jwt.audience": []string{"report-srv"},
		"jwt.ttl":      "8h",

		"cookie.name": "auth_token",

		"storage.root":      "./storage/reports",
		"storage.backend":   StorageBackendLocal,
		"storage.cache_ttl": "10m",

		"report.timezone": "Asia/Seoul",
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// validate reports every problem at once.
func validate(cfg *Config) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(len(cfg.JWT.SecretKey) >= 32, "jwt.secret_key must be at least 32 characters")
	check(cfg.JWT.TTL > 0, "jwt.ttl must be positive")

	switch len(cfg.Encrypter.Key) {
	case 16, 24, 32:
	default:
		check(false, "encrypter.key must be 16, 24 or 32 characters, got %d", len(cfg.Encrypter.Key))
	}

	check(cfg.Postgres.Host != "", "postgres.host is required")
	check(cfg.Postgres.Port != 0, "postgres.port is required")
	check(cfg.Postgres.User != "", "postgres.user is required")
	check(cfg.Postgres.DBName != "", "postgres.dbname is required")

	check(cfg.Redis.Host != "", "redis.host is required")
	check(cfg.Redis.Port != 0, "redis.port is required")

	check(len(cfg.Kafka.Brokers) > 0, "kafka.brokers must have at least one value")
	check(cfg.Kafka.Topic != "", "kafka.topic is required")

	check(cfg.Storage.Root != "", "storage.root is required")
	check(cfg.Storage.CacheTTL > 0, "storage.cache_ttl must be positive")
	switch cfg.Storage.Backend {
	case StorageBackendLocal:
	case StorageBackendMinIO:
		check(cfg.MinIO.Endpoint != "", "minio.endpoint is required")
		check(cfg.MinIO.AccessKey != "" && cfg.MinIO.SecretKey != "", "minio.access_key and minio.secret_key are required")
		check(cfg.MinIO.Bucket != "", "minio.bucket is required")
	default:
		check(false, "storage.backend must be %q or %q, got %q", StorageBackendLocal, StorageBackendMinIO, cfg.Storage.Backend)
	}

	if _, err := time.LoadLocation(cfg.Report.Timezone); err != nil {
		check(false, "report.timezone is invalid: %v", err)
	}
	check(cfg.Cookie.Name != "", "cookie.name is required")

	return errors.Join(errs...)
}
