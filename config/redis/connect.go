// Package redis owns the process-wide Redis client used for the report cache.
package redis

import (
	"context"
	"fmt"
	"sync"

	"report-srv/config"
	"report-srv/pkg/redis"
)

var (
	mu       sync.Mutex
	instance redis.IRedis
)

// Connect returns the shared client, dialing Redis on first use.
// A failed dial is not cached, so the next call retries.
func Connect(ctx context.Context, cfg config.RedisConfig) (redis.IRedis, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client, err := redis.NewRedis(clientConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("config.redis.Connect %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	instance = client
	return instance, nil
}

// Disconnect closes the shared client. Safe to call when not connected.
func Disconnect() error {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		return nil
	}
	err := instance.Close()
	instance = nil
	return err
}

func clientConfig(cfg config.RedisConfig) redis.RedisConfig {
	return redis.RedisConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}
}
