// Package postgre owns the process-wide PostgreSQL pool.
package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"report-srv/config"

	_ "github.com/lib/pq"
)

const (
	connectTimeout = 5 * time.Second

	// Renders hold a connection only for the dataset query, so the pool stays small.
	maxOpenConns    = 40
	maxIdleConns    = 10
	connMaxLifetime = 30 * time.Minute
	connMaxIdleTime = 5 * time.Minute
)

var (
	mu       sync.Mutex
	instance *sql.DB
)

// Connect returns the shared pool, opening and pinging it on first use.
// A failed attempt is not cached.
func Connect(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	db, err := sql.Open("postgres", buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("config.postgre.Connect: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("config.postgre.Connect %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.DBName, err)
	}

	instance = db
	return instance, nil
}

// buildDSN renders cfg as a lib/pq key/value connection string. Schema
// becomes the search_path so queries use unqualified table names.
func buildDSN(cfg config.PostgresConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	searchPath := cfg.Schema
	if searchPath == "" {
		searchPath = "public"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslMode, searchPath)
}

// Disconnect closes db and forgets the shared pool if db is it.
func Disconnect(ctx context.Context, db *sql.DB) error {
	mu.Lock()
	defer mu.Unlock()

	if db == nil {
		return nil
	}
	if db == instance {
		instance = nil
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("config.postgre.Disconnect: %w", err)
	}
	return nil
}
