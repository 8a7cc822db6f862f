// Package postgre stores report jobs, their files, download logs and
// schedules in PostgreSQL.
package postgre

import (
	"database/sql"

	"report-srv/internal/report/repository"
	"report-srv/pkg/log"
)

type implRepository struct {
	l  log.Logger
	db *sql.DB
}

var _ repository.PostgresRepository = (*implRepository)(nil)

func New(l log.Logger, db *sql.DB) repository.PostgresRepository {
	return &implRepository{l: l, db: db}
}
