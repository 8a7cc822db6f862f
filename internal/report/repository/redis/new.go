package redis

import (
	"time"

	"report-srv/internal/report/repository"
	"report-srv/pkg/log"
	pkgRedis "report-srv/pkg/redis"
)

const defaultJobTTL = 10 * time.Minute

type implCacheRepository struct {
	redis pkgRedis.IRedis
	l     log.Logger
	ttl   time.Duration
}

// New - Factory. A non-positive ttl falls back to 10 minutes.
func New(redis pkgRedis.IRedis, l log.Logger, ttl time.Duration) repository.CacheRepository {
	if ttl <= 0 {
		ttl = defaultJobTTL
	}
	return &implCacheRepository{
		redis: redis,
		l:     l,
		ttl:   ttl,
	}
}
