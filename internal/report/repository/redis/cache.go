package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"report-srv/internal/model"
	"report-srv/internal/report/repository"
	pkgRedis "report-srv/pkg/redis"
)

func jobKey(id string) string {
	return fmt.Sprintf("report:job:%s", id)
}

func (r *implCacheRepository) GetJob(ctx context.Context, id string) (model.ReportJob, error) {
	data, err := r.redis.Get(ctx, jobKey(id))
	if err != nil {
		if errors.Is(err, pkgRedis.ErrKeyNotFound) {
			return model.ReportJob{}, repository.ErrCacheMiss
		}
		return model.ReportJob{}, err
	}

	var job model.ReportJob
	if err := json.Unmarshal(data, &job); err != nil {
		r.l.Errorf(ctx, "report.repository.redis.GetJob: Failed to unmarshal job: %v", err)
		return model.ReportJob{}, repository.ErrCacheMiss
	}
	return job, nil
}

// SetJob caches a terminal job. Jobs still GENERATING are skipped.
func (r *implCacheRepository) SetJob(ctx context.Context, job model.ReportJob) error {
	if !job.Status.IsTerminal() {
		return nil
	}

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := r.redis.Set(ctx, jobKey(job.ID), data, r.ttl); err != nil {
		r.l.Errorf(ctx, "report.repository.redis.SetJob: Failed to save to cache: %v", err)
		return err
	}
	return nil
}
