package repository

import (
	"context"
	"io"

	"report-srv/internal/model"
)

//go:generate mockery --name JobRepository
type JobRepository interface {
	CreateJob(ctx context.Context, opts CreateJobOptions) (model.ReportJob, error)
	GetJobByID(ctx context.Context, id string) (model.ReportJob, error)
	ListJobs(ctx context.Context, opts ListJobsOptions) ([]model.ReportJob, int64, error)
	UpdateAggregation(ctx context.Context, opts UpdateAggregationOptions) error
	UpdateReady(ctx context.Context, opts UpdateReadyOptions) error
	UpdateFailed(ctx context.Context, opts UpdateFailedOptions) error
}

//go:generate mockery --name FileRepository
type FileRepository interface {
	// SaveOrReuseFile inserts a file keyed by checksum, or returns the existing
	// row when the checksum is already stored. Either way the file is linked to
	// opts.JobID. created is true only when a new row was inserted. The whole
	// operation is atomic, so concurrent callers with equal checksums all end up
	// with the same row.
	SaveOrReuseFile(ctx context.Context, opts SaveFileOptions) (file model.ReportFile, created bool, err error)
	GetFileByID(ctx context.Context, id string) (model.ReportFile, error)
	// GetLatestFileByJob returns the file most recently linked to the job.
	GetLatestFileByJob(ctx context.Context, jobID string) (model.ReportFile, error)
	ListFilesByJob(ctx context.Context, jobID string) ([]model.ReportFile, error)
}

//go:generate mockery --name DownloadLogRepository
type DownloadLogRepository interface {
	CreateDownloadLog(ctx context.Context, opts CreateDownloadLogOptions) (model.ReportDownloadLog, error)
	ListDownloadLogs(ctx context.Context, opts ListDownloadLogsOptions) ([]model.ReportDownloadLog, error)
}

//go:generate mockery --name ScheduleRepository
type ScheduleRepository interface {
	ListSchedules(ctx context.Context, opts ListSchedulesOptions) ([]model.ReportSchedule, int64, error)
	RecordScheduleRun(ctx context.Context, opts RecordScheduleRunOptions) error
}

//go:generate mockery --name AggregationRepository
type AggregationRepository interface {
	SumApproved(ctx context.Context, opts SumApprovedOptions) (model.ApprovedAgg, error)
}

//go:generate mockery --name PostgresRepository
type PostgresRepository interface {
	JobRepository
	FileRepository
	DownloadLogRepository
	ScheduleRepository
	AggregationRepository
}

// CacheRepository caches terminal jobs. Misses return ErrCacheMiss.
//
//go:generate mockery --name CacheRepository
type CacheRepository interface {
	GetJob(ctx context.Context, id string) (model.ReportJob, error)
	SetJob(ctx context.Context, job model.ReportJob) error
}

// ArtifactRepository stores rendered bytes and opens them again by location.
//
//go:generate mockery --name ArtifactRepository
type ArtifactRepository interface {
	// Save persists the file at opts.LocalPath and returns its location.
	Save(ctx context.Context, opts SaveArtifactOptions) (string, error)
	// Open returns the content at location. A missing artifact yields ErrArtifactNotFound.
	Open(ctx context.Context, location string) (io.ReadCloser, int64, error)
}
