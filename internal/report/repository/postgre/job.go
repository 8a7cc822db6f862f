package postgre

import (
	"context"
	"database/sql"
	"errors"

	"report-srv/internal/model"
	"report-srv/internal/report/repository"
)

// CreateJob inserts a job in GENERATING.
func (r *implRepository) CreateJob(ctx context.Context, opts repository.CreateJobOptions) (model.ReportJob, error) {
	query := `INSERT INTO report_jobs (
		id, requested_by, role_snapshot, report_type_id, period, period_start, period_end,
		data_scope, department_snapshot, category_json, output_format, status
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING ` + jobColumns

	categoryJSON := []byte(opts.CategoryJSON)
	if len(categoryJSON) == 0 {
		categoryJSON = []byte("[]")
	}

	job, err := scanJob(r.db.QueryRowContext(ctx, query,
		opts.ID,
		opts.RequestedBy,
		opts.RoleSnapshot,
		opts.ReportTypeID,
		opts.Period,
		nullDate(opts.PeriodStart),
		nullDate(opts.PeriodEnd),
		string(opts.DataScope),
		nullString(opts.DepartmentSnapshot),
		categoryJSON,
		string(opts.OutputFormat),
		string(model.JobStatusGenerating),
	))
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CreateJob: Failed to insert job: %v", err)
		return model.ReportJob{}, repository.ErrJobCreateFailed
	}

	return job, nil
}

// GetJobByID - Get job by primary key.
func (r *implRepository) GetJobByID(ctx context.Context, id string) (model.ReportJob, error) {
	query := `SELECT ` + jobColumns + ` FROM report_jobs WHERE id = $1`

	job, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.ReportJob{}, repository.ErrJobNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.GetJobByID: Failed to get job: %v", err)
		return model.ReportJob{}, err
	}

	return job, nil
}

// ListJobs returns one page of jobs, newest first, and the total match count.
func (r *implRepository) ListJobs(ctx context.Context, opts repository.ListJobsOptions) ([]model.ReportJob, int64, error) {
	query, countQuery, args := buildListJobsQuery(opts)

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListJobs: Failed to count jobs: %v", err)
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, query, append(args, opts.Limit, opts.Offset)...)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListJobs: Failed to list jobs: %v", err)
		return nil, 0, err
	}
	defer rows.Close()

	jobs := make([]model.ReportJob, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			r.l.Errorf(ctx, "report.repository.postgre.ListJobs: Failed to scan job: %v", err)
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// UpdateAggregation stores approved totals. Only GENERATING jobs accept it.
func (r *implRepository) UpdateAggregation(ctx context.Context, opts repository.UpdateAggregationOptions) error {
	query := `UPDATE report_jobs
		SET approved_total = $2, approved_count = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'GENERATING'`

	return r.execTransition(ctx, "UpdateAggregation", query, opts.JobID, opts.ApprovedTotal, opts.ApprovedCount)
}

// UpdateReady - Mark job READY. The status guard makes the transition happen at most once.
func (r *implRepository) UpdateReady(ctx context.Context, opts repository.UpdateReadyOptions) error {
	query := `UPDATE report_jobs
		SET status = 'READY', file_name = $2, file_path = $3, error_message = NULL,
			completed_at = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'GENERATING'`

	return r.execTransition(ctx, "UpdateReady", query, opts.JobID, opts.FileName, opts.FilePath, opts.CompletedAt)
}

// UpdateFailed - Mark job FAILED and clear its file fields.
func (r *implRepository) UpdateFailed(ctx context.Context, opts repository.UpdateFailedOptions) error {
	query := `UPDATE report_jobs
		SET status = 'FAILED', error_message = $2, file_name = NULL, file_path = NULL,
			completed_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'GENERATING'`

	return r.execTransition(ctx, "UpdateFailed", query, opts.JobID, opts.ErrorMessage, opts.CompletedAt)
}

func (r *implRepository) execTransition(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.%s: Failed to update job: %v", op, err)
		return repository.ErrJobUpdateFailed
	}

	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.%s: Failed to read affected rows: %v", op, err)
		return repository.ErrJobUpdateFailed
	}
	if n == 0 {
		r.l.Warnf(ctx, "report.repository.postgre.%s: job %v is missing or no longer GENERATING", op, args[0])
		return repository.ErrJobUpdateFailed
	}

	return nil
}
