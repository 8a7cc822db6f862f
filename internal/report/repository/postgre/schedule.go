package postgre

import (
	"context"

	"report-srv/internal/model"
	"report-srv/internal/report/repository"
)

func (r *implRepository) ListSchedules(ctx context.Context, opts repository.ListSchedulesOptions) ([]model.ReportSchedule, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM report_schedules`).Scan(&total); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListSchedules: Failed to count: %v", err)
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+scheduleColumns+` FROM report_schedules ORDER BY id LIMIT $1 OFFSET $2`,
		opts.Limit, opts.Offset)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListSchedules: %v", err)
		return nil, 0, err
	}
	defer rows.Close()

	schedules := make([]model.ReportSchedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, 0, err
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return schedules, total, nil
}

// RecordScheduleRun updates run bookkeeping. A success resets fail_count.
func (r *implRepository) RecordScheduleRun(ctx context.Context, opts repository.RecordScheduleRunOptions) error {
	query := `UPDATE report_schedules
		SET last_run_at = $2,
			last_job_id = $3,
			fail_count = CASE WHEN $4::boolean THEN fail_count + 1 ELSE 0 END,
			last_error = $5,
			updated_at = NOW()
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		opts.ScheduleID, opts.RunAt, nullString(opts.JobID), opts.Failed, nullString(opts.LastError))
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.RecordScheduleRun: %v", err)
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrScheduleNotFound
	}
	return nil
}
