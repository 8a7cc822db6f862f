package postgre

import (
	"context"

	"report-srv/internal/model"
	"report-srv/internal/report/repository"
)

// CreateDownloadLog appends one audit row. It runs outside any transaction, so
// a nil error means the row is committed.
func (r *implRepository) CreateDownloadLog(ctx context.Context, opts repository.CreateDownloadLogOptions) (model.ReportDownloadLog, error) {
	query := `INSERT INTO report_download_logs (id, file_id, job_id, downloaded_by)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + downloadLogColumns

	l, err := scanDownloadLog(r.db.QueryRowContext(ctx, query, opts.ID, opts.FileID, opts.JobID, opts.DownloadedBy))
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CreateDownloadLog: %v", err)
		return model.ReportDownloadLog{}, err
	}
	return l, nil
}

func (r *implRepository) ListDownloadLogs(ctx context.Context, opts repository.ListDownloadLogsOptions) ([]model.ReportDownloadLog, error) {
	query, args := buildListDownloadLogsQuery(opts)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListDownloadLogs: %v", err)
		return nil, err
	}
	defer rows.Close()

	logs := make([]model.ReportDownloadLog, 0)
	for rows.Next() {
		l, err := scanDownloadLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
