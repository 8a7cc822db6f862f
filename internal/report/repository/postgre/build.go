package postgre

import (
	"database/sql"
	"encoding/json"
	"time"

	"report-srv/internal/model"
)

type scanner interface {
	Scan(dest ...any) error
}

const jobColumns = `id, requested_by, role_snapshot, report_type_id, period, period_start, period_end,
	data_scope, department_snapshot, category_json, output_format, status, approved_total, approved_count,
	file_name, file_path, error_message, completed_at, created_at, updated_at`

const fileColumns = `id, job_id, file_name, file_url, file_type, file_size, checksum, created_at`

const downloadLogColumns = `id, file_id, job_id, downloaded_by, downloaded_at`

const scheduleColumns = `id, name, report_type_id, data_scope, output_format, cron_expr, is_enabled,
	next_run_at, last_run_at, last_job_id, fail_count, last_error, created_at, updated_at`

func scanJob(s scanner) (model.ReportJob, error) {
	var (
		job                       model.ReportJob
		periodStart, periodEnd    sql.NullTime
		dept, fileName, filePath  sql.NullString
		errMsg                    sql.NullString
		categoryJSON              []byte
		approvedTotal, approvedCt sql.NullInt64
		completedAt               sql.NullTime
		dataScope, format, status string
	)

	err := s.Scan(
		&job.ID, &job.RequestedBy, &job.RoleSnapshot, &job.ReportTypeID, &job.Period, &periodStart, &periodEnd,
		&dataScope, &dept, &categoryJSON, &format, &status, &approvedTotal, &approvedCt,
		&fileName, &filePath, &errMsg, &completedAt, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return model.ReportJob{}, err
	}

	job.DataScope = model.DataScope(dataScope)
	job.OutputFormat = model.OutputFormat(format)
	job.Status = model.JobStatus(status)
	job.DepartmentSnapshot = dept.String
	job.FileName = fileName.String
	job.FilePath = filePath.String
	job.ErrorMessage = errMsg.String
	if len(categoryJSON) > 0 {
		job.CategoryJSON = json.RawMessage(categoryJSON)
	}
	if periodStart.Valid && periodEnd.Valid {
		job.PeriodStart = timePtr(periodStart.Time)
		job.PeriodEnd = timePtr(periodEnd.Time)
	}
	if approvedTotal.Valid {
		job.ApprovedTotal = &approvedTotal.Int64
	}
	if approvedCt.Valid {
		job.ApprovedCount = &approvedCt.Int64
	}
	if completedAt.Valid {
		job.CompletedAt = timePtr(completedAt.Time)
	}

	return job, nil
}

func scanFile(s scanner) (model.ReportFile, error) {
	var (
		f        model.ReportFile
		fileType string
	)
	if err := s.Scan(&f.ID, &f.JobID, &f.FileName, &f.FileURL, &fileType, &f.FileSize, &f.Checksum, &f.CreatedAt); err != nil {
		return model.ReportFile{}, err
	}
	f.FileType = model.OutputFormat(fileType)
	return f, nil
}

func scanDownloadLog(s scanner) (model.ReportDownloadLog, error) {
	var l model.ReportDownloadLog
	if err := s.Scan(&l.ID, &l.FileID, &l.JobID, &l.DownloadedBy, &l.DownloadedAt); err != nil {
		return model.ReportDownloadLog{}, err
	}
	return l, nil
}

func scanSchedule(s scanner) (model.ReportSchedule, error) {
	var (
		sc                   model.ReportSchedule
		dataScope, format    string
		nextRunAt, lastRunAt sql.NullTime
		lastJobID, lastError sql.NullString
	)
	err := s.Scan(
		&sc.ID, &sc.Name, &sc.ReportTypeID, &dataScope, &format, &sc.CronExpr, &sc.IsEnabled,
		&nextRunAt, &lastRunAt, &lastJobID, &sc.FailCount, &lastError, &sc.CreatedAt, &sc.UpdatedAt,
	)
	if err != nil {
		return model.ReportSchedule{}, err
	}
	sc.DataScope = model.DataScope(dataScope)
	sc.OutputFormat = model.OutputFormat(format)
	sc.LastJobID = lastJobID.String
	sc.LastError = lastError.String
	if nextRunAt.Valid {
		sc.NextRunAt = timePtr(nextRunAt.Time)
	}
	if lastRunAt.Valid {
		sc.LastRunAt = timePtr(lastRunAt.Time)
	}
	return sc, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
