package postgre

import (
	"fmt"
	"strings"

	"report-srv/internal/report/repository"
)

// buildListJobsQuery returns the page query, the count query and the shared
// filter args. The page query takes LIMIT and OFFSET as the two args after them.
func buildListJobsQuery(opts repository.ListJobsOptions) (string, string, []any) {
	var (
		conds []string
		args  []any
	)

	if opts.RequestedBy != "" {
		args = append(args, opts.RequestedBy)
		conds = append(conds, fmt.Sprintf("requested_by = $%d", len(args)))
	}
	if opts.Status != "" {
		args = append(args, string(opts.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if opts.ReportTypeID != "" {
		args = append(args, opts.ReportTypeID)
		conds = append(conds, fmt.Sprintf("report_type_id = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM report_jobs%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		jobColumns, where, len(args)+1, len(args)+2)
	countQuery := `SELECT COUNT(*) FROM report_jobs` + where

	return query, countQuery, args
}

func buildListDownloadLogsQuery(opts repository.ListDownloadLogsOptions) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if opts.JobID != "" {
		args = append(args, opts.JobID)
		conds = append(conds, fmt.Sprintf("job_id = $%d", len(args)))
	}
	if opts.FileID != "" {
		args = append(args, opts.FileID)
		conds = append(conds, fmt.Sprintf("file_id = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	return `SELECT ` + downloadLogColumns + ` FROM report_download_logs` + where + ` ORDER BY downloaded_at DESC, id DESC`, args
}
