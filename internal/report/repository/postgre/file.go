package postgre

import (
	"context"
	"database/sql"
	"errors"

	"report-srv/internal/model"
	"report-srv/internal/report/repository"
)

// SaveOrReuseFile is the insert-or-get-by-checksum primitive. The insert uses
// ON CONFLICT DO NOTHING, so a concurrent insert of the same checksum blocks
// until the other transaction ends and then yields no row, after which the
// committed row is read back. The job link is written in the same transaction.
func (r *implRepository) SaveOrReuseFile(ctx context.Context, opts repository.SaveFileOptions) (model.ReportFile, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.SaveOrReuseFile: Failed to begin tx: %v", err)
		return model.ReportFile{}, false, err
	}
	defer tx.Rollback()

	insert := `INSERT INTO report_files (id, job_id, file_name, file_url, file_type, file_size, checksum)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (checksum) DO NOTHING
		RETURNING ` + fileColumns

	created := true
	file, err := scanFile(tx.QueryRowContext(ctx, insert,
		opts.ID, opts.JobID, opts.FileName, opts.FileURL, string(opts.FileType), opts.FileSize, opts.Checksum,
	))
	if errors.Is(err, sql.ErrNoRows) {
		created = false
		file, err = scanFile(tx.QueryRowContext(ctx,
			`SELECT `+fileColumns+` FROM report_files WHERE checksum = $1`, opts.Checksum))
		if errors.Is(err, sql.ErrNoRows) {
			r.l.Errorf(ctx, "report.repository.postgre.SaveOrReuseFile: checksum %s conflicted but no row was found", opts.Checksum)
			return model.ReportFile{}, false, repository.ErrFileConflictUnresolved
		}
	}
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.SaveOrReuseFile: Failed to save file: %v", err)
		return model.ReportFile{}, false, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO report_job_files (job_id, file_id) VALUES ($1, $2) ON CONFLICT (job_id, file_id) DO NOTHING`,
		opts.JobID, file.ID,
	); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.SaveOrReuseFile: Failed to link file: %v", err)
		return model.ReportFile{}, false, err
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.SaveOrReuseFile: Failed to commit: %v", err)
		return model.ReportFile{}, false, err
	}

	return file, created, nil
}

func (r *implRepository) GetFileByID(ctx context.Context, id string) (model.ReportFile, error) {
	file, err := scanFile(r.db.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM report_files WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.ReportFile{}, repository.ErrFileNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.GetFileByID: %v", err)
		return model.ReportFile{}, err
	}
	return file, nil
}

// GetLatestFileByJob follows the newest link, not report_files.job_id, so
// reused files are found too.
func (r *implRepository) GetLatestFileByJob(ctx context.Context, jobID string) (model.ReportFile, error) {
	query := `SELECT f.id, f.job_id, f.file_name, f.file_url, f.file_type, f.file_size, f.checksum, f.created_at
		FROM report_job_files l
		JOIN report_files f ON f.id = l.file_id
		WHERE l.job_id = $1
		ORDER BY l.id DESC
		LIMIT 1`

	file, err := scanFile(r.db.QueryRowContext(ctx, query, jobID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.ReportFile{}, repository.ErrFileNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.GetLatestFileByJob: %v", err)
		return model.ReportFile{}, err
	}
	return file, nil
}

func (r *implRepository) ListFilesByJob(ctx context.Context, jobID string) ([]model.ReportFile, error) {
	query := `SELECT f.id, f.job_id, f.file_name, f.file_url, f.file_type, f.file_size, f.checksum, f.created_at
		FROM report_job_files l
		JOIN report_files f ON f.id = l.file_id
		WHERE l.job_id = $1
		ORDER BY l.id DESC`

	rows, err := r.db.QueryContext(ctx, query, jobID)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListFilesByJob: %v", err)
		return nil, err
	}
	defer rows.Close()

	files := make([]model.ReportFile, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
