package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"report-srv/internal/model"
	"report-srv/internal/report"
)

const noPeriod = "NA"

// jobDir is <root>/<year>/<month>/<jobID>. The month is not zero padded.
func (uc *implUseCase) jobDir(job model.ReportJob) string {
	at := job.CreatedAt
	if at.IsZero() {
		at = uc.now()
	}
	at = at.In(uc.config.Location)

	return filepath.Join(
		uc.config.StorageRoot,
		strconv.Itoa(at.Year()),
		strconv.Itoa(int(at.Month())),
		job.ID,
	)
}

// buildFileName returns Report_<period|NA>_<type>.<ext>. The period is free
// text, so anything outside [A-Za-z0-9_-] is replaced to keep the name inside
// the job directory.
func buildFileName(period, reportTypeID string, format model.OutputFormat) string {
	p := sanitizeFileToken(strings.TrimSpace(period))
	if p == "" {
		p = noPeriod
	}
	return fmt.Sprintf("Report_%s_%s.%s", p, reportTypeID, format.Extension())
}

func sanitizeFileToken(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

// hashFile returns the hex SHA-256 and the size of the file at path.
func hashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), size, nil
}

func authorizeJob(sc model.Scope, job model.ReportJob) error {
	if sc.IsAdmin() || job.RequestedBy == sc.UserID {
		return nil
	}
	return report.ErrNotOwner
}

func requireReady(job model.ReportJob) error {
	switch job.Status {
	case model.JobStatusReady:
		return nil
	case model.JobStatusFailed:
		return report.ErrReportFailed
	case model.JobStatusGenerating:
		return report.ErrReportGenerating
	default:
		return report.ErrReportGenerating
	}
}

func requireAdmin(sc model.Scope) error {
	if !sc.IsAuthenticated() {
		return report.ErrUnauthenticated
	}
	if !sc.IsAdmin() {
		return report.ErrAdminRequired
	}
	return nil
}

func toReportOutput(job model.ReportJob) report.ReportOutput {
	return report.ReportOutput{
		ID:                 job.ID,
		RequestedBy:        job.RequestedBy,
		RoleSnapshot:       job.RoleSnapshot,
		ReportTypeID:       job.ReportTypeID,
		Period:             job.Period,
		PeriodStart:        job.PeriodStart,
		PeriodEnd:          job.PeriodEnd,
		DataScope:          job.DataScope,
		DepartmentSnapshot: job.DepartmentSnapshot,
		Categories:         job.CategoryJSON,
		OutputFormat:       job.OutputFormat,
		Status:             job.Status,
		ApprovedTotal:      job.ApprovedTotal,
		ApprovedCount:      job.ApprovedCount,
		FileName:           job.FileName,
		ErrorMessage:       job.ErrorMessage,
		CompletedAt:        job.CompletedAt,
		CreatedAt:          job.CreatedAt,
	}
}

func toFileOutput(f model.ReportFile) report.FileOutput {
	return report.FileOutput{
		ID:        f.ID,
		JobID:     f.JobID,
		FileName:  f.FileName,
		FileType:  f.FileType,
		FileSize:  f.FileSize,
		Checksum:  f.Checksum,
		CreatedAt: f.CreatedAt,
	}
}

func toDownloadLogOutput(l model.ReportDownloadLog) report.DownloadLogOutput {
	return report.DownloadLogOutput{
		ID:           l.ID,
		FileID:       l.FileID,
		JobID:        l.JobID,
		DownloadedBy: l.DownloadedBy,
		DownloadedAt: l.DownloadedAt,
	}
}
