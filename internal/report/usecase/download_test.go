package usecase

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"report-srv/internal/model"
	"report-srv/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateReady(t *testing.T, env testEnv, sc model.Scope) report.GenerateOutput {
	t.Helper()
	out, err := env.uc.Generate(context.Background(), sc, report.GenerateInput{
		ReportTypeID: report.TypePersonalSummaryPDF,
		Filters:      report.Filters{Period: "2025-06"},
	})
	require.NoError(t, err)
	require.Equal(t, model.JobStatusReady, out.Status)
	return out
}

func TestDownload_Owner(t *testing.T) {
	env := newTestEnv(t)
	gen := generateReady(t, env, aliceScope)

	out, err := env.uc.Download(context.Background(), aliceScope, report.DownloadInput{ReportID: gen.ReportID})
	require.NoError(t, err)
	defer out.Reader.Close()

	data, err := io.ReadAll(out.Reader)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, int64(len(data)), out.Size)
	assert.Equal(t, gen.FileName, out.FileName)
	assert.Equal(t, model.OutputFormatPDF, out.Format)
	assert.Equal(t, "application/pdf", out.ContentType)

	logs, err := env.repo.ListDownloadLogs(context.Background(), reportLogs(gen.ReportID))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, aliceScope.UserID, logs[0].DownloadedBy)
	assert.Equal(t, out.FileID, logs[0].FileID)
}

func TestDownload_NLogsForNDownloads(t *testing.T) {
	env := newTestEnv(t)
	gen := generateReady(t, env, aliceScope)

	const n = 5
	for range n {
		out, err := env.uc.Download(context.Background(), aliceScope, report.DownloadInput{ReportID: gen.ReportID})
		require.NoError(t, err)
		out.Reader.Close()
	}

	logs, err := env.repo.ListDownloadLogs(context.Background(), reportLogs(gen.ReportID))
	require.NoError(t, err)
	require.Len(t, logs, n)
	for _, l := range logs {
		assert.Equal(t, logs[0].FileID, l.FileID)
	}
}

func TestDownload_Authorization(t *testing.T) {
	env := newTestEnv(t)
	gen := generateReady(t, env, aliceScope)

	_, err := env.uc.Download(context.Background(), bobScope, report.DownloadInput{ReportID: gen.ReportID})
	assert.ErrorIs(t, err, report.ErrNotOwner)

	_, err = env.uc.Download(context.Background(), model.Scope{}, report.DownloadInput{ReportID: gen.ReportID})
	assert.ErrorIs(t, err, report.ErrUnauthenticated)

	out, err := env.uc.Download(context.Background(), adminScope, report.DownloadInput{ReportID: gen.ReportID})
	require.NoError(t, err)
	out.Reader.Close()

	logs, _ := env.repo.ListDownloadLogs(context.Background(), reportLogs(gen.ReportID))
	assert.Len(t, logs, 1, "rejected downloads are not logged")
}

func TestDownload_NonOwnerOnAnyJob(t *testing.T) {
	env := newTestEnv(t)
	for _, status := range []model.JobStatus{model.JobStatusGenerating, model.JobStatusReady, model.JobStatusFailed} {
		env.repo.putJob(model.ReportJob{ID: "job-" + string(status), RequestedBy: aliceScope.UserID, Status: status})

		_, err := env.uc.Download(context.Background(), bobScope, report.DownloadInput{ReportID: "job-" + string(status)})
		assert.ErrorIs(t, err, report.ErrNotOwner, status)
	}
}

func TestDownload_NotReady(t *testing.T) {
	env := newTestEnv(t)
	env.repo.putJob(model.ReportJob{ID: "gen", RequestedBy: aliceScope.UserID, Status: model.JobStatusGenerating})
	env.repo.putJob(model.ReportJob{ID: "failed", RequestedBy: aliceScope.UserID, Status: model.JobStatusFailed, ErrorMessage: "boom"})

	out, err := env.uc.Download(context.Background(), aliceScope, report.DownloadInput{ReportID: "gen"})
	assert.ErrorIs(t, err, report.ErrReportGenerating)
	assert.Nil(t, out.Reader)

	out, err = env.uc.Download(context.Background(), adminScope, report.DownloadInput{ReportID: "failed"})
	assert.ErrorIs(t, err, report.ErrReportFailed)
	assert.Nil(t, out.Reader)
}

func TestDownload_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Download(context.Background(), adminScope, report.DownloadInput{ReportID: "nope"})
	assert.ErrorIs(t, err, report.ErrReportNotFound)

	env.repo.putJob(model.ReportJob{ID: "no-file", RequestedBy: aliceScope.UserID, Status: model.JobStatusReady, FileName: "x", FilePath: "y"})
	_, err = env.uc.Download(context.Background(), aliceScope, report.DownloadInput{ReportID: "no-file"})
	assert.ErrorIs(t, err, report.ErrFileNotFound)
}

func TestDownload_ArtifactMissing(t *testing.T) {
	env := newTestEnv(t)
	gen := generateReady(t, env, aliceScope)

	require.NoError(t, os.Remove(env.repo.job(gen.ReportID).FilePath))

	_, err := env.uc.Download(context.Background(), aliceScope, report.DownloadInput{ReportID: gen.ReportID})
	assert.ErrorIs(t, err, report.ErrArtifactMissing)

	logs, _ := env.repo.ListDownloadLogs(context.Background(), reportLogs(gen.ReportID))
	assert.Empty(t, logs)
}

func TestDownload_LogFailureWithholdsFile(t *testing.T) {
	env := newTestEnv(t)
	gen := generateReady(t, env, aliceScope)
	env.repo.errCreateLog = errors.New("disk full")

	out, err := env.uc.Download(context.Background(), aliceScope, report.DownloadInput{ReportID: gen.ReportID})
	assert.ErrorIs(t, err, report.ErrDownloadFailed)
	assert.Nil(t, out.Reader)
}

func TestDownload_ReusedFile(t *testing.T) {
	env := newTestEnv(t)
	first := generateReady(t, env, aliceScope)
	second := generateReady(t, env, aliceScope)

	out, err := env.uc.Download(context.Background(), aliceScope, report.DownloadInput{ReportID: second.ReportID})
	require.NoError(t, err)
	out.Reader.Close()

	file, err := env.repo.GetLatestFileByJob(context.Background(), first.ReportID)
	require.NoError(t, err)
	assert.Equal(t, file.ID, out.FileID)
}

func TestDownloadByFileID(t *testing.T) {
	env := newTestEnv(t)
	gen := generateReady(t, env, aliceScope)
	file, err := env.repo.GetLatestFileByJob(context.Background(), gen.ReportID)
	require.NoError(t, err)

	out, err := env.uc.DownloadByFileID(context.Background(), aliceScope, report.DownloadByFileInput{FileID: file.ID})
	require.NoError(t, err)
	out.Reader.Close()
	assert.Equal(t, file.ID, out.FileID)

	_, err = env.uc.DownloadByFileID(context.Background(), bobScope, report.DownloadByFileInput{FileID: file.ID})
	assert.ErrorIs(t, err, report.ErrNotOwner)

	_, err = env.uc.DownloadByFileID(context.Background(), aliceScope, report.DownloadByFileInput{FileID: "missing"})
	assert.ErrorIs(t, err, report.ErrFileNotFound)

	logs, err := env.uc.ListFileDownloadLogs(context.Background(), adminScope, report.ListFileDownloadLogsInput{FileID: file.ID})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}
