package report

import (
	"context"

	"report-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Generate(ctx context.Context, sc model.Scope, input GenerateInput) (GenerateOutput, error)
	GenerateInternal(ctx context.Context, input GenerateInput) (GenerateOutput, error)
	GetReport(ctx context.Context, sc model.Scope, input GetReportInput) (ReportOutput, error)
	ListReports(ctx context.Context, sc model.Scope, input ListReportsInput) (ListReportsOutput, error)
	ListTypes(ctx context.Context, sc model.Scope) ([]ReportType, error)

	Download(ctx context.Context, sc model.Scope, input DownloadInput) (DownloadOutput, error)
	DownloadByFileID(ctx context.Context, sc model.Scope, input DownloadByFileInput) (DownloadOutput, error)

	ListFiles(ctx context.Context, sc model.Scope, input ListFilesInput) ([]FileOutput, error)
	ListJobDownloadLogs(ctx context.Context, sc model.Scope, input ListJobDownloadLogsInput) ([]DownloadLogOutput, error)
	ListFileDownloadLogs(ctx context.Context, sc model.Scope, input ListFileDownloadLogsInput) ([]DownloadLogOutput, error)
	ListSchedules(ctx context.Context, sc model.Scope, input ListSchedulesInput) (ListSchedulesOutput, error)
	RecordScheduleRun(ctx context.Context, input RecordScheduleRunInput) error
}

// Renderer writes the artifact of a job to path. The format is taken from job.OutputFormat.
//
//go:generate mockery --name Renderer
type Renderer interface {
	Render(ctx context.Context, path string, job model.ReportJob) error
}

// Publisher announces terminal job transitions to other services.
//
//go:generate mockery --name Publisher
type Publisher interface {
	PublishJobFinished(ctx context.Context, evt JobFinishedEvent) error
}
