package usecase

import (
	"context"
	"errors"
	"strings"

	"report-srv/internal/model"
	"report-srv/internal/report"
	"report-srv/internal/report/repository"
	"report-srv/pkg/paginator"
)

// GetReport returns one job to its owner or an admin.
func (uc *implUseCase) GetReport(ctx context.Context, sc model.Scope, input report.GetReportInput) (report.ReportOutput, error) {
	if !sc.IsAuthenticated() {
		return report.ReportOutput{}, report.ErrUnauthenticated
	}

	job, err := uc.getJob(ctx, input.ReportID)
	if err != nil {
		return report.ReportOutput{}, err
	}
	if err := authorizeJob(sc, job); err != nil {
		return report.ReportOutput{}, err
	}

	return toReportOutput(job), nil
}

// ListReports pages through jobs. Non-admins only see their own.
func (uc *implUseCase) ListReports(ctx context.Context, sc model.Scope, input report.ListReportsInput) (report.ListReportsOutput, error) {
	if !sc.IsAuthenticated() {
		return report.ListReportsOutput{}, report.ErrUnauthenticated
	}

	opts := repository.ListJobsOptions{}
	if !sc.IsAdmin() {
		opts.RequestedBy = sc.UserID
	}

	if s := strings.ToUpper(strings.TrimSpace(input.Status)); s != "" {
		switch status := model.JobStatus(s); status {
		case model.JobStatusGenerating, model.JobStatusReady, model.JobStatusFailed:
			opts.Status = status
		default:
			return report.ListReportsOutput{}, report.ErrInvalidRequest
		}
	}

	if id := strings.TrimSpace(input.ReportTypeID); id != "" {
		rt, ok := uc.registry.Lookup(id)
		if !ok {
			return report.ListReportsOutput{}, report.ErrInvalidReportType
		}
		opts.ReportTypeID = rt.ID
	}

	pq := input.Paginator
	pq.Adjust()
	opts.Limit = pq.Limit
	opts.Offset = pq.Offset()

	jobs, total, err := uc.repo.ListJobs(ctx, opts)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ListReports.ListJobs: %v", err)
		return report.ListReportsOutput{}, err
	}

	out := report.ListReportsOutput{
		Reports:   make([]report.ReportOutput, 0, len(jobs)),
		Paginator: paginator.New(pq, total, len(jobs)),
	}
	for _, j := range jobs {
		out.Reports = append(out.Reports, toReportOutput(j))
	}
	return out, nil
}

// ListTypes returns the report types sc may request.
func (uc *implUseCase) ListTypes(ctx context.Context, sc model.Scope) ([]report.ReportType, error) {
	if !sc.IsAuthenticated() {
		return nil, report.ErrUnauthenticated
	}
	return uc.registry.List(sc.IsAdmin()), nil
}

// ListFiles returns every file the job produced or reused, newest first.
func (uc *implUseCase) ListFiles(ctx context.Context, sc model.Scope, input report.ListFilesInput) ([]report.FileOutput, error) {
	if !sc.IsAuthenticated() {
		return nil, report.ErrUnauthenticated
	}

	job, err := uc.getJob(ctx, input.ReportID)
	if err != nil {
		return nil, err
	}
	if err := authorizeJob(sc, job); err != nil {
		return nil, err
	}

	files, err := uc.repo.ListFilesByJob(ctx, job.ID)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ListFiles.ListFilesByJob: %v", err)
		return nil, err
	}

	out := make([]report.FileOutput, 0, len(files))
	for _, f := range files {
		out = append(out, toFileOutput(f))
	}
	return out, nil
}

func (uc *implUseCase) ListJobDownloadLogs(ctx context.Context, sc model.Scope, input report.ListJobDownloadLogsInput) ([]report.DownloadLogOutput, error) {
	if err := requireAdmin(sc); err != nil {
		return nil, err
	}

	job, err := uc.getJob(ctx, input.ReportID)
	if err != nil {
		return nil, err
	}

	return uc.listDownloadLogs(ctx, repository.ListDownloadLogsOptions{JobID: job.ID})
}

func (uc *implUseCase) ListFileDownloadLogs(ctx context.Context, sc model.Scope, input report.ListFileDownloadLogsInput) ([]report.DownloadLogOutput, error) {
	if err := requireAdmin(sc); err != nil {
		return nil, err
	}

	file, err := uc.repo.GetFileByID(ctx, input.FileID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			return nil, report.ErrFileNotFound
		}
		uc.l.Errorf(ctx, "report.usecase.ListFileDownloadLogs.GetFileByID: %v", err)
		return nil, err
	}

	return uc.listDownloadLogs(ctx, repository.ListDownloadLogsOptions{FileID: file.ID})
}

func (uc *implUseCase) listDownloadLogs(ctx context.Context, opts repository.ListDownloadLogsOptions) ([]report.DownloadLogOutput, error) {
	logs, err := uc.repo.ListDownloadLogs(ctx, opts)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.listDownloadLogs: %v", err)
		return nil, err
	}

	out := make([]report.DownloadLogOutput, 0, len(logs))
	for _, l := range logs {
		out = append(out, toDownloadLogOutput(l))
	}
	return out, nil
}

func (uc *implUseCase) ListSchedules(ctx context.Context, sc model.Scope, input report.ListSchedulesInput) (report.ListSchedulesOutput, error) {
	if err := requireAdmin(sc); err != nil {
		return report.ListSchedulesOutput{}, err
	}

	pq := input.Paginator
	pq.Adjust()

	schedules, total, err := uc.repo.ListSchedules(ctx, repository.ListSchedulesOptions{
		Limit:  pq.Limit,
		Offset: pq.Offset(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ListSchedules: %v", err)
		return report.ListSchedulesOutput{}, err
	}

	return report.ListSchedulesOutput{
		Schedules: schedules,
		Paginator: paginator.New(pq, total, len(schedules)),
	}, nil
}

// RecordScheduleRun stores the outcome of a queue-triggered run on its schedule.
func (uc *implUseCase) RecordScheduleRun(ctx context.Context, input report.RecordScheduleRunInput) error {
	opts := repository.RecordScheduleRunOptions{
		ScheduleID: input.ScheduleID,
		JobID:      input.JobID,
		RunAt:      input.RunAt,
	}
	if input.Err != nil {
		opts.Failed = true
		opts.LastError = failureMessage(input.Err)
	}
	if opts.RunAt.IsZero() {
		opts.RunAt = uc.now()
	}

	if err := uc.repo.RecordScheduleRun(ctx, opts); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return report.ErrScheduleNotFound
		}
		uc.l.Errorf(ctx, "report.usecase.RecordScheduleRun: %v", err)
		return err
	}
	return nil
}
