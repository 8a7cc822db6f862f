package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"report-srv/internal/model"
	"report-srv/internal/report"
	"report-srv/internal/report/repository"
)

// Generate renders a report for sc and always leaves the job READY or FAILED
// before returning. Once a job row exists its id is returned even on error.
func (uc *implUseCase) Generate(ctx context.Context, sc model.Scope, input report.GenerateInput) (report.GenerateOutput, error) {
	if !sc.IsAuthenticated() {
		return report.GenerateOutput{}, report.ErrUnauthenticated
	}
	return uc.generate(ctx, sc, input)
}

// GenerateInternal runs a generation as the system principal. Used by the
// internal route and by queue-triggered runs.
func (uc *implUseCase) GenerateInternal(ctx context.Context, input report.GenerateInput) (report.GenerateOutput, error) {
	return uc.generate(ctx, model.SystemScope(), input)
}

func (uc *implUseCase) generate(ctx context.Context, sc model.Scope, input report.GenerateInput) (report.GenerateOutput, error) {
	started := uc.now()

	rt, format, err := uc.validateRequest(sc, input)
	if err != nil {
		return report.GenerateOutput{}, err
	}

	job, err := uc.createJob(ctx, sc, rt, format, input.Filters)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.generate.createJob: %v", err)
		return report.GenerateOutput{}, report.ErrGenerationFailed
	}

	file, runErr := uc.run(ctx, rt, &job)
	job, runErr = uc.finish(ctx, job, file, runErr)

	uc.metrics.RecordGeneration(rt.ID, string(job.Status))
	uc.metrics.RecordGenerationDuration(rt.ID, uc.now().Sub(started).Seconds())

	out := report.GenerateOutput{
		ReportID: job.ID,
		Status:   job.Status,
		FileName: job.FileName,
	}
	if runErr != nil {
		return out, publicGenerateError(runErr)
	}
	return out, nil
}

func (uc *implUseCase) createJob(ctx context.Context, sc model.Scope, rt report.ReportType, format model.OutputFormat, f report.Filters) (model.ReportJob, error) {
	scope := resolveScope(sc.IsAdmin(), f.DataScope)

	categories := f.Categories
	if categories == nil {
		categories = []string{}
	}
	categoryJSON, err := json.Marshal(categories)
	if err != nil {
		return model.ReportJob{}, err
	}

	opts := repository.CreateJobOptions{
		ID:                 uc.newID(),
		RequestedBy:        sc.UserID,
		RoleSnapshot:       sc.Role,
		ReportTypeID:       rt.ID,
		Period:             strings.TrimSpace(f.Period),
		DataScope:          scope,
		DepartmentSnapshot: departmentSnapshot(scope, sc, f.Department),
		CategoryJSON:       categoryJSON,
		OutputFormat:       format,
	}
	if start, end, ok := parsePeriod(f.Period, uc.config.Location); ok {
		opts.PeriodStart = &start
		opts.PeriodEnd = &end
	}

	return uc.repo.CreateJob(ctx, opts)
}

// run performs every step between job creation and the terminal transition.
// It mutates job with aggregation results and the output file name and path.
func (uc *implUseCase) run(ctx context.Context, rt report.ReportType, job *model.ReportJob) (model.ReportFile, error) {
	if job.DataScope == model.DataScopeDept && job.DepartmentSnapshot == "" {
		return model.ReportFile{}, report.ErrDepartmentRequired
	}

	dir := uc.jobDir(*job)
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return model.ReportFile{}, fmt.Errorf("failed to create directories: %w", err)
	}

	if rt.ApprovedSummary {
		if err := uc.aggregate(ctx, job); err != nil {
			return model.ReportFile{}, err
		}
	}

	fileName := buildFileName(job.Period, rt.ID, job.OutputFormat)
	path := filepath.Join(dir, fileName)

	if err := uc.renderer.Render(ctx, path, *job); err != nil {
		return model.ReportFile{}, fmt.Errorf("failed to render report: %w", err)
	}

	checksum, size, err := hashFile(path)
	if err != nil {
		return model.ReportFile{}, fmt.Errorf("failed to hash report: %w", err)
	}

	location, err := uc.artifacts.Save(ctx, repository.SaveArtifactOptions{
		LocalPath: path,
		Checksum:  checksum,
		Format:    job.OutputFormat,
	})
	if err != nil {
		return model.ReportFile{}, fmt.Errorf("failed to store report: %w", err)
	}

	file, created, err := uc.repo.SaveOrReuseFile(ctx, repository.SaveFileOptions{
		ID:       uc.newID(),
		JobID:    job.ID,
		FileName: fileName,
		FileURL:  location,
		FileType: job.OutputFormat,
		FileSize: size,
		Checksum: checksum,
	})
	if err != nil {
		return model.ReportFile{}, fmt.Errorf("failed to save report file: %w", err)
	}

	if created {
		uc.metrics.RecordFileSize(string(job.OutputFormat), size)
	} else {
		uc.metrics.RecordDedupHit(rt.ID)
		uc.l.Infof(ctx, "report.usecase.run: job %s reuses file %s (checksum %s)", job.ID, file.ID, checksum)
	}

	job.FileName = fileName
	job.FilePath = path
	return file, nil
}

func (uc *implUseCase) aggregate(ctx context.Context, job *model.ReportJob) error {
	if !job.HasPeriodRange() {
		return report.ErrInvalidPeriod
	}

	start, end := aggregationBounds(*job.PeriodStart, *job.PeriodEnd, uc.config.Location)
	opts := repository.SumApprovedOptions{
		Scope: job.DataScope,
		Start: start,
		End:   end,
	}
	switch job.DataScope {
	case model.DataScopeMy:
		opts.UserID = job.RequestedBy
	case model.DataScopeDept:
		if strings.TrimSpace(job.DepartmentSnapshot) == "" {
			return report.ErrDepartmentRequired
		}
		opts.Department = job.DepartmentSnapshot
	case model.DataScopeAll:
	default:
		return fmt.Errorf("unsupported data scope %q", job.DataScope)
	}

	agg, err := uc.repo.SumApproved(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to aggregate approved expenses: %w", err)
	}

	if err := uc.repo.UpdateAggregation(ctx, repository.UpdateAggregationOptions{
		JobID:         job.ID,
		ApprovedTotal: agg.Total,
		ApprovedCount: agg.Count,
	}); err != nil {
		return fmt.Errorf("failed to store aggregation: %w", err)
	}

	job.ApprovedTotal = &agg.Total
	job.ApprovedCount = &agg.Count
	return nil
}

// finish writes the terminal state. The write is detached from ctx
// cancellation so an aborted request cannot leave the job GENERATING.
func (uc *implUseCase) finish(ctx context.Context, job model.ReportJob, file model.ReportFile, runErr error) (model.ReportJob, error) {
	ctx = context.WithoutCancel(ctx)
	now := uc.now()

	if runErr == nil {
		err := uc.repo.UpdateReady(ctx, repository.UpdateReadyOptions{
			JobID:       job.ID,
			FileName:    job.FileName,
			FilePath:    job.FilePath,
			CompletedAt: now,
		})
		if err == nil {
			job.Status = model.JobStatusReady
			job.ErrorMessage = ""
			job.CompletedAt = &now
			uc.afterFinish(ctx, job, file)
			return job, nil
		}
		uc.l.Errorf(ctx, "report.usecase.finish.UpdateReady: job %s: %v", job.ID, err)
		runErr = fmt.Errorf("failed to mark report ready: %w", err)
	}

	msg := failureMessage(runErr)
	uc.l.Warnf(ctx, "report.usecase.finish: job %s failed: %v", job.ID, runErr)
	persisted := true
	if err := uc.repo.UpdateFailed(ctx, repository.UpdateFailedOptions{
		JobID:        job.ID,
		ErrorMessage: msg,
		CompletedAt:  now,
	}); err != nil {
		uc.l.Errorf(ctx, "report.usecase.finish.UpdateFailed: job %s: %v", job.ID, err)
		persisted = false
	}

	job.Status = model.JobStatusFailed
	job.ErrorMessage = msg
	job.FileName = ""
	job.FilePath = ""
	job.CompletedAt = &now
	// The cache and subscribers only ever see states the store holds.
	if persisted {
		uc.afterFinish(ctx, job, model.ReportFile{})
	}
	return job, runErr
}

func (uc *implUseCase) afterFinish(ctx context.Context, job model.ReportJob, file model.ReportFile) {
	if uc.cache != nil {
		if err := uc.cache.SetJob(ctx, job); err != nil {
			uc.l.Warnf(ctx, "report.usecase.afterFinish.SetJob: %v", err)
		}
	}

	if uc.publisher == nil {
		return
	}
	evt := report.JobFinishedEvent{
		ReportID:     job.ID,
		ReportTypeID: job.ReportTypeID,
		Status:       job.Status,
		RequestedBy:  job.RequestedBy,
		FileID:       file.ID,
		Checksum:     file.Checksum,
		ErrorMessage: job.ErrorMessage,
		FinishedAt:   *job.CompletedAt,
	}
	if err := uc.publisher.PublishJobFinished(ctx, evt); err != nil {
		uc.l.Warnf(ctx, "report.usecase.afterFinish.PublishJobFinished: job %s: %v", job.ID, err)
	}
}

// publicGenerateError keeps client-fault errors and hides everything else
// behind ErrGenerationFailed. The cause is already stored on the job.
func publicGenerateError(err error) error {
	for _, target := range []error{
		report.ErrDepartmentRequired,
		report.ErrInvalidPeriod,
	} {
		if errors.Is(err, target) {
			return target
		}
	}
	return report.ErrGenerationFailed
}

func failureMessage(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = report.ErrGenerationFailed.Error()
	}
	if len(msg) > maxErrorMessageLen {
		msg = strings.ToValidUTF8(msg[:maxErrorMessageLen], "")
	}
	return msg
}
