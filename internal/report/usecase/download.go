package usecase

import (
	"context"
	"errors"

	"report-srv/internal/model"
	"report-srv/internal/report"
	"report-srv/internal/report/repository"
)

// Download releases the latest file of a READY job to its owner or an admin.
// The download is logged before the reader is returned.
func (uc *implUseCase) Download(ctx context.Context, sc model.Scope, input report.DownloadInput) (report.DownloadOutput, error) {
	if !sc.IsAuthenticated() {
		return report.DownloadOutput{}, report.ErrUnauthenticated
	}

	job, err := uc.getJob(ctx, input.ReportID)
	if err != nil {
		return report.DownloadOutput{}, err
	}
	if err := authorizeJob(sc, job); err != nil {
		return report.DownloadOutput{}, err
	}
	if err := requireReady(job); err != nil {
		return report.DownloadOutput{}, err
	}

	file, err := uc.repo.GetLatestFileByJob(ctx, job.ID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			return report.DownloadOutput{}, report.ErrFileNotFound
		}
		uc.l.Errorf(ctx, "report.usecase.Download.GetLatestFileByJob: %v", err)
		return report.DownloadOutput{}, report.ErrDownloadFailed
	}

	return uc.release(ctx, sc, job, file)
}

// DownloadByFileID applies the Download checks against the job that owns the file.
func (uc *implUseCase) DownloadByFileID(ctx context.Context, sc model.Scope, input report.DownloadByFileInput) (report.DownloadOutput, error) {
	if !sc.IsAuthenticated() {
		return report.DownloadOutput{}, report.ErrUnauthenticated
	}

	file, err := uc.repo.GetFileByID(ctx, input.FileID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			return report.DownloadOutput{}, report.ErrFileNotFound
		}
		uc.l.Errorf(ctx, "report.usecase.DownloadByFileID.GetFileByID: %v", err)
		return report.DownloadOutput{}, report.ErrDownloadFailed
	}

	// file.JobID is the producing job. A reusing job always has the same
	// requester, because the rendered summary carries "Requested By" and
	// different requesters never hash alike.
	job, err := uc.getJob(ctx, file.JobID)
	if err != nil {
		return report.DownloadOutput{}, err
	}
	if err := authorizeJob(sc, job); err != nil {
		return report.DownloadOutput{}, err
	}
	if err := requireReady(job); err != nil {
		return report.DownloadOutput{}, err
	}

	return uc.release(ctx, sc, job, file)
}

func (uc *implUseCase) release(ctx context.Context, sc model.Scope, job model.ReportJob, file model.ReportFile) (report.DownloadOutput, error) {
	rc, size, err := uc.artifacts.Open(ctx, file.FileURL)
	if err != nil {
		if errors.Is(err, repository.ErrArtifactNotFound) {
			uc.l.Warnf(ctx, "report.usecase.release: artifact of file %s is missing at %s", file.ID, file.FileURL)
			return report.DownloadOutput{}, report.ErrArtifactMissing
		}
		uc.l.Errorf(ctx, "report.usecase.release.Open: %v", err)
		return report.DownloadOutput{}, report.ErrDownloadFailed
	}

	if _, err := uc.repo.CreateDownloadLog(ctx, repository.CreateDownloadLogOptions{
		ID:           uc.newID(),
		FileID:       file.ID,
		JobID:        job.ID,
		DownloadedBy: sc.UserID,
	}); err != nil {
		rc.Close()
		uc.l.Errorf(ctx, "report.usecase.release.CreateDownloadLog: %v", err)
		return report.DownloadOutput{}, report.ErrDownloadFailed
	}

	uc.metrics.RecordDownload(string(file.FileType))

	return report.DownloadOutput{
		Reader:      rc,
		Size:        size,
		FileID:      file.ID,
		FileName:    file.FileName,
		Format:      file.FileType,
		ContentType: file.FileType.ContentType(),
	}, nil
}

// getJob reads a job through the cache. Only terminal jobs are cached since
// they never change again.
func (uc *implUseCase) getJob(ctx context.Context, id string) (model.ReportJob, error) {
	if id == "" {
		return model.ReportJob{}, report.ErrReportNotFound
	}

	if uc.cache != nil {
		job, err := uc.cache.GetJob(ctx, id)
		if err == nil {
			return job, nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			uc.l.Warnf(ctx, "report.usecase.getJob.cache.GetJob: %v", err)
		}
	}

	job, err := uc.repo.GetJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return model.ReportJob{}, report.ErrReportNotFound
		}
		uc.l.Errorf(ctx, "report.usecase.getJob.GetJobByID: %v", err)
		return model.ReportJob{}, err
	}

	if uc.cache != nil && job.Status.IsTerminal() {
		if err := uc.cache.SetJob(ctx, job); err != nil {
			uc.l.Warnf(ctx, "report.usecase.getJob.cache.SetJob: %v", err)
		}
	}
	return job, nil
}
