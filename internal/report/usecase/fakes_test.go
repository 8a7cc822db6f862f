package usecase

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"report-srv/internal/model"
	"report-srv/internal/report"
	"report-srv/internal/report/repository"
)

type jobFileLink struct {
	jobID  string
	fileID string
	seq    int
}

// fakeRepo is an in-memory repository.PostgresRepository.
type fakeRepo struct {
	mu sync.Mutex

	now        func() time.Time
	seq        int
	jobs       map[string]model.ReportJob
	jobSeq     map[string]int
	files      map[string]model.ReportFile
	byChecksum map[string]string
	links      []jobFileLink
	logs       []model.ReportDownloadLog
	schedules  map[string]model.ReportSchedule

	agg      model.ApprovedAgg
	sumCalls []repository.SumApprovedOptions

	errSumApproved  error
	errUpdateReady  error
	errUpdateFailed error
	errCreateLog    error
}

func newFakeRepo(now func() time.Time) *fakeRepo {
	return &fakeRepo{
		now:        now,
		jobs:       map[string]model.ReportJob{},
		jobSeq:     map[string]int{},
		files:      map[string]model.ReportFile{},
		byChecksum: map[string]string{},
		schedules:  map[string]model.ReportSchedule{},
	}
}

func (f *fakeRepo) next() int {
	f.seq++
	return f.seq
}

func (f *fakeRepo) CreateJob(_ context.Context, opts repository.CreateJobOptions) (model.ReportJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	job := model.ReportJob{
		ID:                 opts.ID,
		RequestedBy:        opts.RequestedBy,
		RoleSnapshot:       opts.RoleSnapshot,
		ReportTypeID:       opts.ReportTypeID,
		Period:             opts.Period,
		PeriodStart:        opts.PeriodStart,
		PeriodEnd:          opts.PeriodEnd,
		DataScope:          opts.DataScope,
		DepartmentSnapshot: opts.DepartmentSnapshot,
		CategoryJSON:       opts.CategoryJSON,
		OutputFormat:       opts.OutputFormat,
		Status:             model.JobStatusGenerating,
		CreatedAt:          f.now(),
		UpdatedAt:          f.now(),
	}
	f.jobs[job.ID] = job
	f.jobSeq[job.ID] = f.next()
	return job, nil
}

// putJob stores a job directly, bypassing generation.
func (f *fakeRepo) putJob(job model.ReportJob) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[job.ID] = job
	f.jobSeq[job.ID] = f.next()
}

func (f *fakeRepo) job(id string) model.ReportJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id]
}

func (f *fakeRepo) GetJobByID(_ context.Context, id string) (model.ReportJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return model.ReportJob{}, repository.ErrJobNotFound
	}
	return job, nil
}

func (f *fakeRepo) ListJobs(_ context.Context, opts repository.ListJobsOptions) ([]model.ReportJob, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []model.ReportJob
	for _, j := range f.jobs {
		if opts.RequestedBy != "" && j.RequestedBy != opts.RequestedBy {
			continue
		}
		if opts.Status != "" && j.Status != opts.Status {
			continue
		}
		if opts.ReportTypeID != "" && j.ReportTypeID != opts.ReportTypeID {
			continue
		}
		matched = append(matched, j)
	}
	sort.Slice(matched, func(a, b int) bool {
		return f.jobSeq[matched[a].ID] > f.jobSeq[matched[b].ID]
	})

	total := int64(len(matched))
	start := min(opts.Offset, total)
	end := min(start+opts.Limit, total)
	return matched[start:end], total, nil
}

func (f *fakeRepo) UpdateAggregation(_ context.Context, opts repository.UpdateAggregationOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[opts.JobID]
	if !ok {
		return repository.ErrJobNotFound
	}
	total, count := opts.ApprovedTotal, opts.ApprovedCount
	job.ApprovedTotal = &total
	job.ApprovedCount = &count
	f.jobs[opts.JobID] = job
	return nil
}

func (f *fakeRepo) UpdateReady(ctx context.Context, opts repository.UpdateReadyOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errUpdateReady != nil {
		return f.errUpdateReady
	}
	job, ok := f.jobs[opts.JobID]
	if !ok || job.Status != model.JobStatusGenerating {
		return repository.ErrJobUpdateFailed
	}
	job.Status = model.JobStatusReady
	job.FileName = opts.FileName
	job.FilePath = opts.FilePath
	job.ErrorMessage = ""
	job.CompletedAt = &opts.CompletedAt
	f.jobs[opts.JobID] = job
	return nil
}

func (f *fakeRepo) UpdateFailed(ctx context.Context, opts repository.UpdateFailedOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errUpdateFailed != nil {
		return f.errUpdateFailed
	}
	job, ok := f.jobs[opts.JobID]
	if !ok || job.Status != model.JobStatusGenerating {
		return repository.ErrJobUpdateFailed
	}
	job.Status = model.JobStatusFailed
	job.ErrorMessage = opts.ErrorMessage
	job.FileName = ""
	job.FilePath = ""
	job.CompletedAt = &opts.CompletedAt
	f.jobs[opts.JobID] = job
	return nil
}

func (f *fakeRepo) SaveOrReuseFile(_ context.Context, opts repository.SaveFileOptions) (model.ReportFile, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	created := false
	id, ok := f.byChecksum[opts.Checksum]
	if !ok {
		id = opts.ID
		f.files[id] = model.ReportFile{
			ID:        opts.ID,
			JobID:     opts.JobID,
			FileName:  opts.FileName,
			FileURL:   opts.FileURL,
			FileType:  opts.FileType,
			FileSize:  opts.FileSize,
			Checksum:  opts.Checksum,
			CreatedAt: f.now(),
		}
		f.byChecksum[opts.Checksum] = id
		created = true
	}
	f.links = append(f.links, jobFileLink{jobID: opts.JobID, fileID: id, seq: f.next()})
	return f.files[id], created, nil
}

func (f *fakeRepo) GetFileByID(_ context.Context, id string) (model.ReportFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[id]
	if !ok {
		return model.ReportFile{}, repository.ErrFileNotFound
	}
	return file, nil
}

func (f *fakeRepo) GetLatestFileByJob(_ context.Context, jobID string) (model.ReportFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	best := -1
	var fileID string
	for _, l := range f.links {
		if l.jobID == jobID && l.seq > best {
			best, fileID = l.seq, l.fileID
		}
	}
	if best < 0 {
		return model.ReportFile{}, repository.ErrFileNotFound
	}
	return f.files[fileID], nil
}

func (f *fakeRepo) ListFilesByJob(_ context.Context, jobID string) ([]model.ReportFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ReportFile
	for i := len(f.links) - 1; i >= 0; i-- {
		if f.links[i].jobID == jobID {
			out = append(out, f.files[f.links[i].fileID])
		}
	}
	return out, nil
}

func (f *fakeRepo) fileCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

func (f *fakeRepo) CreateDownloadLog(_ context.Context, opts repository.CreateDownloadLogOptions) (model.ReportDownloadLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errCreateLog != nil {
		return model.ReportDownloadLog{}, f.errCreateLog
	}
	l := model.ReportDownloadLog{
		ID:           opts.ID,
		FileID:       opts.FileID,
		JobID:        opts.JobID,
		DownloadedBy: opts.DownloadedBy,
		DownloadedAt: f.now(),
	}
	f.logs = append(f.logs, l)
	return l, nil
}

func (f *fakeRepo) ListDownloadLogs(_ context.Context, opts repository.ListDownloadLogsOptions) ([]model.ReportDownloadLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ReportDownloadLog
	for _, l := range f.logs {
		if opts.JobID != "" && l.JobID != opts.JobID {
			continue
		}
		if opts.FileID != "" && l.FileID != opts.FileID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeRepo) ListSchedules(_ context.Context, opts repository.ListSchedulesOptions) ([]model.ReportSchedule, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.ReportSchedule, 0, len(f.schedules))
	for _, s := range f.schedules {
		out = append(out, s)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, int64(len(out)), nil
}

func (f *fakeRepo) RecordScheduleRun(_ context.Context, opts repository.RecordScheduleRunOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.schedules[opts.ScheduleID]
	if !ok {
		return repository.ErrScheduleNotFound
	}
	runAt := opts.RunAt
	s.LastRunAt = &runAt
	s.LastJobID = opts.JobID
	if opts.Failed {
		s.FailCount++
		s.LastError = opts.LastError
	} else {
		s.FailCount = 0
		s.LastError = ""
	}
	f.schedules[opts.ScheduleID] = s
	return nil
}

func (f *fakeRepo) SumApproved(_ context.Context, opts repository.SumApprovedOptions) (model.ApprovedAgg, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sumCalls = append(f.sumCalls, opts)
	if f.errSumApproved != nil {
		return model.ApprovedAgg{}, f.errSumApproved
	}
	return f.agg, nil
}

// fakeRenderer writes bytes derived from the job content, not its id, so
// identical requests render identical files.
type fakeRenderer struct {
	err error
}

func (r *fakeRenderer) Render(ctx context.Context, path string, job model.ReportJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.err != nil {
		return r.err
	}
	var total, count int64
	if job.ApprovedTotal != nil {
		total = *job.ApprovedTotal
	}
	if job.ApprovedCount != nil {
		count = *job.ApprovedCount
	}
	body := fmt.Sprintf("%s|%s|%s|%s|%s|%d|%d",
		job.ReportTypeID, job.Period, job.DataScope, job.DepartmentSnapshot, job.CategoryJSON, total, count)
	return os.WriteFile(path, []byte(body), 0o644)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []report.JobFinishedEvent
}

func (p *fakePublisher) PublishJobFinished(_ context.Context, evt report.JobFinishedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

// fakeCache is an in-memory repository.CacheRepository.
type fakeCache struct {
	mu   sync.Mutex
	jobs map[string]model.ReportJob
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{jobs: map[string]model.ReportJob{}}
}

func (c *fakeCache) GetJob(_ context.Context, id string) (model.ReportJob, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	job, ok := c.jobs[id]
	if !ok {
		return model.ReportJob{}, repository.ErrCacheMiss
	}
	return job, nil
}

func (c *fakeCache) SetJob(_ context.Context, job model.ReportJob) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs[job.ID] = job
	c.sets++
	return nil
}
