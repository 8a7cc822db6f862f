package report

import (
	"encoding/json"
	"io"
	"time"

	"report-srv/internal/model"
	"report-srv/pkg/paginator"
)

// GenerateInput is a request to render one report.
type GenerateInput struct {
	ReportTypeID string
	Filters      Filters
}

// Filters narrows what a report covers. Every field is optional.
type Filters struct {
	Format     string
	DataScope  string
	Department string
	Period     string
	Categories []string
}

type GenerateOutput struct {
	ReportID string
	Status   model.JobStatus
	FileName string
}

type GetReportInput struct {
	ReportID string
}

type ListReportsInput struct {
	Status       string
	ReportTypeID string
	Paginator    paginator.PaginateQuery
}

type ReportOutput struct {
	ID                 string
	RequestedBy        string
	RoleSnapshot       string
	ReportTypeID       string
	Period             string
	PeriodStart        *time.Time
	PeriodEnd          *time.Time
	DataScope          model.DataScope
	DepartmentSnapshot string
	Categories         json.RawMessage
	OutputFormat       model.OutputFormat
	Status             model.JobStatus
	ApprovedTotal      *int64
	ApprovedCount      *int64
	FileName           string
	ErrorMessage       string
	CompletedAt        *time.Time
	CreatedAt          time.Time
}

type ListReportsOutput struct {
	Reports   []ReportOutput
	Paginator paginator.Paginator
}

type DownloadInput struct {
	ReportID string
}

type DownloadByFileInput struct {
	FileID string
}

// DownloadOutput holds an open artifact. The caller must close Reader.
type DownloadOutput struct {
	Reader      io.ReadCloser
	Size        int64
	FileID      string
	FileName    string
	Format      model.OutputFormat
	ContentType string
}

type ListFilesInput struct {
	ReportID string
}

type FileOutput struct {
	ID        string
	JobID     string
	FileName  string
	FileType  model.OutputFormat
	FileSize  int64
	Checksum  string
	CreatedAt time.Time
}

type ListJobDownloadLogsInput struct {
	ReportID string
}

type ListFileDownloadLogsInput struct {
	FileID string
}

type DownloadLogOutput struct {
	ID           string
	FileID       string
	JobID        string
	DownloadedBy string
	DownloadedAt time.Time
}

type ListSchedulesInput struct {
	Paginator paginator.PaginateQuery
}

type ListSchedulesOutput struct {
	Schedules []model.ReportSchedule
	Paginator paginator.Paginator
}

// RecordScheduleRun stores the outcome of a scheduled generation.
type RecordScheduleRunInput struct {
	ScheduleID string
	JobID      string
	RunAt      time.Time
	Err        error
}

// JobFinishedEvent is published once per job after its terminal transition.
type JobFinishedEvent struct {
	ReportID     string
	ReportTypeID string
	Status       model.JobStatus
	RequestedBy  string
	FileID       string
	Checksum     string
	ErrorMessage string
	FinishedAt   time.Time
}
