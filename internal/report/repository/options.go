package repository

import (
	"encoding/json"
	"time"

	"report-srv/internal/model"
)

type CreateJobOptions struct {
	ID                 string
	RequestedBy        string
	RoleSnapshot       string
	ReportTypeID       string
	Period             string
	PeriodStart        *time.Time
	PeriodEnd          *time.Time
	DataScope          model.DataScope
	DepartmentSnapshot string
	CategoryJSON       json.RawMessage
	OutputFormat       model.OutputFormat
}

type ListJobsOptions struct {
	RequestedBy  string
	Status       model.JobStatus
	ReportTypeID string
	Limit        int64
	Offset       int64
}

type UpdateAggregationOptions struct {
	JobID         string
	ApprovedTotal int64
	ApprovedCount int64
}

type UpdateReadyOptions struct {
	JobID       string
	FileName    string
	FilePath    string
	CompletedAt time.Time
}

type UpdateFailedOptions struct {
	JobID        string
	ErrorMessage string
	CompletedAt  time.Time
}

type SaveFileOptions struct {
	ID       string
	JobID    string
	FileName string
	FileURL  string
	FileType model.OutputFormat
	FileSize int64
	Checksum string
}

type CreateDownloadLogOptions struct {
	ID           string
	FileID       string
	JobID        string
	DownloadedBy string
}

// ListDownloadLogsOptions filters by job, by file, or both.
type ListDownloadLogsOptions struct {
	JobID  string
	FileID string
}

type ListSchedulesOptions struct {
	Limit  int64
	Offset int64
}

type RecordScheduleRunOptions struct {
	ScheduleID string
	JobID      string
	RunAt      time.Time
	Failed     bool
	LastError  string
}

// SumApprovedOptions selects approved expenses created in [Start, End).
// UserID is used for MY, Department for DEPT, neither for ALL.
type SumApprovedOptions struct {
	Scope      model.DataScope
	UserID     string
	Department string
	Start      time.Time
	End        time.Time
}

type SaveArtifactOptions struct {
	LocalPath string
	Checksum  string
	Format    model.OutputFormat
}
