package model

import (
	"encoding/json"
	"time"
)

// DataScope is the breadth of data a report covers.
type DataScope string

const (
	DataScopeMy   DataScope = "MY"
	DataScopeDept DataScope = "DEPT"
	DataScopeAll  DataScope = "ALL"
)

// Label is the human readable name printed on artifacts.
func (s DataScope) Label() string {
	switch s {
	case DataScopeMy:
		return "My Data"
	case DataScopeDept:
		return "Department"
	case DataScopeAll:
		return "All"
	default:
		return string(s)
	}
}

// OutputFormat is the artifact format of a report.
type OutputFormat string

const (
	OutputFormatPDF   OutputFormat = "PDF"
	OutputFormatExcel OutputFormat = "EXCEL"
)

// Extension returns the file extension without the dot.
func (f OutputFormat) Extension() string {
	switch f {
	case OutputFormatPDF:
		return "pdf"
	case OutputFormatExcel:
		return "xlsx"
	default:
		return "bin"
	}
}

// ContentType returns the MIME type served on download.
func (f OutputFormat) ContentType() string {
	switch f {
	case OutputFormatPDF:
		return "application/pdf"
	case OutputFormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// JobStatus is the lifecycle state of a report job.
type JobStatus string

const (
	JobStatusGenerating JobStatus = "GENERATING"
	JobStatusReady      JobStatus = "READY"
	JobStatusFailed     JobStatus = "FAILED"
)

// IsTerminal reports whether no further transition is allowed.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusReady, JobStatusFailed:
		return true
	default:
		return false
	}
}

// ReportJob is one report generation attempt.
type ReportJob struct {
	ID           string
	RequestedBy  string
	RoleSnapshot string
	ReportTypeID string

	// Period is the raw period as requested. PeriodStart and PeriodEnd are the
	// inclusive dates derived from it, both set or both nil.
	Period      string
	PeriodStart *time.Time
	PeriodEnd   *time.Time

	DataScope          DataScope
	DepartmentSnapshot string
	CategoryJSON       json.RawMessage
	OutputFormat       OutputFormat
	Status             JobStatus

	// Only set for approved-summary report types.
	ApprovedTotal *int64
	ApprovedCount *int64

	FileName     string
	FilePath     string
	ErrorMessage string

	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Categories decodes CategoryJSON. Malformed content yields nil.
func (j ReportJob) Categories() []string {
	if len(j.CategoryJSON) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(j.CategoryJSON, &out); err != nil {
		return nil
	}
	return out
}

// HasPeriodRange reports whether both period bounds were derived.
func (j ReportJob) HasPeriodRange() bool {
	return j.PeriodStart != nil && j.PeriodEnd != nil
}

// ApprovedAgg is the sum and count of approved expenses for a scope and range.
type ApprovedAgg struct {
	Total int64
	Count int64
}
