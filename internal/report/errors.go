package report

import "errors"

// Validation
var (
	ErrInvalidRequest     = errors.New("invalid report request")
	ErrInvalidReportType  = errors.New("invalid report type")
	ErrInvalidFormat      = errors.New("invalid output format")
	ErrFormatMismatch     = errors.New("format mismatch")
	ErrDepartmentRequired = errors.New("department is required for DEPT scope")
	ErrInvalidPeriod      = errors.New("period must be 'YYYY-MM' for approved summary reports")
)

// Authentication and authorization
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrAdminOnlyReport = errors.New("report type is restricted to administrators")
	ErrNotOwner        = errors.New("report belongs to another user")
	ErrAdminRequired   = errors.New("administrator role required")
)

// Not found
var (
	ErrReportNotFound   = errors.New("report not found")
	ErrFileNotFound     = errors.New("report file not found")
	ErrArtifactMissing  = errors.New("report artifact is missing from storage")
	ErrScheduleNotFound = errors.New("report schedule not found")
)

// Conflict
var (
	ErrReportGenerating = errors.New("report is still generating")
	ErrReportFailed     = errors.New("report generation failed, request a new report")
)

// Internal
var (
	ErrGenerationFailed = errors.New("report generation failed")
	ErrDownloadFailed   = errors.New("report download failed")
)
