package model

import "time"

// ReportSchedule is a recurring generation definition. Runs are triggered
// outside this service and arrive as generate requests.
type ReportSchedule struct {
	ID           string
	Name         string
	ReportTypeID string
	DataScope    DataScope
	OutputFormat OutputFormat
	CronExpr     string
	IsEnabled    bool
	NextRunAt    *time.Time
	LastRunAt    *time.Time
	LastJobID    string
	FailCount    int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
