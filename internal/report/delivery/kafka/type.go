package kafka

import "time"

// GenerateRequestMessage - message on report.generate.requests
type GenerateRequestMessage struct {
	ReportTypeID string                 `json:"report_type_id"`
	Filters      GenerateFiltersMessage `json:"filters"`
	ScheduleID   string                 `json:"schedule_id,omitempty"`
	RequestedAt  time.Time              `json:"requested_at"`
}

type GenerateFiltersMessage struct {
	Format     string   `json:"format,omitempty"`
	DataScope  string   `json:"data_scope,omitempty"`
	Department string   `json:"department,omitempty"`
	Period     string   `json:"period,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// JobFinishedMessage - event on report.events after a job turns READY or FAILED
type JobFinishedMessage struct {
	EventType    string    `json:"event_type"`
	ReportID     string    `json:"report_id"`
	ReportTypeID string    `json:"report_type_id"`
	Status       string    `json:"status"`
	RequestedBy  string    `json:"requested_by"`
	FileID       string    `json:"file_id,omitempty"`
	Checksum     string    `json:"checksum,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	FinishedAt   time.Time `json:"finished_at"`
}
