package model

import "time"

// ReportFile is a stored artifact. Checksum is unique system-wide, so a file
// row can be shared by every job that rendered identical bytes.
type ReportFile struct {
	ID        string
	JobID     string
	FileName  string
	FileURL   string
	FileType  OutputFormat
	FileSize  int64
	Checksum  string
	CreatedAt time.Time
}

// ReportDownloadLog records one successful download.
type ReportDownloadLog struct {
	ID           string
	FileID       string
	JobID        string
	DownloadedBy string
	DownloadedAt time.Time
}
