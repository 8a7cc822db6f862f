package repository

import "errors"

var (
	ErrJobNotFound     = errors.New("repository: report job not found")
	ErrJobCreateFailed = errors.New("repository: failed to create report job")
	ErrJobUpdateFailed = errors.New("repository: failed to update report job")

	ErrFileNotFound = errors.New("repository: report file not found")
	// ErrFileConflictUnresolved means the checksum insert conflicted but no row
	// with that checksum could be read back.
	ErrFileConflictUnresolved = errors.New("repository: checksum conflict without existing file")

	ErrScheduleNotFound = errors.New("repository: report schedule not found")
	ErrInvalidScope     = errors.New("repository: invalid aggregation scope")

	ErrCacheMiss        = errors.New("repository: cache miss")
	ErrArtifactNotFound = errors.New("repository: artifact not found")
	ErrInvalidLocation  = errors.New("repository: invalid artifact location")
)
