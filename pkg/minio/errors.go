package minio

import (
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrAccessDenied = errors.New("access denied")
	ErrUnavailable  = errors.New("unavailable")
)

// OpError is returned by every failed operation. Kind is one of the Err*
// values above and matches with errors.Is.
type OpError struct {
	Op   string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("minio %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("minio %s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsNotFound reports whether err means the object or its bucket is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func invalid(op, msg string) error {
	return &OpError{Op: op, Kind: ErrInvalidInput, Err: errors.New(msg)}
}

func wrapError(op string, err error) error {
	kind := ErrUnavailable
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		switch resp.Code {
		case "NoSuchBucket", "NoSuchKey":
			kind = ErrNotFound
		case "AccessDenied":
			kind = ErrAccessDenied
		}
	}
	return &OpError{Op: op, Kind: kind, Err: err}
}
