package domain

import (
	"errors"
	"fmt"
)

// Reasons a file is skipped. They only ever travel inside a SkipError.
var (
	ErrInvalidPath    = errors.New("invalid path structure")
	ErrScopeMismatch  = errors.New("path outside configured scope")
	ErrCourseNotFound = errors.New("course not found")
)

// SkipError reports a file that cannot be linked because of its shape or
// content. Callers log it and move on to the next file; anything that is not
// a SkipError is an infrastructure failure and ends the run.
type SkipError struct {
	Path   string
	Reason string
	Err    error
}

func (e *SkipError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("skip %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("skip %s: %v: %s", e.Path, e.Err, e.Reason)
}

func (e *SkipError) Unwrap() error {
	return e.Err
}

// NewSkipError wraps one of the Err* reasons for path.
func NewSkipError(path string, err error, reason string) error {
	return &SkipError{Path: path, Reason: reason, Err: err}
}

// IsSkip reports whether err is a recoverable, per-file skip.
func IsSkip(err error) bool {
	var skip *SkipError
	return errors.As(err, &skip)
}
