package internal

import (
	"errors"
	"fmt"
)

// errNoRoot marks a source with no configured corpus root.
var errNoRoot = errors.New("no corpus root configured")

// NotFoundError reports a task id unknown to the repository. It is distinct
// from other I/O failures: the caller deselects the task and refreshes the
// task list instead of keeping the stale selection.
type NotFoundError struct {
	Source Source
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task not found [%s] %s", e.Source, e.ID)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// FetchError represents an I/O failure while reading a corpus.
type FetchError struct {
	Source Source
	Op     string // "list", "read", "parse"
	Path   string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error [%s] %s %s: %v", e.Source, e.Op, e.Path, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// LocalFileError represents a rejected local conversation file.
type LocalFileError struct {
	Path string
	Err  error
}

func (e *LocalFileError) Error() string {
	return fmt.Sprintf("local file error %s: %v", e.Path, e.Err)
}

func (e *LocalFileError) Unwrap() error {
	return e.Err
}
