package types

import "fmt"

// ReadError is returned when an input file is missing, unreadable or is not
// valid UTF-8.
type ReadError struct {
	Path string
	Err  error
}

// MakeReadError creates a new read error object.
func MakeReadError(path string, err error) *ReadError {
	return &ReadError{Path: path, Err: err}
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError is returned when the output file cannot be created or written.
type WriteError struct {
	Path string
	Err  error
}

// MakeWriteError creates a new write error object.
func MakeWriteError(path string, err error) *WriteError {
	return &WriteError{Path: path, Err: err}
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// StaleError is returned in check mode when the output on disk differs from
// what would be generated. Diff is a unified diff, empty when the output is
// missing.
type StaleError struct {
	Path    string
	Missing bool
	Diff    string
}

func (e *StaleError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s does not exist", e.Path)
	}
	return fmt.Sprintf("%s is out of date:\n%s", e.Path, e.Diff)
}
