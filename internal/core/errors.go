package core

import "fmt"

// UsageError indicates the command line does not make sense
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// WalkError wraps a filesystem failure during discovery
type WalkError struct {
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// FetchError wraps a metadata lookup failure for one repository
type FetchError struct {
	Path      string
	Operation string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s for %s: %v", e.Operation, e.Path, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NotDirectoryError indicates a scan root that is not a directory
type NotDirectoryError struct {
	Path string
}

func (e *NotDirectoryError) Error() string {
	return fmt.Sprintf("not a directory: %s", e.Path)
}
