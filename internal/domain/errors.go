package domain

import (
	"errors"
	"fmt"
)

// Run failure kinds. Every one of them is terminal for the run.
var (
	ErrCorpusNotFound         = errors.New("corpus not found")
	ErrFileRead               = errors.New("file read failed")
	ErrEnvironmentUnavailable = errors.New("environment unavailable")
	ErrSnapshotWrite          = errors.New("snapshot write failed")
)

// HarnessError ties a failure kind to the path it concerns.
// errors.Is matches both the kind and the underlying cause.
type HarnessError struct {
	Kind error
	Path string
	Err  error
}

func (e *HarnessError) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

func (e *HarnessError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func CorpusNotFound(root string, err error) error {
	return &HarnessError{Kind: ErrCorpusNotFound, Path: root, Err: err}
}

func FileReadError(path string, err error) error {
	return &HarnessError{Kind: ErrFileRead, Path: path, Err: err}
}

func EnvironmentUnavailable(err error) error {
	return &HarnessError{Kind: ErrEnvironmentUnavailable, Err: err}
}

func SnapshotWriteError(path string, err error) error {
	return &HarnessError{Kind: ErrSnapshotWrite, Path: path, Err: err}
}

// FailedPath returns the path carried by a HarnessError anywhere in err's
// chain, or "".
func FailedPath(err error) string {
	var he *HarnessError
	if errors.As(err, &he) {
		return he.Path
	}
	return ""
}
