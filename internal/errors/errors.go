// Package errors defines the failures the browser reports to the user. Every
// failure names the path it concerns so results can be keyed by path.
package errors

import (
	"errors"
	"fmt"
)

// Standard library helpers re-exported for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
)

// ErrNoParent is returned when navigating up from a filesystem root.
var ErrNoParent = errors.New("already at filesystem root")

// Op names the filesystem operation that failed.
type Op string

const (
	OpList   Op = "list"
	OpDelete Op = "delete"
)

// IoError is a listing or delete failure for Path.
type IoError struct {
	Op   Op
	Path string
	Err  error
}

func NewIoError(op Op, path string, err error) *IoError {
	return &IoError{Op: op, Path: path, Err: err}
}

func (e *IoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Path)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

// OpenError is a failure to hand Path to the OS default handler.
type OpenError struct {
	Path string
	Err  error
}

func NewOpenError(path string, err error) *OpenError {
	return &OpenError{Path: path, Err: err}
}

func (e *OpenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("open %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("open %s failed", e.Path)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// ClipboardError is a failure to copy Path to the system clipboard.
type ClipboardError struct {
	Path string
	Err  error
}

func NewClipboardError(path string, err error) *ClipboardError {
	return &ClipboardError{Path: path, Err: err}
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("copy %s to clipboard: %v", e.Path, e.Err)
}

func (e *ClipboardError) Unwrap() error {
	return e.Err
}

// PathOf returns the path an error is about, if it carries one.
func PathOf(err error) (string, bool) {
	var ioErr *IoError
	if errors.As(err, &ioErr) {
		return ioErr.Path, true
	}
	var openErr *OpenError
	if errors.As(err, &openErr) {
		return openErr.Path, true
	}
	var clipErr *ClipboardError
	if errors.As(err, &clipErr) {
		return clipErr.Path, true
	}
	return "", false
}
