package controller

import (
	"fmt"

	"fls/internal/entry"
	errs "fls/internal/errors"
)

var errNoParent = errs.ErrNoParent

// ListingMsg carries the result of listing Dir for a given generation.
type ListingMsg struct {
	Generation uint64
	Dir        string
	Entries    []entry.Entry
	Err        error
}

// DeleteMsg is the outcome of deleting Path.
type DeleteMsg struct {
	Path string
	Err  error
}

// OpenMsg is the outcome of opening Path with the default handler.
type OpenMsg struct {
	Path string
	Err  error
}

// YankMsg is the outcome of copying Path to the clipboard.
type YankMsg struct {
	Path string
	Err  error
}

// DirChangedMsg reports that Dir changed on disk.
type DirChangedMsg struct {
	Dir string
}

// Failure is a failed operation on Path.
type Failure struct {
	Path string
	Err  error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf(one, n)
	}
	return fmt.Sprintf(many, n)
}
