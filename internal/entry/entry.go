// Package entry holds the immutable snapshot of a single filesystem object
// as seen by the browser.
package entry

import (
	"io/fs"
	"path/filepath"
	"time"
)

// Entry is one file or directory. Two entries are the same object iff their
// paths are equal.
type Entry struct {
	Name       string
	Path       string
	ParentPath string
	Depth      int
	IsDir      bool
	IsSymlink  bool
	Size       int64
	ModTime    time.Time
	Mode       fs.FileMode
}

// New builds an Entry for path with only the identity fields filled in.
func New(path string, depth int, isDir bool) Entry {
	return Entry{
		Name:       filepath.Base(path),
		Path:       path,
		ParentPath: filepath.Dir(path),
		Depth:      depth,
		IsDir:      isDir,
	}
}

// FromInfo builds an Entry from a stat result. info describes the target of
// path (symlinks already resolved); link reports whether path itself is a
// symlink.
func FromInfo(path string, depth int, info fs.FileInfo, link bool) Entry {
	e := New(path, depth, info.IsDir())
	e.IsSymlink = link
	e.Size = info.Size()
	e.ModTime = info.ModTime()
	e.Mode = info.Mode()
	return e
}

// Equal reports whether e and other refer to the same path.
func (e Entry) Equal(other Entry) bool {
	return e.Path == other.Path
}

// DisplayName is the name as shown in listings; directories get a trailing
// separator.
func (e Entry) DisplayName() string {
	if e.IsDir {
		return e.Name + string(filepath.Separator)
	}
	return e.Name
}
