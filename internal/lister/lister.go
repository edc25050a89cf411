package lister

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"fls/internal/entry"
	"fls/internal/log"
)

// Options defines listing behavior.
type Options struct {
	Excludes []string // glob patterns matched against full path and base name
}

// Lister reads one directory level into entries.
type Lister struct {
	excludes []glob.Glob
}

// New compiles the exclude patterns.
func New(opts Options) (*Lister, error) {
	l := &Lister{}
	for _, pat := range opts.Excludes {
		if pat == "" {
			continue
		}
		g, err := glob.Compile(pat, filepath.Separator)
		if err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", pat, err)
		}
		l.excludes = append(l.excludes, g)
	}
	return l, nil
}

// List returns the direct children of dir in the order the OS yields them
// (sorted by name). Excluded names are skipped; a child that vanishes or
// cannot be stat'ed mid-listing is skipped as well. Only failure to read dir
// itself is an error.
func (l *Lister) List(ctx context.Context, dir string) ([]entry.Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]entry.Entry, 0, len(dirents))
	for _, d := range dirents {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		path := filepath.Join(dir, d.Name())
		if l.excluded(path) {
			continue
		}
		e, err := stat(path, d)
		if err != nil {
			log.WithFields(log.F("path", path), log.F("error", err)).Debug("skipping entry")
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// stat resolves symlinks so a link to a directory is navigable. Broken links
// are kept with the link's own metadata.
func stat(path string, d fs.DirEntry) (entry.Entry, error) {
	if d.Type()&os.ModeSymlink != 0 {
		if info, err := os.Stat(path); err == nil {
			return entry.FromInfo(path, 1, info, true), nil
		}
		info, err := os.Lstat(path)
		if err != nil {
			return entry.Entry{}, err
		}
		return entry.FromInfo(path, 1, info, true), nil
	}
	info, err := d.Info()
	if err != nil {
		return entry.Entry{}, err
	}
	return entry.FromInfo(path, 1, info, false), nil
}

func (l *Lister) excluded(p string) bool {
	if len(l.excludes) == 0 {
		return false
	}
	base := filepath.Base(p)
	for _, g := range l.excludes {
		if g.Match(p) || g.Match(base) {
			return true
		}
	}
	return false
}
