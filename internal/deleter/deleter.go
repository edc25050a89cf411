package deleter

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Deleter removes files and directories. At most Concurrency removals run at
// once; extra callers wait for a slot or for their context.
type Deleter struct {
	sem    *semaphore.Weighted
	dryRun bool
}

// New returns a Deleter. A concurrency below 1 means runtime.NumCPU().
func New(concurrency int, dryRun bool) *Deleter {
	if concurrency < 1 {
		concurrency = runtime.NumCPU()
	}
	return &Deleter{
		sem:    semaphore.NewWeighted(int64(concurrency)),
		dryRun: dryRun,
	}
}

// Delete removes path. Directories are removed with their contents. In dry-run
// mode the path must exist but is left in place.
func (d *Deleter) Delete(ctx context.Context, path string, isDir bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := d.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer d.sem.Release(1)

	if d.dryRun {
		// simulate success without deleting
		_, err := os.Lstat(path)
		return err
	}
	if isDir {
		// RemoveAll reports success for a missing path
		if _, err := os.Lstat(path); err != nil {
			return err
		}
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}
