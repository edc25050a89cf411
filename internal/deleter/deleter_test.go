package deleter

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelete_File(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "a.txt")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))

	d := New(1, false)
	require.NoError(t, d.Delete(context.Background(), p, false))
	_, err := os.Stat(p)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDelete_DirRecursive(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "notes", "inner")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x"), []byte("x"), 0o644))

	d := New(2, false)
	require.NoError(t, d.Delete(context.Background(), filepath.Join(root, "notes"), true))
	_, err := os.Stat(filepath.Join(root, "notes"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDelete_MissingPathFails(t *testing.T) {
	root := t.TempDir()
	d := New(1, false)
	assert.ErrorIs(t, d.Delete(context.Background(), filepath.Join(root, "nope"), false), os.ErrNotExist)
	assert.ErrorIs(t, d.Delete(context.Background(), filepath.Join(root, "nodir"), true), os.ErrNotExist)
}

func TestDelete_DryRunDoesNotDelete(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "node_modules")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	d := New(1, true)
	require.NoError(t, d.Delete(nil, dir, true))
	_, err := os.Stat(dir)
	assert.NoError(t, err, "dir should still exist in dry-run")
}

func TestDelete_CanceledWhileWaiting(t *testing.T) {
	d := New(1, false)
	require.NoError(t, d.sem.Acquire(context.Background(), 1))
	defer d.sem.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.Delete(ctx, filepath.Join(t.TempDir(), "x"), false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelete_Concurrent(t *testing.T) {
	root := t.TempDir()
	var paths []string
	for _, n := range []string{"a", "b", "c", "d", "e", "f"} {
		p := filepath.Join(root, n)
		require.NoError(t, os.WriteFile(p, nil, 0o644))
		paths = append(paths, p)
	}

	d := New(2, false)
	var wg sync.WaitGroup
	errs := make([]error, len(paths))
	for i, p := range paths {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			errs[i] = d.Delete(context.Background(), p, false)
		}(i, p)
	}
	wg.Wait()
	for i, err := range errs {
		assert.NoError(t, err, paths[i])
	}
	left, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, left)
}
