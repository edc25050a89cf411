package errors

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIoError(t *testing.T) {
	err := NewIoError(OpDelete, "/tmp/a.txt", fs.ErrPermission)
	assert.Equal(t, "delete /tmp/a.txt: permission denied", err.Error())
	assert.True(t, Is(err, fs.ErrPermission))

	wrapped := fmt.Errorf("batch: %w", err)
	var target *IoError
	assert.True(t, As(wrapped, &target))
	assert.Equal(t, OpDelete, target.Op)
}

func TestOpenError(t *testing.T) {
	err := NewOpenError("/tmp/a.pdf", New("no handler"))
	assert.Equal(t, "open /tmp/a.pdf: no handler", err.Error())
	assert.Equal(t, "open /tmp/a.pdf failed", NewOpenError("/tmp/a.pdf", nil).Error())
}

func TestPathOf(t *testing.T) {
	cases := []struct {
		err  error
		path string
		ok   bool
	}{
		{NewIoError(OpList, "/srv", fs.ErrNotExist), "/srv", true},
		{fmt.Errorf("wrap: %w", NewOpenError("/x", nil)), "/x", true},
		{NewClipboardError("/y", New("no xclip")), "/y", true},
		{ErrNoParent, "", false},
	}
	for _, c := range cases {
		path, ok := PathOf(c.err)
		assert.Equal(t, c.ok, ok, c.err.Error())
		assert.Equal(t, c.path, path)
	}
}
