package opener

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLauncher(t *testing.T) {
	name, args := launcher("darwin", "/a")
	assert.Equal(t, "open", name)
	assert.Equal(t, []string{"/a"}, args)

	name, args = launcher("windows", `C:\a`)
	assert.Equal(t, "rundll32", name)
	assert.Equal(t, []string{"url.dll,FileProtocolHandler", `C:\a`}, args)

	name, _ = launcher("linux", "/a")
	assert.Equal(t, "xdg-open", name)
}

func fakeOpener(t *testing.T, shell string) *Opener {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	return &Opener{
		goos: "linux",
		command: func(ctx context.Context, name string, args ...string) *exec.Cmd {
			return exec.CommandContext(ctx, "sh", "-c", shell)
		},
	}
}

func TestOpenSuccess(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(p, nil, 0o644))
	assert.NoError(t, fakeOpener(t, "exit 0").Open(context.Background(), p))
}

func TestOpenLauncherFailure(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(p, nil, 0o644))
	err := fakeOpener(t, "echo no handler >&2; exit 3").Open(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xdg-open")
	assert.Contains(t, err.Error(), "no handler")
}

func TestOpenMissingFile(t *testing.T) {
	err := fakeOpener(t, "exit 0").Open(context.Background(), filepath.Join(t.TempDir(), "gone"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
