// Package opener hands files to the operating system's default application.
package opener

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Opener launches the platform handler for a path and waits for the launcher
// (not the application) to exit.
type Opener struct {
	goos    string
	command func(ctx context.Context, name string, args ...string) *exec.Cmd
}

func New() *Opener {
	return &Opener{goos: runtime.GOOS, command: exec.CommandContext}
}

// Open starts the default handler for path.
func (o *Opener) Open(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	name, args := launcher(o.goos, path)
	cmd := o.command(ctx, name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func launcher(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}
