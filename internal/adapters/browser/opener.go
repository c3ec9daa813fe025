// Package browser opens URLs with the operating system's default handler.
package browser

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/example/ghnf/internal/ports/secondary"
)

// Opener launches the platform's URL handler.
type Opener struct {
	goos string
	run  func(cmd *exec.Cmd) error
}

// NewOpener creates an Opener for the running platform.
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS, run: runCommand}
}

// Open hands url to the default handler and waits for the launcher to exit.
func (o *Opener) Open(ctx context.Context, url string) error {
	name, args := command(o.goos, url)
	if err := o.run(exec.CommandContext(ctx, name, args...)); err != nil {
		return fmt.Errorf("failed to open %s with %s: %w", url, name, err)
	}
	return nil
}

// command returns the launcher invocation for goos.
func command(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

func runCommand(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", err, stderr.String())
	}
	return nil
}

var _ secondary.Browser = (*Opener)(nil)
