// Package terminal implements the confirmation prompt shown before destructive steps.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/example/ghnf/internal/ports/secondary"
)

// ErrAborted is returned when the user aborts the prompt with Ctrl+C.
var ErrAborted = errors.New("aborted by user")

// Prompter asks for confirmation on a terminal, or reads a line from a pipe.
type Prompter struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter creates a Prompter reading from in and writing to out.
// Line editing is used only when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Prompter{in: in, out: out, interactive: interactive}
}

// Confirm prints message and waits for one line of input. Its content is ignored,
// and input that ends before a newline, even with nothing read, also confirms.
func (p *Prompter) Confirm(ctx context.Context, message string) error {
	fmt.Fprintln(p.out, message)

	if p.interactive {
		return p.confirmTerminal()
	}
	return p.confirmPipe(ctx)
}

func (p *Prompter) confirmTerminal() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if _, err := line.Prompt(""); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return ErrAborted
		}
		return fmt.Errorf("failed to read from terminal: %w", err)
	}
	return nil
}

func (p *Prompter) confirmPipe(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(p.in).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		done <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
		return nil
	}
}

var _ secondary.Prompter = (*Prompter)(nil)
