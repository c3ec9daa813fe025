// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/example/ghnf/internal/models"
	"github.com/example/ghnf/internal/ports/secondary"
)

// ProgressPrinter writes bulk-operation progress as text lines.
// It is safe for concurrent use; each event is written as one whole line.
type ProgressPrinter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewProgressPrinter creates a ProgressPrinter writing to out.
func NewProgressPrinter(out io.Writer) *ProgressPrinter {
	return &ProgressPrinter{out: out}
}

func (p *ProgressPrinter) println(a ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, a...)
}

// Candidate prints a subscription selected for unsubscribing.
func (p *ProgressPrinter) Candidate(s *models.Subscription) {
	p.println(s.String())
}

// NoneMatched reports an empty batch.
func (p *ProgressPrinter) NoneMatched() {
	p.println(color.New(color.FgYellow).Sprint("No notification matched"))
}

// Unsubscribing announces the start of the mutations.
func (p *ProgressPrinter) Unsubscribing(total int) {
	p.println("Unsubscribing notifications...")
}

// Unsubscribed prints one completed subscription.
func (p *ProgressPrinter) Unsubscribed(s *models.Subscription) {
	p.println(color.New(color.FgGreen).Sprint("Unsubscribed"), s.String())
}

// Opening prints a subscription about to be opened in the browser.
func (p *ProgressPrinter) Opening(s *models.Subscription) {
	p.println("Open", s.String())
}

var _ secondary.ProgressReporter = (*ProgressPrinter)(nil)
