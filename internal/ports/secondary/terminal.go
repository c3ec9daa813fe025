package secondary

import (
	"context"

	"github.com/example/ghnf/internal/models"
)

// Prompter asks the user to confirm before a destructive step.
type Prompter interface {
	// Confirm shows message and blocks until the user enters a line.
	// Any line, including an empty one, confirms. Aborting returns an error.
	Confirm(ctx context.Context, message string) error
}

// Browser opens URLs with the system's default handler.
type Browser interface {
	Open(ctx context.Context, url string) error
}

// ProgressReporter receives progress events from bulk operations.
// Methods may be called concurrently.
type ProgressReporter interface {
	// Candidate is called once per subscription selected for mutation, before any mutation.
	Candidate(s *models.Subscription)

	// NoneMatched is called when the batch is empty.
	NoneMatched()

	// Unsubscribing is called once before mutations start.
	Unsubscribing(total int)

	// Unsubscribed is called after a subscription was unsubscribed and marked read.
	Unsubscribed(s *models.Subscription)

	// Opening is called before each browser open.
	Opening(s *models.Subscription)
}
