// Package primary defines the primary ports (driving adapters) for the application.
package primary

import (
	"context"

	"github.com/example/ghnf/internal/core/filter"
	"github.com/example/ghnf/internal/models"
	"github.com/example/ghnf/internal/ports/secondary"
)

// NotificationService defines the primary port for notification operations.
type NotificationService interface {
	// FetchUnread retrieves every unread notification, all pages.
	FetchUnread(ctx context.Context) ([]*models.Subscription, error)

	// FetchThreads retrieves specific threads by id, in the given order.
	FetchThreads(ctx context.Context, ids []models.ThreadID) ([]*models.Subscription, error)

	// ApplyFilters runs the filter pipeline:
	// ignore-list, regex, kind, closed-only (if set), count cap.
	ApplyFilters(ctx context.Context, ss []*models.Subscription, filters filter.Filters) ([]*models.Subscription, error)

	// ResolveDetail returns the subject detail, fetching it at most once per subscription.
	ResolveDetail(ctx context.Context, s *models.Subscription) (models.SubjectDetail, error)

	// UnsubscribeAll unsubscribes from and marks as read every subscription in batch.
	UnsubscribeAll(ctx context.Context, batch []*models.Subscription, mode MutationMode) error

	// Open opens each subscription's web page in the default browser.
	Open(ctx context.Context, ss []*models.Subscription) error

	// Request performs an authenticated GET and returns the raw response.
	Request(ctx context.Context, url string) (*secondary.RawResponse, error)

	// History lists previously recorded mutations, newest first.
	History(ctx context.Context, limit int) ([]*secondary.MutationRecord, error)
}

// MutationMode controls what UnsubscribeAll does with its batch.
type MutationMode int

// Mutation modes
const (
	// ModeDry lists the candidates without mutating anything.
	ModeDry MutationMode = iota
	// ModeConfirm lists the candidates and waits for the user before executing.
	ModeConfirm
	// ModeExecute mutates immediately.
	ModeExecute
)

func (m MutationMode) String() string {
	switch m {
	case ModeDry:
		return "dry-run"
	case ModeConfirm:
		return "confirm"
	case ModeExecute:
		return "execute"
	default:
		return "unknown"
	}
}
