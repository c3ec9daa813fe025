// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"net/http"

	"github.com/example/ghnf/internal/models"
)

// NotificationGateway defines the secondary port for the GitHub notifications API.
// Implementations retry rate-limited requests internally.
type NotificationGateway interface {
	// LastPage returns the number of unread notification pages.
	LastPage(ctx context.Context) (int, error)

	// ListPage retrieves one page of unread notifications (1-based).
	ListPage(ctx context.Context, page int) ([]*models.Subscription, error)

	// GetThread retrieves a single notification thread.
	GetThread(ctx context.Context, id models.ThreadID) (*models.Subscription, error)

	// GetSubjectDetail retrieves the subject resource behind a notification.
	GetSubjectDetail(ctx context.Context, url string) (models.SubjectDetail, error)

	// Unsubscribe deletes the thread subscription.
	Unsubscribe(ctx context.Context, id models.ThreadID) error

	// MarkRead marks the thread as read.
	MarkRead(ctx context.Context, id models.ThreadID) error

	// Get performs an authenticated GET of an arbitrary URL.
	Get(ctx context.Context, url string) (*RawResponse, error)
}

// RawResponse is an undecoded HTTP response.
type RawResponse struct {
	Status int
	Header http.Header
	Body   string
}
