package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/example/ghnf/internal/core/filter"
	"github.com/example/ghnf/internal/models"
	"github.com/example/ghnf/internal/ports/primary"
)

// Selection says which notifications a command works on: either explicit
// thread ids, or every unread notification narrowed by Filters.
type Selection struct {
	IDs     []models.ThreadID
	Filters filter.Filters
}

// NotificationAdapter is a thin adapter that translates CLI operations to NotificationService calls.
type NotificationAdapter struct {
	service primary.NotificationService
	out     io.Writer
	errOut  io.Writer
}

// NewNotificationAdapter creates a new NotificationAdapter.
// Response headers of Request go to errOut so the body can be piped.
func NewNotificationAdapter(service primary.NotificationService, out, errOut io.Writer) *NotificationAdapter {
	return &NotificationAdapter{
		service: service,
		out:     out,
		errOut:  errOut,
	}
}

// List prints the selected notifications and their count.
func (a *NotificationAdapter) List(ctx context.Context, sel Selection) error {
	ss, err := a.selectNotifications(ctx, sel)
	if err != nil {
		return err
	}

	for _, s := range ss {
		fmt.Fprintln(a.out, s.String())
	}
	fmt.Fprintf(a.out, "Total entry count: %d\n", len(ss))
	return nil
}

// Open opens the selected notifications in the browser.
func (a *NotificationAdapter) Open(ctx context.Context, sel Selection) error {
	ss, err := a.selectNotifications(ctx, sel)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Opening %d page(s)...\n", len(ss))
	return a.service.Open(ctx, ss)
}

// Remove unsubscribes from the selected notifications whose subject is closed.
func (a *NotificationAdapter) Remove(ctx context.Context, sel Selection, mode primary.MutationMode) error {
	sel.Filters.ClosedOnly = true
	ss, err := a.selectNotifications(ctx, sel)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d notification(s) left\n", len(ss))

	return a.service.UnsubscribeAll(ctx, ss, mode)
}

// selectNotifications fetches what sel names and runs the filter pipeline on it.
// Explicit ids still go through the ignore list and the closed-only stage.
func (a *NotificationAdapter) selectNotifications(ctx context.Context, sel Selection) ([]*models.Subscription, error) {
	var ss []*models.Subscription
	var err error

	if len(sel.IDs) > 0 {
		ss, err = a.service.FetchThreads(ctx, sel.IDs)
		if err != nil {
			return nil, err
		}
		sel.Filters.Regex = nil
		sel.Filters.Kind = nil
	} else {
		fmt.Fprintln(a.out, "Fetching notifications...")
		ss, err = a.service.FetchUnread(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch notifications: %w", err)
		}
		fmt.Fprintf(a.out, "Fetched %d notifications\n", len(ss))
	}

	if sel.Filters.ClosedOnly {
		fmt.Fprintln(a.out, "Filtering out open notifications...")
	}
	out, err := a.service.ApplyFilters(ctx, ss, sel.Filters)
	if err != nil {
		return nil, fmt.Errorf("failed to filter notifications: %w", err)
	}
	return out, nil
}

// Request prints the raw response of an authenticated GET.
func (a *NotificationAdapter) Request(ctx context.Context, url string) error {
	resp, err := a.service.Request(ctx, url)
	if err != nil {
		return err
	}

	if resp.Status != http.StatusOK {
		fmt.Fprintf(a.out, "%s %d %s\n", color.New(color.FgRed).Sprint("Failed to GET, status code:"), resp.Status, http.StatusText(resp.Status))
	}

	fmt.Fprintln(a.errOut, "Headers:")
	keys := make([]string, 0, len(resp.Header))
	for k := range resp.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.errOut, "%s: %s\n", k, strings.Join(resp.Header[k], ", "))
	}

	fmt.Fprintln(a.out, resp.Body)
	return nil
}

// History prints the most recent recorded mutations.
func (a *NotificationAdapter) History(ctx context.Context, limit int) error {
	records, err := a.service.History(ctx, limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(a.out, "No mutations recorded")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-20s %-12s %-14s %-30s %s\n", "WHEN", "RUN", "ACTION", "REPO", "TITLE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────────────")
	for _, r := range records {
		fmt.Fprintf(a.out, "%-20s %-12s %-14s %-30s %s (%d)\n", r.CreatedAt, shortRunID(r.RunID), r.Action, r.RepoName, r.Title, r.ThreadID)
	}
	fmt.Fprintln(a.out)

	return nil
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
