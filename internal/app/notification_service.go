// Package app contains the application services that orchestrate business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/example/ghnf/internal/models"
	"github.com/example/ghnf/internal/ports/primary"
	"github.com/example/ghnf/internal/ports/secondary"
)

// DefaultChunkSize caps concurrent in-flight mutations.
const DefaultChunkSize = 64

// ErrNoDetailEndpoint is returned when a subject has no detail resource (discussions).
var ErrNoDetailEndpoint = errors.New("subject has no detail endpoint")

// NotificationServiceConfig holds the tunables of NotificationServiceImpl.
type NotificationServiceConfig struct {
	ChunkSize int
	Logger    *slog.Logger
}

// NotificationServiceImpl implements the NotificationService interface.
type NotificationServiceImpl struct {
	gateway   secondary.NotificationGateway
	history   secondary.MutationHistoryRepository
	prompter  secondary.Prompter
	browser   secondary.Browser
	reporter  secondary.ProgressReporter
	chunkSize int
	logger    *slog.Logger
}

// NewNotificationService creates a new NotificationService with injected dependencies.
// history may be nil, in which case mutations are not recorded.
func NewNotificationService(
	gateway secondary.NotificationGateway,
	history secondary.MutationHistoryRepository,
	prompter secondary.Prompter,
	browser secondary.Browser,
	reporter secondary.ProgressReporter,
	cfg NotificationServiceConfig,
) *NotificationServiceImpl {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &NotificationServiceImpl{
		gateway:   gateway,
		history:   history,
		prompter:  prompter,
		browser:   browser,
		reporter:  reporter,
		chunkSize: cfg.ChunkSize,
		logger:    cfg.Logger,
	}
}

// FetchUnread retrieves every unread notification.
// A thread that shows up on two pages (the inbox moved between requests) is kept once.
func (s *NotificationServiceImpl) FetchUnread(ctx context.Context) ([]*models.Subscription, error) {
	pages, err := s.fetchPages(ctx)
	if err != nil {
		return nil, err
	}

	var all []*models.Subscription
	seen := make(map[models.ThreadID]struct{})
	for _, page := range pages {
		for _, sub := range page {
			if _, dup := seen[sub.ThreadID]; dup {
				continue
			}
			seen[sub.ThreadID] = struct{}{}
			all = append(all, sub)
		}
	}

	s.logger.Debug("fetched notifications", "pages", len(pages), "count", len(all))
	return all, nil
}

// fetchPages requests every page at once and waits for all of them.
// Any failed page fails the whole fetch.
func (s *NotificationServiceImpl) fetchPages(ctx context.Context) ([][]*models.Subscription, error) {
	lastPage, err := s.gateway.LastPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}

	pages := make([][]*models.Subscription, lastPage)
	g, gctx := errgroup.WithContext(ctx)
	for i := range pages {
		i := i
		g.Go(func() error {
			page, err := s.gateway.ListPage(gctx, i+1)
			if err != nil {
				return fmt.Errorf("failed to fetch page %d: %w", i+1, err)
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return pages, nil
}

// FetchThreads retrieves the given threads, keeping the argument order.
func (s *NotificationServiceImpl) FetchThreads(ctx context.Context, ids []models.ThreadID) ([]*models.Subscription, error) {
	out := make([]*models.Subscription, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			sub, err := s.gateway.GetThread(gctx, id)
			if err != nil {
				return fmt.Errorf("could not retrieve thread %d: %w", id, err)
			}
			out[i] = sub
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Open opens every subscription's web page in the default browser.
func (s *NotificationServiceImpl) Open(ctx context.Context, ss []*models.Subscription) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, sub := range ss {
		sub := sub
		g.Go(func() error {
			url, err := s.canonicalURL(gctx, sub)
			if err != nil {
				return err
			}
			s.reporter.Opening(sub)
			if err := s.browser.Open(gctx, url); err != nil {
				return fmt.Errorf("failed to open %s: %w", url, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Request performs an authenticated GET of url.
func (s *NotificationServiceImpl) Request(ctx context.Context, url string) (*secondary.RawResponse, error) {
	resp, err := s.gateway.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to GET %s: %w", url, err)
	}
	return resp, nil
}

// History lists recorded mutations, newest first.
func (s *NotificationServiceImpl) History(ctx context.Context, limit int) ([]*secondary.MutationRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	records, err := s.history.List(ctx, secondary.MutationFilters{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return records, nil
}

// Ensure NotificationServiceImpl implements the interface
var _ primary.NotificationService = (*NotificationServiceImpl)(nil)
