package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/example/ghnf/internal/ctxutil"
	"github.com/example/ghnf/internal/models"
	"github.com/example/ghnf/internal/ports/primary"
	"github.com/example/ghnf/internal/ports/secondary"
)

// ConfirmMessage is shown before unsubscribing in confirm mode.
const ConfirmMessage = "\nTo unsubscribe the notification(s), press Enter\n(If you don't want to, just abort (e.g. Ctrl+C))"

// PartialMutationError reports a bulk unsubscribe that stopped part way.
// Mutations run concurrently, so the completed ones are not necessarily a
// prefix of the batch; the "Unsubscribed" progress lines name them. Nothing
// is rolled back.
type PartialMutationError struct {
	// Done counts subscriptions both unsubscribed and marked read.
	Done int
	// UnsubscribedOnly counts subscriptions whose unsubscribe succeeded
	// but whose mark-read failed or never ran.
	UnsubscribedOnly int
	Total            int
	Err              error
}

func (e *PartialMutationError) Error() string {
	if e.UnsubscribedOnly > 0 {
		return fmt.Sprintf("unsubscribed %d of %d notification(s), %d more without marking read, before failing: %v",
			e.Done, e.Total, e.UnsubscribedOnly, e.Err)
	}
	return fmt.Sprintf("unsubscribed %d of %d notification(s) before failing: %v", e.Done, e.Total, e.Err)
}

func (e *PartialMutationError) Unwrap() error {
	return e.Err
}

// UnsubscribeAll unsubscribes from and marks as read every subscription in batch.
//
// Dry mode only reports the candidates. Confirm mode reports them and waits
// for the user first. At most chunkSize subscriptions are in flight at once.
// The first failure stops new ones from starting and cancels the context of
// those in flight; it is returned as a *PartialMutationError.
func (s *NotificationServiceImpl) UnsubscribeAll(ctx context.Context, batch []*models.Subscription, mode primary.MutationMode) error {
	batch = uniqueThreads(batch)
	if len(batch) == 0 {
		s.reporter.NoneMatched()
		return nil
	}

	switch mode {
	case primary.ModeDry, primary.ModeConfirm:
		for _, sub := range batch {
			s.reporter.Candidate(sub)
		}
		if mode == primary.ModeDry {
			return nil
		}
		if err := s.prompter.Confirm(ctx, ConfirmMessage); err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
	case primary.ModeExecute:
	default:
		return fmt.Errorf("unknown mutation mode %d", mode)
	}

	return s.execute(ctx, batch)
}

func (s *NotificationServiceImpl) execute(ctx context.Context, batch []*models.Subscription) error {
	s.reporter.Unsubscribing(len(batch))

	var done, unsubscribedOnly atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.chunkSize)

	for _, sub := range batch {
		sub := sub
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := s.gateway.Unsubscribe(gctx, sub.ThreadID); err != nil {
				return fmt.Errorf("failed to unsubscribe thread %d: %w", sub.ThreadID, err)
			}
			if err := s.gateway.MarkRead(gctx, sub.ThreadID); err != nil {
				unsubscribedOnly.Add(1)
				return fmt.Errorf("failed to mark thread %d as read: %w", sub.ThreadID, err)
			}
			done.Add(1)
			s.reporter.Unsubscribed(sub)
			return s.record(gctx, sub)
		})
	}

	if err := g.Wait(); err != nil {
		return &PartialMutationError{
			Done:             int(done.Load()),
			UnsubscribedOnly: int(unsubscribedOnly.Load()),
			Total:            len(batch),
			Err:              err,
		}
	}
	return nil
}

// record appends sub to the mutation history, if one is configured.
func (s *NotificationServiceImpl) record(ctx context.Context, sub *models.Subscription) error {
	if s.history == nil {
		return nil
	}
	err := s.history.Create(ctx, &secondary.MutationRecord{
		RunID:    ctxutil.RunIDFromContext(ctx),
		ThreadID: uint64(sub.ThreadID),
		RepoName: sub.RepoName,
		Title:    sub.Title,
		Kind:     sub.Kind.Raw(),
		Action:   secondary.ActionUnsubscribed,
	})
	if err != nil {
		return fmt.Errorf("failed to record thread %d: %w", sub.ThreadID, err)
	}
	return nil
}

// uniqueThreads drops repeated thread ids, keeping the first occurrence.
func uniqueThreads(ss []*models.Subscription) []*models.Subscription {
	seen := make(map[models.ThreadID]struct{}, len(ss))
	out := make([]*models.Subscription, 0, len(ss))
	for _, sub := range ss {
		if _, dup := seen[sub.ThreadID]; dup {
			continue
		}
		seen[sub.ThreadID] = struct{}{}
		out = append(out, sub)
	}
	return out
}
