package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/example/ghnf/internal/core/filter"
	"github.com/example/ghnf/internal/models"
)

// ApplyFilters runs the pipeline stages in order: ignore-list, regex, kind,
// closed-only, count cap. The closed-only stage is the only one that touches
// the network, so it runs on what the cheap stages left.
func (s *NotificationServiceImpl) ApplyFilters(ctx context.Context, ss []*models.Subscription, f filter.Filters) ([]*models.Subscription, error) {
	out := filter.Narrow(ss, f)

	if f.ClosedOnly {
		var err error
		out, err = s.closedOnly(ctx, out)
		if err != nil {
			return nil, err
		}
	}

	return filter.Cap(out, f.Limit), nil
}

// closedOnly keeps closed issues and pull requests plus all commits.
// Details are resolved for every candidate at once.
func (s *NotificationServiceImpl) closedOnly(ctx context.Context, ss []*models.Subscription) ([]*models.Subscription, error) {
	keep := make([]bool, len(ss))

	g, gctx := errgroup.WithContext(ctx)
	for i, sub := range ss {
		i, sub := i, sub
		if !filter.NeedsState(sub) {
			keep[i] = filter.Removable(sub, nil)
			continue
		}
		g.Go(func() error {
			state, err := s.subjectState(gctx, sub)
			if err != nil {
				return err
			}
			keep[i] = filter.Removable(sub, state)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*models.Subscription, 0, len(ss))
	for i, sub := range ss {
		if keep[i] {
			out = append(out, sub)
		}
	}
	return out, nil
}
