package app

import (
	"context"
	"fmt"

	"github.com/example/ghnf/internal/models"
)

// ResolveDetail returns the subject detail of sub. The first caller fetches
// it; everyone else, concurrent or later, gets the cached value.
func (s *NotificationServiceImpl) ResolveDetail(ctx context.Context, sub *models.Subscription) (models.SubjectDetail, error) {
	if !sub.HasDetailEndpoint() {
		return models.SubjectDetail{}, fmt.Errorf("thread %d: %w", sub.ThreadID, ErrNoDetailEndpoint)
	}

	d, err := sub.Detail().Resolve(func() (models.SubjectDetail, error) {
		return s.gateway.GetSubjectDetail(ctx, sub.DetailURL)
	})
	if err != nil {
		return models.SubjectDetail{}, fmt.Errorf("failed to fetch detail of thread %d: %w", sub.ThreadID, err)
	}
	return d, nil
}

// subjectState returns the open/closed state, nil for commits.
func (s *NotificationServiceImpl) subjectState(ctx context.Context, sub *models.Subscription) (*models.SubjectState, error) {
	d, err := s.ResolveDetail(ctx, sub)
	if err != nil {
		return nil, err
	}
	return d.State, nil
}

// canonicalURL returns the subject's web page.
func (s *NotificationServiceImpl) canonicalURL(ctx context.Context, sub *models.Subscription) (string, error) {
	d, err := s.ResolveDetail(ctx, sub)
	if err != nil {
		return "", err
	}
	return d.HTMLURL, nil
}
