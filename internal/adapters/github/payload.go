package github

import (
	"fmt"
	"strconv"

	"github.com/example/ghnf/internal/models"
)

// notificationPayload mirrors the fields we use from a notification thread.
type notificationPayload struct {
	ID         string `json:"id"`
	Repository struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
	Subject struct {
		Title string  `json:"title"`
		URL   *string `json:"url"`
		Type  string  `json:"type"`
	} `json:"subject"`
	UpdatedAt string `json:"updated_at"`
}

// subjectDetailPayload mirrors an issue, pull request, or commit resource.
type subjectDetailPayload struct {
	HTMLURL string  `json:"html_url"`
	State   *string `json:"state"` // absent for commits
	Title   *string `json:"title"` // absent for commits
}

func (p notificationPayload) toSubscription() (*models.Subscription, error) {
	id, err := strconv.ParseUint(p.ID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid thread id %q: %w", p.ID, err)
	}

	s := &models.Subscription{
		ThreadID:  models.ThreadID(id),
		Title:     p.Subject.Title,
		Kind:      models.ParseSubjectKind(p.Subject.Type),
		RepoName:  p.Repository.FullName,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Subject.URL != nil && s.Kind != models.KindDiscussion {
		s.DetailURL = *p.Subject.URL
	}
	return s, nil
}

func (p subjectDetailPayload) toDetail() models.SubjectDetail {
	d := models.SubjectDetail{HTMLURL: p.HTMLURL}
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.State != nil {
		// Anything other than open/closed is left unset
		switch st := models.SubjectState(*p.State); st {
		case models.SubjectStateOpen, models.SubjectStateClosed:
			d.State = &st
		}
	}
	return d
}
