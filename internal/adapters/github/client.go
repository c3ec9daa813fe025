// Package github implements the notification gateway on top of GitHub's REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/ghnf/internal/core/pagination"
	"github.com/example/ghnf/internal/models"
	"github.com/example/ghnf/internal/ports/secondary"
)

// DefaultBaseURL is the public GitHub API.
const DefaultBaseURL = "https://api.github.com"

// Client implements secondary.NotificationGateway.
type Client struct {
	requester *Requester
	baseURL   string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root (GitHub Enterprise, tests).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// NewClient creates a gateway using httpClient, which must already carry
// authentication (see NewHTTPClient).
func NewClient(httpClient *http.Client, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		requester: NewRequester(httpClient, logger),
		baseURL:   DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LastPage issues a HEAD request and reads the last page number from the Link
// header. GitHub omits the header when everything fits on one page.
func (c *Client) LastPage(ctx context.Context) (int, error) {
	url := c.notificationsURL(0)
	resp, err := c.requester.Do(ctx, newRequest(http.MethodHead, url), http.StatusOK)
	if err != nil {
		return 0, err
	}

	link := resp.Header.Get("Link")
	if link == "" {
		return 1, nil
	}

	page, err := pagination.LastPage(link)
	if err != nil {
		return 0, &MalformedResponseError{URL: url, Err: err}
	}
	return page, nil
}

// ListPage retrieves one page of unread notifications.
func (c *Client) ListPage(ctx context.Context, page int) ([]*models.Subscription, error) {
	url := c.notificationsURL(page)
	resp, err := c.requester.Do(ctx, newRequest(http.MethodGet, url), http.StatusOK)
	if err != nil {
		return nil, err
	}

	var payloads []notificationPayload
	if err := json.Unmarshal([]byte(resp.Body), &payloads); err != nil {
		return nil, &MalformedResponseError{URL: url, Err: err}
	}

	ss := make([]*models.Subscription, 0, len(payloads))
	for _, p := range payloads {
		s, err := p.toSubscription()
		if err != nil {
			return nil, &MalformedResponseError{URL: url, Err: err}
		}
		ss = append(ss, s)
	}
	return ss, nil
}

// GetThread retrieves a single notification thread.
func (c *Client) GetThread(ctx context.Context, id models.ThreadID) (*models.Subscription, error) {
	url := c.threadURL(id)
	resp, err := c.requester.Do(ctx, newRequest(http.MethodGet, url), http.StatusOK)
	if err != nil {
		return nil, err
	}

	var p notificationPayload
	if err := json.Unmarshal([]byte(resp.Body), &p); err != nil {
		return nil, &MalformedResponseError{URL: url, Err: err}
	}
	s, err := p.toSubscription()
	if err != nil {
		return nil, &MalformedResponseError{URL: url, Err: err}
	}
	return s, nil
}

// GetSubjectDetail retrieves the issue, pull request, or commit at url.
func (c *Client) GetSubjectDetail(ctx context.Context, url string) (models.SubjectDetail, error) {
	resp, err := c.requester.Do(ctx, newRequest(http.MethodGet, url), http.StatusOK)
	if err != nil {
		return models.SubjectDetail{}, err
	}

	var p subjectDetailPayload
	if err := json.Unmarshal([]byte(resp.Body), &p); err != nil {
		return models.SubjectDetail{}, &MalformedResponseError{URL: url, Err: err}
	}
	return p.toDetail(), nil
}

// Unsubscribe deletes the thread subscription.
func (c *Client) Unsubscribe(ctx context.Context, id models.ThreadID) error {
	url := c.threadURL(id) + "/subscription"
	_, err := c.requester.Do(ctx, newRequest(http.MethodDelete, url), http.StatusNoContent)
	return err
}

// MarkRead marks the thread as read.
func (c *Client) MarkRead(ctx context.Context, id models.ThreadID) error {
	_, err := c.requester.Do(ctx, newRequest(http.MethodPatch, c.threadURL(id)), http.StatusResetContent)
	return err
}

// Get performs an authenticated GET and returns whatever came back.
// Rate limits are still waited out.
func (c *Client) Get(ctx context.Context, url string) (*secondary.RawResponse, error) {
	return c.requester.Do(ctx, newRequest(http.MethodGet, url), anyStatus)
}

func (c *Client) notificationsURL(page int) string {
	url := c.baseURL + "/notifications"
	if page > 0 {
		url += "?page=" + strconv.Itoa(page)
	}
	return url
}

func (c *Client) threadURL(id models.ThreadID) string {
	return fmt.Sprintf("%s/notifications/threads/%d", c.baseURL, id)
}

func newRequest(method, url string) RequestFunc {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, method, url, nil)
	}
}

// Ensure Client implements the interface
var _ secondary.NotificationGateway = (*Client)(nil)
