package github

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/ghnf/internal/ports/secondary"
)

// anyStatus accepts every status that isn't a rate limit.
const anyStatus = 0

// RequestFunc builds a fresh request for each attempt.
type RequestFunc func(ctx context.Context) (*http.Request, error)

// Requester sends requests and waits out rate limits.
// It is safe for concurrent use.
type Requester struct {
	client *http.Client
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRequester creates a Requester on top of client.
func NewRequester(client *http.Client, logger *slog.Logger) *Requester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Requester{
		client: client,
		logger: logger,
		sleep:  sleepContext,
	}
}

// Do sends the request built by build and returns the response once its
// status equals expected. A mismatched response carrying Retry-After is
// discarded and the request is retried after the given number of seconds,
// as many times as it takes. Any other mismatch is an *UnexpectedStatusError.
func (r *Requester) Do(ctx context.Context, build RequestFunc, expected int) (*secondary.RawResponse, error) {
	for {
		req, err := build(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}

		resp, err := r.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
		}

		if wait, limited := rateLimited(resp, expected); limited {
			drain(resp)
			r.logger.Warn("rate limit exceeded, waiting",
				"seconds", int(wait/time.Second),
				"method", req.Method,
				"url", req.URL.String())
			if err := r.sleep(ctx, wait); err != nil {
				return nil, err
			}
			continue
		}

		if expected != anyStatus && resp.StatusCode != expected {
			return nil, unexpectedStatus(expected, req, resp)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response body of %s: %w", req.URL, err)
		}

		return &secondary.RawResponse{
			Status: resp.StatusCode,
			Header: resp.Header,
			Body:   string(body),
		}, nil
	}
}

// rateLimited reports whether resp should be retried and how long to wait.
func rateLimited(resp *http.Response, expected int) (time.Duration, bool) {
	if expected == anyStatus {
		if resp.StatusCode < http.StatusBadRequest {
			return 0, false
		}
	} else if resp.StatusCode == expected {
		return 0, false
	}

	v := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if v == "" {
		return 0, false
	}
	secs, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

func unexpectedStatus(expected int, req *http.Request, resp *http.Response) *UnexpectedStatusError {
	defer resp.Body.Close()

	body := bodyUnavailable
	if b, err := io.ReadAll(resp.Body); err == nil {
		body = string(b)
	}

	return &UnexpectedStatusError{
		Expected: expected,
		Actual:   resp.StatusCode,
		URL:      req.URL.String(),
		Header:   resp.Header.Clone(),
		Body:     body,
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
