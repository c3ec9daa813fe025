package github

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	bodyUnavailable    = "<Failed to get body>"
	headerNotPrintable = "<Not representable in string>"
)

// UnexpectedStatusError is returned when a response status is neither the
// expected one nor a rate limit. It carries everything needed to diagnose
// the failure.
type UnexpectedStatusError struct {
	Expected int
	Actual   int
	URL      string
	Header   http.Header
	Body     string
}

func (e *UnexpectedStatusError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Unexpected HTTP Status %s (Expected %s)\nURL: %s",
		statusText(e.Actual), statusText(e.Expected), e.URL)

	b.WriteString("\nHeaders:")
	keys := make([]string, 0, len(e.Header))
	for k := range e.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range e.Header[k] {
			if !utf8.ValidString(v) {
				v = headerNotPrintable
			}
			fmt.Fprintf(&b, "\n%s : %s", k, v)
		}
	}

	fmt.Fprintf(&b, "\nBody: %s", e.Body)
	return b.String()
}

// MalformedResponseError is returned when a response body or header can't be decoded.
type MalformedResponseError struct {
	URL string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func statusText(code int) string {
	if code == anyStatus {
		return "any non-rate-limited status"
	}
	if text := http.StatusText(code); text != "" {
		return fmt.Sprintf("%d %s", code, text)
	}
	return fmt.Sprintf("%d", code)
}
