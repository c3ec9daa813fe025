// Package pagination parses GitHub's Link response header.
// Everything here is pure; no I/O.
package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	// ErrNoLastPage is returned when a Link header has no rel="last" entry.
	ErrNoLastPage = errors.New(`link header has no rel="last" entry`)
	// ErrBadPage is returned when the last link's page parameter is unusable.
	ErrBadPage = errors.New("link header has an unparsable page number")
)

// ParseLinks maps each relation name in a Link header to its URI.
// Entries look like `<https://api.github.com/notifications?page=2>; rel="next"`.
func ParseLinks(header string) map[string]string {
	links := make(map[string]string)

	for _, entry := range strings.Split(header, ",") {
		parts := strings.Split(entry, ";")
		if len(parts) < 2 {
			continue
		}

		uri := strings.TrimSpace(parts[0])
		if !strings.HasPrefix(uri, "<") || !strings.HasSuffix(uri, ">") {
			continue
		}
		uri = uri[1 : len(uri)-1]

		for _, param := range parts[1:] {
			key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || strings.TrimSpace(key) != "rel" {
				continue
			}
			// rel may hold several space-separated relation types
			for _, rel := range strings.Fields(strings.Trim(strings.TrimSpace(value), `"`)) {
				links[rel] = uri
			}
		}
	}

	return links
}

// LastPage returns the page query parameter of the rel="last" link.
func LastPage(header string) (int, error) {
	last, ok := ParseLinks(header)["last"]
	if !ok {
		return 0, ErrNoLastPage
	}

	u, err := url.Parse(last)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadPage, err)
	}

	page, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil || page < 1 {
		return 0, fmt.Errorf("%w: %q", ErrBadPage, last)
	}

	return page, nil
}
