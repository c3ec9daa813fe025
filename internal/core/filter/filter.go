// Package filter contains the pure stages of the notification filter pipeline.
// Stages never mutate their input; each returns a new, narrower slice in input order.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/example/ghnf/internal/models"
)

// Filters is the selection configuration for one invocation.
type Filters struct {
	Regex      *regexp.Regexp      // nil: no title filter
	Kind       *models.SubjectKind // nil: any kind
	Limit      int                 // 0: no cap
	Ignore     map[models.ThreadID]struct{}
	ClosedOnly bool // keep closed issues/PRs and commits only
}

// IgnoreSet builds the ignore set from a list of thread ids.
func IgnoreSet(ids []models.ThreadID) map[models.ThreadID]struct{} {
	set := make(map[models.ThreadID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// CompileRegex joins patterns into one case-insensitive alternation.
// Returns nil when there are no patterns.
func CompileRegex(patterns []string) (*regexp.Regexp, error) {
	var parts []string
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		parts = append(parts, "(?:"+p+")")
	}
	if len(parts) == 0 {
		return nil, nil
	}

	re, err := regexp.Compile("(?i)" + strings.Join(parts, "|"))
	if err != nil {
		return nil, fmt.Errorf("invalid filter regex: %w", err)
	}
	return re, nil
}

// Ignored drops subscriptions whose thread id is in the ignore set.
func Ignored(ss []*models.Subscription, ignore map[models.ThreadID]struct{}) []*models.Subscription {
	return keep(ss, func(s *models.Subscription) bool {
		_, skip := ignore[s.ThreadID]
		return !skip
	})
}

// ByRegex keeps subscriptions whose title matches re. A nil re keeps everything.
func ByRegex(ss []*models.Subscription, re *regexp.Regexp) []*models.Subscription {
	if re == nil {
		return keep(ss, func(*models.Subscription) bool { return true })
	}
	return keep(ss, func(s *models.Subscription) bool {
		return re.MatchString(s.Title)
	})
}

// ByKind keeps subscriptions of the given kind. A nil kind keeps everything.
// Unknown kinds never match a restriction.
func ByKind(ss []*models.Subscription, kind *models.SubjectKind) []*models.Subscription {
	if kind == nil {
		return keep(ss, func(*models.Subscription) bool { return true })
	}
	return keep(ss, func(s *models.Subscription) bool {
		return !s.Kind.IsUnknown() && s.Kind == *kind
	})
}

// Cap truncates to at most n entries, preserving order. n <= 0 means no cap.
func Cap(ss []*models.Subscription, n int) []*models.Subscription {
	if n <= 0 || n >= len(ss) {
		return keep(ss, func(*models.Subscription) bool { return true })
	}
	out := make([]*models.Subscription, n)
	copy(out, ss[:n])
	return out
}

// Narrow runs the cheap stages in order: ignore-list, regex, kind.
func Narrow(ss []*models.Subscription, f Filters) []*models.Subscription {
	ss = Ignored(ss, f.Ignore)
	ss = ByRegex(ss, f.Regex)
	return ByKind(ss, f.Kind)
}

// NeedsState reports whether the closed-only stage must resolve s's detail.
// Commits are always eligible; discussions and unknown kinds never are.
func NeedsState(s *models.Subscription) bool {
	if s.Kind == models.KindCommit || s.Kind == models.KindDiscussion || s.Kind.IsUnknown() {
		return false
	}
	return s.HasDetailEndpoint()
}

// Removable decides the closed-only stage for one subscription given its
// resolved state (nil when no state was resolved).
func Removable(s *models.Subscription, state *models.SubjectState) bool {
	if s.Kind == models.KindCommit {
		return true
	}
	if !NeedsState(s) {
		return false
	}
	return state != nil && *state == models.SubjectStateClosed
}

func keep(ss []*models.Subscription, pred func(*models.Subscription) bool) []*models.Subscription {
	out := make([]*models.Subscription, 0, len(ss))
	for _, s := range ss {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}
