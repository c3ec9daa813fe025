// Package models contains the domain types for GitHub notification threads.
package models

import "fmt"

// ThreadID identifies a notification thread on GitHub.
type ThreadID uint64

// SubjectKind is the type of entity a notification is about.
type SubjectKind struct {
	name string
	raw  string // only set for KindUnknown
}

// Subject kinds
var (
	KindIssue       = SubjectKind{name: "Issue"}
	KindPullRequest = SubjectKind{name: "PullRequest"}
	KindCommit      = SubjectKind{name: "Commit"}
	KindDiscussion  = SubjectKind{name: "Discussion"}
)

// KindUnknown wraps a subject type string the API returned that we don't model.
func KindUnknown(raw string) SubjectKind {
	return SubjectKind{name: "Unknown", raw: raw}
}

// ParseSubjectKind maps the API's subject.type to a SubjectKind.
func ParseSubjectKind(s string) SubjectKind {
	switch s {
	case "Issue":
		return KindIssue
	case "PullRequest":
		return KindPullRequest
	case "Commit":
		return KindCommit
	case "Discussion":
		return KindDiscussion
	default:
		return KindUnknown(s)
	}
}

// IsUnknown reports whether the kind was not recognised.
func (k SubjectKind) IsUnknown() bool {
	return k.name == "Unknown"
}

// Raw returns the API's original type string.
func (k SubjectKind) Raw() string {
	if k.IsUnknown() {
		return k.raw
	}
	return k.name
}

// String returns the label used in listings.
func (k SubjectKind) String() string {
	switch k {
	case KindIssue:
		return "Issue"
	case KindPullRequest:
		return "Pull Request"
	case KindCommit:
		return "Commit"
	case KindDiscussion:
		return "Discussion"
	default:
		return k.raw
	}
}

// SubjectState is the open/closed state of an issue or pull request.
type SubjectState string

// Subject state constants
const (
	SubjectStateOpen   SubjectState = "open"
	SubjectStateClosed SubjectState = "closed"
)

// SubjectDetail is the per-subject data that the notification list doesn't carry.
type SubjectDetail struct {
	HTMLURL string
	State   *SubjectState // nil for commits
	Title   string
}

// Subscription is one unread notification thread.
// Everything except the detail cell is fixed once built.
type Subscription struct {
	ThreadID  ThreadID
	Title     string
	Kind      SubjectKind
	RepoName  string
	UpdatedAt string
	DetailURL string // empty for discussions

	detail DetailCell
}

// HasDetailEndpoint reports whether the subject exposes a detail resource.
func (s *Subscription) HasDetailEndpoint() bool {
	return s.DetailURL != "" && s.Kind != KindDiscussion
}

// Detail returns the subscription's detail cache cell.
func (s *Subscription) Detail() *DetailCell {
	return &s.detail
}

func (s *Subscription) String() string {
	return fmt.Sprintf("[%s] %s : %s (%d) at %s", s.Kind, s.RepoName, s.Title, s.ThreadID, s.UpdatedAt)
}
