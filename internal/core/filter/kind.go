package filter

import (
	"fmt"
	"strings"

	"github.com/example/ghnf/internal/models"
)

// KindNames lists the values accepted by ParseKind.
var KindNames = []string{"commit", "issue", "pr", "discussion"}

// ParseKind maps a command-line kind name to a SubjectKind.
func ParseKind(s string) (models.SubjectKind, error) {
	switch strings.ToLower(s) {
	case "commit":
		return models.KindCommit, nil
	case "issue":
		return models.KindIssue, nil
	case "pr", "pullrequest":
		return models.KindPullRequest, nil
	case "discussion":
		return models.KindDiscussion, nil
	default:
		return models.SubjectKind{}, fmt.Errorf("unknown kind %q (expected one of %s)", s, strings.Join(KindNames, ", "))
	}
}
