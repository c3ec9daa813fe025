package secondary

import "context"

// MutationHistoryRepository defines the secondary port for the mutation audit trail.
type MutationHistoryRepository interface {
	// Create records one completed mutation.
	Create(ctx context.Context, record *MutationRecord) error

	// List retrieves records matching filters, newest first.
	List(ctx context.Context, filters MutationFilters) ([]*MutationRecord, error)
}

// MutationRecord represents one completed unsubscribe as stored in persistence.
type MutationRecord struct {
	ID        int64
	RunID     string
	ThreadID  uint64
	RepoName  string
	Title     string
	Kind      string
	Action    string
	CreatedAt string
}

// MutationFilters contains filter options for querying the history.
type MutationFilters struct {
	RunID string
	Limit int
}

// Mutation actions
const (
	ActionUnsubscribed = "unsubscribed"
)
