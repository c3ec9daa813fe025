// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/ghnf/internal/ports/secondary"
)

// MutationHistoryRepository implements secondary.MutationHistoryRepository with SQLite.
type MutationHistoryRepository struct {
	db *sql.DB
}

// NewMutationHistoryRepository creates a new SQLite mutation history repository.
func NewMutationHistoryRepository(db *sql.DB) *MutationHistoryRepository {
	return &MutationHistoryRepository{db: db}
}

// Create persists a mutation record and fills in its ID.
func (r *MutationHistoryRepository) Create(ctx context.Context, record *secondary.MutationRecord) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO mutation_history (run_id, thread_id, repo_name, title, kind, action) VALUES (?, ?, ?, ?, ?, ?)",
		record.RunID, int64(record.ThreadID), record.RepoName, record.Title, record.Kind, record.Action,
	)
	if err != nil {
		return fmt.Errorf("failed to create mutation record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get mutation record id: %w", err)
	}
	record.ID = id

	return nil
}

// List retrieves mutation records matching the given filters, newest first.
func (r *MutationHistoryRepository) List(ctx context.Context, filters secondary.MutationFilters) ([]*secondary.MutationRecord, error) {
	query := "SELECT id, run_id, thread_id, repo_name, title, kind, action, created_at FROM mutation_history WHERE 1=1"
	args := []any{}

	if filters.RunID != "" {
		query += " AND run_id = ?"
		args = append(args, filters.RunID)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list mutation records: %w", err)
	}
	defer rows.Close()

	var records []*secondary.MutationRecord
	for rows.Next() {
		var (
			threadID  int64
			createdAt time.Time
		)
		record := &secondary.MutationRecord{}
		if err := rows.Scan(&record.ID, &record.RunID, &threadID, &record.RepoName, &record.Title, &record.Kind, &record.Action, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan mutation record: %w", err)
		}
		record.ThreadID = uint64(threadID)
		record.CreatedAt = createdAt.Format(time.RFC3339)
		records = append(records, record)
	}

	return records, rows.Err()
}

// Ensure MutationHistoryRepository implements the interface
var _ secondary.MutationHistoryRepository = (*MutationHistoryRepository)(nil)
