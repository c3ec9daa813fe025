package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh installs.
// It reflects the state after all migrations.
//
// Tests load it through GetSchemaSQL() so the repositories are always
// exercised against the same tables a real install has. When adding a
// column or table:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- One row per completed unsubscribe
CREATE TABLE IF NOT EXISTS mutation_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	thread_id INTEGER NOT NULL,
	repo_name TEXT NOT NULL,
	title TEXT NOT NULL,
	kind TEXT NOT NULL,
	action TEXT NOT NULL CHECK (action IN ('unsubscribed')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_mutation_history_run_id ON mutation_history(run_id);
CREATE INDEX IF NOT EXISTS idx_mutation_history_created_at ON mutation_history(created_at);
`

const schemaVersionSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// InitSchema creates the schema on a fresh database, or runs pending migrations on an existing one.
func InitSchema(conn *sql.DB) error {
	var tableCount int
	err := conn.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('mutation_history', 'schema_version')",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	if tableCount > 0 {
		return RunMigrations(conn)
	}

	// Fresh install: create the modern schema and mark every migration as applied
	if _, err := conn.Exec(SchemaSQL); err != nil {
		return err
	}
	if _, err := conn.Exec(schemaVersionSQL); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := conn.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
