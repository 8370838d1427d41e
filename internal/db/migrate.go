package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies every schema statement in order. Statements are written to
// be re-runnable, so Migrate is safe to call on an existing database.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id          TEXT PRIMARY KEY,
		owner_id    TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_owner ON plans(owner_id)`,

	`CREATE TABLE IF NOT EXISTS subgoals (
		id          TEXT PRIMARY KEY,
		plan_id     TEXT NOT NULL DEFAULT '',
		owner_id    TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL CHECK(name != ''),
		description TEXT NOT NULL CHECK(description != ''),
		deadline    TEXT,
		completed   INTEGER NOT NULL DEFAULT 0,
		priority    INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_subgoals_plan ON subgoals(plan_id)`,

	// No foreign key on subgoal_id: entries outlive the subgoal they were
	// asked about.
	`CREATE TABLE IF NOT EXISTS qna_entries (
		id         TEXT PRIMARY KEY,
		subgoal_id TEXT NOT NULL,
		seq        INTEGER NOT NULL,
		question   TEXT NOT NULL,
		answer     TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		UNIQUE(subgoal_id, seq)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_qna_entries_subgoal ON qna_entries(subgoal_id, seq)`,
}
