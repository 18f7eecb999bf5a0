// Package storage persists enriched signals in an embedded SQLite database.
// All writes go through a single exclusive connection; analytical reads use
// a separate read-only connection so long queries never block ingest.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS signals (
	link            TEXT PRIMARY KEY,
	content_hash    TEXT NOT NULL,
	source          TEXT NOT NULL,
	first_seen_at   TIMESTAMP NOT NULL,
	last_seen_at    TIMESTAMP NOT NULL,
	repost_count    INTEGER NOT NULL DEFAULT 1,
	title           TEXT NOT NULL,
	company         TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	benefits_text   TEXT NOT NULL DEFAULT '',
	min_salary      INTEGER,
	max_salary      INTEGER,
	avg_salary      INTEGER,
	has_bonus       BOOLEAN NOT NULL DEFAULT 0,
	has_13th_salary BOOLEAN NOT NULL DEFAULT 0,
	bonus_amount    INTEGER,
	role_type       TEXT NOT NULL DEFAULT 'Other',
	seniority_level TEXT NOT NULL DEFAULT 'Mid',
	tech_status     TEXT NOT NULL DEFAULT 'Stable',
	benefits        TEXT NOT NULL DEFAULT '[]',
	skills          TEXT NOT NULL DEFAULT '[]',
	work_model      TEXT NOT NULL DEFAULT 'Unclear',
	toxicity_score  INTEGER NOT NULL DEFAULT 0,
	ghost_score     INTEGER NOT NULL DEFAULT 0,
	ai_washing_flag BOOLEAN NOT NULL DEFAULT 0,
	legal_flags     TEXT NOT NULL DEFAULT '[]',
	region          TEXT NOT NULL DEFAULT 'Other',
	city            TEXT NOT NULL DEFAULT '',
	contract_type   TEXT NOT NULL DEFAULT 'Other'
);

CREATE INDEX IF NOT EXISTS idx_signals_hash ON signals(content_hash);
CREATE INDEX IF NOT EXISTS idx_signals_last_seen ON signals(last_seen_at);
CREATE INDEX IF NOT EXISTS idx_signals_role ON signals(role_type);
CREATE INDEX IF NOT EXISTS idx_signals_source ON signals(source);
`

// openWriter opens the exclusive write connection and applies the schema.
// WAL mode lets the read-only connection see committed writes immediately.
func openWriter(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", dir, err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}

	// One connection only. SQLite allows a single writer anyway; a pool of
	// one turns write contention into queueing instead of SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return db, nil
}

// openReader opens the read-only analytics connection.
func openReader(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open read-only store %s: %w", path, err)
	}
	return db, nil
}
