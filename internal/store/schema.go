package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Every journal table carries the global sequence and a millisecond UTC
// timestamp in addition to its own columns.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS session_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		challenge_id TEXT NOT NULL,
		action TEXT NOT NULL,
		moves INTEGER NOT NULL DEFAULT 0,
		checks INTEGER NOT NULL DEFAULT 0,
		outcome TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS sessionevent_session_id ON session_events (session_id)`,
	`CREATE INDEX IF NOT EXISTS sessionevent_action ON session_events (action)`,
	`CREATE TABLE IF NOT EXISTS hint_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		challenge_id TEXT NOT NULL,
		hint_index INTEGER NOT NULL,
		cost INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS hintevent_session_id ON hint_events (session_id)`,
	`CREATE TABLE IF NOT EXISTS coin_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		kind TEXT NOT NULL,
		amount INTEGER NOT NULL,
		balance_after INTEGER NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		challenge_id TEXT NOT NULL DEFAULT '',
		session_id TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS coinevent_kind ON coin_events (kind)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
