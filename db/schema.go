// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The statements are kept to the subset shared by PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

var schema = []string{
	// Ballot (single row)
	`CREATE TABLE IF NOT EXISTS ballot (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    organizer TEXT NOT NULL,
    status INTEGER NOT NULL CHECK (status BETWEEN 0 AND 5),
    winner_id INTEGER,
    updated_at TIMESTAMP NOT NULL
)`,

	// Voters
	`CREATE TABLE IF NOT EXISTS voter (
    identity TEXT PRIMARY KEY,
    position INTEGER NOT NULL UNIQUE,
    is_registered BOOLEAN NOT NULL,
    has_voted BOOLEAN NOT NULL,
    voted_proposal_id INTEGER
)`,

	// Proposals
	`CREATE TABLE IF NOT EXISTS proposal (
    id INTEGER PRIMARY KEY,
    description TEXT NOT NULL,
    vote_count INTEGER NOT NULL DEFAULT 0 CHECK (vote_count >= 0)
)`,

	// WorkflowStatusChange journal
	`CREATE TABLE IF NOT EXISTS workflow_event (
    id TEXT PRIMARY KEY,
    previous_status INTEGER NOT NULL,
    new_status INTEGER NOT NULL UNIQUE,
    occurred_at TIMESTAMP NOT NULL
)`,
}
