// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation and ballot persistence.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables. The SQL
sticks to what PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite) both
accept, including $N placeholders and ON CONFLICT upserts.

# Tables

  - ballot: single row with organizer, status index and winner id
  - voter: registered voters in registration order
  - proposal: proposals by id with tallied vote counts
  - workflow_event: WorkflowStatusChange journal, one row per transition

# Store

Store saves and restores ballot snapshots:

	store := db.NewStore(conn)
	err := store.SaveState(ctx, process.Snapshot())
	state, found, err := store.LoadState(ctx)

It is also a ballot.Persister. Once attached, each mutation is saved in one
transaction together with its journal row, and a failed write undoes the
mutation:

	process.SetPersister(store)
	events, err := store.ListEvents(ctx)
*/
package db
