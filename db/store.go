// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballot-box/ballot"
)

// Event is one journaled WorkflowStatusChange.
type Event struct {
	ID         string
	Previous   ballot.Status
	New        ballot.Status
	OccurredAt time.Time
}

// Store persists ballot snapshots and the status change journal.
type Store struct {
	db  *sql.DB
	now func() time.Time

	saveMu sync.Mutex
}

// Snapshotter is implemented by *ballot.Process.
type Snapshotter interface {
	Snapshot() ballot.State
}

// Save snapshots src and writes it. The snapshot is taken under the save
// lock, so concurrent callers can never overwrite a newer state with an
// older one. Use it for a process with no Persister attached.
func (s *Store) Save(ctx context.Context, src Snapshotter) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.SaveState(ctx, src.Snapshot())
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// SaveState writes a snapshot in one transaction. Voters and proposals are
// never deleted, so rows are upserted.
func (s *Store) SaveState(ctx context.Context, st ballot.State) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.saveTx(ctx, tx, st)
	})
}

// Persist implements ballot.Persister. The snapshot and the journal row for
// change are written in the same transaction.
func (s *Store) Persist(st ballot.State, change *ballot.Change) error {
	ctx := context.Background()
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.saveTx(ctx, tx, st); err != nil {
			return err
		}
		if change == nil {
			return nil
		}
		ev, err := s.recordTx(ctx, tx, *change)
		if err != nil {
			return err
		}
		slog.Debug("status change journaled", "event_id", ev.ID,
			"previous_status", int(ev.Previous), "new_status", int(ev.New))
		return nil
	})
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) saveTx(ctx context.Context, tx *sql.Tx, st ballot.State) error {
	winner := sql.NullInt64{Int64: int64(st.WinnerID), Valid: st.WinnerID != 0}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO ballot (id, organizer, status, winner_id, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET organizer = excluded.organizer, status = excluded.status,
		    winner_id = excluded.winner_id, updated_at = excluded.updated_at
	`, st.Organizer, int(st.Status), winner, s.now())
	if err != nil {
		return fmt.Errorf("failed to save ballot: %w", err)
	}

	for i, v := range st.Voters {
		voted := sql.NullInt64{Int64: int64(v.VotedProposalID), Valid: v.HasVoted}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO voter (identity, position, is_registered, has_voted, voted_proposal_id)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (identity) DO UPDATE
			SET is_registered = excluded.is_registered, has_voted = excluded.has_voted,
			    voted_proposal_id = excluded.voted_proposal_id
		`, v.Identity, i, v.IsRegistered, v.HasVoted, voted)
		if err != nil {
			return fmt.Errorf("failed to save voter %s: %w", v.Identity, err)
		}
	}

	for _, p := range st.Proposals {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO proposal (id, description, vote_count)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE
			SET description = excluded.description, vote_count = excluded.vote_count
		`, p.ID, p.Description, p.VoteCount)
		if err != nil {
			return fmt.Errorf("failed to save proposal %d: %w", p.ID, err)
		}
	}
	return nil
}

// LoadState reads the saved snapshot. found is false when nothing was saved yet.
func (s *Store) LoadState(ctx context.Context) (st ballot.State, found bool, err error) {
	var status int
	var winner sql.NullInt64
	err = s.db.QueryRowContext(ctx, `
		SELECT organizer, status, winner_id FROM ballot WHERE id = 1
	`).Scan(&st.Organizer, &status, &winner)
	if err == sql.ErrNoRows {
		return ballot.State{}, false, nil
	}
	if err != nil {
		return ballot.State{}, false, fmt.Errorf("failed to query ballot: %w", err)
	}
	st.Status = ballot.Status(status)
	st.WinnerID = int(winner.Int64)

	if st.Voters, err = s.loadVoters(ctx); err != nil {
		return ballot.State{}, false, err
	}
	if st.Proposals, err = s.loadProposals(ctx); err != nil {
		return ballot.State{}, false, err
	}

	return st, true, nil
}

func (s *Store) loadVoters(ctx context.Context) ([]ballot.Voter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT identity, is_registered, has_voted, voted_proposal_id
		FROM voter
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	var voters []ballot.Voter
	for rows.Next() {
		var v ballot.Voter
		var voted sql.NullInt64
		if err := rows.Scan(&v.Identity, &v.IsRegistered, &v.HasVoted, &voted); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		v.VotedProposalID = int(voted.Int64)
		voters = append(voters, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read voters: %w", err)
	}
	return voters, nil
}

func (s *Store) loadProposals(ctx context.Context) ([]ballot.Proposal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, vote_count FROM proposal ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query proposals: %w", err)
	}
	defer rows.Close()

	var proposals []ballot.Proposal
	for rows.Next() {
		var p ballot.Proposal
		if err := rows.Scan(&p.ID, &p.Description, &p.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read proposals: %w", err)
	}
	return proposals, nil
}

// recordTx appends a status change to the journal. new_status is unique,
// so a transition can only be journaled once.
func (s *Store) recordTx(ctx context.Context, tx *sql.Tx, c ballot.Change) (Event, error) {
	ev := Event{
		ID:         uuid.NewString(),
		Previous:   c.Previous,
		New:        c.New,
		OccurredAt: s.now(),
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO workflow_event (id, previous_status, new_status, occurred_at)
		VALUES ($1, $2, $3, $4)
	`, ev.ID, int(ev.Previous), int(ev.New), ev.OccurredAt)
	if err != nil {
		return Event{}, fmt.Errorf("failed to record status change: %w", err)
	}
	return ev, nil
}

// ListEvents returns the journal in the order the changes happened.
func (s *Store) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, previous_status, new_status, occurred_at
		FROM workflow_event
		ORDER BY new_status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var ev Event
		var prev, next int
		if err := rows.Scan(&ev.ID, &prev, &next, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.Previous = ballot.Status(prev)
		ev.New = ballot.Status(next)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}
