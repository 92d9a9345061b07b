// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ballot-box API.

# Handler Types

Each handler is a struct holding the ballot and only what else it reads:

  - OrganizerHandler: Voter registration and phase transitions (config, for caller keys)
  - VotingHandler: Proposal registration and voting
  - ResultsHandler: Status, voters, proposals, winner and events (store, for the journal)

	organizerHandler := handlers.NewOrganizerHandler(process, cfg)

# Callers

Handlers read the caller identity resolved by middleware.WithCaller. An
anonymous caller is rejected by the ballot itself, never by the handler.

# Persistence

The ballot writes every mutation through its Persister (db.Store) before
the change takes effect, with phase transitions journaled in the same
transaction. A failed write undoes the change and surfaces as
ballot.ErrPersist, which handlers answer with 500; a retry then runs
against the unchanged ballot.

# Errors

Ballot errors map onto status codes:

	ErrUnauthorized                       403
	ErrInvalidInput                       400
	ErrProposalNotFound                   404
	ErrInvalidPhase, ErrAlreadyRegistered 409
	ErrAlreadyVoted, ErrNotTalliedYet     409
*/
package handlers
