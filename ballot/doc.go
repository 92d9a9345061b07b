// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballot implements the single-organizer ballot workflow and vote tally.

# Phases

A Process moves through six phases, one step at a time and never backwards:

	RegisteringVoters → ProposalsRegistrationStarted → ProposalsRegistrationEnded
	→ VotingSessionStarted → VotingSessionEnded → VotesTallied

Only the organizer given to New may register voters and advance the phase.
Registered voters submit proposals (ids 1..N in order) and cast one vote each.

	p, err := ballot.New("organizer")
	err = p.RegisterVoter("organizer", "alice")
	err = p.StartProposalRegistration("organizer")
	prop, err := p.RegisterProposal("alice", "Prop A")

# Tally

CountVotes counts every recorded vote and picks the proposal with the most
votes. Proposals are scanned by ascending id and a later proposal only takes
the lead with a strictly greater count, so ties resolve to the lowest id.

# Errors

Every failure wraps one of the sentinel errors (ErrUnauthorized,
ErrInvalidPhase, ErrAlreadyRegistered, ErrAlreadyVoted, ErrProposalNotFound,
ErrInvalidInput, ErrNotTalliedYet, ErrPersist). Match them with errors.Is.

# Notifications

Subscribe registers an Observer that receives a Change for every committed
phase transition, in call order:

	p.Subscribe(ballot.ObserverFunc(func(c ballot.Change) {
		slog.Info("status changed", "previous", int(c.Previous), "new", int(c.New))
	}))

# Persistence

Snapshot returns a consistent State; Restore validates a State and rebuilds the
Process from it.

SetPersister makes every mutation write through a Persister while the write
lock is held. If Persist fails the mutation is undone, observers are not
notified, and the error wraps ErrPersist, so a retry sees the old state.
*/
package ballot
