// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidPhase      = errors.New("invalid phase")
	ErrAlreadyRegistered = errors.New("voter already registered")
	ErrAlreadyVoted      = errors.New("voter already voted")
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotTalliedYet     = errors.New("votes not tallied yet")

	// ErrPersist wraps a Persister failure. The mutation was undone.
	ErrPersist = errors.New("ballot state could not be saved")
)
