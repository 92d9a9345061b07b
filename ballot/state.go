// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"fmt"
	"strings"
)

// State is a point-in-time copy of a Process, used to persist and restore it.
type State struct {
	Organizer string
	Status    Status
	Voters    []Voter    // registration order
	Proposals []Proposal // id order
	WinnerID  int        // 0 until votes are tallied
}

// Snapshot returns a consistent copy of the whole process.
func (p *Process) Snapshot() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stateLocked()
}

// Restore rebuilds a Process from a saved State. The state is checked
// against every invariant the live process maintains.
func Restore(s State) (*Process, error) {
	p, err := New(s.Organizer)
	if err != nil {
		return nil, err
	}
	if !s.Status.Valid() {
		return nil, fmt.Errorf("%w: status %d out of range", ErrInvalidInput, int(s.Status))
	}
	if s.Status >= ProposalsRegistrationEnded && len(s.Proposals) == 0 {
		return nil, fmt.Errorf("%w: %s with no proposals", ErrInvalidInput, s.Status)
	}

	for i, prop := range s.Proposals {
		if prop.ID != i+1 {
			return nil, fmt.Errorf("%w: proposal at position %d has id %d", ErrInvalidInput, i+1, prop.ID)
		}
		if strings.TrimSpace(prop.Description) == "" {
			return nil, fmt.Errorf("%w: proposal %d has no description", ErrInvalidInput, prop.ID)
		}
	}

	counts := make([]int, len(s.Proposals))
	for _, v := range s.Voters {
		if v.Identity == "" || !v.IsRegistered {
			return nil, fmt.Errorf("%w: voter %q is not registered", ErrInvalidInput, v.Identity)
		}
		if _, dup := p.voters[v.Identity]; dup {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyRegistered, v.Identity)
		}
		if v.HasVoted {
			if s.Status < VotingSessionStarted {
				return nil, fmt.Errorf("%w: voter %s voted during %s", ErrInvalidInput, v.Identity, s.Status)
			}
			if v.VotedProposalID < 1 || v.VotedProposalID > len(s.Proposals) {
				return nil, fmt.Errorf("%w: voter %s references proposal %d", ErrProposalNotFound, v.Identity, v.VotedProposalID)
			}
			counts[v.VotedProposalID-1]++
		} else if v.VotedProposalID != 0 {
			return nil, fmt.Errorf("%w: voter %s has a proposal but no vote", ErrInvalidInput, v.Identity)
		}

		voter := v
		p.voters[v.Identity] = &voter
		p.order = append(p.order, v.Identity)
	}

	p.proposals = append([]Proposal(nil), s.Proposals...)
	for i := range p.proposals {
		want := 0
		if s.Status == VotesTallied {
			want = counts[i]
		}
		if p.proposals[i].VoteCount != want {
			return nil, fmt.Errorf("%w: proposal %d has %d votes, expected %d", ErrInvalidInput, i+1, p.proposals[i].VoteCount, want)
		}
	}

	if s.Status == VotesTallied {
		if s.WinnerID != selectWinner(p.proposals) {
			return nil, fmt.Errorf("%w: recorded winner %d does not match the tally", ErrInvalidInput, s.WinnerID)
		}
		p.winnerID = s.WinnerID
	} else if s.WinnerID != 0 {
		return nil, fmt.Errorf("%w: winner recorded before tally", ErrInvalidInput)
	}

	p.status = s.Status
	return p, nil
}
