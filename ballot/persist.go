// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import "fmt"

// Persister durably stores the state produced by a mutation. change is
// non-nil when the mutation moved the ballot to its next phase, and must be
// stored together with st.
type Persister interface {
	Persist(st State, change *Change) error
}

// SetPersister makes every mutation write through ps before it takes effect.
// A mutation whose state cannot be persisted is undone and returns an error
// wrapping ErrPersist.
func (p *Process) SetPersister(ps Persister) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.persister = ps
}

func (p *Process) stateLocked() State {
	return State{
		Organizer: p.organizer,
		Status:    p.status,
		Voters:    p.votersLocked(),
		Proposals: append([]Proposal(nil), p.proposals...),
		WinnerID:  p.winnerID,
	}
}

// loadLocked puts the process back to a state it produced earlier.
func (p *Process) loadLocked(s State) {
	p.status = s.Status
	p.voters = make(map[string]*Voter, len(s.Voters))
	p.order = p.order[:0]
	for _, v := range s.Voters {
		voter := v
		p.voters[v.Identity] = &voter
		p.order = append(p.order, v.Identity)
	}
	p.proposals = s.Proposals
	p.winnerID = s.WinnerID
}

// commit persists the mutated process and then notifies observers of
// change. On a persist failure the process is reset to prev and observers
// hear nothing.
func (p *Process) commit(prev State, change *Change) error {
	if p.persister != nil {
		if err := p.persister.Persist(p.stateLocked(), change); err != nil {
			p.loadLocked(prev)
			return fmt.Errorf("%w: %w", ErrPersist, err)
		}
	}
	if change != nil {
		p.notify(*change)
	}
	return nil
}
