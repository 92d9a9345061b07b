// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"fmt"
	"strings"
	"sync"
)

type Voter struct {
	Identity        string
	IsRegistered    bool
	HasVoted        bool
	VotedProposalID int // 0 until the voter has voted
}

type Proposal struct {
	ID          int
	Description string
	VoteCount   int
}

// Process is a single ballot run by one organizer. All mutations are
// serialized; queries return copies taken under a read lock.
type Process struct {
	mu sync.RWMutex

	organizer string
	status    Status
	voters    map[string]*Voter
	order     []string // voter identities in registration order
	proposals []Proposal
	winnerID  int

	subs      []subscription
	nextSubID int
	persister Persister
}

// New creates a ballot in the RegisteringVoters phase owned by organizer.
func New(organizer string) (*Process, error) {
	if strings.TrimSpace(organizer) == "" {
		return nil, fmt.Errorf("%w: organizer identity is required", ErrInvalidInput)
	}
	return &Process{
		organizer: organizer,
		status:    RegisteringVoters,
		voters:    make(map[string]*Voter),
	}, nil
}

// Organizer returns the identity allowed to drive phase transitions
func (p *Process) Organizer() string {
	return p.organizer
}

// requireOrganizer and requirePhase must be called with p.mu held.
func (p *Process) requireOrganizer(caller, op string) error {
	if caller != p.organizer {
		return fmt.Errorf("%w: %s is restricted to the organizer", ErrUnauthorized, op)
	}
	return nil
}

func (p *Process) requirePhase(want Status, op string) error {
	if p.status != want {
		return fmt.Errorf("%w: %s requires %s, current phase is %s", ErrInvalidPhase, op, want, p.status)
	}
	return nil
}

func (p *Process) registeredVoter(caller, op string) (*Voter, error) {
	v, ok := p.voters[caller]
	if !ok || !v.IsRegistered {
		return nil, fmt.Errorf("%w: %s is restricted to registered voters", ErrUnauthorized, op)
	}
	return v, nil
}

// advance moves from one phase to the next and notifies observers.
func (p *Process) advance(caller string, from Status, op string) error {
	if err := p.requireOrganizer(caller, op); err != nil {
		return err
	}
	if err := p.requirePhase(from, op); err != nil {
		return err
	}
	prev := p.stateLocked()
	return p.commit(prev, p.transition())
}

// transition moves to the next phase. Observers are notified by commit.
func (p *Process) transition() *Change {
	c := &Change{Previous: p.status, New: p.status + 1}
	p.status = c.New
	return c
}

// RegisterVoter adds identity to the electorate
func (p *Process) RegisterVoter(caller, identity string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.requireOrganizer(caller, "register voter"); err != nil {
		return err
	}
	if err := p.requirePhase(RegisteringVoters, "register voter"); err != nil {
		return err
	}
	if identity == "" {
		return fmt.Errorf("%w: voter identity is required", ErrInvalidInput)
	}
	if _, ok := p.voters[identity]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, identity)
	}

	prev := p.stateLocked()
	p.voters[identity] = &Voter{Identity: identity, IsRegistered: true}
	p.order = append(p.order, identity)
	return p.commit(prev, nil)
}

func (p *Process) StartProposalRegistration(caller string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.advance(caller, RegisteringVoters, "start proposal registration")
}

// RegisterProposal appends a proposal with the next sequential id.
func (p *Process) RegisterProposal(caller, description string) (Proposal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.registeredVoter(caller, "register proposal"); err != nil {
		return Proposal{}, err
	}
	if err := p.requirePhase(ProposalsRegistrationStarted, "register proposal"); err != nil {
		return Proposal{}, err
	}
	if strings.TrimSpace(description) == "" {
		return Proposal{}, fmt.Errorf("%w: proposal description is required", ErrInvalidInput)
	}

	prev := p.stateLocked()
	proposal := Proposal{ID: len(p.proposals) + 1, Description: description}
	p.proposals = append(p.proposals, proposal)
	if err := p.commit(prev, nil); err != nil {
		return Proposal{}, err
	}
	return proposal, nil
}

// StopProposalRegistration closes proposal intake. A ballot with no
// proposals cannot move on, so there is always a winner to tally.
func (p *Process) StopProposalRegistration(caller string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	const op = "stop proposal registration"
	if err := p.requireOrganizer(caller, op); err != nil {
		return err
	}
	if err := p.requirePhase(ProposalsRegistrationStarted, op); err != nil {
		return err
	}
	if len(p.proposals) == 0 {
		return fmt.Errorf("%w: %s requires at least one proposal", ErrInvalidPhase, op)
	}
	prev := p.stateLocked()
	return p.commit(prev, p.transition())
}

func (p *Process) StartVotingSession(caller string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.advance(caller, ProposalsRegistrationEnded, "start voting session")
}

// Vote records the caller's single vote. Counts are only computed by CountVotes.
func (p *Process) Vote(caller string, proposalID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, err := p.registeredVoter(caller, "vote")
	if err != nil {
		return err
	}
	if err := p.requirePhase(VotingSessionStarted, "vote"); err != nil {
		return err
	}
	if v.HasVoted {
		return fmt.Errorf("%w: %s voted for proposal %d", ErrAlreadyVoted, caller, v.VotedProposalID)
	}
	if proposalID < 1 || proposalID > len(p.proposals) {
		return fmt.Errorf("%w: %d", ErrProposalNotFound, proposalID)
	}

	prev := p.stateLocked()
	v.HasVoted = true
	v.VotedProposalID = proposalID
	return p.commit(prev, nil)
}

func (p *Process) StopVotingSession(caller string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.advance(caller, VotingSessionStarted, "stop voting session")
}

// CountVotes tallies every recorded vote, records the winner and moves the
// ballot to VotesTallied.
func (p *Process) CountVotes(caller string) (Proposal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	const op = "count votes"
	if err := p.requireOrganizer(caller, op); err != nil {
		return Proposal{}, err
	}
	if err := p.requirePhase(VotingSessionEnded, op); err != nil {
		return Proposal{}, err
	}

	prev := p.stateLocked()
	for i := range p.proposals {
		p.proposals[i].VoteCount = 0
	}
	for _, id := range p.order {
		if v := p.voters[id]; v.HasVoted {
			p.proposals[v.VotedProposalID-1].VoteCount++
		}
	}
	p.winnerID = selectWinner(p.proposals)

	if err := p.commit(prev, p.transition()); err != nil {
		return Proposal{}, err
	}
	return p.proposals[p.winnerID-1], nil
}

// selectWinner returns the id of the proposal with the most votes. Proposals
// are scanned in id order and only a strictly greater count replaces the
// current leader, so ties go to the lowest id.
func selectWinner(proposals []Proposal) int {
	winner := 0
	for i, prop := range proposals {
		if winner == 0 || prop.VoteCount > proposals[winner-1].VoteCount {
			winner = i + 1
		}
	}
	return winner
}

// Winner returns the proposal recorded by CountVotes.
func (p *Process) Winner() (Proposal, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.status != VotesTallied {
		return Proposal{}, fmt.Errorf("%w: current phase is %s", ErrNotTalliedYet, p.status)
	}
	return p.proposals[p.winnerID-1], nil
}

func (p *Process) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// Voter looks up a voter by identity.
func (p *Process) Voter(identity string) (Voter, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.voters[identity]
	if !ok {
		return Voter{}, false
	}
	return *v, true
}

// Voters returns all voters in registration order
func (p *Process) Voters() []Voter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.votersLocked()
}

func (p *Process) votersLocked() []Voter {
	voters := make([]Voter, 0, len(p.order))
	for _, id := range p.order {
		voters = append(voters, *p.voters[id])
	}
	return voters
}

func (p *Process) Proposal(id int) (Proposal, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if id < 1 || id > len(p.proposals) {
		return Proposal{}, fmt.Errorf("%w: %d", ErrProposalNotFound, id)
	}
	return p.proposals[id-1], nil
}

// Proposals returns all proposals ordered by id
func (p *Process) Proposals() []Proposal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Proposal(nil), p.proposals...)
}

func (p *Process) ProposalCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.proposals)
}
