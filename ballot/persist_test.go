// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"
	"reflect"
	"testing"
)

var errDiskFull = errors.New("disk full")

// flakyPersister records what it was given and fails while fail is set
type flakyPersister struct {
	fail    bool
	states  []State
	changes []Change
}

func (f *flakyPersister) Persist(st State, change *Change) error {
	if f.fail {
		return errDiskFull
	}
	f.states = append(f.states, st)
	if change != nil {
		f.changes = append(f.changes, *change)
	}
	return nil
}

func TestPersisterSeesEveryMutation(t *testing.T) {
	p := newTestProcess(t)
	fp := &flakyPersister{}
	p.SetPersister(fp)

	openVoting(t, p, []string{"alice", "bob"}, []string{"Prop A", "Prop B"})
	if err := p.Vote("alice", 2); err != nil {
		t.Fatal(err)
	}

	// 2 voters, start, 2 proposals, stop, start voting, 1 vote
	if len(fp.states) != 8 {
		t.Errorf("got %d persisted states, want 8", len(fp.states))
	}
	if len(fp.changes) != 3 {
		t.Errorf("got %d persisted changes, want 3", len(fp.changes))
	}
	if last := fp.states[len(fp.states)-1]; !reflect.DeepEqual(last, p.Snapshot()) {
		t.Errorf("last persisted state %+v, want %+v", last, p.Snapshot())
	}
}

func TestPersistFailureUndoesMutation(t *testing.T) {
	registering := func(t *testing.T, p *Process) { p.RegisterVoter(organizer, "alice") }
	voting := func(t *testing.T, p *Process) { openVoting(t, p, []string{"alice"}, []string{"Prop A"}) }

	tests := []struct {
		name   string
		setup  func(t *testing.T, p *Process)
		mutate func(p *Process) error
	}{
		{"register voter", registering, func(p *Process) error { return p.RegisterVoter(organizer, "carol") }},
		{"start proposals", registering, func(p *Process) error { return p.StartProposalRegistration(organizer) }},
		{"vote", voting, func(p *Process) error { return p.Vote("alice", 1) }},
		{"stop voting", voting, func(p *Process) error { return p.StopVotingSession(organizer) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProcess(t)
			fp := &flakyPersister{}
			p.SetPersister(fp)

			tt.setup(t, p)

			var notified []Change
			p.Subscribe(ObserverFunc(func(c Change) { notified = append(notified, c) }))

			before := p.Snapshot()
			fp.fail = true
			err := tt.mutate(p)
			if !errors.Is(err, ErrPersist) || !errors.Is(err, errDiskFull) {
				t.Fatalf("error = %v, want ErrPersist wrapping the persister error", err)
			}
			if after := p.Snapshot(); !reflect.DeepEqual(after, before) {
				t.Errorf("state changed by a failed mutation:\n got %+v\nwant %+v", after, before)
			}
			if len(notified) != 0 {
				t.Errorf("observers notified of an undone transition: %v", notified)
			}

			// the same call succeeds once the persister recovers
			fp.fail = false
			if err := tt.mutate(p); err != nil {
				t.Errorf("retry error = %v", err)
			}
		})
	}
}

func TestPersistFailureDuringTally(t *testing.T) {
	p := newTestProcess(t)
	fp := &flakyPersister{}
	p.SetPersister(fp)

	openVoting(t, p, []string{"alice", "bob"}, []string{"Prop A", "Prop B"})
	p.Vote("alice", 2)
	p.Vote("bob", 2)
	p.StopVotingSession(organizer)

	fp.fail = true
	if _, err := p.CountVotes(organizer); !errors.Is(err, ErrPersist) {
		t.Fatalf("CountVotes() error = %v, want ErrPersist", err)
	}
	for _, prop := range p.Proposals() {
		if prop.VoteCount != 0 {
			t.Errorf("proposal %d kept %d votes from the undone tally", prop.ID, prop.VoteCount)
		}
	}
	if _, err := p.Winner(); !errors.Is(err, ErrNotTalliedYet) {
		t.Errorf("Winner() error = %v, want ErrNotTalliedYet", err)
	}

	fp.fail = false
	winner, err := p.CountVotes(organizer)
	if err != nil || winner.ID != 2 || winner.VoteCount != 2 {
		t.Errorf("CountVotes() = %+v, %v", winner, err)
	}
}
