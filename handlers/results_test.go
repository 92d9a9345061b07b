// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/ballot-box/ballot"
	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/testutil"
)

func TestGetStatus(t *testing.T) {
	env := newTestEnv(t)

	req := testutil.MakeRequest("GET", "/ballot/status", nil, nil)
	w := serve(env.cfg, env.results.GetStatus, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.StatusResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != "RegisteringVoters" || resp.StatusIndex != 0 {
		t.Errorf("Unexpected status: %+v", resp)
	}
}

func TestVoterQueries(t *testing.T) {
	env := newTestEnv(t)
	org := testutil.TestOrganizer
	env.process.RegisterVoter(org, "alice")
	env.process.RegisterVoter(org, "bob")
	advanceTo(t, env.process, ballot.ProposalsRegistrationStarted)
	env.process.RegisterProposal("alice", "Prop A")
	advanceTo(t, env.process, ballot.VotingSessionStarted)
	env.process.Vote("bob", 1)

	t.Run("list voters in registration order", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/ballot/voters", nil, nil)
		w := serve(env.cfg, env.results.ListVoters, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var voters []models.Voter
		testutil.AssertJSON(t, w, &voters)
		if len(voters) != 2 || voters[0].Identity != "alice" || voters[1].Identity != "bob" {
			t.Fatalf("Unexpected voters: %+v", voters)
		}
		if voters[0].VotedProposalID != nil {
			t.Errorf("alice has not voted but reports proposal %d", *voters[0].VotedProposalID)
		}
		if !voters[1].HasVoted || voters[1].VotedProposalID == nil || *voters[1].VotedProposalID != 1 {
			t.Errorf("Unexpected bob record: %+v", voters[1])
		}
	})

	tests := []struct {
		name           string
		identity       string
		expectedStatus int
	}{
		{"registered voter", "bob", http.StatusOK},
		{"unknown voter", "mallory", http.StatusNotFound},
		{"organizer is not a voter", org, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/ballot/voters/"+tt.identity, nil, nil)
			req.SetPathValue("identity", tt.identity)
			w := serve(env.cfg, env.results.GetVoter, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var voter models.Voter
				testutil.AssertJSON(t, w, &voter)
				if voter.Identity != tt.identity || !voter.IsRegistered {
					t.Errorf("Unexpected voter: %+v", voter)
				}
			}
		})
	}
}

func TestProposalQueries(t *testing.T) {
	env := newTestEnv(t)
	org := testutil.TestOrganizer
	env.process.RegisterVoter(org, "alice")
	advanceTo(t, env.process, ballot.ProposalsRegistrationStarted)
	env.process.RegisterProposal("alice", "Prop A")
	env.process.RegisterProposal("alice", "Prop B")

	t.Run("count", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/ballot/proposals/count", nil, nil)
		w := serve(env.cfg, env.results.GetProposalCount, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ProposalCountResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.ProposalCount != 2 {
			t.Errorf("Expected 2 proposals, got %d", resp.ProposalCount)
		}
	})

	t.Run("list", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/ballot/proposals", nil, nil)
		w := serve(env.cfg, env.results.ListProposals, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var proposals []models.Proposal
		testutil.AssertJSON(t, w, &proposals)
		if len(proposals) != 2 || proposals[0].ID != 1 || proposals[1].Description != "Prop B" {
			t.Errorf("Unexpected proposals: %+v", proposals)
		}
	})

	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{"first proposal", "1", http.StatusOK},
		{"last proposal", "2", http.StatusOK},
		{"zero", "0", http.StatusNotFound},
		{"out of range", "3", http.StatusNotFound},
		{"negative", "-1", http.StatusNotFound},
		{"not a number", "abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/ballot/proposals/"+tt.id, nil, nil)
			req.SetPathValue("id", tt.id)
			w := serve(env.cfg, env.results.GetProposal, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestGetWinner(t *testing.T) {
	env := newTestEnv(t)
	org := testutil.TestOrganizer
	env.process.RegisterVoter(org, "alice")
	advanceTo(t, env.process, ballot.ProposalsRegistrationStarted)
	env.process.RegisterProposal("alice", "Prop A")
	env.process.RegisterProposal("alice", "Prop B")
	advanceTo(t, env.process, ballot.VotingSessionStarted)
	env.process.Vote("alice", 2)
	advanceTo(t, env.process, ballot.VotingSessionEnded)

	req := testutil.MakeRequest("GET", "/ballot/winner", nil, nil)
	w := serve(env.cfg, env.results.GetWinner, req)
	testutil.AssertStatus(t, w, http.StatusConflict)

	advanceTo(t, env.process, ballot.VotesTallied)

	req = testutil.MakeRequest("GET", "/ballot/winner", nil, nil)
	w = serve(env.cfg, env.results.GetWinner, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var winner models.Proposal
	testutil.AssertJSON(t, w, &winner)
	if winner.ID != 2 || winner.Description != "Prop B" || winner.VoteCount != 1 {
		t.Errorf("Unexpected winner: %+v", winner)
	}
}

func TestListEvents(t *testing.T) {
	env := newTestEnv(t)

	req := testutil.MakeRequest("GET", "/ballot/events", nil, nil)
	w := serve(env.cfg, env.results.ListEvents, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var events []models.WorkflowStatusChange
	testutil.AssertJSON(t, w, &events)
	if len(events) != 0 {
		t.Fatalf("Expected no events, got %d", len(events))
	}

	advanceTo(t, env.process, ballot.ProposalsRegistrationStarted)

	req = testutil.MakeRequest("GET", "/ballot/events", nil, nil)
	w = serve(env.cfg, env.results.ListEvents, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &events)

	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.PreviousStatus != 0 || ev.NewStatus != 1 {
		t.Errorf("Expected transition (0, 1), got (%d, %d)", ev.PreviousStatus, ev.NewStatus)
	}
	if ev.ID == "" || ev.Occurred == "" || ev.OccurredAt.IsZero() {
		t.Errorf("Event is missing fields: %+v", ev)
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{ballot.ErrUnauthorized, http.StatusForbidden},
		{ballot.ErrInvalidInput, http.StatusBadRequest},
		{ballot.ErrProposalNotFound, http.StatusNotFound},
		{ballot.ErrInvalidPhase, http.StatusConflict},
		{ballot.ErrAlreadyRegistered, http.StatusConflict},
		{ballot.ErrAlreadyVoted, http.StatusConflict},
		{ballot.ErrNotTalliedYet, http.StatusConflict},
		{http.ErrAbortHandler, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.expected {
				t.Errorf("statusForError(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}
