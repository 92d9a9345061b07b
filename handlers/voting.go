// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballot-box/ballot"
	"github.com/danielhkuo/ballot-box/middleware"
	"github.com/danielhkuo/ballot-box/models"
)

type VotingHandler struct {
	process *ballot.Process
}

func NewVotingHandler(process *ballot.Process) *VotingHandler {
	return &VotingHandler{process: process}
}

// RegisterProposal handles POST /ballot/proposals
func (h *VotingHandler) RegisterProposal(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req models.RegisterProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	proposal, err := h.process.RegisterProposal(caller, req.Description)
	if err != nil {
		ballotError(w, err)
		return
	}

	slog.Info("proposal registered", "proposal_id", proposal.ID, "voter", caller)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterProposalResponse{
		ProposalID: proposal.ID,
	})
}

// Vote handles POST /ballot/votes
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.process.Vote(caller, req.ProposalID); err != nil {
		ballotError(w, err)
		return
	}

	// Voter identity is logged, the choice is not
	slog.Info("vote recorded", "voter", caller)

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		ProposalID: req.ProposalID,
		Message:    "Vote recorded",
	})
}
