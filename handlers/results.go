// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/ballot-box/ballot"
	"github.com/danielhkuo/ballot-box/db"
	"github.com/danielhkuo/ballot-box/middleware"
	"github.com/danielhkuo/ballot-box/models"
)

type ResultsHandler struct {
	process *ballot.Process
	store   *db.Store
}

func NewResultsHandler(process *ballot.Process, store *db.Store) *ResultsHandler {
	return &ResultsHandler{process: process, store: store}
}

// GetStatus handles GET /ballot/status
func (h *ResultsHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status := h.process.Status()
	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		Status:      status.String(),
		StatusIndex: int(status),
	})
}

// ListVoters handles GET /ballot/voters
func (h *ResultsHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	voters := h.process.Voters()
	out := make([]models.Voter, 0, len(voters))
	for _, v := range voters {
		out = append(out, toVoterModel(v))
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// GetVoter handles GET /ballot/voters/{identity}
func (h *ResultsHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	identity := r.PathValue("identity")
	if identity == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identity is required")
		return
	}

	voter, ok := h.process.Voter(identity)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, toVoterModel(voter))
}

// ListProposals handles GET /ballot/proposals
// Vote counts read 0 until the votes are tallied
func (h *ResultsHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, toProposalModels(h.process.Proposals()))
}

// GetProposalCount handles GET /ballot/proposals/count
func (h *ResultsHandler) GetProposalCount(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.ProposalCountResponse{
		ProposalCount: h.process.ProposalCount(),
	})
}

// GetProposal handles GET /ballot/proposals/{id}
func (h *ResultsHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal id must be an integer")
		return
	}

	proposal, err := h.process.Proposal(id)
	if err != nil {
		ballotError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, toProposalModel(proposal))
}

// GetWinner handles GET /ballot/winner
// Returns 409 until the votes are tallied
func (h *ResultsHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	winner, err := h.process.Winner()
	if err != nil {
		ballotError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, toProposalModel(winner))
}

// ListEvents handles GET /ballot/events
// Returns the WorkflowStatusChange journal, oldest first
func (h *ResultsHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.ListEvents(r.Context())
	if err != nil {
		slog.Error("failed to list events", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	out := make([]models.WorkflowStatusChange, 0, len(events))
	for _, ev := range events {
		out = append(out, models.WorkflowStatusChange{
			ID:             ev.ID,
			PreviousStatus: int(ev.Previous),
			NewStatus:      int(ev.New),
			OccurredAt:     ev.OccurredAt,
			Occurred:       humanize.Time(ev.OccurredAt),
		})
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}
