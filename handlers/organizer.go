// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballot-box/auth"
	"github.com/danielhkuo/ballot-box/ballot"
	"github.com/danielhkuo/ballot-box/cliparse"
	"github.com/danielhkuo/ballot-box/middleware"
	"github.com/danielhkuo/ballot-box/models"
)

type OrganizerHandler struct {
	process *ballot.Process
	cfg     cliparse.Config
}

func NewOrganizerHandler(process *ballot.Process, cfg cliparse.Config) *OrganizerHandler {
	return &OrganizerHandler{process: process, cfg: cfg}
}

// RegisterVoter handles POST /ballot/voters
func (h *OrganizerHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.process.RegisterVoter(caller, req.Identity); err != nil {
		ballotError(w, err)
		return
	}

	slog.Info("voter registered", "identity", req.Identity)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVoterResponse{
		Identity:  req.Identity,
		CallerKey: auth.GenerateCallerKey(req.Identity, h.cfg.CallerKeySalt),
	})
}

// StartProposalRegistration handles POST /ballot/proposals-registration/start
func (h *OrganizerHandler) StartProposalRegistration(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.process.StartProposalRegistration)
}

// StopProposalRegistration handles POST /ballot/proposals-registration/stop
func (h *OrganizerHandler) StopProposalRegistration(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.process.StopProposalRegistration)
}

// StartVotingSession handles POST /ballot/voting-session/start
func (h *OrganizerHandler) StartVotingSession(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.process.StartVotingSession)
}

// StopVotingSession handles POST /ballot/voting-session/stop
func (h *OrganizerHandler) StopVotingSession(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.process.StopVotingSession)
}

func (h *OrganizerHandler) transition(w http.ResponseWriter, r *http.Request, advance func(caller string) error) {
	caller := middleware.CallerFromContext(r.Context())

	if err := advance(caller); err != nil {
		ballotError(w, err)
		return
	}

	status := h.process.Status()
	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		Status:      status.String(),
		StatusIndex: int(status),
	})
}

// CountVotes handles POST /ballot/tally
func (h *OrganizerHandler) CountVotes(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	winner, err := h.process.CountVotes(caller)
	if err != nil {
		ballotError(w, err)
		return
	}

	proposals := h.process.Proposals()
	total := 0
	for _, p := range proposals {
		total += p.VoteCount
	}

	slog.Info("votes tallied", "winner_id", winner.ID, "vote_count", winner.VoteCount, "total_votes", total)

	middleware.JSONResponse(w, http.StatusOK, models.TallyResponse{
		Winner:     toProposalModel(winner),
		Proposals:  toProposalModels(proposals),
		TotalVotes: total,
	})
}
