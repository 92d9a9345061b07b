// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballot-box/ballot"
	"github.com/danielhkuo/ballot-box/middleware"
	"github.com/danielhkuo/ballot-box/models"
)

// statusForError maps ballot errors onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, ballot.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ballot.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ballot.ErrProposalNotFound):
		return http.StatusNotFound
	case errors.Is(err, ballot.ErrInvalidPhase),
		errors.Is(err, ballot.ErrAlreadyRegistered),
		errors.Is(err, ballot.ErrAlreadyVoted),
		errors.Is(err, ballot.ErrNotTalliedYet):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ballotError writes the response for an error returned by the ballot.
func ballotError(w http.ResponseWriter, err error) {
	if errors.Is(err, ballot.ErrPersist) {
		// the ballot undid the change, so the client may retry
		slog.Error("failed to save ballot state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save ballot, the change was not applied")
		return
	}

	status := statusForError(err)
	if status == http.StatusInternalServerError {
		slog.Error("unexpected ballot error", "error", err)
		middleware.ErrorResponse(w, status, "Internal error")
		return
	}
	middleware.ErrorResponse(w, status, err.Error())
}

func toVoterModel(v ballot.Voter) models.Voter {
	m := models.Voter{
		Identity:     v.Identity,
		IsRegistered: v.IsRegistered,
		HasVoted:     v.HasVoted,
	}
	if v.HasVoted {
		id := v.VotedProposalID
		m.VotedProposalID = &id
	}
	return m
}

func toProposalModel(p ballot.Proposal) models.Proposal {
	return models.Proposal{ID: p.ID, Description: p.Description, VoteCount: p.VoteCount}
}

func toProposalModels(proposals []ballot.Proposal) []models.Proposal {
	out := make([]models.Proposal, 0, len(proposals))
	for _, p := range proposals {
		out = append(out, toProposalModel(p))
	}
	return out
}
