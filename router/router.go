// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/ballot-box/ballot"
	"github.com/danielhkuo/ballot-box/cliparse"
	"github.com/danielhkuo/ballot-box/db"
	"github.com/danielhkuo/ballot-box/handlers"
	"github.com/danielhkuo/ballot-box/middleware"
)

func NewRouter(process *ballot.Process, store *db.Store, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	organizerHandler := handlers.NewOrganizerHandler(process, cfg)
	votingHandler := handlers.NewVotingHandler(process)
	resultsHandler := handlers.NewResultsHandler(process, store)

	// Every ballot route logs and resolves the caller
	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.WithCaller(cfg.CallerKeySalt, h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Organizer operations
	route("POST /ballot/voters", organizerHandler.RegisterVoter)
	route("POST /ballot/proposals-registration/start", organizerHandler.StartProposalRegistration)
	route("POST /ballot/proposals-registration/stop", organizerHandler.StopProposalRegistration)
	route("POST /ballot/voting-session/start", organizerHandler.StartVotingSession)
	route("POST /ballot/voting-session/stop", organizerHandler.StopVotingSession)
	route("POST /ballot/tally", organizerHandler.CountVotes)

	// Voter operations
	route("POST /ballot/proposals", votingHandler.RegisterProposal)
	route("POST /ballot/votes", votingHandler.Vote)

	// Queries (public)
	route("GET /ballot/status", resultsHandler.GetStatus)
	route("GET /ballot/voters", resultsHandler.ListVoters)
	route("GET /ballot/voters/{identity}", resultsHandler.GetVoter)
	route("GET /ballot/proposals", resultsHandler.ListProposals)
	route("GET /ballot/proposals/count", resultsHandler.GetProposalCount)
	route("GET /ballot/proposals/{id}", resultsHandler.GetProposal)
	route("GET /ballot/winner", resultsHandler.GetWinner)
	route("GET /ballot/events", resultsHandler.ListEvents)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballot-box API v1"))
	})

	return middleware.CORS(mux)
}
