// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/votebox/cliparse"
	"github.com/danielhkuo/votebox/election"
	"github.com/danielhkuo/votebox/handlers"
	"github.com/danielhkuo/votebox/middleware"
)

func NewRouter(svc *election.Service, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(svc, cfg)
	votingHandler := handlers.NewVotingHandler(svc, cfg)
	resultsHandler := handlers.NewResultsHandler(svc, cfg)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(cfg.AdminKey, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Elections
	mux.HandleFunc("GET /elections", middleware.WithLogging(electionHandler.ListElections))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.GetElection))
	mux.HandleFunc("POST /elections", admin(electionHandler.CreateElection))
	mux.HandleFunc("GET /summary", admin(electionHandler.Summary))

	// Voting
	mux.HandleFunc("POST /elections/{id}/votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /elections/{id}/votes", admin(votingHandler.ListVotes))
	mux.HandleFunc("GET /elections/{id}/votes/{userId}", middleware.WithLogging(votingHandler.HasVoted))
	mux.HandleFunc("GET /users/{userId}/votes", middleware.WithLogging(votingHandler.VotesByUser))

	// Results (live while active, final once ended)
	mux.HandleFunc("GET /elections/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			middleware.ErrorResponse(w, http.StatusNotFound, "No such route")
			return
		}
		w.Write([]byte("votebox API v1"))
	})

	return mux
}
