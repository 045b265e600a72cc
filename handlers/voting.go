// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/votebox/auth"
	"github.com/danielhkuo/votebox/cliparse"
	"github.com/danielhkuo/votebox/election"
	"github.com/danielhkuo/votebox/middleware"
	"github.com/danielhkuo/votebox/models"
)

type VotingHandler struct {
	svc *election.Service
	cfg cliparse.Config
}

func NewVotingHandler(svc *election.Service, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{svc: svc, cfg: cfg}
}

// CastVote handles POST /elections/{id}/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	v, err := h.svc.CastVote(r.Context(), electionID, req.UserID, req.CandidateID)
	if err != nil {
		slog.Info("vote rejected",
			"election_id", electionID,
			"voter", auth.HashUserID(req.UserID, h.cfg.AdminKey),
			"reason", err,
		)
		writeServiceError(w, "cast vote", err)
		return
	}

	// User ids are logged as keyed fingerprints only
	slog.Info("vote cast",
		"election_id", v.ElectionID,
		"voter", auth.HashUserID(v.UserID, h.cfg.AdminKey),
		"candidate_id", v.CandidateID,
	)

	middleware.JSONResponse(w, http.StatusCreated, v)
}

// ListVotes handles GET /elections/{id}/votes (admin)
func (h *VotingHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := h.svc.ListVotes(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "list votes", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, votes)
}

// HasVoted handles GET /elections/{id}/votes/{userId}
func (h *VotingHandler) HasVoted(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	userID := r.PathValue("userId")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId is required")
		return
	}

	voted, err := h.svc.HasVoted(r.Context(), userID, electionID)
	if err != nil {
		writeServiceError(w, "has voted", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.HasVotedResponse{
		ElectionID: electionID,
		UserID:     userID,
		HasVoted:   voted,
	})
}

// VotesByUser handles GET /users/{userId}/votes
func (h *VotingHandler) VotesByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId is required")
		return
	}

	votes, err := h.svc.VotesByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "votes by user", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, votes)
}
