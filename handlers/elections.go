// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/votebox/cliparse"
	"github.com/danielhkuo/votebox/election"
	"github.com/danielhkuo/votebox/middleware"
	"github.com/danielhkuo/votebox/models"
)

type ElectionHandler struct {
	svc *election.Service
	cfg cliparse.Config
}

func NewElectionHandler(svc *election.Service, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{svc: svc, cfg: cfg}
}

// ListElections handles GET /elections
func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	elections, err := h.svc.ListElections(r.Context())
	if err != nil {
		writeServiceError(w, "list elections", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, elections)
}

// GetElection handles GET /elections/{id}
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	e, err := h.svc.GetElection(r.Context(), id)
	if err != nil {
		writeServiceError(w, "get election", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, e)
}

// CreateElection handles POST /elections (admin)
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	e, err := h.svc.CreateElection(r.Context(), req)
	if err != nil {
		writeServiceError(w, "create election", err)
		return
	}

	slog.Info("election created",
		"election_id", e.ID,
		"candidates", len(e.Candidates),
		"status", e.Status,
	)

	middleware.JSONResponse(w, http.StatusCreated, e)
}

// Summary handles GET /summary (admin)
func (h *ElectionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context())
	if err != nil {
		writeServiceError(w, "summary", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sum)
}
