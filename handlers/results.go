// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/votebox/cliparse"
	"github.com/danielhkuo/votebox/election"
	"github.com/danielhkuo/votebox/middleware"
	"github.com/danielhkuo/votebox/models"
)

type ResultsHandler struct {
	svc *election.Service
	cfg cliparse.Config
}

func NewResultsHandler(svc *election.Service, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{svc: svc, cfg: cfg}
}

// GetResults handles GET /elections/{id}/results
// Tallies are live while the election runs; Final is set once it has ended.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	res, err := h.svc.GetResults(r.Context(), id)
	if err != nil {
		writeServiceError(w, "get results", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		ElectionResults: res,
		Winners:         election.Winners(res.Results),
		Final:           res.Election.Status == models.StatusEnded,
	})
}
