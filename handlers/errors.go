// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/votebox/election"
	"github.com/danielhkuo/votebox/middleware"
)

// writeServiceError maps an election.Service error onto an HTTP response.
// The message of sentinel errors is sent verbatim so clients can tell
// the two 409 cases apart.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	var ve *election.ValidationError
	switch {
	case errors.As(err, &ve):
		middleware.FieldErrorResponse(w, ve.Field, ve.Message)
	case errors.Is(err, election.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, election.ErrDuplicateVote),
		errors.Is(err, election.ErrElectionNotActive):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, election.ErrUnknownCandidate):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
