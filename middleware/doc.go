// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /elections", middleware.WithLogging(handler))

Logs request start (method, path, client IP) and completion (status,
duration_ms).

# Admin Routes

	mux.HandleFunc("POST /elections", middleware.WithLogging(
		middleware.RequireAdmin(cfg.AdminKey, electionHandler.CreateElection)))

Responds 401 when X-Admin-Key is missing or wrong. With no admin key
configured every request passes.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigin, mux),
	}

An empty origin echoes the request's Origin header.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
	middleware.FieldErrorResponse(w, "end_date", "end_date must be after start_date")

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

GetClientIP honours X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
