// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the votebox API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg)

# Endpoints

Health:

	GET /health

Elections:

	GET  /elections      - List elections with live status
	GET  /elections/{id} - Election details and candidates
	POST /elections      - Create election (admin)
	GET  /summary        - Totals by status (admin)

Voting:

	POST /elections/{id}/votes          - Cast a vote
	GET  /elections/{id}/votes          - All votes (admin)
	GET  /elections/{id}/votes/{userId} - Has this user voted
	GET  /users/{userId}/votes          - A user's votes

Results:

	GET /elections/{id}/results - Tallies, percentages and winners

Admin routes require X-Admin-Key when cfg.AdminKey is set.

# Handler Initialization

The router creates handler instances with dependency injection:

	electionHandler := handlers.NewElectionHandler(svc, cfg)
	votingHandler := handlers.NewVotingHandler(svc, cfg)
	resultsHandler := handlers.NewResultsHandler(svc, cfg)

All handlers share the one election service.
*/
package router
