// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the votebox API.

# Handler Types

Each handler is a struct with service and config dependencies:

  - ElectionHandler: Election listing, lookup, creation and the admin summary
  - VotingHandler: Vote casting and vote lookups
  - ResultsHandler: Per-candidate tallies and winners

Handlers are created via constructor functions that accept the
*election.Service and Config:

	electionHandler := handlers.NewElectionHandler(svc, cfg)

# Elections

Election status (upcoming, active, ended) is resolved from the clock on
every read:

	GET  /elections      → ListElections
	GET  /elections/{id} → GetElection
	POST /elections      → CreateElection (admin)
	GET  /summary        → Summary (admin)

# Voting

A user votes at most once per election, and only while it is active:

	POST /elections/{id}/votes          → CastVote
	GET  /elections/{id}/votes          → ListVotes (admin)
	GET  /elections/{id}/votes/{userId} → HasVoted
	GET  /users/{userId}/votes          → VotesByUser

# Results

	GET /elections/{id}/results → GetResults

Results are computed from the stored votes on each request. They are
visible while voting runs and marked final once the election has ended.

# Errors

Service errors map to status codes in one place:

	election.ErrNotFound          → 404
	election.ErrDuplicateVote     → 409
	election.ErrElectionNotActive → 409
	election.ErrUnknownCandidate  → 400
	*election.ValidationError     → 400 with "field"
	anything else                 → 500, logged
*/
package handlers
