// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Election: title, description, start/end dates, ordered candidates
  - Candidate: an option on an election's ballot
  - Vote: one voter's choice in one election
  - NewElection: caller-supplied election fields (no id, no status)

# Result Types

  - CandidateResult: candidate, vote count, percentage of total
  - ElectionResults: election, total_votes, per-candidate results
  - Summary: dashboard totals by status plus total votes

# Request Types

  - CreateElectionRequest: same shape as NewElection
  - CastVoteRequest: user_id, candidate_id

# Response Types

  - ResultsResponse: ElectionResults plus winners and final flag
  - HasVotedResponse: election_id, user_id, has_voted
  - ErrorResponse: error, message, field

# Constants

Status values:

	StatusUpcoming = "upcoming"
	StatusActive   = "active"
	StatusEnded    = "ended"

Status is never persisted. It is computed from start_date, end_date and
the current time each time an election is read.
*/
package models
