// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the election lifecycle and vote tallying.

# Service

Service wraps a Store and applies every rule:

	svc := election.NewService(store)
	e, err := svc.CreateElection(ctx, models.NewElection{...})
	v, err := svc.CastVote(ctx, e.ID, "user-1", e.Candidates[0].ID)
	res, err := svc.GetResults(ctx, e.ID)

Tests inject a clock with WithClock.

# Status

ResolveStatus maps (start, end, now) to upcoming, active or ended. Both
bounds belong to the active phase. Status is resolved on every read.

# Voting Rules

CastVote rejects, in order:

  - unknown election: ErrNotFound
  - empty user_id or candidate_id: *ValidationError
  - a repeat vote by the same user: ErrDuplicateVote
  - an election that is not active: ErrElectionNotActive
  - a candidate not on the ballot: ErrUnknownCandidate

Store.InsertVote repeats the duplicate check atomically, so concurrent
requests for one (user, election) pair record exactly one vote.

# Stores

MemoryStore is the in-process store. Durable stores live in package db.

# Demo Data

SeedDemo loads three demo elections and two votes around a given time.
*/
package election
