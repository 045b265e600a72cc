// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"

	"github.com/danielhkuo/votebox/models"
)

// Store persists elections and votes.
//
// Implementations return elections with an empty Status; the Service
// resolves it on every read. InsertVote must check for an existing vote
// for the same (UserID, ElectionID) and append in one critical section,
// returning ErrDuplicateVote without writing when one exists.
type Store interface {
	ListElections(ctx context.Context) ([]models.Election, error)
	GetElection(ctx context.Context, id string) (models.Election, error)
	InsertElection(ctx context.Context, e models.Election) error

	ListVotes(ctx context.Context, electionID string) ([]models.Vote, error)
	ListVotesByUser(ctx context.Context, userID string) ([]models.Vote, error)
	HasVoted(ctx context.Context, userID, electionID string) (bool, error)
	InsertVote(ctx context.Context, v models.Vote) error

	Close() error
}
