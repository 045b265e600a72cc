// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/danielhkuo/votebox/models"
)

type ballotKey struct {
	userID     string
	electionID string
}

// MemoryStore keeps elections and votes in process memory. Nothing
// survives a restart.
type MemoryStore struct {
	mu sync.RWMutex

	elections []models.Election
	byID      map[string]int

	votes   []models.Vote
	ballots map[ballotKey]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]int),
		ballots: make(map[ballotKey]struct{}),
	}
}

func (s *MemoryStore) ListElections(ctx context.Context) ([]models.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Election, 0, len(s.elections))
	for _, e := range s.elections {
		out = append(out, cloneElection(e))
	}
	return out, nil
}

func (s *MemoryStore) GetElection(ctx context.Context, id string) (models.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return models.Election{}, ErrNotFound
	}
	return cloneElection(s.elections[idx]), nil
}

func (s *MemoryStore) InsertElection(ctx context.Context, e models.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[e.ID]; exists {
		return fmt.Errorf("election %s already exists", e.ID)
	}
	e.Status = ""
	s.byID[e.ID] = len(s.elections)
	s.elections = append(s.elections, cloneElection(e))
	return nil
}

func (s *MemoryStore) ListVotes(ctx context.Context, electionID string) ([]models.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Vote{}
	for _, v := range s.votes {
		if v.ElectionID == electionID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListVotesByUser(ctx context.Context, userID string) ([]models.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Vote{}
	for _, v := range s.votes {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *MemoryStore) HasVoted(ctx context.Context, userID, electionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.ballots[ballotKey{userID: userID, electionID: electionID}]
	return ok, nil
}

// InsertVote holds the write lock across the duplicate check and the append.
func (s *MemoryStore) InsertVote(ctx context.Context, v models.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ballotKey{userID: v.UserID, electionID: v.ElectionID}
	if _, ok := s.ballots[key]; ok {
		return ErrDuplicateVote
	}
	s.ballots[key] = struct{}{}
	s.votes = append(s.votes, v)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func cloneElection(e models.Election) models.Election {
	e.Candidates = slices.Clone(e.Candidates)
	return e
}
