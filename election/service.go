// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/votebox/models"
)

// MinCandidates is the smallest ballot an election may be created with.
const MinCandidates = 2

// Service applies election and voting rules on top of a Store.
type Service struct {
	store Store
	now   func() time.Time
}

type Option func(*Service)

// WithClock replaces the wall clock used for status and vote timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock's current time at millisecond precision.
func (s *Service) Now() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *Service) withStatus(e models.Election, now time.Time) models.Election {
	e.Status = ResolveStatus(e.StartDate, e.EndDate, now)
	return e
}

// ListElections returns every election in creation order with a freshly
// resolved status.
func (s *Service) ListElections(ctx context.Context) ([]models.Election, error) {
	elections, err := s.store.ListElections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list elections: %w", err)
	}
	now := s.Now()
	for i := range elections {
		elections[i] = s.withStatus(elections[i], now)
	}
	return elections, nil
}

func (s *Service) GetElection(ctx context.Context, id string) (models.Election, error) {
	e, err := s.store.GetElection(ctx, id)
	if err != nil {
		return models.Election{}, err
	}
	return s.withStatus(e, s.Now()), nil
}

// CreateElection validates the request, assigns ids and stores the election.
func (s *Service) CreateElection(ctx context.Context, req models.NewElection) (models.Election, error) {
	// Stored precision; end > start must still hold after truncation
	req.StartDate = req.StartDate.UTC().Truncate(time.Millisecond)
	req.EndDate = req.EndDate.UTC().Truncate(time.Millisecond)
	if err := validateNewElection(req); err != nil {
		return models.Election{}, err
	}

	candidates := make([]models.Candidate, len(req.Candidates))
	for i, c := range req.Candidates {
		c.ID = strings.TrimSpace(c.ID)
		c.Name = strings.TrimSpace(c.Name)
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		candidates[i] = c
	}

	now := s.Now()
	e := models.Election{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Candidates:  candidates,
		CreatedAt:   now,
	}

	if err := s.store.InsertElection(ctx, e); err != nil {
		return models.Election{}, fmt.Errorf("failed to store election: %w", err)
	}
	return s.withStatus(e, now), nil
}

func validateNewElection(req models.NewElection) error {
	if strings.TrimSpace(req.Title) == "" {
		return invalid("title", "title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return invalid("description", "description is required")
	}
	if req.StartDate.IsZero() {
		return invalid("start_date", "start_date is required")
	}
	if req.EndDate.IsZero() {
		return invalid("end_date", "end_date is required")
	}
	if !req.EndDate.After(req.StartDate) {
		return invalid("end_date", "end_date must be after start_date")
	}
	if len(req.Candidates) < MinCandidates {
		return invalid("candidates", fmt.Sprintf("at least %d candidates are required", MinCandidates))
	}

	seen := make(map[string]bool, len(req.Candidates))
	for i, c := range req.Candidates {
		if strings.TrimSpace(c.Name) == "" {
			return invalid("candidates", fmt.Sprintf("candidate %d has no name", i+1))
		}
		id := strings.TrimSpace(c.ID)
		if id == "" {
			continue
		}
		if seen[id] {
			return invalid("candidates", "duplicate candidate id "+id)
		}
		seen[id] = true
	}
	return nil
}

// CastVote records userID's choice of candidateID in an active election.
// A second vote by the same user in the same election fails with
// ErrDuplicateVote and changes nothing.
func (s *Service) CastVote(ctx context.Context, electionID, userID, candidateID string) (models.Vote, error) {
	e, err := s.store.GetElection(ctx, electionID)
	if err != nil {
		return models.Vote{}, err
	}

	userID = strings.TrimSpace(userID)
	candidateID = strings.TrimSpace(candidateID)
	if userID == "" {
		return models.Vote{}, invalid("user_id", "user_id is required")
	}
	if candidateID == "" {
		return models.Vote{}, invalid("candidate_id", "candidate_id is required")
	}

	// Checked before policy so a repeat voter always sees ErrDuplicateVote.
	// InsertVote repeats the check atomically.
	voted, err := s.store.HasVoted(ctx, userID, e.ID)
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to check existing vote: %w", err)
	}
	if voted {
		return models.Vote{}, ErrDuplicateVote
	}

	now := s.Now()
	if ResolveStatus(e.StartDate, e.EndDate, now) != models.StatusActive {
		return models.Vote{}, ErrElectionNotActive
	}
	if !e.HasCandidate(candidateID) {
		return models.Vote{}, ErrUnknownCandidate
	}

	v := models.Vote{
		ElectionID:  e.ID,
		UserID:      userID,
		CandidateID: candidateID,
		Timestamp:   now,
	}
	if err := s.store.InsertVote(ctx, v); err != nil {
		return models.Vote{}, err
	}
	return v, nil
}

// HasVoted reports whether userID has a vote in electionID. User ids are
// trimmed the same way CastVote trims them.
func (s *Service) HasVoted(ctx context.Context, userID, electionID string) (bool, error) {
	if _, err := s.store.GetElection(ctx, electionID); err != nil {
		return false, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, invalid("user_id", "user_id is required")
	}
	return s.store.HasVoted(ctx, userID, electionID)
}

// ListVotes returns an election's votes in the order they were cast.
func (s *Service) ListVotes(ctx context.Context, electionID string) ([]models.Vote, error) {
	if _, err := s.store.GetElection(ctx, electionID); err != nil {
		return nil, err
	}
	return s.store.ListVotes(ctx, electionID)
}

func (s *Service) VotesByUser(ctx context.Context, userID string) ([]models.Vote, error) {
	return s.store.ListVotesByUser(ctx, strings.TrimSpace(userID))
}

// GetResults tallies an election's votes per candidate in ballot order.
// Votes for ids not on the ballot count toward TotalVotes only.
func (s *Service) GetResults(ctx context.Context, electionID string) (models.ElectionResults, error) {
	e, err := s.GetElection(ctx, electionID)
	if err != nil {
		return models.ElectionResults{}, err
	}
	votes, err := s.store.ListVotes(ctx, electionID)
	if err != nil {
		return models.ElectionResults{}, fmt.Errorf("failed to list votes: %w", err)
	}

	counts := make(map[string]int, len(e.Candidates))
	for _, v := range votes {
		counts[v.CandidateID]++
	}

	total := len(votes)
	results := make([]models.CandidateResult, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		n := counts[c.ID]
		pct := 0.0
		if total > 0 {
			pct = float64(n) / float64(total) * 100
		}
		results = append(results, models.CandidateResult{
			Candidate:  c,
			Votes:      n,
			Percentage: pct,
		})
	}

	return models.ElectionResults{
		Election:   e,
		TotalVotes: total,
		Results:    results,
	}, nil
}

// Winners returns every candidate tied for the highest vote count, in
// ballot order. It is empty when nobody has any votes.
func Winners(results []models.CandidateResult) []models.Candidate {
	top := 0
	for _, r := range results {
		top = max(top, r.Votes)
	}
	winners := []models.Candidate{}
	if top == 0 {
		return winners
	}
	for _, r := range results {
		if r.Votes == top {
			winners = append(winners, r.Candidate)
		}
	}
	return winners
}

// Summary counts elections by current status and votes across all of them.
func (s *Service) Summary(ctx context.Context) (models.Summary, error) {
	elections, err := s.ListElections(ctx)
	if err != nil {
		return models.Summary{}, err
	}

	sum := models.Summary{TotalElections: len(elections)}
	for _, e := range elections {
		switch e.Status {
		case models.StatusUpcoming:
			sum.Upcoming++
		case models.StatusActive:
			sum.Active++
		case models.StatusEnded:
			sum.Ended++
		}

		votes, err := s.store.ListVotes(ctx, e.ID)
		if err != nil {
			return models.Summary{}, fmt.Errorf("failed to list votes for %s: %w", e.ID, err)
		}
		sum.TotalVotes += len(votes)
	}
	return sum, nil
}
