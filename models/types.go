package models

import "time"

// Election status values. Status is derived from the clock on every read
// and never stored.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusActive   Status = "active"
	StatusEnded    Status = "ended"
)

// Domain types

type Candidate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Election struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Candidates  []Candidate `json:"candidates"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// HasCandidate reports whether candidateID is on the election's ballot.
func (e Election) HasCandidate(candidateID string) bool {
	for _, c := range e.Candidates {
		if c.ID == candidateID {
			return true
		}
	}
	return false
}

type Vote struct {
	ElectionID  string    `json:"election_id"`
	UserID      string    `json:"user_id"`
	CandidateID string    `json:"candidate_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewElection carries the caller-supplied fields of an election.
// ID and status are assigned by the service.
type NewElection struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Candidates  []Candidate `json:"candidates"`
}

// Result types

type CandidateResult struct {
	Candidate  Candidate `json:"candidate"`
	Votes      int       `json:"votes"`
	Percentage float64   `json:"percentage"`
}

type ElectionResults struct {
	Election   Election          `json:"election"`
	TotalVotes int               `json:"total_votes"`
	Results    []CandidateResult `json:"results"`
}

type Summary struct {
	TotalElections int `json:"total_elections"`
	Upcoming       int `json:"upcoming"`
	Active         int `json:"active"`
	Ended          int `json:"ended"`
	TotalVotes     int `json:"total_votes"`
}

// Request types

type CreateElectionRequest = NewElection

type CastVoteRequest struct {
	UserID      string `json:"user_id"`
	CandidateID string `json:"candidate_id"`
}

// Response types

type ResultsResponse struct {
	ElectionResults
	Winners []Candidate `json:"winners"`
	Final   bool        `json:"final"`
}

type HasVotedResponse struct {
	ElectionID string `json:"election_id"`
	UserID     string `json:"user_id"`
	HasVoted   bool   `json:"has_voted"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
