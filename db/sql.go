// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/votebox/election"
	"github.com/danielhkuo/votebox/models"
)

// SQLStore keeps elections and votes in postgres or sqlite.
type SQLStore struct {
	db      *sql.DB
	dialect string
}

// NewSQLStore creates the schema (if needed) and returns a store over conn.
func NewSQLStore(conn *sql.DB, dialect string) (*SQLStore, error) {
	if err := CreateSchema(conn, dialect); err != nil {
		return nil, err
	}
	return &SQLStore{db: conn, dialect: dialect}, nil
}

// OpenPostgres connects to a postgres database via lib/pq.
func OpenPostgres(url string) (*SQLStore, error) {
	conn, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	s, err := NewSQLStore(conn, DialectPostgres)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// OpenSQLite opens a sqlite database file. The pool is pinned to one
// connection so writers never contend for the file lock.
func OpenSQLite(path string) (*SQLStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	s, err := NewSQLStore(conn, DialectSQLite)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Dialect reports which SQL dialect the store speaks.
func (s *SQLStore) Dialect() string {
	return s.dialect
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) ListElections(ctx context.Context) ([]models.Election, error) {
	elections, err := s.queryElections(ctx, `
		SELECT id, title, description, start_ms, end_ms, created_ms
		FROM election
		ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}

	candidates, err := s.queryCandidates(ctx, `
		SELECT election_id, id, name, description
		FROM candidate
		ORDER BY election_id, ord
	`)
	if err != nil {
		return nil, err
	}

	for i := range elections {
		elections[i].Candidates = candidates[elections[i].ID]
	}
	return elections, nil
}

func (s *SQLStore) GetElection(ctx context.Context, id string) (models.Election, error) {
	elections, err := s.queryElections(ctx, `
		SELECT id, title, description, start_ms, end_ms, created_ms
		FROM election
		WHERE id = $1
	`, id)
	if err != nil {
		return models.Election{}, err
	}
	if len(elections) == 0 {
		return models.Election{}, election.ErrNotFound
	}

	candidates, err := s.queryCandidates(ctx, `
		SELECT election_id, id, name, description
		FROM candidate
		WHERE election_id = $1
		ORDER BY ord
	`, id)
	if err != nil {
		return models.Election{}, err
	}

	e := elections[0]
	e.Candidates = candidates[e.ID]
	return e, nil
}

func (s *SQLStore) queryElections(ctx context.Context, query string, args ...any) ([]models.Election, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query elections: %w", err)
	}
	defer rows.Close()

	elections := []models.Election{}
	for rows.Next() {
		var e models.Election
		var startMs, endMs, createdMs int64
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &startMs, &endMs, &createdMs); err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}
		e.StartDate = fromMillis(startMs)
		e.EndDate = fromMillis(endMs)
		e.CreatedAt = fromMillis(createdMs)
		e.Candidates = []models.Candidate{}
		elections = append(elections, e)
	}
	return elections, rows.Err()
}

func (s *SQLStore) queryCandidates(ctx context.Context, query string, args ...any) (map[string][]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	byElection := make(map[string][]models.Candidate)
	for rows.Next() {
		var electionID string
		var c models.Candidate
		if err := rows.Scan(&electionID, &c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		byElection[electionID] = append(byElection[electionID], c)
	}
	return byElection, rows.Err()
}

func (s *SQLStore) InsertElection(ctx context.Context, e models.Election) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO election (id, title, description, start_ms, end_ms, created_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.Title, e.Description, toMillis(e.StartDate), toMillis(e.EndDate), toMillis(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert election: %w", err)
	}

	for i, c := range e.Candidates {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO candidate (election_id, id, ord, name, description)
			VALUES ($1, $2, $3, $4, $5)
		`, e.ID, c.ID, i, c.Name, c.Description)
		if err != nil {
			return fmt.Errorf("failed to insert candidate: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLStore) ListVotes(ctx context.Context, electionID string) ([]models.Vote, error) {
	return s.queryVotes(ctx, `
		SELECT election_id, user_id, candidate_id, cast_ms
		FROM vote
		WHERE election_id = $1
		ORDER BY seq
	`, electionID)
}

func (s *SQLStore) ListVotesByUser(ctx context.Context, userID string) ([]models.Vote, error) {
	return s.queryVotes(ctx, `
		SELECT election_id, user_id, candidate_id, cast_ms
		FROM vote
		WHERE user_id = $1
		ORDER BY seq
	`, userID)
}

func (s *SQLStore) queryVotes(ctx context.Context, query string, args ...any) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		var castMs int64
		if err := rows.Scan(&v.ElectionID, &v.UserID, &v.CandidateID, &castMs); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		v.Timestamp = fromMillis(castMs)
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

func (s *SQLStore) HasVoted(ctx context.Context, userID, electionID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM vote
			WHERE election_id = $1 AND user_id = $2
		)
	`, electionID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return exists, nil
}

// InsertVote is a single INSERT; the UNIQUE (election_id, user_id)
// constraint rejects the second vote for a pair.
func (s *SQLStore) InsertVote(ctx context.Context, v models.Vote) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote (election_id, user_id, candidate_id, cast_ms)
		VALUES ($1, $2, $3, $4)
	`, v.ElectionID, v.UserID, v.CandidateID, toMillis(v.Timestamp))
	if err != nil {
		if isUniqueViolation(err) {
			return election.ErrDuplicateVote
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
