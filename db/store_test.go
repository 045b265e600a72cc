// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/votebox/cliparse"
	"github.com/danielhkuo/votebox/election"
	"github.com/danielhkuo/votebox/models"
)

// testStores returns a fresh store for every backend that can run locally.
// Postgres runs only when VOTEBOX_TEST_POSTGRES_URL is set.
func testStores(t *testing.T) map[string]election.Store {
	t.Helper()
	dir := t.TempDir()

	stores := map[string]election.Store{
		"memory": election.NewMemoryStore(),
	}

	sqliteStore, err := OpenSQLite(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	stores["sqlite"] = sqliteStore

	boltStore, err := OpenBolt(filepath.Join(dir, "test.bolt"))
	if err != nil {
		t.Fatalf("failed to open bolt store: %v", err)
	}
	stores["bolt"] = boltStore

	if url := os.Getenv("VOTEBOX_TEST_POSTGRES_URL"); url != "" {
		pg, err := openCleanPostgres(t, url)
		if err != nil {
			t.Fatalf("failed to open postgres store: %v", err)
		}
		stores["postgres"] = pg
	}

	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func openCleanPostgres(t *testing.T, url string) (*SQLStore, error) {
	t.Helper()
	conn, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	_, err = conn.Exec(`
		DROP TABLE IF EXISTS vote CASCADE;
		DROP TABLE IF EXISTS candidate CASCADE;
		DROP TABLE IF EXISTS election CASCADE;
	`)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return NewSQLStore(conn, DialectPostgres)
}

func testElection(id string, now time.Time) models.Election {
	return models.Election{
		ID:          id,
		Title:       "Election " + id,
		Description: "A test election",
		StartDate:   now.Add(-time.Hour),
		EndDate:     now.Add(time.Hour),
		CreatedAt:   now,
		Candidates: []models.Candidate{
			{ID: "a", Name: "Alice", Description: "first"},
			{ID: "b", Name: "Bob", Description: "second"},
		},
	}
}

func TestStoreElections(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000).UTC()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			elections, err := store.ListElections(ctx)
			if err != nil {
				t.Fatalf("ListElections failed: %v", err)
			}
			if len(elections) != 0 {
				t.Fatalf("expected empty store, got %d elections", len(elections))
			}

			for _, id := range []string{"e2", "e1", "e3"} {
				if err := store.InsertElection(ctx, testElection(id, now)); err != nil {
					t.Fatalf("InsertElection(%s) failed: %v", id, err)
				}
			}

			elections, err = store.ListElections(ctx)
			if err != nil {
				t.Fatalf("ListElections failed: %v", err)
			}
			if len(elections) != 3 {
				t.Fatalf("expected 3 elections, got %d", len(elections))
			}
			// Creation order, not id order
			for i, want := range []string{"e2", "e1", "e3"} {
				if elections[i].ID != want {
					t.Errorf("position %d: expected %s, got %s", i, want, elections[i].ID)
				}
			}

			got, err := store.GetElection(ctx, "e1")
			if err != nil {
				t.Fatalf("GetElection failed: %v", err)
			}
			want := testElection("e1", now)
			if !got.StartDate.Equal(want.StartDate) || !got.EndDate.Equal(want.EndDate) {
				t.Errorf("dates did not round-trip: got %v..%v", got.StartDate, got.EndDate)
			}
			if len(got.Candidates) != 2 || got.Candidates[0].ID != "a" || got.Candidates[1].Name != "Bob" {
				t.Errorf("candidates did not round-trip: %+v", got.Candidates)
			}
			if got.Status != "" {
				t.Errorf("stores must not persist status, got %q", got.Status)
			}

			_, err = store.GetElection(ctx, "missing")
			if !errors.Is(err, election.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStoreVotes(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000).UTC()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, id := range []string{"e1", "e2"} {
				if err := store.InsertElection(ctx, testElection(id, now)); err != nil {
					t.Fatalf("InsertElection failed: %v", err)
				}
			}

			votes := []models.Vote{
				{ElectionID: "e1", UserID: "u2", CandidateID: "b", Timestamp: now},
				{ElectionID: "e1", UserID: "u1", CandidateID: "a", Timestamp: now.Add(time.Second)},
				{ElectionID: "e2", UserID: "u1", CandidateID: "b", Timestamp: now.Add(2 * time.Second)},
			}
			for _, v := range votes {
				if err := store.InsertVote(ctx, v); err != nil {
					t.Fatalf("InsertVote failed: %v", err)
				}
			}

			// Same pair, different candidate
			err := store.InsertVote(ctx, models.Vote{ElectionID: "e1", UserID: "u1", CandidateID: "b", Timestamp: now})
			if !errors.Is(err, election.ErrDuplicateVote) {
				t.Fatalf("expected ErrDuplicateVote, got %v", err)
			}

			e1Votes, err := store.ListVotes(ctx, "e1")
			if err != nil {
				t.Fatalf("ListVotes failed: %v", err)
			}
			if len(e1Votes) != 2 {
				t.Fatalf("duplicate must not be stored: expected 2 votes, got %d", len(e1Votes))
			}
			if e1Votes[0].UserID != "u2" || e1Votes[1].UserID != "u1" {
				t.Errorf("votes not in insertion order: %+v", e1Votes)
			}
			if e1Votes[1].CandidateID != "a" {
				t.Errorf("original vote was overwritten: %+v", e1Votes[1])
			}
			if !e1Votes[1].Timestamp.Equal(now.Add(time.Second)) {
				t.Errorf("timestamp did not round-trip: %v", e1Votes[1].Timestamp)
			}

			byUser, err := store.ListVotesByUser(ctx, "u1")
			if err != nil {
				t.Fatalf("ListVotesByUser failed: %v", err)
			}
			if len(byUser) != 2 || byUser[0].ElectionID != "e1" || byUser[1].ElectionID != "e2" {
				t.Errorf("unexpected votes by user: %+v", byUser)
			}

			empty, err := store.ListVotes(ctx, "nobody-voted-here")
			if err != nil {
				t.Fatalf("ListVotes failed: %v", err)
			}
			if empty == nil || len(empty) != 0 {
				t.Errorf("expected empty non-nil slice, got %#v", empty)
			}

			tests := []struct {
				user, election string
				want           bool
			}{
				{"u1", "e1", true},
				{"u2", "e1", true},
				{"u2", "e2", false},
				{"u3", "e1", false},
			}
			for _, tt := range tests {
				got, err := store.HasVoted(ctx, tt.user, tt.election)
				if err != nil {
					t.Fatalf("HasVoted failed: %v", err)
				}
				if got != tt.want {
					t.Errorf("HasVoted(%s, %s) = %v, want %v", tt.user, tt.election, got, tt.want)
				}
			}
		})
	}
}

// TestStoreConcurrentDuplicateVotes races many inserts for one
// (user, election) pair; exactly one must win on every backend.
func TestStoreConcurrentDuplicateVotes(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000).UTC()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := store.InsertElection(ctx, testElection("race", now)); err != nil {
				t.Fatalf("InsertElection failed: %v", err)
			}

			const attempts = 20
			var successCount, duplicateCount atomic.Int32
			var wg sync.WaitGroup

			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					candidate := "a"
					if i%2 == 1 {
						candidate = "b"
					}
					err := store.InsertVote(ctx, models.Vote{
						ElectionID:  "race",
						UserID:      "racer",
						CandidateID: candidate,
						Timestamp:   now,
					})
					switch {
					case err == nil:
						successCount.Add(1)
					case errors.Is(err, election.ErrDuplicateVote):
						duplicateCount.Add(1)
					default:
						t.Errorf("unexpected error: %v", err)
					}
				}(i)
			}
			wg.Wait()

			if successCount.Load() != 1 {
				t.Errorf("expected exactly 1 successful vote, got %d", successCount.Load())
			}
			if duplicateCount.Load() != attempts-1 {
				t.Errorf("expected %d duplicates, got %d", attempts-1, duplicateCount.Load())
			}

			votes, err := store.ListVotes(ctx, "race")
			if err != nil {
				t.Fatalf("ListVotes failed: %v", err)
			}
			if len(votes) != 1 {
				t.Errorf("expected 1 stored vote, got %d", len(votes))
			}
		})
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	now := time.UnixMilli(1_700_000_000_000).UTC()
	ctx := context.Background()

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := s.InsertElection(ctx, testElection("keep", now)); err != nil {
		t.Fatalf("InsertElection failed: %v", err)
	}
	s.Close()

	// Schema creation must be idempotent
	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	if _, err := s.GetElection(ctx, "keep"); err != nil {
		t.Errorf("election lost across reopen: %v", err)
	}
	if s.Dialect() != DialectSQLite {
		t.Errorf("expected sqlite dialect, got %q", s.Dialect())
	}
}

func TestBoltReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.bolt")
	now := time.UnixMilli(1_700_000_000_000).UTC()
	ctx := context.Background()

	s, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt failed: %v", err)
	}
	if err := s.InsertElection(ctx, testElection("keep", now)); err != nil {
		t.Fatalf("InsertElection failed: %v", err)
	}
	if err := s.InsertVote(ctx, models.Vote{ElectionID: "keep", UserID: "u", CandidateID: "a", Timestamp: now}); err != nil {
		t.Fatalf("InsertVote failed: %v", err)
	}
	s.Close()

	s, err = OpenBolt(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	voted, err := s.HasVoted(ctx, "u", "keep")
	if err != nil || !voted {
		t.Errorf("ballot lost across reopen: voted=%v err=%v", voted, err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     cliparse.Config
		wantErr bool
	}{
		{"memory", cliparse.Config{DatabaseType: cliparse.DatabaseMemory}, false},
		{"sqlite", cliparse.Config{DatabaseType: cliparse.DatabaseSQLite, DatabaseURL: filepath.Join(dir, "open.db")}, false},
		{"bolt", cliparse.Config{DatabaseType: cliparse.DatabaseBolt, DatabaseURL: filepath.Join(dir, "open.bolt")}, false},
		{"unknown", cliparse.Config{DatabaseType: "mongo"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer store.Close()

			if _, err := store.ListElections(context.Background()); err != nil {
				t.Errorf("ListElections on fresh store failed: %v", err)
			}
		})
	}
}

func TestSubMillisecondWindowIsValidationError(t *testing.T) {
	start := time.UnixMilli(1_700_000_000_000).UTC()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			svc := election.NewService(store)
			_, err := svc.CreateElection(context.Background(), models.NewElection{
				Title:       "Blink",
				Description: "Too short to vote in",
				StartDate:   start.Add(100 * time.Microsecond),
				EndDate:     start.Add(500 * time.Microsecond),
				Candidates:  []models.Candidate{{Name: "A"}, {Name: "B"}},
			})
			if !election.IsValidation(err) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}

			all, err := store.ListElections(context.Background())
			if err != nil {
				t.Fatalf("ListElections failed: %v", err)
			}
			if len(all) != 0 {
				t.Errorf("Expected nothing stored, found %d elections", len(all))
			}
		})
	}
}
