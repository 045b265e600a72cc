// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/votebox/election"
	"github.com/danielhkuo/votebox/models"
	"github.com/danielhkuo/votebox/router"
	"github.com/danielhkuo/votebox/testutil"
)

func newTestServer(t *testing.T) (*election.Service, *httptest.Server) {
	t.Helper()

	svc := testutil.NewTestService(t)
	srv := httptest.NewServer(router.NewRouter(svc, testutil.GetTestConfig()))
	t.Cleanup(srv.Close)
	return svc, srv
}

func TestClientRoundTrip(t *testing.T) {
	_, srv := newTestServer(t)
	ctx := context.Background()
	c := New(srv.URL+"/", WithAdminKey(testutil.TestAdminKey))

	created, err := c.CreateElection(ctx, models.CreateElectionRequest{
		Title:       "Mascot",
		Description: "Pick the team mascot",
		StartDate:   testutil.Epoch.Add(-time.Hour),
		EndDate:     testutil.Epoch.Add(time.Hour),
		Candidates:  []models.Candidate{{ID: "owl", Name: "Owl"}, {ID: "fox", Name: "Fox"}},
	})
	if err != nil {
		t.Fatalf("CreateElection failed: %v", err)
	}

	got, err := c.GetElection(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetElection failed: %v", err)
	}
	if got.Title != "Mascot" || got.Status != models.StatusActive {
		t.Errorf("Unexpected election: %+v", got)
	}

	list, err := c.ListElections(ctx)
	if err != nil {
		t.Fatalf("ListElections failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("Expected 1 election, got %d", len(list))
	}

	v, err := c.CastVote(ctx, created.ID, "user with spaces", "fox")
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if v.UserID != "user with spaces" {
		t.Errorf("Expected user id to survive the trip, got %q", v.UserID)
	}

	voted, err := c.HasVoted(ctx, created.ID, "user with spaces")
	if err != nil {
		t.Fatalf("HasVoted failed: %v", err)
	}
	if !voted {
		t.Error("Expected HasVoted to be true")
	}

	votes, err := c.ListVotes(ctx, created.ID)
	if err != nil {
		t.Fatalf("ListVotes failed: %v", err)
	}
	if len(votes) != 1 {
		t.Errorf("Expected 1 vote, got %d", len(votes))
	}

	mine, err := c.VotesByUser(ctx, "user with spaces")
	if err != nil {
		t.Fatalf("VotesByUser failed: %v", err)
	}
	if len(mine) != 1 || mine[0].ElectionID != created.ID {
		t.Errorf("Unexpected votes by user: %+v", mine)
	}

	res, err := c.Results(ctx, created.ID)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if res.TotalVotes != 1 || len(res.Winners) != 1 || res.Winners[0].ID != "fox" {
		t.Errorf("Unexpected results: %+v", res)
	}

	sum, err := c.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if sum.TotalElections != 1 || sum.TotalVotes != 1 {
		t.Errorf("Unexpected summary: %+v", sum)
	}
}

func TestClientErrorMapping(t *testing.T) {
	svc, srv := newTestServer(t)
	ctx := context.Background()
	c := New(srv.URL, WithAdminKey(testutil.TestAdminKey))

	active := testutil.CreateTestElection(t, svc, models.StatusActive)
	ended := testutil.CreateTestElection(t, svc, models.StatusEnded)
	testutil.CastTestVote(t, svc, active.ID, "u1", "A")

	testCases := []struct {
		name      string
		call      func() error
		wantErr   error
		wantField string
	}{
		{
			name:    "not found",
			call:    func() error { _, err := c.GetElection(ctx, "missing"); return err },
			wantErr: election.ErrNotFound,
		},
		{
			name:    "duplicate vote",
			call:    func() error { _, err := c.CastVote(ctx, active.ID, "u1", "B"); return err },
			wantErr: election.ErrDuplicateVote,
		},
		{
			name:    "not active",
			call:    func() error { _, err := c.CastVote(ctx, ended.ID, "u1", "A"); return err },
			wantErr: election.ErrElectionNotActive,
		},
		{
			name:    "unknown candidate",
			call:    func() error { _, err := c.CastVote(ctx, active.ID, "u2", "Z"); return err },
			wantErr: election.ErrUnknownCandidate,
		},
		{
			name: "validation",
			call: func() error {
				_, err := c.CreateElection(ctx, models.CreateElectionRequest{Title: "only a title"})
				return err
			},
			wantField: "description",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
			if tc.wantField != "" {
				var ve *election.ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("Expected ValidationError, got %v", err)
				}
				if ve.Field != tc.wantField {
					t.Errorf("Expected field %q, got %q", tc.wantField, ve.Field)
				}
			}
		})
	}
}

func TestClientUnauthorized(t *testing.T) {
	_, srv := newTestServer(t)
	c := New(srv.URL)

	_, err := c.Summary(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", apiErr.StatusCode)
	}
}
