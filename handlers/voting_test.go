// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/votebox/election"
	"github.com/danielhkuo/votebox/models"
	"github.com/danielhkuo/votebox/testutil"
)

func castVote(h *VotingHandler, electionID string, body any) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("POST", "/elections/"+electionID+"/votes", body, nil)
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()
	h.CastVote(w, req)
	return w
}

func TestCastVote(t *testing.T) {
	svc := testutil.NewTestService(t)
	handler := NewVotingHandler(svc, testutil.GetTestConfig())
	e := testutil.CreateTestElection(t, svc, models.StatusActive)

	tests := []struct {
		name            string
		electionID      string
		body            models.CastVoteRequest
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "valid vote",
			electionID:     e.ID,
			body:           models.CastVoteRequest{UserID: "voter-1", CandidateID: "A"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:            "same user again",
			electionID:      e.ID,
			body:            models.CastVoteRequest{UserID: "voter-1", CandidateID: "A"},
			expectedStatus:  http.StatusConflict,
			expectedMessage: election.ErrDuplicateVote.Error(),
		},
		{
			name:            "same user other candidate",
			electionID:      e.ID,
			body:            models.CastVoteRequest{UserID: "voter-1", CandidateID: "B"},
			expectedStatus:  http.StatusConflict,
			expectedMessage: election.ErrDuplicateVote.Error(),
		},
		{
			name:            "same user unknown candidate",
			electionID:      e.ID,
			body:            models.CastVoteRequest{UserID: "voter-1", CandidateID: "Z"},
			expectedStatus:  http.StatusConflict,
			expectedMessage: election.ErrDuplicateVote.Error(),
		},
		{
			name:            "unknown candidate",
			electionID:      e.ID,
			body:            models.CastVoteRequest{UserID: "voter-2", CandidateID: "Z"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: election.ErrUnknownCandidate.Error(),
		},
		{
			name:           "missing user id",
			electionID:     e.ID,
			body:           models.CastVoteRequest{CandidateID: "A"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing candidate id",
			electionID:     e.ID,
			body:           models.CastVoteRequest{UserID: "voter-3"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown election",
			electionID:     "nope",
			body:           models.CastVoteRequest{UserID: "voter-4", CandidateID: "A"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := castVote(handler, tt.electionID, tt.body)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var v models.Vote
				testutil.AssertJSON(t, w, &v)

				if v.ElectionID != e.ID || v.UserID != tt.body.UserID || v.CandidateID != tt.body.CandidateID {
					t.Errorf("Unexpected vote: %+v", v)
				}
				if !v.Timestamp.Equal(testutil.Epoch) {
					t.Errorf("Expected timestamp %v, got %v", testutil.Epoch, v.Timestamp)
				}
				return
			}

			if tt.expectedMessage != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Message != tt.expectedMessage {
					t.Errorf("Expected message %q, got %q", tt.expectedMessage, resp.Message)
				}
			}
		})
	}

	votes, err := svc.ListVotes(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("ListVotes failed: %v", err)
	}
	if len(votes) != 1 {
		t.Errorf("Expected exactly 1 stored vote, got %d", len(votes))
	}
}

func TestCastVoteOutsideVotingWindow(t *testing.T) {
	svc := testutil.NewTestService(t)
	handler := NewVotingHandler(svc, testutil.GetTestConfig())

	for _, status := range []models.Status{models.StatusUpcoming, models.StatusEnded} {
		t.Run(string(status), func(t *testing.T) {
			e := testutil.CreateTestElection(t, svc, status)

			w := castVote(handler, e.ID, models.CastVoteRequest{UserID: "voter-1", CandidateID: "A"})

			testutil.AssertStatus(t, w, http.StatusConflict)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Message != election.ErrElectionNotActive.Error() {
				t.Errorf("Expected not-active message, got %q", resp.Message)
			}

			voted, _ := svc.HasVoted(context.Background(), "voter-1", e.ID)
			if voted {
				t.Error("Rejected vote must not be recorded")
			}
		})
	}
}

func TestCastVoteInvalidJSON(t *testing.T) {
	svc := testutil.NewTestService(t)
	handler := NewVotingHandler(svc, testutil.GetTestConfig())
	e := testutil.CreateTestElection(t, svc, models.StatusActive)

	req := testutil.MakeRequest("POST", "/elections/"+e.ID+"/votes", nil, nil)
	req.SetPathValue("id", e.ID)
	w := httptest.NewRecorder()

	handler.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestHasVoted(t *testing.T) {
	svc := testutil.NewTestService(t)
	handler := NewVotingHandler(svc, testutil.GetTestConfig())
	e := testutil.CreateTestElection(t, svc, models.StatusActive)
	testutil.CastTestVote(t, svc, e.ID, "voter-1", "B")

	tests := []struct {
		name           string
		electionID     string
		userID         string
		expectedStatus int
		expectedVoted  bool
	}{
		{"voted", e.ID, "voter-1", http.StatusOK, true},
		{"not voted", e.ID, "voter-2", http.StatusOK, false},
		{"unknown election", "nope", "voter-1", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/elections/"+tt.electionID+"/votes/"+tt.userID, nil, nil)
			req.SetPathValue("id", tt.electionID)
			req.SetPathValue("userId", tt.userID)
			w := httptest.NewRecorder()

			handler.HasVoted(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var resp models.HasVotedResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.HasVoted != tt.expectedVoted {
					t.Errorf("Expected has_voted=%v, got %v", tt.expectedVoted, resp.HasVoted)
				}
				if resp.UserID != tt.userID || resp.ElectionID != tt.electionID {
					t.Errorf("Unexpected echo: %+v", resp)
				}
			}
		})
	}
}

func TestListVotes(t *testing.T) {
	svc := testutil.NewTestService(t)
	handler := NewVotingHandler(svc, testutil.GetTestConfig())
	e := testutil.CreateTestElection(t, svc, models.StatusActive)
	other := testutil.CreateTestElection(t, svc, models.StatusActive)

	testutil.CastTestVote(t, svc, e.ID, "voter-1", "A")
	testutil.CastTestVote(t, svc, other.ID, "voter-1", "B")
	testutil.CastTestVote(t, svc, e.ID, "voter-2", "B")

	t.Run("votes for one election in cast order", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/elections/"+e.ID+"/votes", nil, testutil.AdminHeaders())
		req.SetPathValue("id", e.ID)
		w := httptest.NewRecorder()

		handler.ListVotes(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var votes []models.Vote
		testutil.AssertJSON(t, w, &votes)
		if len(votes) != 2 {
			t.Fatalf("Expected 2 votes, got %d", len(votes))
		}
		if votes[0].UserID != "voter-1" || votes[1].UserID != "voter-2" {
			t.Errorf("Unexpected order: %+v", votes)
		}
	})

	t.Run("unknown election", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/elections/nope/votes", nil, testutil.AdminHeaders())
		req.SetPathValue("id", "nope")
		w := httptest.NewRecorder()

		handler.ListVotes(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("votes by user across elections", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/users/voter-1/votes", nil, nil)
		req.SetPathValue("userId", "voter-1")
		w := httptest.NewRecorder()

		handler.VotesByUser(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var votes []models.Vote
		testutil.AssertJSON(t, w, &votes)
		if len(votes) != 2 {
			t.Fatalf("Expected 2 votes, got %d", len(votes))
		}
		if votes[0].ElectionID != e.ID || votes[1].ElectionID != other.ID {
			t.Errorf("Unexpected elections: %+v", votes)
		}
	})

	t.Run("user with no votes", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/users/ghost/votes", nil, nil)
		req.SetPathValue("userId", "ghost")
		w := httptest.NewRecorder()

		handler.VotesByUser(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var votes []models.Vote
		testutil.AssertJSON(t, w, &votes)
		if votes == nil || len(votes) != 0 {
			t.Errorf("Expected empty array, got %v", votes)
		}
	})
}
