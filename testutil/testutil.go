// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/votebox/cliparse"
	"github.com/danielhkuo/votebox/election"
	"github.com/danielhkuo/votebox/models"
)

// TestAdminKey is the admin key GetTestConfig configures
const TestAdminKey = "test-admin-key"

// Epoch is the fixed "now" of services built by NewTestService
var Epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// FixedClock returns a clock that always reads t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         cliparse.DefaultPort,
		DatabaseType: cliparse.DatabaseMemory,
		AdminKey:     TestAdminKey,
	}
}

// NewTestService returns a service over a fresh in-memory store whose
// clock is pinned to Epoch
func NewTestService(t *testing.T) *election.Service {
	t.Helper()
	return election.NewService(election.NewMemoryStore(), election.WithClock(FixedClock(Epoch)))
}

// CreateTestElection creates an election relative to Epoch and returns it.
// status should be "upcoming", "active", or "ended"; candidates default
// to A and B.
func CreateTestElection(t *testing.T, svc *election.Service, status models.Status, candidates ...string) models.Election {
	t.Helper()

	start, end := Epoch.Add(-time.Hour), Epoch.Add(time.Hour)
	switch status {
	case models.StatusUpcoming:
		start, end = Epoch.Add(24*time.Hour), Epoch.Add(48*time.Hour)
	case models.StatusEnded:
		start, end = Epoch.Add(-48*time.Hour), Epoch.Add(-24*time.Hour)
	}

	if len(candidates) == 0 {
		candidates = []string{"A", "B"}
	}
	req := models.NewElection{
		Title:       "Test Election",
		Description: "A test election",
		StartDate:   start,
		EndDate:     end,
	}
	for _, id := range candidates {
		req.Candidates = append(req.Candidates, models.Candidate{ID: id, Name: "Candidate " + id})
	}

	e, err := svc.CreateElection(context.Background(), req)
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}
	if e.Status != status {
		t.Fatalf("Test election has status %s, want %s", e.Status, status)
	}
	return e
}

// CastTestVote records a vote through the service, failing the test on error
func CastTestVote(t *testing.T, svc *election.Service, electionID, userID, candidateID string) models.Vote {
	t.Helper()

	v, err := svc.CastVote(context.Background(), electionID, userID, candidateID)
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
	return v
}

// AdminHeaders returns the header map that passes RequireAdmin under GetTestConfig
func AdminHeaders() map[string]string {
	return map[string]string{"X-Admin-Key": TestAdminKey}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
