// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/votebox/auth"
	"github.com/danielhkuo/votebox/election"
	"github.com/danielhkuo/votebox/models"
)

// Client talks to a votebox server.
type Client struct {
	baseURL    string
	adminKey   string
	httpClient *http.Client
}

type Option func(*Client)

// WithAdminKey sends key as X-Admin-Key on every request.
func WithAdminKey(key string) Option {
	return func(c *Client) { c.adminKey = key }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response that does not map to an election error.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func (c *Client) ListElections(ctx context.Context) ([]models.Election, error) {
	var out []models.Election
	err := c.do(ctx, http.MethodGet, "/elections", nil, &out)
	return out, err
}

func (c *Client) GetElection(ctx context.Context, id string) (models.Election, error) {
	var out models.Election
	err := c.do(ctx, http.MethodGet, "/elections/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) CreateElection(ctx context.Context, req models.CreateElectionRequest) (models.Election, error) {
	var out models.Election
	err := c.do(ctx, http.MethodPost, "/elections", req, &out)
	return out, err
}

func (c *Client) CastVote(ctx context.Context, electionID, userID, candidateID string) (models.Vote, error) {
	var out models.Vote
	body := models.CastVoteRequest{UserID: userID, CandidateID: candidateID}
	err := c.do(ctx, http.MethodPost, "/elections/"+url.PathEscape(electionID)+"/votes", body, &out)
	return out, err
}

func (c *Client) HasVoted(ctx context.Context, electionID, userID string) (bool, error) {
	var out models.HasVotedResponse
	path := "/elections/" + url.PathEscape(electionID) + "/votes/" + url.PathEscape(userID)
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out.HasVoted, err
}

func (c *Client) ListVotes(ctx context.Context, electionID string) ([]models.Vote, error) {
	var out []models.Vote
	err := c.do(ctx, http.MethodGet, "/elections/"+url.PathEscape(electionID)+"/votes", nil, &out)
	return out, err
}

func (c *Client) VotesByUser(ctx context.Context, userID string) ([]models.Vote, error) {
	var out []models.Vote
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/votes", nil, &out)
	return out, err
}

func (c *Client) Results(ctx context.Context, electionID string) (models.ResultsResponse, error) {
	var out models.ResultsResponse
	err := c.do(ctx, http.MethodGet, "/elections/"+url.PathEscape(electionID)+"/results", nil, &out)
	return out, err
}

func (c *Client) Summary(ctx context.Context) (models.Summary, error) {
	var out models.Summary
	err := c.do(ctx, http.MethodGet, "/summary", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.adminKey != "" {
		req.Header.Set(auth.AdminKeyHeader, c.adminKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		return decodeError(res)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeError turns an error response back into the election error the
// server mapped it from, when there is one.
func decodeError(res *http.Response) error {
	var body models.ErrorResponse
	_ = json.NewDecoder(res.Body).Decode(&body)

	switch res.StatusCode {
	case http.StatusNotFound:
		return election.ErrNotFound
	case http.StatusConflict:
		if body.Message == election.ErrElectionNotActive.Error() {
			return election.ErrElectionNotActive
		}
		return election.ErrDuplicateVote
	case http.StatusBadRequest:
		if body.Message == election.ErrUnknownCandidate.Error() {
			return election.ErrUnknownCandidate
		}
		if body.Field != "" {
			return &election.ValidationError{Field: body.Field, Message: body.Message}
		}
	}
	return &APIError{StatusCode: res.StatusCode, Message: body.Message}
}
