// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is a typed HTTP client for the votebox API.

	c := client.New("http://localhost:3318", client.WithAdminKey(key))
	res, err := c.Results(ctx, electionID)

Error responses come back as the election errors the server produced, so
callers can use errors.Is just as they would against election.Service:

	_, err := c.CastVote(ctx, id, user, candidate)
	if errors.Is(err, election.ErrDuplicateVote) {
		// already voted
	}

Responses that map to no election error are returned as *APIError.
*/
package client
