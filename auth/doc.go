// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the admin key check and log-safe user fingerprints.

# Admin Key

Admin routes (create election, list votes, summary) expect the configured
key in the X-Admin-Key header:

	if err := auth.ValidateAdminKey(r.Header.Get(auth.AdminKeyHeader), cfg.AdminKey); err != nil {
		// 401
	}

When no admin key is configured the check passes. This is a shared
secret for a demo deployment, not user authentication: voters identify
themselves with a caller-supplied user_id.

# User Fingerprints

HashUserID produces a 16 hex character HMAC-SHA256 prefix of a user id so
request logs can correlate a voter's actions without writing the id:

	slog.Info("vote cast", "voter", auth.HashUserID(userID, cfg.AdminKey))
*/
package auth
