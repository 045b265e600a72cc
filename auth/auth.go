// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// AdminKeyHeader carries the admin key on admin requests.
const AdminKeyHeader = "X-Admin-Key"

var (
	ErrMissingAdminKey = errors.New("admin key required")
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// ValidateAdminKey checks a presented admin key against the configured one.
// An empty configured key disables the check.
func ValidateAdminKey(presented, configured string) error {
	if configured == "" {
		return nil
	}
	if presented == "" {
		return ErrMissingAdminKey
	}
	// Compare digests so the comparison time does not depend on key length.
	if !hmac.Equal(digest(presented), digest(configured)) {
		return ErrInvalidAdminKey
	}
	return nil
}

func digest(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return sum[:]
}

// HashUserID returns a short one-way fingerprint of a user id for logs,
// keyed by salt so fingerprints differ between deployments.
func HashUserID(userID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(userID))
	sum := h.Sum(nil)
	// First 8 bytes are enough to correlate log lines
	return hex.EncodeToString(sum[:8])
}
