// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("election not found")
	ErrDuplicateVote     = errors.New("user has already voted in this election")
	ErrElectionNotActive = errors.New("election is not open for voting")
	ErrUnknownCandidate  = errors.New("candidate is not on this election's ballot")
)

// ValidationError reports a caller-supplied field that breaks an election
// or vote rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
