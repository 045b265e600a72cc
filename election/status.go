// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"time"

	"github.com/danielhkuo/votebox/models"
)

// ResolveStatus derives an election's phase from its bounds and now.
// Both bounds are inclusive for the active phase.
func ResolveStatus(start, end, now time.Time) models.Status {
	if now.Before(start) {
		return models.StatusUpcoming
	}
	if now.After(end) {
		return models.StatusEnded
	}
	return models.StatusActive
}
