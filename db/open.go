// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"

	"github.com/danielhkuo/votebox/cliparse"
	"github.com/danielhkuo/votebox/election"
)

// Open returns the store selected by cfg.DatabaseType.
func Open(cfg cliparse.Config) (election.Store, error) {
	switch cfg.DatabaseType {
	case cliparse.DatabaseMemory, "":
		return election.NewMemoryStore(), nil
	case cliparse.DatabaseSQLite:
		return OpenSQLite(cfg.DatabaseURL)
	case cliparse.DatabasePostgres:
		return OpenPostgres(cfg.DatabaseURL)
	case cliparse.DatabaseBolt:
		return OpenBolt(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}
}
