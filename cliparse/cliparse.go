// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Database backends
const (
	DatabaseMemory   = "memory"
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabaseBolt     = "bolt"
)

const DefaultPort = 3318

type Config struct {
	Port         int
	DatabaseType string
	DatabaseURL  string
	AdminKey     string
	SeedDemo     bool
	CORSOrigin   string
}

// ParseFlags parses CLI flags, falling back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("votebox", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.CORSOrigin, "cors-origin", "", "Allowed CORS origin (default: echo request origin)")

	// Storage
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (memory, sqlite, postgres or bolt)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or file path")
	fs.BoolVar(&cfg.SeedDemo, "seed", false, "Load demo elections on start")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key for election management (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseMemory
		}
	}
	switch cfg.DatabaseType {
	case DatabaseMemory, DatabaseSQLite, DatabasePostgres, DatabaseBolt:
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType != DatabaseMemory {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if !cfg.SeedDemo {
		if seedStr := os.Getenv("SEED_DEMO"); seedStr != "" {
			seed, err := strconv.ParseBool(seedStr)
			if err != nil {
				return Config{}, errors.New("invalid SEED_DEMO env variable")
			}
			cfg.SeedDemo = seed
		}
	}

	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = os.Getenv("CORS_ORIGIN")
	}

	return cfg, nil
}
