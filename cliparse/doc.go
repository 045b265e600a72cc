// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: memory, sqlite, postgres or bolt (default: memory)
  - DatabaseURL: Connection string or file path (required unless memory)
  - AdminKey: Shared key for admin routes (optional)
  - SeedDemo: Load the demo elections on start
  - CORSOrigin: Allowed origin (default: echo the request Origin)

# CLI Flags

	-p            Server port
	-t            Database type
	-d            Database URL
	-seed         Load demo data
	-admin-key    Admin key
	-cors-origin  Allowed CORS origin

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_TYPE → -t
	DATABASE_URL  → -d
	SEED_DEMO     → -seed
	ADMIN_KEY     → -admin-key
	CORS_ORIGIN   → -cors-origin

CLI flags take precedence over environment variables. main loads a .env
file (if present) before ParseFlags runs.

# Validation

ParseFlags returns an error if:

  - PORT or SEED_DEMO cannot be parsed
  - DatabaseType is not one of the four backends
  - DatabaseURL is missing for a non-memory backend
*/
package cliparse
