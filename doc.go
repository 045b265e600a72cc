// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the votebox API server.

votebox keeps elections with a fixed candidate list and a voting window,
records at most one vote per user per election, and tallies results on
demand.

# Starting the Server

With no configuration the server keeps everything in memory:

	go run .

Or with flags:

	go run . -p 3318 -t sqlite -d votebox.db -seed

A .env file in the working directory is loaded first when present.

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): memory, sqlite, postgres or bolt (default: memory)
  - DATABASE_URL (-d): Connection string or file path (required unless memory)
  - ADMIN_KEY (-admin-key): Shared secret for admin routes
  - SEED_DEMO (-seed): Load the three demo elections on start
  - CORS_ORIGIN (-cors-origin): Allowed browser origin

# Architecture

  - election: Status resolution, voting rules, results, in-memory store
  - db: SQL (postgres, sqlite) and bolt stores
  - handlers: HTTP request handlers (elections, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin check, JSON helpers
  - models: Domain and request/response types
  - auth: Admin key check and log-safe user fingerprints
  - cliparse: Configuration parsing
  - client: Typed HTTP client for the API
  - cmd/votectl: Operator command line tool

See package documentation for each component.
*/
package main
