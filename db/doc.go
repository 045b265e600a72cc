// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides the durable election stores.

# Opening a Store

Open picks a backend from the configuration:

	store, err := db.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

Backends:

  - memory: election.MemoryStore (nothing persisted)
  - sqlite: SQLStore over modernc.org/sqlite, DATABASE_URL is a file path
  - postgres: SQLStore over lib/pq, DATABASE_URL is a connection string
  - bolt: BoltStore, DATABASE_URL is a file path

# Schema Creation

NewSQLStore runs CreateSchema, which is safe to call multiple times - it
uses IF NOT EXISTS for all tables and indexes.

# Tables

  - election: metadata, start/end as unix milliseconds
  - candidate: ballot entries, ordered by ord
  - vote: one row per cast vote

# Relationships

	election 1──* candidate
	election 1──* vote

# One Vote Per Voter

The vote table carries UNIQUE (election_id, user_id). InsertVote is a
single INSERT; a violation (pq code 23505, or sqlite's UNIQUE constraint
failure) is returned as election.ErrDuplicateVote.

BoltStore keeps a ballots bucket keyed by election id and user id and
checks it inside the same write transaction that stores the vote.
*/
package db
