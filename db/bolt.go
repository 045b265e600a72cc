// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/danielhkuo/votebox/election"
	"github.com/danielhkuo/votebox/models"
)

// Bucket layout:
//
//	elections     seq -> election JSON (creation order)
//	election_ids  election id -> seq
//	votes         election id -> {seq -> vote JSON}
//	user_votes    user id -> {seq -> vote JSON}
//	ballots       election id \x00 user id -> empty
var (
	bucketElections   = []byte("elections")
	bucketElectionIDs = []byte("election_ids")
	bucketVotes       = []byte("votes")
	bucketUserVotes   = []byte("user_votes")
	bucketBallots     = []byte("ballots")
)

// BoltStore keeps elections and votes in a single BoltDB file.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) a BoltDB file and ensures every bucket exists.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketElections, bucketElectionIDs, bucketVotes, bucketUserVotes, bucketBallots} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close releases the database file lock.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) ListElections(ctx context.Context) ([]models.Election, error) {
	elections := []models.Election{}

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketElections).ForEach(func(k, v []byte) error {
			var e models.Election
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			elections = append(elections, e)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list elections: %w", err)
	}
	return elections, nil
}

func (s *BoltStore) GetElection(ctx context.Context, id string) (models.Election, error) {
	var e models.Election

	err := s.db.View(func(tx *bolt.Tx) error {
		key := tx.Bucket(bucketElectionIDs).Get([]byte(id))
		if key == nil {
			return election.ErrNotFound
		}
		v := tx.Bucket(bucketElections).Get(key)
		if v == nil {
			return election.ErrNotFound
		}
		return json.Unmarshal(v, &e)
	})
	if err != nil {
		return models.Election{}, err
	}
	return e, nil
}

func (s *BoltStore) InsertElection(ctx context.Context, e models.Election) error {
	e.Status = ""
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode election: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		ids := tx.Bucket(bucketElectionIDs)
		if ids.Get([]byte(e.ID)) != nil {
			return fmt.Errorf("election %s already exists", e.ID)
		}

		b := tx.Bucket(bucketElections)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := itob(seq)
		if err := b.Put(key, data); err != nil {
			return err
		}
		return ids.Put([]byte(e.ID), key)
	})
}

func (s *BoltStore) ListVotes(ctx context.Context, electionID string) ([]models.Vote, error) {
	return s.listNested(bucketVotes, electionID)
}

func (s *BoltStore) ListVotesByUser(ctx context.Context, userID string) ([]models.Vote, error) {
	return s.listNested(bucketUserVotes, userID)
}

func (s *BoltStore) listNested(parent []byte, name string) ([]models.Vote, error) {
	votes := []models.Vote{}

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(parent).Bucket([]byte(name))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var vote models.Vote
			if err := json.Unmarshal(v, &vote); err != nil {
				return err
			}
			votes = append(votes, vote)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, nil
}

func (s *BoltStore) HasVoted(ctx context.Context, userID, electionID string) (bool, error) {
	var voted bool
	err := s.db.View(func(tx *bolt.Tx) error {
		voted = tx.Bucket(bucketBallots).Get(ballotKey(electionID, userID)) != nil
		return nil
	})
	return voted, err
}

// InsertVote checks the ballots bucket and writes the vote inside one
// write transaction; bolt allows a single writer at a time.
func (s *BoltStore) InsertVote(ctx context.Context, v models.Vote) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode vote: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		ballots := tx.Bucket(bucketBallots)
		key := ballotKey(v.ElectionID, v.UserID)
		if ballots.Get(key) != nil {
			return election.ErrDuplicateVote
		}
		if err := ballots.Put(key, []byte{}); err != nil {
			return err
		}

		if err := appendNested(tx.Bucket(bucketVotes), v.ElectionID, data); err != nil {
			return err
		}
		return appendNested(tx.Bucket(bucketUserVotes), v.UserID, data)
	})
}

func appendNested(parent *bolt.Bucket, name string, data []byte) error {
	b, err := parent.CreateBucketIfNotExists([]byte(name))
	if err != nil {
		return err
	}
	seq, err := b.NextSequence()
	if err != nil {
		return err
	}
	return b.Put(itob(seq), data)
}

func ballotKey(electionID, userID string) []byte {
	return []byte(electionID + "\x00" + userID)
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
