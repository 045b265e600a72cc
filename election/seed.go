// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/votebox/models"
)

const day = 24 * time.Hour

// DemoElections returns the demo data set positioned around now: one
// active, one upcoming and one ended election.
func DemoElections(now time.Time) []models.Election {
	now = now.UTC().Truncate(time.Millisecond)
	return []models.Election{
		{
			ID:          "election1",
			Title:       "Student Council President Election",
			Description: "Vote for the next student council president for the academic year.",
			StartDate:   now.Add(-day),
			EndDate:     now.Add(5 * day),
			CreatedAt:   now,
			Candidates: []models.Candidate{
				{ID: "candidate1", Name: "Harini Venkatesan", Description: "Junior, Computer Science major with experience in leadership roles."},
				{ID: "candidate2", Name: "Kiran Thirumurugan", Description: "Senior, Political Science major with a focus on student advocacy."},
				{ID: "candidate3", Name: "Sathish Balakrishnan", Description: "Sophomore, Business major with fresh ideas for campus improvement."},
			},
		},
		{
			ID:          "election2",
			Title:       "Campus Improvement Fund Allocation",
			Description: "Vote on how to allocate the campus improvement fund for this fiscal year.",
			StartDate:   now.Add(2 * day),
			EndDate:     now.Add(10 * day),
			CreatedAt:   now,
			Candidates: []models.Candidate{
				{ID: "option1", Name: "Library Renovation", Description: "Modernize the library with new technology and study spaces."},
				{ID: "option2", Name: "Sports Facility Upgrade", Description: "Upgrade the gymnasium and outdoor sports fields."},
				{ID: "option3", Name: "Sustainability Initiatives", Description: "Invest in renewable energy and eco-friendly campus improvements."},
			},
		},
		{
			ID:          "election3",
			Title:       "Faculty Excellence Award",
			Description: "Vote for the professor who has demonstrated exceptional teaching and mentorship.",
			StartDate:   now.Add(-10 * day),
			EndDate:     now.Add(-day),
			CreatedAt:   now,
			Candidates: []models.Candidate{
				{ID: "faculty1", Name: "Dr. Lakshmi Thirunavukkarasu", Description: "Professor of Biology, renowned for interactive teaching methods."},
				{ID: "faculty2", Name: "Prof. Vasanth Ilangovan", Description: "Computer Science Department, dedicated mentor to student researchers."},
				{ID: "faculty3", Name: "Dr. Aishwarya Periyasamy", Description: "English Literature, published author and inspiring educator."},
			},
		},
	}
}

// DemoVotes returns the votes that accompany DemoElections.
func DemoVotes(now time.Time) []models.Vote {
	now = now.UTC().Truncate(time.Millisecond)
	return []models.Vote{
		{ElectionID: "election1", UserID: "2", CandidateID: "candidate2", Timestamp: now.Add(-time.Hour)},
		{ElectionID: "election3", UserID: "2", CandidateID: "faculty1", Timestamp: now.Add(-5 * day)},
	}
}

// SeedDemo writes the demo data straight into store, bypassing voting
// policy so the ended election can carry a vote. Elections that already
// exist are skipped, so it is safe to run on every start.
func SeedDemo(ctx context.Context, store Store, now time.Time) (int, error) {
	seeded := 0
	for _, e := range DemoElections(now) {
		_, err := store.GetElection(ctx, e.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return seeded, fmt.Errorf("failed to look up %s: %w", e.ID, err)
		}
		if err := store.InsertElection(ctx, e); err != nil {
			return seeded, fmt.Errorf("failed to seed %s: %w", e.ID, err)
		}
		seeded++
	}

	for _, v := range DemoVotes(now) {
		err := store.InsertVote(ctx, v)
		if err != nil && !errors.Is(err, ErrDuplicateVote) {
			return seeded, fmt.Errorf("failed to seed vote in %s: %w", v.ElectionID, err)
		}
	}
	return seeded, nil
}
