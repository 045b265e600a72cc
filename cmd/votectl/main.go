// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command votectl inspects and drives a votebox server from the terminal.
//
//	votectl [-addr URL] [-admin-key KEY] [-no-color] <command> [args]
//
// Commands:
//
//	list                          elections with status and voting window
//	show <id>                     one election and its candidates
//	create <file.json>            create an election from a JSON file (admin)
//	results <id>                  tally, percentages and winner
//	vote <id> <user> <candidate>  cast a vote
//	summary                       totals by status (admin)
//
// VOTEBOX_ADDR and ADMIN_KEY are read from the environment or a .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/votebox/client"
	"github.com/danielhkuo/votebox/election"
	"github.com/danielhkuo/votebox/models"
)

const defaultAddr = "http://localhost:3318"

var errUsage = errors.New("usage: votectl [-addr URL] [-admin-key KEY] [-no-color] list|show|create|results|vote|summary")

func main() {
	_ = godotenv.Load()

	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		color.NoColor = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, time.Now); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, now func() time.Time) error {
	fs := flag.NewFlagSet("votectl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	addr := fs.String("addr", "", "Server base URL (default: $VOTEBOX_ADDR or "+defaultAddr+")")
	adminKey := fs.String("admin-key", "", "Admin key (default: $ADMIN_KEY)")
	noColor := fs.Bool("no-color", false, "Disable colour output")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *noColor {
		color.NoColor = true
	}
	if *addr == "" {
		*addr = os.Getenv("VOTEBOX_ADDR")
	}
	if *addr == "" {
		*addr = defaultAddr
	}
	if *adminKey == "" {
		*adminKey = os.Getenv("ADMIN_KEY")
	}

	c := client.New(*addr, client.WithAdminKey(*adminKey))

	rest := fs.Args()
	if len(rest) == 0 {
		return errUsage
	}
	cmd, rest := rest[0], rest[1:]

	switch cmd {
	case "list":
		elections, err := c.ListElections(ctx)
		if err != nil {
			return err
		}
		renderElections(stdout, elections, now())

	case "show":
		if len(rest) != 1 {
			return fmt.Errorf("%w: show <election-id>", errUsage)
		}
		e, err := c.GetElection(ctx, rest[0])
		if err != nil {
			return err
		}
		renderElection(stdout, e, now())

	case "create":
		if len(rest) != 1 {
			return fmt.Errorf("%w: create <file.json>", errUsage)
		}
		req, err := readElectionFile(rest[0])
		if err != nil {
			return err
		}
		e, err := c.CreateElection(ctx, req)
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(stdout, "Created election %s\n", e.ID)
		renderElection(stdout, e, now())

	case "results":
		if len(rest) != 1 {
			return fmt.Errorf("%w: results <election-id>", errUsage)
		}
		res, err := c.Results(ctx, rest[0])
		if err != nil {
			return err
		}
		renderResults(stdout, res)

	case "vote":
		if len(rest) != 3 {
			return fmt.Errorf("%w: vote <election-id> <user-id> <candidate-id>", errUsage)
		}
		v, err := c.CastVote(ctx, rest[0], rest[1], rest[2])
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(stdout, "Vote recorded for %s at %s\n",
			v.CandidateID, v.Timestamp.Format(time.RFC3339))

	case "summary":
		s, err := c.Summary(ctx)
		if err != nil {
			return err
		}
		renderSummary(stdout, s)

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
	return nil
}

// readElectionFile decodes a create request in the same JSON shape
// POST /elections accepts.
func readElectionFile(path string) (models.CreateElectionRequest, error) {
	var req models.CreateElectionRequest

	f, err := os.Open(path)
	if err != nil {
		return req, fmt.Errorf("failed to open election file: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("invalid election file %s: %w", path, err)
	}
	return req, nil
}

// describe phrases election errors for a terminal user.
func describe(err error) string {
	switch {
	case errors.Is(err, election.ErrNotFound):
		return "No such election."
	case errors.Is(err, election.ErrDuplicateVote):
		return "That user has already voted in this election."
	case errors.Is(err, election.ErrElectionNotActive):
		return "This election is not open for voting."
	case errors.Is(err, election.ErrUnknownCandidate):
		return "That candidate is not on the ballot."
	}
	var verr *election.ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf("Invalid election: %s.", verr.Message)
	}
	return err.Error()
}
