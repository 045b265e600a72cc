// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/danielhkuo/votebox/models"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	winner  = color.New(color.FgGreen, color.Bold)
)

func statusColor(s models.Status) *color.Color {
	switch s {
	case models.StatusActive:
		return color.New(color.FgGreen)
	case models.StatusUpcoming:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgHiBlack)
	}
}

func when(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

func renderElections(w io.Writer, elections []models.Election, now time.Time) {
	if len(elections) == 0 {
		fmt.Fprintln(w, "No elections.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Title", "Status", "Starts", "Ends", "Candidates"})

	for _, e := range elections {
		table.Append([]string{
			e.ID,
			e.Title,
			statusColor(e.Status).Sprint(e.Status),
			when(e.StartDate, now),
			when(e.EndDate, now),
			strconv.Itoa(len(e.Candidates)),
		})
	}

	table.Render()
}

func renderElection(w io.Writer, e models.Election, now time.Time) {
	heading.Fprintln(w, e.Title)
	if e.Description != "" {
		fmt.Fprintln(w, e.Description)
	}
	fmt.Fprintf(w, "Status: %s\n", statusColor(e.Status).Sprint(e.Status))
	fmt.Fprintf(w, "Voting: %s (%s) to %s (%s)\n",
		e.StartDate.Format(time.RFC3339), when(e.StartDate, now),
		e.EndDate.Format(time.RFC3339), when(e.EndDate, now))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Candidate ID", "Name", "Description"})
	for _, c := range e.Candidates {
		table.Append([]string{c.ID, c.Name, c.Description})
	}
	table.Render()
}

func renderResults(w io.Writer, res models.ResultsResponse) {
	title := res.Election.Title
	if res.Final {
		title += " (final)"
	} else {
		title += " (live)"
	}
	heading.Fprintln(w, title)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Candidate", "Votes", "Share"})
	for _, r := range res.Results {
		table.Append([]string{
			r.Candidate.Name,
			humanize.Comma(int64(r.Votes)),
			fmt.Sprintf("%.1f%%", r.Percentage),
		})
	}
	table.SetFooter([]string{"Total", humanize.Comma(int64(res.TotalVotes)), ""})
	table.Render()

	if len(res.Winners) == 0 {
		fmt.Fprintln(w, "No votes yet.")
		return
	}
	label := "Leading"
	if res.Final {
		label = "Winner"
	}
	if len(res.Winners) > 1 {
		label = "Tied"
	}
	names := make([]string, len(res.Winners))
	for i, c := range res.Winners {
		names[i] = c.Name
	}
	winner.Fprintf(w, "%s: %s\n", label, strings.Join(names, ", "))
}

func renderSummary(w io.Writer, s models.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Elections", "Upcoming", "Active", "Ended", "Votes"})
	table.Append([]string{
		humanize.Comma(int64(s.TotalElections)),
		humanize.Comma(int64(s.Upcoming)),
		humanize.Comma(int64(s.Active)),
		humanize.Comma(int64(s.Ended)),
		humanize.Comma(int64(s.TotalVotes)),
	})
	table.Render()
}
