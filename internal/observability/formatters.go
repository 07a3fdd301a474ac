// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScoreBreakdown outputs the per-dimension audit trail of a single ranking.
func (p *Printer) PrintScoreBreakdown(result *types.ScoreBreakdown) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:  %.2f  %s (%s)\n\n", result.OverallScore, result.Ranking, result.Category))
	sb.WriteString(fmt.Sprintf("%-12s %8s %8s %10s\n", "Dimension", "Score", "Weight", "Weighted"))

	rows := []struct {
		name string
		dim  types.DimensionScore
	}{
		{"skills", result.Breakdown.Skills},
		{"experience", result.Breakdown.Experience},
		{"location", result.Breakdown.Location},
		{"education", result.Breakdown.Education},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-12s %8.2f %8.2f %10.2f\n", row.name, row.dim.Score, row.dim.Weight, row.dim.WeightedScore))
	}

	if len(result.MatchedSkills) > 0 {
		sb.WriteString(fmt.Sprintf("\nMatched: %s", joinLimited(result.MatchedSkills)))
	}
	if len(result.MissingSkills) > 0 {
		sb.WriteString(fmt.Sprintf("\nMissing: %s", joinLimited(result.MissingSkills)))
	}

	p.printBox("SCORE BREAKDOWN", sb.String())
}

// PrintRankedCandidates outputs the top candidates of a batch ranking for one job.
func (p *Printer) PrintRankedCandidates(ranked *types.RankedCandidates) {
	if ranked == nil || len(ranked.Ranked) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job: %s\n", ranked.JobID))
	sb.WriteString(fmt.Sprintf("Total candidates ranked: %d\n\n", len(ranked.Ranked)))

	count := min(len(ranked.Ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		pair := ranked.Ranked[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, pair.CandidateID))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  %s\n", pair.Result.OverallScore, pair.Result.Category))
	}

	if len(ranked.Ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(ranked.Ranked)-maxItemsToShow))
	}

	p.printBox("TOP RANKED CANDIDATES", sb.String())
}

func joinLimited(items []string) string {
	shown := items
	if len(items) > maxItemsToShow {
		shown = items[:maxItemsToShow]
	}
	out := strings.Join(shown, ", ")
	if len(items) > maxItemsToShow {
		out += fmt.Sprintf(" (+%d)", len(items)-maxItemsToShow)
	}
	return out
}
