// Package cli provides output formatting for the Photofind CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/photofind/internal/adapter"
	"github.com/hyperjump/photofind/internal/models"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteResults writes an interactive search result to w in the given format.
func WriteResults(w io.Writer, result *adapter.InteractiveResult, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		writeResultsText(w, result)
		return nil
	}
}

func writeResultsText(w io.Writer, result *adapter.InteractiveResult) {
	fmt.Fprintf(w, "\nFound %d photos in %dms", result.TotalCount, result.SearchTimeMs)
	if result.Partial {
		fmt.Fprint(w, " (partial: ranking cut short by the time budget)")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)
	for i, m := range result.Matches {
		writeOneMatch(w, i+1, m)
	}
	if result.NextOffset >= 0 {
		fmt.Fprintf(w, "More results available (next offset %d)\n", result.NextOffset)
	}
}

func writeOneMatch(w io.Writer, rank int, m adapter.AnnotatedMatch) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | Score: %.4f\n", rank, m.Score)
	fmt.Fprintf(w, "ID: %s\n", m.Photo.ID)
	fmt.Fprintf(w, "File: %s\n", m.Photo.Filename)
	if m.Photo.Metadata.Location != "" {
		fmt.Fprintf(w, "Location: %s\n", m.Photo.Metadata.Location)
	}
	if m.Photo.Metadata.TakenAt != nil {
		fmt.Fprintf(w, "Taken: %s\n", m.Photo.Metadata.TakenAt.Format("2006-01-02"))
	}
	if len(m.MatchedCriteria) > 0 {
		fmt.Fprintf(w, "Matched: %s\n", strings.Join(m.MatchedCriteria, ", "))
	}
	fmt.Fprintln(w)
}

// WriteSuggestions writes refinement suggestions in the given format.
func WriteSuggestions(w io.Writer, suggestions []models.SearchSuggestion, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(suggestions)
	}
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "No suggestions.")
		return nil
	}
	fmt.Fprintln(w, "Try refining your query:")
	for _, s := range suggestions {
		fmt.Fprintf(w, "  • %s (e.g. %q)\n", s.Suggestion, s.Example)
	}
	return nil
}

// WriteOutcome writes an agent command outcome in the given format.
func WriteOutcome(w io.Writer, outcome adapter.Outcome, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	}
	if !outcome.Success {
		fmt.Fprintf(w, "Command failed: %s\n", outcome.Error)
		return nil
	}
	fmt.Fprintln(w, "Command succeeded.")
	if outcome.StructuredData != nil {
		fmt.Fprintf(w, "%d of %d photos returned.\n",
			outcome.StructuredData.MainEntity.NumberOfItems, outcome.StructuredData.TotalCount)
	}
	return nil
}
