package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hyperjump/photofind/internal/models"
)

var (
	slashDateRegex = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)
	rangeRegex     = regexp.MustCompile(`(?i)\b(?:from|between)\s+((?:19|20)\d{2})\s+(?:to|and|until|-)\s+((?:19|20)\d{2})\b`)
	monthYearRegex = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+((?:19|20)\d{2})\b`)
	badYearRegex   = regexp.MustCompile(`(?i)\b(?:in|from|since|year)\s+(\d{3}|\d{5,})\b`)
)

// parseTemporal extracts the temporal filter group from text. Returned errors
// are field-specific messages for malformed date expressions; they never stop
// extraction of the well-formed parts.
func parseTemporal(text string, now time.Time) (*models.TemporalFilter, []string) {
	var (
		out    models.TemporalFilter
		errors []string
	)
	lower := strings.ToLower(text)

	// Malformed slash dates produce an error naming the offending token.
	for _, m := range slashDateRegex.FindAllStringSubmatch(text, -1) {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			errors = append(errors, fmt.Sprintf("invalid date expression: %q", m[0]))
		}
	}
	for _, m := range badYearRegex.FindAllStringSubmatch(text, -1) {
		errors = append(errors, fmt.Sprintf("invalid date expression: %q", m[1]))
	}

	if m := rangeRegex.FindStringSubmatch(text); m != nil {
		fromYear, _ := strconv.Atoi(m[1])
		toYear, _ := strconv.Atoi(m[2])
		start := time.Date(fromYear, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(toYear, 12, 31, 23, 59, 59, 0, time.UTC)
		out.Start, out.End = &start, &end
	} else if m := monthYearRegex.FindStringSubmatch(text); m != nil {
		month := time.Month(monthVocab[strings.ToLower(m[1])])
		year, _ := strconv.Atoi(m[2])
		start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0).Add(-time.Second)
		out.Start, out.End = &start, &end
	} else if m := yearRegex.FindString(text); m != "" {
		out.Year, _ = strconv.Atoi(m)
	}

	for season := range seasonVocab {
		if containsWord(lower, season) {
			out.Period = season
			break
		}
	}

	switch {
	case containsWord(lower, "yesterday"):
		start := now.AddDate(0, 0, -1).Truncate(24 * time.Hour)
		end := start.Add(24*time.Hour - time.Second)
		out.Start, out.End = &start, &end
	case containsWord(lower, "today"):
		start := now.Truncate(24 * time.Hour)
		out.Start, out.End = &start, &now
	case strings.Contains(lower, "last week"):
		start := now.AddDate(0, 0, -7)
		out.Start, out.End = &start, &now
	case strings.Contains(lower, "last month"):
		start := now.AddDate(0, -1, 0)
		out.Start, out.End = &start, &now
	case strings.Contains(lower, "last year"):
		if out.Year == 0 {
			out.Year = now.Year() - 1
		}
	case containsWord(lower, "recent") || containsWord(lower, "recently"):
		start := now.AddDate(0, -3, 0)
		out.Start, out.End = &start, &now
	}

	if out.Year == 0 && out.Period == "" && out.Start == nil && out.End == nil {
		return nil, errors
	}
	return &out, errors
}

func containsWord(text, word string) bool {
	idx := strings.Index(text, word)
	for idx >= 0 {
		before := idx == 0 || !isWordRune(text[idx-1])
		afterIdx := idx + len(word)
		after := afterIdx >= len(text) || !isWordRune(text[afterIdx])
		if before && after {
			return true
		}
		next := strings.Index(text[idx+1:], word)
		if next < 0 {
			return false
		}
		idx = idx + 1 + next
	}
	return false
}

func isWordRune(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
