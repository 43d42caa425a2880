package utils

import (
	"strings"
	"unicode"
)

// Truncate returns s truncated to maxLen characters, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// NormalizeTerm lowercases a term and strips leading/trailing punctuation,
// keeping internal hyphens and underscores. Index terms and query terms go
// through the same normalization so lookups agree.
func NormalizeTerm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) && r != '-' && r != '_'
	})
}

// NormalizeTerms applies NormalizeTerm to each element, dropping empties.
func NormalizeTerms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := NormalizeTerm(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// LocationTokens splits a location string into normalized tokens so that
// "Central Park" indexes and matches as both "central" and "park".
func LocationTokens(location string) []string {
	return NormalizeTerms(strings.Fields(location))
}
