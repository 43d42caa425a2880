package parser

import (
	"regexp"
	"strings"

	"github.com/hyperjump/photofind/pkg/utils"
)

var phraseRegex = regexp.MustCompile(`["']([^"']+)["']`)

// tokenize splits text into normalized tokens. Quoted phrases become single
// tokens marked Quoted.
func tokenize(text string) []Token {
	var tokens []Token
	for _, match := range phraseRegex.FindAllStringSubmatch(text, -1) {
		if phrase := strings.TrimSpace(match[1]); phrase != "" {
			tokens = append(tokens, Token{Text: strings.ToLower(phrase), Quoted: true})
		}
	}
	remaining := phraseRegex.ReplaceAllString(text, " ")
	for _, word := range strings.Fields(remaining) {
		if normalized := utils.NormalizeTerm(word); normalized != "" {
			tokens = append(tokens, Token{Text: normalized})
		}
	}
	return tokens
}

// patternRecognizer is the default vocabulary/regex entity recognizer.
type patternRecognizer struct{}

var (
	yearRegex     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	relativeRegex = regexp.MustCompile(`(?i)\b(yesterday|today|last\s+(?:week|month|year)|recent(?:ly)?)\b`)
	// A location phrase follows a spatial preposition and is capitalized,
	// e.g. "in Hawaii", "at Central Park", "near the Swiss Alps".
	locationRegex = regexp.MustCompile(`\b(?:in|at|near|from)\s+(?:the\s+)?([A-Z][\w'-]*(?:\s+[A-Z][\w'-]*)*)`)
	// People follow "with", e.g. "with Sarah and Tom".
	personRegex = regexp.MustCompile(`\bwith\s+([A-Z][a-z]+(?:\s+(?:and|&)\s+[A-Z][a-z]+)*)`)
	personSplit = regexp.MustCompile(`\s+(?:and|&)\s+`)
)

// Recognize tags objects, keyword phrases, time periods, locations, and
// people in text, each with a heuristic confidence.
func (r *patternRecognizer) Recognize(text string) []Entity {
	var entities []Entity

	for _, match := range phraseRegex.FindAllStringSubmatch(text, -1) {
		if phrase := strings.TrimSpace(match[1]); phrase != "" {
			entities = append(entities, Entity{
				Text: strings.ToLower(phrase), Type: EntityKeywordPhrase, Confidence: 0.95,
			})
		}
	}

	for _, tok := range tokenize(phraseRegex.ReplaceAllString(text, " ")) {
		switch {
		case objectVocab[tok.Text]:
			entities = append(entities, Entity{Text: tok.Text, Type: EntityObject, Confidence: 0.9})
		case seasonVocab[tok.Text]:
			entities = append(entities, Entity{Text: tok.Text, Type: EntityTimePeriod, Confidence: 0.85})
		}
	}

	for _, year := range yearRegex.FindAllString(text, -1) {
		entities = append(entities, Entity{Text: year, Type: EntityTimePeriod, Confidence: 0.9})
	}
	for _, rel := range relativeRegex.FindAllString(text, -1) {
		entities = append(entities, Entity{Text: strings.ToLower(rel), Type: EntityTimePeriod, Confidence: 0.8})
	}

	for _, match := range locationRegex.FindAllStringSubmatch(text, -1) {
		place := strings.TrimSpace(match[1])
		if place == "" || isTemporalPhrase(place) {
			continue
		}
		entities = append(entities, Entity{Text: place, Type: EntityLocation, Confidence: 0.8})
	}

	for _, match := range personRegex.FindAllStringSubmatch(text, -1) {
		for _, name := range personSplit.Split(match[1], -1) {
			name = strings.TrimSpace(name)
			if name == "" || isTemporalPhrase(name) {
				continue
			}
			entities = append(entities, Entity{Text: name, Type: EntityPerson, Confidence: 0.7})
		}
	}

	return entities
}

// isTemporalPhrase filters capitalized month/season words out of location and
// person captures ("in December" is a time, not a place).
func isTemporalPhrase(s string) bool {
	first := strings.ToLower(strings.Fields(s)[0])
	if _, ok := monthVocab[first]; ok {
		return true
	}
	return seasonVocab[first]
}
