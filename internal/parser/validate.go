package parser

import (
	"github.com/hyperjump/photofind/internal/models"
)

// IssueTooVague flags a query with too few extractable parameters.
const IssueTooVague = "too_vague"

// ValidateQuery checks whether text yields enough parameters to search on,
// and surfaces malformed date expressions as field-specific errors. Failures
// are returned as values, never raised.
func (p *Parser) ValidateQuery(text string) models.QueryValidation {
	intent := p.ExtractIntent(text)
	query := p.ExtractParameters(text, intent.Type)
	_, dateErrors := parseTemporal(text, p.now())

	v := models.QueryValidation{IsValid: true, Errors: dateErrors}
	criteria := query.CriteriaCount()

	if criteria == 0 {
		v.IsValid = false
		v.Issues = append(v.Issues, IssueTooVague)
	}
	if len(dateErrors) > 0 {
		v.IsValid = false
	}

	// Confidence blends intent strength with how much the query pinned down.
	coverage := float64(criteria) / 3.0
	if coverage > 1 {
		coverage = 1
	}
	v.Confidence = (intent.Confidence + coverage) / 2
	return v
}

// SuggestRefinements returns actionable suggestions, each with example
// phrasing, for vague or underspecified queries.
func (p *Parser) SuggestRefinements(text string) []models.SearchSuggestion {
	intent := p.ExtractIntent(text)
	query := p.ExtractParameters(text, intent.Type)

	var suggestions []models.SearchSuggestion
	if query.Semantic == nil {
		suggestions = append(suggestions, models.SearchSuggestion{
			Suggestion: "describe the subject of the photo",
			Example:    "sunset at the beach",
		})
	}
	if query.Temporal == nil {
		suggestions = append(suggestions, models.SearchSuggestion{
			Suggestion: "specify a time period",
			Example:    "from summer 2023",
		})
	}
	if query.Spatial == nil {
		suggestions = append(suggestions, models.SearchSuggestion{
			Suggestion: "add a location",
			Example:    "in Hawaii",
		})
	}
	if query.People == nil {
		suggestions = append(suggestions, models.SearchSuggestion{
			Suggestion: "name who is in the photo",
			Example:    "with Sarah",
		})
	}
	return suggestions
}
