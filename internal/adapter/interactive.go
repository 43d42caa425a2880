package adapter

import "github.com/hyperjump/photofind/internal/models"

// AnnotatedMatch is a ranked hit with its actionable handles.
type AnnotatedMatch struct {
	Photo           *models.PhotoRecord `json:"photo"`
	Score           float64             `json:"score"`
	MatchedCriteria []string            `json:"matched_criteria"`
	Actions         []ActionDescriptor  `json:"actions"`
}

// InteractiveResult is the UI-facing output profile.
type InteractiveResult struct {
	Matches      []AnnotatedMatch   `json:"matches"`
	TotalCount   int                `json:"total_count"`
	Partial      bool               `json:"partial,omitempty"`
	NextOffset   int                `json:"next_offset"`
	SearchTimeMs int64              `json:"search_time_ms"`
	BulkActions  []ActionDescriptor `json:"bulk_actions,omitempty"`
}

// FormatInteractive annotates each photo with its action handles and, when
// the page holds more than one photo, attaches the bulk descriptors.
func FormatInteractive(result *models.SearchResult) *InteractiveResult {
	out := &InteractiveResult{
		Matches:      make([]AnnotatedMatch, 0, len(result.Matches)),
		TotalCount:   result.TotalCount,
		Partial:      result.Partial,
		NextOffset:   result.NextOffset,
		SearchTimeMs: result.SearchTimeMs,
	}
	for _, m := range result.Matches {
		out.Matches = append(out.Matches, AnnotatedMatch{
			Photo:           m.Photo,
			Score:           m.Score,
			MatchedCriteria: m.MatchedCriteria,
			Actions:         photoActions(m.Photo.ID),
		})
	}
	if len(result.Matches) > 1 {
		out.BulkActions = bulkActions()
	}
	return out
}
