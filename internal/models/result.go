package models

// Pagination selects a window of the full ordered result set.
type Pagination struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Normalize clamps the window against the configured defaults.
func (p *Pagination) Normalize(defaultLimit, maxLimit int) {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PhotoMatch is a single ranked hit.
type PhotoMatch struct {
	Photo *PhotoRecord `json:"photo"`
	// Score is the normalized relevance in [0,1].
	Score float64 `json:"score"`
	// MatchedCriteria names the satisfied criteria, e.g. "keyword:sunset"
	// or "fuzzy:keyword:sunset".
	MatchedCriteria []string `json:"matched_criteria"`
}

// SearchResult is the ordered, paginated outcome of one search.
type SearchResult struct {
	Matches []*PhotoMatch `json:"matches"`
	// TotalCount is the size of the full unpaginated match set.
	TotalCount   int   `json:"total_count"`
	SearchTimeMs int64 `json:"search_time_ms"`
	// Partial is set when the soft deadline was exceeded and the ranking
	// covers only the criteria processed so far.
	Partial bool `json:"partial,omitempty"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	// NextOffset is the cursor for the following page, -1 when exhausted.
	NextOffset int `json:"next_offset"`
}

// SearchSuggestion is an actionable refinement hint for a vague query.
type SearchSuggestion struct {
	Suggestion string `json:"suggestion"`
	Example    string `json:"example"`
}

// QueryValidation is the outcome of validating a free-text query.
type QueryValidation struct {
	IsValid    bool     `json:"is_valid"`
	Confidence float64  `json:"confidence"`
	Issues     []string `json:"issues,omitempty"` // e.g. "too_vague"
	Errors     []string `json:"errors,omitempty"` // field-specific messages
}
