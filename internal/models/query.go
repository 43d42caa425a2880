package models

import "time"

// IntentType classifies the purpose of a query.
type IntentType string

const (
	// IntentDiscovery is an open-ended "find me photos of X" query.
	IntentDiscovery IntentType = "discovery"
	// IntentFilter narrows a previous result set ("only the ones from 2023").
	IntentFilter IntentType = "filter"
	// IntentBulkOperation requests an operation over many photos ("download all").
	IntentBulkOperation IntentType = "bulk_operation"
)

// Intent is a classified query purpose with pattern-match strength.
type Intent struct {
	Type       IntentType `json:"type"`
	Confidence float64    `json:"confidence"`
}

// SemanticFilter holds content-describing criteria.
type SemanticFilter struct {
	Keywords []string `json:"keywords,omitempty"`
	Objects  []string `json:"objects,omitempty"`
	Scenes   []string `json:"scenes,omitempty"`
	Mood     string   `json:"mood,omitempty"`
}

// SpatialFilter holds the location criterion.
type SpatialFilter struct {
	Location string `json:"location,omitempty"`
}

// TemporalFilter holds time criteria. Year, Period and the explicit range are
// independent; a query may set any combination.
type TemporalFilter struct {
	Year   int        `json:"year,omitempty"`
	Period string     `json:"period,omitempty"` // season or named relative period
	Start  *time.Time `json:"start,omitempty"`
	End    *time.Time `json:"end,omitempty"`
}

// PeopleFilter holds criteria about who is in the photo.
type PeopleFilter struct {
	Names        []string `json:"names,omitempty"`
	Relationship string   `json:"relationship,omitempty"`
	GroupSize    string   `json:"group_size,omitempty"` // "solo" or "group"
}

// ParsedQuery is the structured form of a natural-language query. Each filter
// group is optional; nil means the group places no constraint.
type ParsedQuery struct {
	Semantic *SemanticFilter `json:"semantic,omitempty"`
	Spatial  *SpatialFilter  `json:"spatial,omitempty"`
	Temporal *TemporalFilter `json:"temporal,omitempty"`
	People   *PeopleFilter   `json:"people,omitempty"`
}

// IsEmpty reports whether no filter group carries any criterion.
func (q *ParsedQuery) IsEmpty() bool {
	return q == nil || q.CriteriaCount() == 0
}

// CriteriaCount counts the individual criteria across all groups.
func (q *ParsedQuery) CriteriaCount() int {
	if q == nil {
		return 0
	}
	n := 0
	if s := q.Semantic; s != nil {
		n += len(s.Keywords) + len(s.Objects) + len(s.Scenes)
		if s.Mood != "" {
			n++
		}
	}
	if q.Spatial != nil && q.Spatial.Location != "" {
		n++
	}
	if t := q.Temporal; t != nil {
		if t.Year != 0 {
			n++
		}
		if t.Period != "" {
			n++
		}
		if t.Start != nil || t.End != nil {
			n++
		}
	}
	if p := q.People; p != nil {
		n += len(p.Names)
		if p.Relationship != "" {
			n++
		}
		if p.GroupSize != "" {
			n++
		}
	}
	return n
}

// SemanticTerms returns all semantic terms (keywords, objects, scenes, mood)
// as a flat list, used for topic-overlap checks and matching.
func (q *ParsedQuery) SemanticTerms() []string {
	if q == nil || q.Semantic == nil {
		return nil
	}
	s := q.Semantic
	terms := make([]string, 0, len(s.Keywords)+len(s.Objects)+len(s.Scenes)+1)
	terms = append(terms, s.Keywords...)
	terms = append(terms, s.Objects...)
	terms = append(terms, s.Scenes...)
	if s.Mood != "" {
		terms = append(terms, s.Mood)
	}
	return terms
}

// Clone returns a deep copy of the query.
func (q *ParsedQuery) Clone() *ParsedQuery {
	if q == nil {
		return nil
	}
	out := &ParsedQuery{}
	if q.Semantic != nil {
		s := *q.Semantic
		s.Keywords = append([]string(nil), q.Semantic.Keywords...)
		s.Objects = append([]string(nil), q.Semantic.Objects...)
		s.Scenes = append([]string(nil), q.Semantic.Scenes...)
		out.Semantic = &s
	}
	if q.Spatial != nil {
		s := *q.Spatial
		out.Spatial = &s
	}
	if q.Temporal != nil {
		t := *q.Temporal
		out.Temporal = &t
	}
	if q.People != nil {
		p := *q.People
		p.Names = append([]string(nil), q.People.Names...)
		out.People = &p
	}
	return out
}

// Merge folds the other query into this one: list fields union, scalar fields
// overwrite when set in other, groups absent from other are preserved.
// Returns the merged query; q itself is not modified.
func (q *ParsedQuery) Merge(other *ParsedQuery) *ParsedQuery {
	merged := q.Clone()
	if merged == nil {
		merged = &ParsedQuery{}
	}
	if other == nil {
		return merged
	}
	if other.Semantic != nil {
		if merged.Semantic == nil {
			merged.Semantic = &SemanticFilter{}
		}
		merged.Semantic.Keywords = unionStrings(merged.Semantic.Keywords, other.Semantic.Keywords)
		merged.Semantic.Objects = unionStrings(merged.Semantic.Objects, other.Semantic.Objects)
		merged.Semantic.Scenes = unionStrings(merged.Semantic.Scenes, other.Semantic.Scenes)
		if other.Semantic.Mood != "" {
			merged.Semantic.Mood = other.Semantic.Mood
		}
	}
	if other.Spatial != nil && other.Spatial.Location != "" {
		merged.Spatial = &SpatialFilter{Location: other.Spatial.Location}
	}
	if other.Temporal != nil {
		if merged.Temporal == nil {
			merged.Temporal = &TemporalFilter{}
		}
		if other.Temporal.Year != 0 {
			merged.Temporal.Year = other.Temporal.Year
		}
		if other.Temporal.Period != "" {
			merged.Temporal.Period = other.Temporal.Period
		}
		if other.Temporal.Start != nil {
			merged.Temporal.Start = other.Temporal.Start
		}
		if other.Temporal.End != nil {
			merged.Temporal.End = other.Temporal.End
		}
	}
	if other.People != nil {
		if merged.People == nil {
			merged.People = &PeopleFilter{}
		}
		merged.People.Names = unionStrings(merged.People.Names, other.People.Names)
		if other.People.Relationship != "" {
			merged.People.Relationship = other.People.Relationship
		}
		if other.People.GroupSize != "" {
			merged.People.GroupSize = other.People.GroupSize
		}
	}
	return merged
}

func unionStrings(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]bool, len(a))
	out := append([]string(nil), a...)
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	return out
}
