// Package index builds read-only lookup structures from a photo collection.
package index

import (
	"fmt"
	"time"

	"github.com/blevesearch/bleve/v2"

	"github.com/hyperjump/photofind/internal/models"
)

// Posting is one photo hit for an indexed term, carrying the extraction
// confidence of the record the term came from.
type Posting struct {
	PhotoID    string
	Confidence float64
}

// Index is the derived, read-only lookup structure consumed by the matching
// engine. It is never mutated after Build returns; re-indexing produces a
// fresh Index that the engine swaps in atomically.
type Index struct {
	photos    map[string]*models.PhotoRecord
	semantic  map[string][]Posting // keyword/object/scene term -> postings
	locations map[string][]Posting // location token -> postings
	people    map[string][]Posting // lowercased person name -> postings
	years     map[int][]string     // year -> photo ids
	months    map[string][]string  // "2023-06" -> photo ids
	seasons   map[string][]string  // "summer" -> photo ids
	takenAt   map[string]time.Time // photo id -> capture time
	freetext  bleve.Index          // in-memory fallback over all text fields
	count     int
}

// Photo returns the indexed record for id.
func (ix *Index) Photo(id string) (*models.PhotoRecord, bool) {
	p, ok := ix.photos[id]
	return p, ok
}

// Count returns the number of indexed photos.
func (ix *Index) Count() int { return ix.count }

// PhotoIDs returns the ids of all indexed photos.
func (ix *Index) PhotoIDs() []string {
	out := make([]string, 0, len(ix.photos))
	for id := range ix.photos {
		out = append(out, id)
	}
	return out
}

// LookupSemantic returns exact postings for a normalized semantic term.
func (ix *Index) LookupSemantic(term string) []Posting { return ix.semantic[term] }

// SemanticTerms returns all indexed semantic terms, for fuzzy candidate scans.
func (ix *Index) SemanticTerms() []string { return mapKeys(ix.semantic) }

// LookupLocation returns exact postings for a normalized location token.
func (ix *Index) LookupLocation(token string) []Posting { return ix.locations[token] }

// LocationTerms returns all indexed location tokens.
func (ix *Index) LocationTerms() []string { return mapKeys(ix.locations) }

// LookupPerson returns exact postings for a lowercased person name.
func (ix *Index) LookupPerson(name string) []Posting { return ix.people[name] }

// PersonTerms returns all indexed person names.
func (ix *Index) PersonTerms() []string { return mapKeys(ix.people) }

// PhotosInYear returns the ids of photos captured in year.
func (ix *Index) PhotosInYear(year int) []string { return ix.years[year] }

// PhotosInSeason returns the ids of photos captured in the named season
// ("winter", "spring", "summer", "fall"/"autumn").
func (ix *Index) PhotosInSeason(season string) []string {
	if season == "autumn" {
		season = "fall"
	}
	return ix.seasons[season]
}

// PhotosInMonth returns the ids of photos captured in the calendar month
// containing t.
func (ix *Index) PhotosInMonth(t time.Time) []string {
	return ix.months[t.Format("2006-01")]
}

// PhotosInRange returns the ids of photos captured within [start, end].
// A nil bound is open.
func (ix *Index) PhotosInRange(start, end *time.Time) []string {
	var out []string
	for id, at := range ix.takenAt {
		if start != nil && at.Before(*start) {
			continue
		}
		if end != nil && at.After(*end) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// FreeTextHit is one fallback hit with a score normalized to (0,1].
type FreeTextHit struct {
	PhotoID string
	Score   float64
}

// SearchFreeText runs the bleve fallback index for a term that had neither an
// exact nor a fuzzy structured match. Scores are normalized by the top hit.
func (ix *Index) SearchFreeText(term string, limit int) ([]FreeTextHit, error) {
	if ix.freetext == nil {
		return nil, nil
	}
	req := bleve.NewSearchRequest(bleve.NewMatchQuery(term))
	req.Size = limit
	res, err := ix.freetext.Search(req)
	if err != nil {
		return nil, fmt.Errorf("free-text search failed: %w", err)
	}
	if len(res.Hits) == 0 {
		return nil, nil
	}
	top := res.Hits[0].Score
	if top <= 0 {
		return nil, nil
	}
	out := make([]FreeTextHit, 0, len(res.Hits))
	for _, hit := range res.Hits {
		out = append(out, FreeTextHit{PhotoID: hit.ID, Score: hit.Score / top})
	}
	return out, nil
}

// Close releases the in-memory free-text index. Safe on a nil receiver.
func (ix *Index) Close() error {
	if ix == nil || ix.freetext == nil {
		return nil
	}
	return ix.freetext.Close()
}

func mapKeys(m map[string][]Posting) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func seasonOf(t time.Time) string {
	switch t.Month() {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "fall"
	}
}
