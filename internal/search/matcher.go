package search

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/photofind/internal/index"
	"github.com/hyperjump/photofind/internal/models"
	"github.com/hyperjump/photofind/pkg/utils"
)

// contribution is one photo's score from one satisfied criterion.
type contribution struct {
	photoID string
	score   float64
	tag     string
}

// criterion resolves one filter criterion to its contributions. Criteria are
// resolved one at a time so the soft deadline can cut the loop between them.
type criterion func() []contribution

// freeTextLimit bounds fallback hits per term so one noisy term cannot drown
// the structured matches.
const freeTextLimit = 50

// buildCriteria flattens the populated filter groups into resolvers.
func (e *Engine) buildCriteria(ix *index.Index, query *models.ParsedQuery) []criterion {
	var criteria []criterion

	for _, term := range query.SemanticTerms() {
		term := utils.NormalizeTerm(term)
		if term == "" {
			continue
		}
		criteria = append(criteria, func() []contribution {
			return e.resolveTerm(term, "keyword",
				ix.LookupSemantic, ix.SemanticTerms, ix)
		})
	}

	if query.Spatial != nil && query.Spatial.Location != "" {
		for _, token := range utils.LocationTokens(query.Spatial.Location) {
			token := token
			criteria = append(criteria, func() []contribution {
				return e.resolveTerm(token, "location",
					ix.LookupLocation, ix.LocationTerms, ix)
			})
		}
	}

	if t := query.Temporal; t != nil {
		if t.Year != 0 {
			year := t.Year
			criteria = append(criteria, func() []contribution {
				return idContributions(ix, ix.PhotosInYear(year), fmt.Sprintf("year:%d", year))
			})
		}
		if t.Period != "" {
			period := t.Period
			criteria = append(criteria, func() []contribution {
				return idContributions(ix, ix.PhotosInSeason(period), "period:"+period)
			})
		}
		if t.Start != nil || t.End != nil {
			start, end := t.Start, t.End
			if month, ok := calendarMonth(start, end); ok {
				criteria = append(criteria, func() []contribution {
					return idContributions(ix, ix.PhotosInMonth(month), "range")
				})
			} else {
				criteria = append(criteria, func() []contribution {
					return idContributions(ix, ix.PhotosInRange(start, end), "range")
				})
			}
		}
	}

	if p := query.People; p != nil {
		for _, name := range p.Names {
			name := utils.NormalizeTerm(name)
			if name == "" {
				continue
			}
			criteria = append(criteria, func() []contribution {
				return e.resolveTerm(name, "person",
					ix.LookupPerson, ix.PersonTerms, ix)
			})
		}
		if p.Relationship != "" {
			rel := utils.NormalizeTerm(p.Relationship)
			criteria = append(criteria, func() []contribution {
				return e.resolveTerm(rel, "relationship",
					ix.LookupSemantic, ix.SemanticTerms, ix)
			})
		}
		if p.GroupSize != "" {
			size := p.GroupSize
			criteria = append(criteria, func() []contribution {
				return resolveGroupSize(ix, size)
			})
		}
	}

	return criteria
}

// resolveTerm matches one term against an index map: exact first, then fuzzy
// above the threshold (discounted), then the bleve free-text fallback
// (discounted further). A fuzzy or free-text hit can therefore never reach
// the exact-match score for the same term and record.
func (e *Engine) resolveTerm(
	term, kind string,
	lookup func(string) []index.Posting,
	allTerms func() []string,
	ix *index.Index,
) []contribution {
	if postings := lookup(term); len(postings) > 0 {
		out := make([]contribution, 0, len(postings))
		for _, p := range postings {
			out = append(out, contribution{
				photoID: p.PhotoID,
				score:   p.Confidence,
				tag:     kind + ":" + term,
			})
		}
		return out
	}

	// Fuzzy: best similar indexed term above the threshold.
	bestSim := 0.0
	bestTerm := ""
	for _, indexed := range allTerms() {
		if sim := Similarity(term, indexed); sim >= e.cfg.FuzzyThreshold && sim > bestSim {
			bestSim = sim
			bestTerm = indexed
		}
	}
	if bestTerm != "" {
		postings := lookup(bestTerm)
		out := make([]contribution, 0, len(postings))
		for _, p := range postings {
			out = append(out, contribution{
				photoID: p.PhotoID,
				score:   p.Confidence * bestSim * e.cfg.FuzzyDiscount,
				tag:     fmt.Sprintf("fuzzy:%s:%s", kind, bestTerm),
			})
		}
		return out
	}

	hits, err := ix.SearchFreeText(term, freeTextLimit)
	if err != nil {
		e.logger.Warn("free-text fallback failed", zap.String("term", term), zap.Error(err))
		return nil
	}
	out := make([]contribution, 0, len(hits))
	for _, hit := range hits {
		out = append(out, contribution{
			photoID: hit.PhotoID,
			score:   hit.Score * e.cfg.FreeTextDiscount,
			tag:     "text:" + term,
		})
	}
	return out
}

// calendarMonth reports whether [start, end] covers exactly one calendar
// month, so the lookup can hit the month bucket instead of scanning every
// capture time.
func calendarMonth(start, end *time.Time) (time.Time, bool) {
	if start == nil || end == nil {
		return time.Time{}, false
	}
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	last := first.AddDate(0, 1, 0).Add(-time.Second)
	if !start.Equal(first) || !end.Equal(last) {
		return time.Time{}, false
	}
	return first, true
}

// idContributions turns temporal bucket hits into contributions; capture
// timestamps are exact, so each hit scores the photo's extraction confidence.
func idContributions(ix *index.Index, ids []string, tag string) []contribution {
	out := make([]contribution, 0, len(ids))
	for _, id := range ids {
		conf := 1.0
		if photo, ok := ix.Photo(id); ok {
			conf = photo.ExtractionConfidence()
		}
		out = append(out, contribution{photoID: id, score: conf, tag: tag})
	}
	return out
}

// resolveGroupSize matches on how many people are in the photo: "solo" is
// exactly one detected person, "group" is three or more.
func resolveGroupSize(ix *index.Index, size string) []contribution {
	var out []contribution
	for _, id := range ix.PhotoIDs() {
		photo, ok := ix.Photo(id)
		if !ok {
			continue
		}
		n := len(photo.Metadata.People)
		matched := (size == "solo" && n == 1) || (size == "group" && n >= 3)
		if matched {
			out = append(out, contribution{
				photoID: id,
				score:   photo.ExtractionConfidence(),
				tag:     "group_size:" + size,
			})
		}
	}
	return out
}
