package search

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/photofind/internal/config"
	"github.com/hyperjump/photofind/internal/index"
	"github.com/hyperjump/photofind/internal/library"
	"github.com/hyperjump/photofind/internal/models"
	"github.com/hyperjump/photofind/pkg/utils"
)

// ErrNotIndexed is returned when a search runs before any index was built.
var ErrNotIndexed = errors.New("no index built; index photos first")

// ErrEmptyQuery is returned for a query with no criteria.
var ErrEmptyQuery = errors.New("query has no criteria")

// Engine executes structured queries against an immutable index snapshot.
// Re-indexing builds a fresh index and swaps it in atomically, so in-flight
// searches keep a consistent view.
type Engine struct {
	provider library.Provider
	cfg      *config.SearchConfig
	logger   *zap.Logger
	builder  *index.Builder

	idx       atomic.Pointer[index.Index]
	reindexMu sync.Mutex

	debounceOnce sync.Once
	debouncer    *Debouncer
}

// NewEngine creates an engine. provider may be nil when the caller indexes
// photos directly via IndexPhotos; logger may be nil.
func NewEngine(provider library.Provider, cfg *config.SearchConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
		builder:  index.NewBuilder(cfg.IndexYieldBatch, logger),
	}
}

// IndexPhotos builds all lookup structures from the batch and swaps the new
// index in. Malformed records are skipped, never failing the batch.
func (e *Engine) IndexPhotos(ctx context.Context, photos []*models.PhotoRecord) error {
	e.reindexMu.Lock()
	defer e.reindexMu.Unlock()
	ix, err := e.builder.Build(ctx, photos)
	if err != nil {
		return err
	}
	// The previous snapshot is not closed here: outstanding searches may
	// still be reading it.
	e.idx.Store(ix)
	e.logger.Info("index built", zap.Int("photos", ix.Count()))
	return nil
}

// Reindex pulls the full collection from the provider and rebuilds the index.
func (e *Engine) Reindex(ctx context.Context) error {
	if e.provider == nil {
		return errors.New("no photo provider configured")
	}
	photos, err := e.provider.Photos(ctx)
	if err != nil {
		return err
	}
	return e.IndexPhotos(ctx, photos)
}

// IndexedCount returns the size of the current snapshot, 0 when unindexed.
func (e *Engine) IndexedCount() int {
	if ix := e.idx.Load(); ix != nil {
		return ix.Count()
	}
	return 0
}

// Stats describes the current index snapshot.
type Stats struct {
	Photos        int `json:"photos"`
	SemanticTerms int `json:"semantic_terms"`
	LocationTerms int `json:"location_terms"`
	PersonTerms   int `json:"person_terms"`
}

// IndexStats returns term counts for the current snapshot, zeros when
// unindexed.
func (e *Engine) IndexStats() Stats {
	ix := e.idx.Load()
	if ix == nil {
		return Stats{}
	}
	return Stats{
		Photos:        ix.Count(),
		SemanticTerms: len(ix.SemanticTerms()),
		LocationTerms: len(ix.LocationTerms()),
		PersonTerms:   len(ix.PersonTerms()),
	}
}

// accum collects a photo's raw score and the criteria it satisfied.
type accum struct {
	raw      float64
	criteria []string
}

// Search executes query against the current index snapshot. When the soft
// deadline is exceeded mid-query, the ranking computed so far is returned
// with Partial set, never an error.
func (e *Engine) Search(ctx context.Context, query *models.ParsedQuery, page *models.Pagination) (*models.SearchResult, error) {
	ix := e.idx.Load()
	if ix == nil {
		return nil, ErrNotIndexed
	}
	if query.IsEmpty() {
		return nil, ErrEmptyQuery
	}
	if page == nil {
		page = &models.Pagination{}
	}
	page.Normalize(e.cfg.DefaultLimit, e.cfg.MaxLimit)

	start := time.Now()
	deadline := time.Duration(e.cfg.SoftDeadlineMs) * time.Millisecond
	criteria := e.buildCriteria(ix, query)

	scores := make(map[string]*accum)
	partial := false
	for i, criterion := range criteria {
		if i > 0 && time.Since(start) > deadline {
			e.logger.Warn("search soft deadline exceeded",
				zap.Int("criteria_done", i), zap.Int("criteria_total", len(criteria)))
			partial = true
			break
		}
		select {
		case <-ctx.Done():
			partial = true
		default:
		}
		if partial {
			break
		}
		for _, c := range criterion() {
			a := scores[c.photoID]
			if a == nil {
				a = &accum{}
				scores[c.photoID] = a
			}
			a.raw += c.score
			a.criteria = append(a.criteria, c.tag)
		}
	}

	matches := make([]*models.PhotoMatch, 0, len(scores))
	for id, a := range scores {
		photo, ok := ix.Photo(id)
		if !ok {
			continue
		}
		matches = append(matches, &models.PhotoMatch{
			Photo:           photo,
			Score:           utils.Saturate(a.raw),
			MatchedCriteria: a.criteria,
		})
	}

	// Deterministic order: score, then extraction confidence, then id.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		ci, cj := matches[i].Photo.ExtractionConfidence(), matches[j].Photo.ExtractionConfidence()
		if ci != cj {
			return ci > cj
		}
		return matches[i].Photo.ID < matches[j].Photo.ID
	})

	total := len(matches)
	lo := page.Offset
	if lo > total {
		lo = total
	}
	hi := lo + page.Limit
	if hi > total {
		hi = total
	}
	next := -1
	if hi < total {
		next = hi
	}

	return &models.SearchResult{
		Matches:      matches[lo:hi],
		TotalCount:   total,
		SearchTimeMs: time.Since(start).Milliseconds(),
		Partial:      partial,
		Limit:        page.Limit,
		Offset:       page.Offset,
		NextOffset:   next,
	}, nil
}

// SearchWithDebounce coalesces rapid successive calls: only the last query
// issued within the window executes; superseded calls are discarded.
func (e *Engine) SearchWithDebounce(ctx context.Context, query *models.ParsedQuery) <-chan Debounced {
	e.debounceOnce.Do(func() {
		window := time.Duration(e.cfg.DebounceWindowMs) * time.Millisecond
		e.debouncer = NewDebouncer(window, realClock{}, e.Search)
	})
	return e.debouncer.Submit(ctx, query, nil)
}
