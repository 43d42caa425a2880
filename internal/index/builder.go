package index

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"go.uber.org/zap"

	"github.com/hyperjump/photofind/internal/models"
	"github.com/hyperjump/photofind/pkg/utils"
)

// Builder constructs Index instances from photo batches.
type Builder struct {
	// YieldBatch is how many records are processed between scheduler yields,
	// so large batches do not monopolize the calling goroutine's thread.
	YieldBatch int
	Logger     *zap.Logger
}

// NewBuilder returns a builder. logger may be nil.
func NewBuilder(yieldBatch int, logger *zap.Logger) *Builder {
	if yieldBatch <= 0 {
		yieldBatch = 500
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{YieldBatch: yieldBatch, Logger: logger}
}

// freetextDoc is the bleve document shape for the fallback index.
type freetextDoc struct {
	Filename string `json:"filename"`
	Keywords string `json:"keywords"`
	Location string `json:"location"`
	People   string `json:"people"`
}

// Build constructs all lookup structures in one pass over photos. A record
// with missing metadata fields is indexed by whatever it has; a record with
// no usable id is skipped and logged, never failing the batch.
func (b *Builder) Build(ctx context.Context, photos []*models.PhotoRecord) (*Index, error) {
	ix := &Index{
		photos:    make(map[string]*models.PhotoRecord, len(photos)),
		semantic:  make(map[string][]Posting),
		locations: make(map[string][]Posting),
		people:    make(map[string][]Posting),
		years:     make(map[int][]string),
		months:    make(map[string][]string),
		seasons:   make(map[string][]string),
		takenAt:   make(map[string]time.Time),
	}

	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("filename", textFieldMapping)
	docMapping.AddFieldMappingsAt("keywords", textFieldMapping)
	docMapping.AddFieldMappingsAt("location", textFieldMapping)
	docMapping.AddFieldMappingsAt("people", textFieldMapping)
	im.AddDocumentMapping("photo", docMapping)
	im.DefaultType = "photo"
	im.DefaultMapping = docMapping
	freetext, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create free-text index: %w", err)
	}
	ix.freetext = freetext

	for i, photo := range photos {
		if i > 0 && i%b.YieldBatch == 0 {
			select {
			case <-ctx.Done():
				_ = freetext.Close()
				return nil, ctx.Err()
			default:
				runtime.Gosched()
			}
		}
		if photo == nil || photo.ID == "" {
			b.Logger.Warn("skipping malformed photo record", zap.Int("position", i))
			continue
		}
		b.indexOne(ix, photo)
	}
	ix.count = len(ix.photos)
	return ix, nil
}

func (b *Builder) indexOne(ix *Index, photo *models.PhotoRecord) {
	ix.photos[photo.ID] = photo
	conf := photo.ExtractionConfidence()
	md := photo.Metadata

	for _, group := range [][]string{md.Keywords, md.Objects, md.Scenes} {
		for _, term := range utils.NormalizeTerms(group) {
			addPosting(ix.semantic, term, photo.ID, conf)
		}
	}
	for _, token := range utils.LocationTokens(md.Location) {
		addPosting(ix.locations, token, photo.ID, conf)
	}
	for _, name := range md.People {
		if n := utils.NormalizeTerm(name); n != "" {
			addPosting(ix.people, n, photo.ID, conf)
		}
	}
	if md.TakenAt != nil {
		at := *md.TakenAt
		ix.takenAt[photo.ID] = at
		ix.years[at.Year()] = append(ix.years[at.Year()], photo.ID)
		monthKey := at.Format("2006-01")
		ix.months[monthKey] = append(ix.months[monthKey], photo.ID)
		season := seasonOf(at)
		ix.seasons[season] = append(ix.seasons[season], photo.ID)
	}

	doc := freetextDoc{
		Filename: photo.Filename,
		Keywords: strings.Join(append(append(append([]string{}, md.Keywords...), md.Objects...), md.Scenes...), " "),
		Location: md.Location,
		People:   strings.Join(md.People, " "),
	}
	if err := ix.freetext.Index(photo.ID, doc); err != nil {
		b.Logger.Warn("free-text indexing failed for photo", zap.String("id", photo.ID), zap.Error(err))
	}
}

// addPosting records a term hit, keeping the best confidence per (term, photo).
func addPosting(m map[string][]Posting, term, photoID string, conf float64) {
	postings := m[term]
	for i := range postings {
		if postings[i].PhotoID == photoID {
			if conf > postings[i].Confidence {
				postings[i].Confidence = conf
			}
			return
		}
	}
	m[term] = append(postings, Posting{PhotoID: photoID, Confidence: conf})
}
