package adapter

import (
	"strings"
	"time"

	"github.com/hyperjump/photofind/internal/models"
)

// schema.org shapes for the machine/agent profile. Only the properties the
// engine can populate are modeled; consumers treat the records as open maps.

const schemaContext = "https://schema.org"

// PotentialAction is a schema.org Action entry point on an ImageObject.
type PotentialAction struct {
	Type   string `json:"@type"`
	Name   string `json:"name"`
	Target string `json:"target,omitempty"`
}

// ImageObject is one photo expressed as a schema.org image entity.
type ImageObject struct {
	Type            string            `json:"@type"`
	Identifier      string            `json:"identifier"`
	Name            string            `json:"name"`
	ContentURL      string            `json:"contentUrl,omitempty"`
	ThumbnailURL    string            `json:"thumbnailUrl,omitempty"`
	Keywords        string            `json:"keywords,omitempty"`
	ContentLocation string            `json:"contentLocation,omitempty"`
	DateCreated     string            `json:"dateCreated,omitempty"`
	PotentialAction []PotentialAction `json:"potentialAction,omitempty"`
}

// ListItem positions one ImageObject inside the ItemList.
type ListItem struct {
	Type     string      `json:"@type"`
	Position int         `json:"position"`
	Item     ImageObject `json:"item"`
}

// ItemList is the ordered list of matched photos.
type ItemList struct {
	Type            string     `json:"@type"`
	NumberOfItems   int        `json:"numberOfItems"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// SearchResultsPage is the top-level structured record for one search.
type SearchResultsPage struct {
	Context    string   `json:"@context"`
	Type       string   `json:"@type"`
	MainEntity ItemList `json:"mainEntity"`
	// TotalCount is the unpaginated match count; NumberOfItems above covers
	// only this page.
	TotalCount int  `json:"totalCount"`
	Partial    bool `json:"partial,omitempty"`
}

// FormatStructured expresses a search result in the schema.org vocabulary
// for embedding or programmatic consumption.
func FormatStructured(result *models.SearchResult) *SearchResultsPage {
	items := make([]ListItem, 0, len(result.Matches))
	for i, m := range result.Matches {
		items = append(items, ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Item:     imageObject(m.Photo),
		})
	}
	return &SearchResultsPage{
		Context: schemaContext,
		Type:    "SearchResultsPage",
		MainEntity: ItemList{
			Type:            "ItemList",
			NumberOfItems:   len(items),
			ItemListElement: items,
		},
		TotalCount: result.TotalCount,
		Partial:    result.Partial,
	}
}

func imageObject(p *models.PhotoRecord) ImageObject {
	obj := ImageObject{
		Type:            "ImageObject",
		Identifier:      p.ID,
		Name:            p.Filename,
		ContentURL:      p.URL,
		ThumbnailURL:    p.ThumbnailURL,
		Keywords:        joinKeywords(p.Metadata),
		ContentLocation: p.Metadata.Location,
	}
	if p.Metadata.TakenAt != nil {
		obj.DateCreated = p.Metadata.TakenAt.Format(time.RFC3339)
	}
	for _, a := range photoActions(p.ID) {
		obj.PotentialAction = append(obj.PotentialAction, PotentialAction{
			Type:   "Action",
			Name:   a.ID,
			Target: a.Target,
		})
	}
	return obj
}

func joinKeywords(m models.PhotoMetadata) string {
	terms := make([]string, 0, len(m.Keywords)+len(m.Objects)+len(m.Scenes))
	terms = append(terms, m.Keywords...)
	terms = append(terms, m.Objects...)
	terms = append(terms, m.Scenes...)
	return strings.Join(terms, ",")
}
