// Package models defines core data structures for photos, parsed queries, and search results.
package models

import "time"

// PhotoMetadata is the annotation bundle attached to a photo by the upstream
// provider. Every field is optional; absence is not an error.
type PhotoMetadata struct {
	Keywords   []string   `json:"keywords,omitempty"`
	Objects    []string   `json:"objects,omitempty"`
	Scenes     []string   `json:"scenes,omitempty"`
	People     []string   `json:"people,omitempty"`
	Location   string     `json:"location,omitempty"`
	Device     string     `json:"device,omitempty"`
	TakenAt    *time.Time `json:"taken_at,omitempty"`
	Confidence float64    `json:"confidence,omitempty"` // extraction confidence, 0-1
}

// PhotoRecord represents an annotated photo supplied by the library provider.
type PhotoRecord struct {
	ID           string        `json:"id" db:"id"`
	Filename     string        `json:"filename" db:"filename"`
	URL          string        `json:"url,omitempty" db:"url"`
	ThumbnailURL string        `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	Metadata     PhotoMetadata `json:"metadata"`
}

// ExtractionConfidence returns the metadata extraction confidence, treating
// an unset value as fully confident so unannotated records still rank.
func (p *PhotoRecord) ExtractionConfidence() float64 {
	if p.Metadata.Confidence <= 0 {
		return 1.0
	}
	if p.Metadata.Confidence > 1 {
		return 1.0
	}
	return p.Metadata.Confidence
}
