package library

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/hyperjump/photofind/internal/models"
)

// CatalogProvider implements Provider over JSON catalog files, each holding
// an array of photo records. Useful with the watcher: edit a catalog file and
// the engine re-indexes.
type CatalogProvider struct {
	paths []string
}

// NewCatalogProvider returns a provider reading the given catalog files.
func NewCatalogProvider(paths ...string) *CatalogProvider {
	return &CatalogProvider{paths: paths}
}

// Photos loads and concatenates all catalog files. A record without an id is
// assigned one so downstream indexing never drops it.
func (c *CatalogProvider) Photos(ctx context.Context) ([]*models.PhotoRecord, error) {
	var all []*models.PhotoRecord
	for _, path := range c.paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		photos, err := LoadCatalog(path)
		if err != nil {
			return nil, err
		}
		all = append(all, photos...)
	}
	return all, nil
}

// LoadCatalog reads one JSON catalog file.
func LoadCatalog(path string) ([]*models.PhotoRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var photos []*models.PhotoRecord
	if err := json.Unmarshal(data, &photos); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	for _, photo := range photos {
		if photo != nil && photo.ID == "" {
			photo.ID = uuid.NewString()
		}
	}
	return photos, nil
}
