// Package library supplies annotated photo records to the engine. The engine
// depends only on the Provider interface; SQLite and JSON catalog
// implementations are included so the server runs end to end.
package library

import (
	"context"

	"github.com/hyperjump/photofind/internal/models"
)

// Provider is the external photo/album storage collaborator. Records arrive
// already annotated; the engine never writes back.
type Provider interface {
	// Photos returns the full photo collection.
	Photos(ctx context.Context) ([]*models.PhotoRecord, error)
}
