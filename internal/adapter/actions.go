// Package adapter converts ranked search results into interactive or
// machine-consumable output and validates externally issued agent commands.
package adapter

import "context"

// ActionDescriptor names an executable operation and the parameters its
// executor requires. Descriptors are contracts only: the engine never
// performs the operation itself.
type ActionDescriptor struct {
	ID             string   `json:"id"`
	Target         string   `json:"target,omitempty"` // photo id for per-photo actions
	RequiredParams []string `json:"required_params,omitempty"`
}

// ActionRegistry executes side-effecting operations referenced by action
// descriptors. Implementations live outside the engine and are injected.
type ActionRegistry interface {
	Execute(ctx context.Context, actionID string, params map[string]any) error
}

// Per-photo and bulk action identifiers emitted on interactive results.
const (
	ActionView            = "view"
	ActionDownload        = "download"
	ActionShare           = "share"
	ActionAddToCollection = "add_to_collection"

	ActionDownloadAll   = "download_all"
	ActionAddAllToAlbum = "add_all_to_album"
)

// photoActions are the handles attached to every returned photo.
func photoActions(photoID string) []ActionDescriptor {
	return []ActionDescriptor{
		{ID: ActionView, Target: photoID},
		{ID: ActionDownload, Target: photoID},
		{ID: ActionShare, Target: photoID, RequiredParams: []string{"recipient"}},
		{ID: ActionAddToCollection, Target: photoID, RequiredParams: []string{"collection_id"}},
	}
}

// bulkActions are offered when a result carries more than one photo.
func bulkActions() []ActionDescriptor {
	return []ActionDescriptor{
		{ID: ActionDownloadAll},
		{ID: ActionAddAllToAlbum, RequiredParams: []string{"album_name"}},
	}
}
