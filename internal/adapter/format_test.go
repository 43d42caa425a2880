package adapter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/photofind/internal/models"
)

func sampleResult(n int) *models.SearchResult {
	photos := fixturePhotos()
	res := &models.SearchResult{TotalCount: n, NextOffset: -1}
	for i := 0; i < n; i++ {
		res.Matches = append(res.Matches, &models.PhotoMatch{
			Photo:           photos[i],
			Score:           0.9 - float64(i)*0.1,
			MatchedCriteria: []string{"keyword:sunset"},
		})
	}
	return res
}

func TestFormatInteractiveSingleMatch(t *testing.T) {
	out := FormatInteractive(sampleResult(1))

	if len(out.Matches) != 1 {
		t.Fatalf("got %d matches", len(out.Matches))
	}
	if out.BulkActions != nil {
		t.Error("single match must not offer bulk actions")
	}

	ids := make(map[string]bool)
	for _, a := range out.Matches[0].Actions {
		ids[a.ID] = true
		if a.Target != "p1" {
			t.Errorf("action %s targets %q, want p1", a.ID, a.Target)
		}
	}
	for _, want := range []string{ActionView, ActionDownload, ActionShare, ActionAddToCollection} {
		if !ids[want] {
			t.Errorf("missing action %s", want)
		}
	}
}

func TestFormatInteractiveBulkActions(t *testing.T) {
	out := FormatInteractive(sampleResult(2))
	if len(out.BulkActions) != 2 {
		t.Fatalf("bulk actions = %+v, want download_all and add_all_to_album", out.BulkActions)
	}
	ids := map[string]bool{}
	for _, a := range out.BulkActions {
		ids[a.ID] = true
	}
	if !ids[ActionDownloadAll] || !ids[ActionAddAllToAlbum] {
		t.Errorf("bulk action ids = %v", ids)
	}
}

func TestFormatStructured(t *testing.T) {
	page := FormatStructured(sampleResult(2))

	if page.Context != "https://schema.org" || page.Type != "SearchResultsPage" {
		t.Errorf("envelope = %s %s", page.Context, page.Type)
	}
	if page.MainEntity.Type != "ItemList" || page.MainEntity.NumberOfItems != 2 {
		t.Errorf("item list = %+v", page.MainEntity)
	}

	first := page.MainEntity.ItemListElement[0]
	if first.Type != "ListItem" || first.Position != 1 {
		t.Errorf("first element = %+v", first)
	}
	img := first.Item
	if img.Type != "ImageObject" || img.Identifier != "p1" || img.Name != "sunset_hawaii.jpg" {
		t.Errorf("image = %+v", img)
	}
	if img.ContentLocation != "Hawaii" {
		t.Errorf("contentLocation = %q", img.ContentLocation)
	}
	if !strings.Contains(img.Keywords, "sunset") || !strings.Contains(img.Keywords, "beach") {
		t.Errorf("keywords = %q", img.Keywords)
	}
	if !strings.HasPrefix(img.DateCreated, "2023-07-14") {
		t.Errorf("dateCreated = %q", img.DateCreated)
	}
	if len(img.PotentialAction) == 0 {
		t.Error("potentialAction missing")
	}
}

func TestFormatStructuredJSONShape(t *testing.T) {
	raw, err := json.Marshal(FormatStructured(sampleResult(1)))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["@context"] != "https://schema.org" {
		t.Errorf("@context = %v", decoded["@context"])
	}
	if decoded["@type"] != "SearchResultsPage" {
		t.Errorf("@type = %v", decoded["@type"])
	}
	if _, ok := decoded["mainEntity"].(map[string]any); !ok {
		t.Errorf("mainEntity = %T", decoded["mainEntity"])
	}
}

func TestFormatStructuredMissingFields(t *testing.T) {
	res := &models.SearchResult{
		Matches: []*models.PhotoMatch{
			{Photo: &models.PhotoRecord{ID: "bare", Filename: "x.jpg"}, Score: 0.5},
		},
		TotalCount: 1,
		NextOffset: -1,
	}
	page := FormatStructured(res)
	img := page.MainEntity.ItemListElement[0].Item
	if img.DateCreated != "" || img.ContentLocation != "" || img.Keywords != "" {
		t.Errorf("absent metadata must stay empty: %+v", img)
	}
}
