package parser

import (
	"reflect"
	"testing"
	"time"

	"github.com/hyperjump/photofind/internal/models"
)

func testParser() *Parser {
	return NewParser(WithNow(func() time.Time { return testNow }))
}

func TestExtractParameters(t *testing.T) {
	p := testParser()

	t.Run("all four groups", func(t *testing.T) {
		q := p.ExtractParameters("find sunset photos in Hawaii with Sarah from summer 2023", models.IntentDiscovery)

		if q.Semantic == nil {
			t.Fatal("semantic group missing")
		}
		if len(q.Semantic.Objects) != 1 || q.Semantic.Objects[0] != "sunset" {
			t.Errorf("objects = %v, want [sunset]", q.Semantic.Objects)
		}
		if q.Spatial == nil || q.Spatial.Location != "Hawaii" {
			t.Errorf("spatial = %+v, want Hawaii", q.Spatial)
		}
		if q.Temporal == nil || q.Temporal.Year != 2023 || q.Temporal.Period != "summer" {
			t.Errorf("temporal = %+v, want summer 2023", q.Temporal)
		}
		if q.People == nil || len(q.People.Names) != 1 || q.People.Names[0] != "Sarah" {
			t.Errorf("people = %+v, want [Sarah]", q.People)
		}
	})

	t.Run("unknown words become keywords", func(t *testing.T) {
		q := p.ExtractParameters("show me telescope pictures", models.IntentDiscovery)
		if q.Semantic == nil || len(q.Semantic.Keywords) != 1 || q.Semantic.Keywords[0] != "telescope" {
			t.Errorf("keywords = %+v, want [telescope]", q.Semantic)
		}
	})

	t.Run("misspelled term survives as keyword for fuzzy matching", func(t *testing.T) {
		q := p.ExtractParameters("find sunest photos", models.IntentDiscovery)
		if q.Semantic == nil {
			t.Fatal("semantic group missing")
		}
		found := false
		for _, kw := range q.Semantic.Keywords {
			if kw == "sunest" {
				found = true
			}
		}
		if !found {
			t.Errorf("keywords = %v, want sunest preserved", q.Semantic.Keywords)
		}
	})

	t.Run("location tokens do not leak into keywords", func(t *testing.T) {
		q := p.ExtractParameters("pictures in Central Park", models.IntentDiscovery)
		if q.Spatial == nil || q.Spatial.Location != "Central Park" {
			t.Fatalf("spatial = %+v", q.Spatial)
		}
		if q.Semantic != nil {
			for _, kw := range q.Semantic.Keywords {
				if kw == "central" || kw == "park" {
					t.Errorf("location token %q leaked into keywords", kw)
				}
			}
		}
	})

	t.Run("relationship and group size", func(t *testing.T) {
		q := p.ExtractParameters("family group photos", models.IntentDiscovery)
		if q.People == nil || q.People.Relationship != "family" {
			t.Errorf("people = %+v, want family relationship", q.People)
		}
		if q.People.GroupSize != "group" {
			t.Errorf("group size = %q, want group", q.People.GroupSize)
		}
	})

	t.Run("scene and mood", func(t *testing.T) {
		q := p.ExtractParameters("happy wedding shots", models.IntentDiscovery)
		if q.Semantic == nil {
			t.Fatal("semantic group missing")
		}
		if len(q.Semantic.Scenes) != 1 || q.Semantic.Scenes[0] != "wedding" {
			t.Errorf("scenes = %v, want [wedding]", q.Semantic.Scenes)
		}
		if q.Semantic.Mood != "happy" {
			t.Errorf("mood = %q, want happy", q.Semantic.Mood)
		}
	})

	t.Run("quoted phrase becomes single keyword", func(t *testing.T) {
		q := p.ExtractParameters(`find "golden gate bridge" photos`, models.IntentDiscovery)
		if q.Semantic == nil || len(q.Semantic.Keywords) == 0 || q.Semantic.Keywords[0] != "golden gate bridge" {
			t.Errorf("keywords = %+v, want quoted phrase first", q.Semantic)
		}
	})

	t.Run("empty query yields empty parse", func(t *testing.T) {
		q := p.ExtractParameters("", models.IntentDiscovery)
		if !q.IsEmpty() {
			t.Errorf("query = %+v, want empty", q)
		}
	})

	t.Run("extraction is intent-neutral", func(t *testing.T) {
		text := "but only sunset photos in Hawaii from 2023"
		for _, intent := range []models.IntentType{
			models.IntentDiscovery, models.IntentFilter, models.IntentBulkOperation,
		} {
			q := p.ExtractParameters(text, intent)
			if q.Spatial == nil || q.Spatial.Location != "Hawaii" {
				t.Errorf("%s: spatial = %+v, want Hawaii", intent, q.Spatial)
			}
			if q.Temporal == nil || q.Temporal.Year != 2023 {
				t.Errorf("%s: temporal = %+v, want 2023", intent, q.Temporal)
			}
			if !reflect.DeepEqual(q, p.ExtractParameters(text, models.IntentDiscovery)) {
				t.Errorf("%s: filters differ from discovery extraction", intent)
			}
		}
	})
}
