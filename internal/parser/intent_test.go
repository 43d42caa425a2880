package parser

import (
	"testing"

	"github.com/hyperjump/photofind/internal/models"
)

func TestClassify(t *testing.T) {
	c := &patternClassifier{}

	tests := []struct {
		name     string
		text     string
		wantType models.IntentType
		minConf  float64
	}{
		{"discovery verb", "find sunset photos", models.IntentDiscovery, 0.8},
		{"show me", "show me pictures of dogs", models.IntentDiscovery, 0.8},
		{"filter cue only", "only the ones from 2023", models.IntentFilter, 0.7},
		{"filter cue without", "without the blurry ones", models.IntentFilter, 0.7},
		{"bulk download all", "download all of these", models.IntentBulkOperation, 0.85},
		{"bulk delete", "delete the duplicates", models.IntentBulkOperation, 0.7},
		{"bare query defaults to discovery", "sunset hawaii", models.IntentDiscovery, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := c.Classify(tt.text)
			if intent.Type != tt.wantType {
				t.Errorf("Classify(%q).Type = %s, want %s", tt.text, intent.Type, tt.wantType)
			}
			if intent.Confidence < tt.minConf || intent.Confidence > 1 {
				t.Errorf("Classify(%q).Confidence = %v, want >= %v and <= 1", tt.text, intent.Confidence, tt.minConf)
			}
		})
	}

	// Bare queries classify with lower confidence than cued ones.
	cued := c.Classify("find sunset photos")
	bare := c.Classify("sunset hawaii")
	if bare.Confidence >= cued.Confidence {
		t.Errorf("bare confidence %v should be below cued %v", bare.Confidence, cued.Confidence)
	}
}
