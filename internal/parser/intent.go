package parser

import (
	"regexp"

	"github.com/hyperjump/photofind/internal/models"
)

// patternClassifier is the default verb/phrase-cue intent classifier.
type patternClassifier struct{}

var (
	bulkStrongRegex = regexp.MustCompile(`(?i)\b(?:delete|remove|download|share|select|export|move|add)\s+(?:all|every|these|them)\b`)
	bulkVerbRegex   = regexp.MustCompile(`(?i)\b(delete|remove|export)\b`)
	filterCueRegex  = regexp.MustCompile(`(?i)\b(only|just|filter|without|except|exclude|narrow)\b|^\s*but\b`)
	discoveryRegex  = regexp.MustCompile(`(?i)\b(find|show|search|look(?:ing)?\s+for|display|get|give\s+me)\b`)
)

// Classify applies cue patterns in priority order: bulk operations beat
// filters beat discovery. Confidence reflects pattern-match strength.
func (c *patternClassifier) Classify(text string) models.Intent {
	switch {
	case bulkStrongRegex.MatchString(text):
		return models.Intent{Type: models.IntentBulkOperation, Confidence: 0.9}
	case bulkVerbRegex.MatchString(text):
		return models.Intent{Type: models.IntentBulkOperation, Confidence: 0.75}
	case filterCueRegex.MatchString(text):
		return models.Intent{Type: models.IntentFilter, Confidence: 0.8}
	case discoveryRegex.MatchString(text):
		return models.Intent{Type: models.IntentDiscovery, Confidence: 0.85}
	default:
		// No cue matched; discovery is the safest reading of a bare query.
		return models.Intent{Type: models.IntentDiscovery, Confidence: 0.5}
	}
}
