package parser

import (
	"strings"

	"github.com/hyperjump/photofind/internal/models"
	"github.com/hyperjump/photofind/pkg/utils"
)

// ExtractParameters produces the typed filter groups for text. Extraction is
// deliberately intent-neutral: the same utterance yields the same filters
// whether it arrived as discovery, filter, or bulk_operation. Intent steers
// the conversation manager's merge decision and the adapter's routing, not
// which filters are read out of the text.
func (p *Parser) ExtractParameters(text string, intentType models.IntentType) *models.ParsedQuery {
	query := &models.ParsedQuery{}
	entities := p.recognizer.Recognize(text)

	// Tokens claimed by the spatial, temporal, and people groups must not
	// leak into semantic keywords.
	consumed := make(map[string]bool)

	for _, e := range entities {
		switch e.Type {
		case EntityLocation:
			if query.Spatial == nil {
				query.Spatial = &models.SpatialFilter{Location: e.Text}
				for _, tok := range utils.LocationTokens(e.Text) {
					consumed[tok] = true
				}
			}
		case EntityPerson:
			if query.People == nil {
				query.People = &models.PeopleFilter{}
			}
			query.People.Names = append(query.People.Names, e.Text)
			consumed[utils.NormalizeTerm(e.Text)] = true
		case EntityTimePeriod:
			for _, tok := range strings.Fields(strings.ToLower(e.Text)) {
				consumed[tok] = true
			}
		}
	}

	if temporal, _ := parseTemporal(text, p.now()); temporal != nil {
		query.Temporal = temporal
	}

	semantic := &models.SemanticFilter{}
	for _, e := range entities {
		switch e.Type {
		case EntityObject:
			semantic.Objects = appendUnique(semantic.Objects, e.Text)
		case EntityKeywordPhrase:
			semantic.Keywords = appendUnique(semantic.Keywords, e.Text)
		}
	}

	for _, tok := range tokenize(text) {
		if tok.Quoted || consumed[tok.Text] || stopwords[tok.Text] {
			continue
		}
		switch {
		case objectVocab[tok.Text]:
			// already captured as an object entity
		case sceneVocab[tok.Text]:
			semantic.Scenes = appendUnique(semantic.Scenes, tok.Text)
		case moodVocab[tok.Text]:
			if semantic.Mood == "" {
				semantic.Mood = tok.Text
			}
		case relationshipVocab[tok.Text]:
			if query.People == nil {
				query.People = &models.PeopleFilter{}
			}
			if query.People.Relationship == "" {
				query.People.Relationship = tok.Text
			}
		case tok.Text == "group":
			if query.People == nil {
				query.People = &models.PeopleFilter{}
			}
			query.People.GroupSize = "group"
		case tok.Text == "solo" || tok.Text == "alone" || tok.Text == "selfie":
			if query.People == nil {
				query.People = &models.PeopleFilter{}
			}
			query.People.GroupSize = "solo"
		case isAllDigits(tok.Text) || len(tok.Text) < 3:
			// bare numbers and fragments carry no semantic signal
		default:
			semantic.Keywords = appendUnique(semantic.Keywords, tok.Text)
		}
	}

	if len(semantic.Keywords) > 0 || len(semantic.Objects) > 0 ||
		len(semantic.Scenes) > 0 || semantic.Mood != "" {
		query.Semantic = semantic
	}
	return query
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
