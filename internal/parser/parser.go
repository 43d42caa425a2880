// Package parser converts free-text photo queries into tokens, entities,
// intents, and typed filter parameters.
package parser

import (
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/photofind/internal/models"
)

// EntityType tags a recognized sub-span of query text.
type EntityType string

const (
	EntityObject        EntityType = "object"
	EntityKeywordPhrase EntityType = "keyword_phrase"
	EntityTimePeriod    EntityType = "time_period"
	EntityLocation      EntityType = "location"
	EntityPerson        EntityType = "person"
)

// Token is one unit of query text. Quoted phrases survive as single tokens.
type Token struct {
	Text   string `json:"text"`
	Quoted bool   `json:"quoted,omitempty"`
}

// Entity is a recognized span with a semantic type and confidence.
type Entity struct {
	Text       string     `json:"text"`
	Type       EntityType `json:"type"`
	Confidence float64    `json:"confidence"`
}

// EntityRecognizer recognizes typed entities in query text. The default is
// pattern based; implementations can be swapped without touching the Parser
// contract.
type EntityRecognizer interface {
	Recognize(text string) []Entity
}

// IntentClassifier classifies the purpose of a query.
type IntentClassifier interface {
	Classify(text string) models.Intent
}

// Parser is the query parsing front end. Safe for concurrent use.
type Parser struct {
	recognizer EntityRecognizer
	classifier IntentClassifier
	now        func() time.Time
	logger     *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithRecognizer replaces the default pattern-based entity recognizer.
func WithRecognizer(r EntityRecognizer) Option {
	return func(p *Parser) { p.recognizer = r }
}

// WithClassifier replaces the default pattern-based intent classifier.
func WithClassifier(c IntentClassifier) Option {
	return func(p *Parser) { p.classifier = c }
}

// WithNow injects the clock used for relative date resolution. Tests use this.
func WithNow(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// NewParser returns a parser with pattern-based defaults.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.recognizer == nil {
		p.recognizer = &patternRecognizer{}
	}
	if p.classifier == nil {
		p.classifier = &patternClassifier{}
	}
	return p
}

// Tokenize splits text into tokens, preserving quoted phrases, and tags
// recognized entities.
func (p *Parser) Tokenize(text string) ([]Token, []Entity) {
	return tokenize(text), p.recognizer.Recognize(text)
}

// ExtractIntent classifies text into discovery, filter, or bulk_operation.
func (p *Parser) ExtractIntent(text string) models.Intent {
	return p.classifier.Classify(text)
}
