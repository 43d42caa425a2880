// Package conversation accumulates parsed filters across related queries.
package conversation

import (
	"regexp"
	"sync"

	"go.uber.org/zap"

	"github.com/hyperjump/photofind/internal/models"
	"github.com/hyperjump/photofind/internal/parser"
	"github.com/hyperjump/photofind/pkg/utils"
)

// DefaultConversation is the context key used when a caller does not supply
// a conversation id.
const DefaultConversation = "default"

// refinementCues bias an utterance toward merging with the held context.
var refinementCues = regexp.MustCompile(`(?i)\b(only|just|but|also|too|as well|same|these|them|ones?)\b`)

// Manager keeps one active search context per conversation. A refinement
// merges into the held context; a topic change replaces it. Contexts have no
// implicit expiry; Reset discards one explicitly.
type Manager struct {
	parser *parser.Parser
	// overlapThreshold is the semantic-term overlap ratio below which an
	// un-cued utterance counts as a new topic. Heuristic, tunable.
	overlapThreshold float64
	logger           *zap.Logger

	mu       sync.Mutex
	contexts map[string]*models.ParsedQuery
}

// NewManager returns a context manager. logger may be nil.
func NewManager(p *parser.Parser, overlapThreshold float64, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		parser:           p,
		overlapThreshold: overlapThreshold,
		logger:           logger,
		contexts:         make(map[string]*models.ParsedQuery),
	}
}

// ProcessQuery parses text and folds it into the conversation's context,
// returning the accumulated query to execute.
func (m *Manager) ProcessQuery(conversationID, text string) *models.ParsedQuery {
	if conversationID == "" {
		conversationID = DefaultConversation
	}
	intent := m.parser.ExtractIntent(text)
	incoming := m.parser.ExtractParameters(text, intent.Type)

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.contexts[conversationID]
	if !ok || current.IsEmpty() {
		m.contexts[conversationID] = incoming
		return incoming.Clone()
	}

	var merged *models.ParsedQuery
	if m.isRefinement(text, intent, current, incoming) {
		merged = current.Merge(incoming)
		m.logger.Debug("context refined",
			zap.String("conversation", conversationID),
			zap.Int("criteria", merged.CriteriaCount()))
	} else {
		merged = incoming
		m.logger.Debug("context replaced",
			zap.String("conversation", conversationID))
	}
	m.contexts[conversationID] = merged
	return merged.Clone()
}

// Context returns the held context for a conversation, or nil.
func (m *Manager) Context(conversationID string) *models.ParsedQuery {
	if conversationID == "" {
		conversationID = DefaultConversation
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contexts[conversationID].Clone()
}

// Reset discards the held context for a conversation.
func (m *Manager) Reset(conversationID string) {
	if conversationID == "" {
		conversationID = DefaultConversation
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.contexts, conversationID)
}

// isRefinement decides merge vs. replace. Filter intent and refinement
// language bias toward merge; an utterance whose semantic terms share nothing
// with the current context biases toward replace.
func (m *Manager) isRefinement(text string, intent models.Intent, current, incoming *models.ParsedQuery) bool {
	if intent.Type == models.IntentFilter {
		return true
	}
	if refinementCues.MatchString(text) {
		return true
	}
	// An utterance that adds only non-semantic constraints (a date, a place)
	// is a refinement of whatever is being discussed.
	incomingTerms := incoming.SemanticTerms()
	if len(incomingTerms) == 0 {
		return true
	}
	currentTerms := current.SemanticTerms()
	if len(currentTerms) == 0 {
		return true
	}
	return overlapRatio(currentTerms, incomingTerms) >= m.overlapThreshold
}

// overlapRatio is |intersection| / |incoming| over normalized terms.
func overlapRatio(current, incoming []string) float64 {
	seen := make(map[string]bool, len(current))
	for _, t := range current {
		seen[utils.NormalizeTerm(t)] = true
	}
	matched := 0
	for _, t := range incoming {
		if seen[utils.NormalizeTerm(t)] {
			matched++
		}
	}
	return float64(matched) / float64(len(incoming))
}
