package adapter

import (
	"context"

	"go.uber.org/zap"

	"github.com/hyperjump/photofind/internal/conversation"
	"github.com/hyperjump/photofind/internal/models"
	"github.com/hyperjump/photofind/internal/parser"
	"github.com/hyperjump/photofind/internal/search"
)

// State is one stage in a query's lifecycle.
type State string

const (
	StateReceived            State = "received"
	StateTokenized           State = "tokenized"
	StateIntentClassified    State = "intent_classified"
	StateParametersExtracted State = "parameters_extracted"
	StateContextMerged       State = "context_merged"
	StateValidated           State = "validated"
	StateExecuted            State = "executed"
	StateFormatted           State = "formatted"
	StateReturned            State = "returned"

	// Terminal failure branches.
	StateParseFailed       State = "parse_failed"
	StateValidationFailed  State = "validation_failed"
	StateExecutionTimedOut State = "execution_timed_out"
)

// PipelineResult is the outcome of running one utterance through the full
// query lifecycle. Exactly one of the payload groups is meaningful, selected
// by Final: suggestions on parse failure, validation errors on validation
// failure, and a (possibly partial) result otherwise.
type PipelineResult struct {
	States []State `json:"states"`
	Final  State   `json:"final"`

	Query       *models.ParsedQuery       `json:"query,omitempty"`
	Result      *models.SearchResult      `json:"result,omitempty"`
	Structured  *SearchResultsPage        `json:"structured,omitempty"`
	Validation  *models.QueryValidation   `json:"validation,omitempty"`
	Suggestions []models.SearchSuggestion `json:"suggestions,omitempty"`
}

// Pipeline wires the parser, conversation manager, and engine into the
// explicit per-query state machine.
type Pipeline struct {
	parser *parser.Parser
	conv   *conversation.Manager
	engine *search.Engine
	logger *zap.Logger
}

// NewPipeline creates a pipeline; logger may be nil.
func NewPipeline(p *parser.Parser, conv *conversation.Manager, engine *search.Engine, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{parser: p, conv: conv, engine: engine, logger: logger}
}

// Run carries text through every lifecycle stage. Parse and validation
// failures are returned as structured outcomes, never as errors; the error
// return covers engine failures only (unindexed collection).
func (pl *Pipeline) Run(ctx context.Context, conversationID, text string, page *models.Pagination) (*PipelineResult, error) {
	res := &PipelineResult{}
	step := func(s State) { res.States = append(res.States, s); res.Final = s }

	step(StateReceived)

	tokens, _ := pl.parser.Tokenize(text)
	step(StateTokenized)
	if len(tokens) == 0 {
		res.Suggestions = pl.parser.SuggestRefinements(text)
		step(StateParseFailed)
		return res, nil
	}

	intent := pl.parser.ExtractIntent(text)
	step(StateIntentClassified)

	incoming := pl.parser.ExtractParameters(text, intent.Type)
	step(StateParametersExtracted)
	pl.logger.Debug("parameters extracted",
		zap.String("intent", string(intent.Type)),
		zap.Int("criteria", incoming.CriteriaCount()))

	validation := pl.parser.ValidateQuery(text)
	res.Validation = &validation
	if !validation.IsValid {
		if len(validation.Errors) > 0 {
			step(StateValidationFailed)
			return res, nil
		}
		res.Suggestions = pl.parser.SuggestRefinements(text)
		step(StateParseFailed)
		return res, nil
	}

	merged := pl.conv.ProcessQuery(conversationID, text)
	step(StateContextMerged)
	step(StateValidated)
	res.Query = merged

	result, err := pl.engine.Search(ctx, merged, page)
	if err != nil {
		return nil, err
	}
	res.Result = result
	step(StateExecuted)

	res.Structured = FormatStructured(result)
	step(StateFormatted)

	if result.Partial {
		step(StateExecutionTimedOut)
		return res, nil
	}
	step(StateReturned)
	return res, nil
}
