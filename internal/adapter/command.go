package adapter

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperjump/photofind/internal/models"
)

// Command is one externally issued agent instruction.
type Command struct {
	Action     string         `json:"action"`
	Parameters map[string]any `json:"parameters"`
}

// Outcome is the structured reply to an agent command. Failures are values,
// never errors, so callers can relay them directly.
type Outcome struct {
	Success        bool               `json:"success"`
	Data           any                `json:"data,omitempty"`
	Error          string             `json:"error,omitempty"`
	StructuredData *SearchResultsPage `json:"structured_data,omitempty"`
}

// paramKind is the expected type of one command parameter.
type paramKind int

const (
	kindString paramKind = iota
	kindInt
	kindBool
	kindStringList
)

type paramSpec struct {
	kind     paramKind
	required bool
}

// commandSchema declares the accepted parameters per action. Any key outside
// the schema fails the command, naming the key.
type commandSchema struct {
	params map[string]paramSpec
	// irreversible commands are rejected unless confirmed:true is supplied.
	irreversible bool
}

// Recognized agent actions.
const (
	CmdSearchPhotos       = "search_photos"
	CmdRefineSearch       = "refine_search"
	CmdValidateQuery      = "validate_query"
	CmdSuggestRefinements = "suggest_refinements"
	CmdResetContext       = "reset_context"
	CmdSelectPhotos       = "select_photos"
	CmdCreateAlbum        = "create_album"
	CmdDeletePhotos       = "delete_photos"
)

var commandSchemas = map[string]commandSchema{
	CmdSearchPhotos: {params: map[string]paramSpec{
		"query":           {kind: kindString, required: true},
		"conversation_id": {kind: kindString},
		"limit":           {kind: kindInt},
		"offset":          {kind: kindInt},
	}},
	CmdRefineSearch: {params: map[string]paramSpec{
		"query":           {kind: kindString, required: true},
		"conversation_id": {kind: kindString},
	}},
	CmdValidateQuery: {params: map[string]paramSpec{
		"query": {kind: kindString, required: true},
	}},
	CmdSuggestRefinements: {params: map[string]paramSpec{
		"query": {kind: kindString, required: true},
	}},
	CmdResetContext: {params: map[string]paramSpec{
		"conversation_id": {kind: kindString},
	}},
	CmdSelectPhotos: {params: map[string]paramSpec{
		"photo_ids": {kind: kindStringList, required: true},
	}},
	CmdCreateAlbum: {params: map[string]paramSpec{
		"name":      {kind: kindString, required: true},
		"photo_ids": {kind: kindStringList},
	}},
	CmdDeletePhotos: {
		params: map[string]paramSpec{
			"photo_ids": {kind: kindStringList, required: true},
			"confirmed": {kind: kindBool},
		},
		irreversible: true,
	},
}

// Adapter processes agent commands by routing them through the query
// pipeline and the injected action registry.
type Adapter struct {
	pipeline *Pipeline
	registry ActionRegistry
	logger   *zap.Logger
}

// NewAdapter creates an adapter; registry and logger may be nil. With a nil
// registry, side-effecting commands fail with a structured error.
func NewAdapter(pipeline *Pipeline, registry ActionRegistry, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{pipeline: pipeline, registry: registry, logger: logger}
}

// ProcessAgentCommand validates cmd against its action schema and executes
// it. Stateless per call apart from the named conversation's context.
func (a *Adapter) ProcessAgentCommand(ctx context.Context, cmd Command) Outcome {
	schema, ok := commandSchemas[cmd.Action]
	if !ok {
		return failf("unknown action %q", cmd.Action)
	}
	if out, ok := validateParams(cmd, schema); !ok {
		return out
	}
	if schema.irreversible && !boolParam(cmd, "confirmed") {
		return failf("action %q is irreversible and requires confirmed:true", cmd.Action)
	}

	a.logger.Info("agent command", zap.String("action", cmd.Action))
	switch cmd.Action {
	case CmdSearchPhotos, CmdRefineSearch:
		return a.runSearch(ctx, cmd)
	case CmdValidateQuery:
		v := a.pipeline.parser.ValidateQuery(stringParam(cmd, "query"))
		return Outcome{Success: true, Data: v}
	case CmdSuggestRefinements:
		s := a.pipeline.parser.SuggestRefinements(stringParam(cmd, "query"))
		return Outcome{Success: true, Data: s}
	case CmdResetContext:
		a.pipeline.conv.Reset(stringParam(cmd, "conversation_id"))
		return Outcome{Success: true}
	case CmdSelectPhotos, CmdCreateAlbum, CmdDeletePhotos:
		return a.execute(ctx, cmd)
	}
	return failf("unknown action %q", cmd.Action)
}

func (a *Adapter) runSearch(ctx context.Context, cmd Command) Outcome {
	page := &models.Pagination{
		Limit:  intParam(cmd, "limit"),
		Offset: intParam(cmd, "offset"),
	}
	res, err := a.pipeline.Run(ctx, stringParam(cmd, "conversation_id"), stringParam(cmd, "query"), page)
	if err != nil {
		return Outcome{Success: false, Error: err.Error()}
	}
	switch res.Final {
	case StateParseFailed:
		return Outcome{Success: false, Error: "query could not be parsed", Data: res.Suggestions}
	case StateValidationFailed:
		return Outcome{Success: false, Error: "query failed validation", Data: res.Validation}
	}
	return Outcome{Success: true, Data: res.Result, StructuredData: res.Structured}
}

// execute hands a side-effecting command to the external registry; the
// adapter itself never performs the operation.
func (a *Adapter) execute(ctx context.Context, cmd Command) Outcome {
	if a.registry == nil {
		return failf("no action registry configured for %q", cmd.Action)
	}
	if err := a.registry.Execute(ctx, cmd.Action, cmd.Parameters); err != nil {
		return Outcome{Success: false, Error: err.Error()}
	}
	return Outcome{Success: true}
}

// validateParams rejects unknown keys, missing required keys, and wrongly
// typed values. The unknown-key failure names the offending key.
func validateParams(cmd Command, schema commandSchema) (Outcome, bool) {
	for key, val := range cmd.Parameters {
		spec, ok := schema.params[key]
		if !ok {
			return failf("unknown parameter %q for action %q", key, cmd.Action), false
		}
		if !matchesKind(val, spec.kind) {
			return failf("parameter %q for action %q has the wrong type", key, cmd.Action), false
		}
	}
	for key, spec := range schema.params {
		if !spec.required {
			continue
		}
		if _, ok := cmd.Parameters[key]; !ok {
			return failf("missing required parameter %q for action %q", key, cmd.Action), false
		}
	}
	return Outcome{}, true
}

func matchesKind(val any, kind paramKind) bool {
	switch kind {
	case kindString:
		_, ok := val.(string)
		return ok
	case kindInt:
		switch val.(type) {
		case int, int64, float64: // JSON numbers decode as float64
			return true
		}
		return false
	case kindBool:
		_, ok := val.(bool)
		return ok
	case kindStringList:
		switch list := val.(type) {
		case []string:
			return true
		case []any:
			for _, item := range list {
				if _, ok := item.(string); !ok {
					return false
				}
			}
			return true
		}
		return false
	}
	return false
}

func stringParam(cmd Command, key string) string {
	s, _ := cmd.Parameters[key].(string)
	return s
}

func boolParam(cmd Command, key string) bool {
	b, _ := cmd.Parameters[key].(bool)
	return b
}

func intParam(cmd Command, key string) int {
	switch v := cmd.Parameters[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func failf(format string, args ...any) Outcome {
	return Outcome{Success: false, Error: fmt.Sprintf(format, args...)}
}
