package adapter

import (
	"context"
	"testing"

	"github.com/hyperjump/photofind/internal/config"
)

func statesEqual(got []State, want []State) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestPipelineHappyPath(t *testing.T) {
	pl, _, _ := newTestStack(t, nil)

	res, err := pl.Run(context.Background(), "c1", "sunset photos in Hawaii", nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := []State{
		StateReceived, StateTokenized, StateIntentClassified,
		StateParametersExtracted, StateContextMerged, StateValidated,
		StateExecuted, StateFormatted, StateReturned,
	}
	if !statesEqual(res.States, want) {
		t.Errorf("states = %v, want %v", res.States, want)
	}
	if res.Final != StateReturned {
		t.Errorf("final = %s, want %s", res.Final, StateReturned)
	}
	if res.Result == nil || res.Result.TotalCount != 1 {
		t.Errorf("result = %+v, want one match", res.Result)
	}
	if res.Structured == nil {
		t.Error("structured output missing")
	}
}

func TestPipelineParseFailed(t *testing.T) {
	pl, _, _ := newTestStack(t, nil)

	res, err := pl.Run(context.Background(), "c1", "show me photos please", nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Final != StateParseFailed {
		t.Fatalf("final = %s, want %s", res.Final, StateParseFailed)
	}
	if len(res.Suggestions) == 0 {
		t.Error("parse failure must carry suggestions")
	}
	if res.Result != nil {
		t.Error("no search must run on parse failure")
	}
}

func TestPipelineValidationFailed(t *testing.T) {
	pl, _, _ := newTestStack(t, nil)

	res, err := pl.Run(context.Background(), "c1", "sunset photos from 13/45/2023", nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Final != StateValidationFailed {
		t.Fatalf("final = %s, want %s", res.Final, StateValidationFailed)
	}
	if res.Validation == nil || len(res.Validation.Errors) == 0 {
		t.Errorf("validation = %+v, want field errors", res.Validation)
	}
}

func TestPipelineFailedUtteranceDoesNotTouchContext(t *testing.T) {
	pl, _, _ := newTestStack(t, nil)
	ctx := context.Background()

	if _, err := pl.Run(ctx, "c1", "sunset photos in Hawaii", nil); err != nil {
		t.Fatal(err)
	}
	before := pl.conv.Context("c1")

	if _, err := pl.Run(ctx, "c1", "photos from 13/45/2023", nil); err != nil {
		t.Fatal(err)
	}
	after := pl.conv.Context("c1")
	if after == nil || after.Temporal != nil {
		t.Errorf("context after failed utterance = %+v, want unchanged %+v", after, before)
	}
}

func TestPipelineExecutionTimedOut(t *testing.T) {
	pl, _, _ := newTestStack(t, func(cfg *config.Config) {
		cfg.Search.SoftDeadlineMs = -1
	})

	res, err := pl.Run(context.Background(), "c1", "sunset photos in Hawaii", nil)
	if err != nil {
		t.Fatalf("deadline must degrade, not error: %v", err)
	}
	if res.Final != StateExecutionTimedOut {
		t.Fatalf("final = %s, want %s", res.Final, StateExecutionTimedOut)
	}
	if res.Result == nil || !res.Result.Partial {
		t.Errorf("result = %+v, want partial ranking", res.Result)
	}
	if res.Structured == nil || !res.Structured.Partial {
		t.Errorf("structured = %+v, want partial flag", res.Structured)
	}
}
