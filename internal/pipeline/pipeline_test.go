package pipeline

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/tjcore/internal/config"
	"github.com/funvibe/tjcore/internal/diagnostics"
	"github.com/google/uuid"
)

func report(code diagnostics.ErrorCode) Processor {
	return ProcessorFunc(func(ctx *PipelineContext) *PipelineContext {
		ctx.Add(diagnostics.NewError(code, diagnostics.SourceSpan{}, "from stage"))
		return ctx
	})
}

func TestRunOrderAndStopOnError(t *testing.T) {
	var order []string
	stage := func(name string) Processor {
		return ProcessorFunc(func(ctx *PipelineContext) *PipelineContext {
			order = append(order, name)
			return ctx
		})
	}

	ctx := New(stage("a"), report(diagnostics.AnalyzerTypeMismatch), stage("b")).Run(NewPipelineContext("t", nil))
	if strings.Join(order, "") != "ab" {
		t.Errorf("stages ran %v, want all of them", order)
	}
	if !ctx.Failed() {
		t.Error("context should report failure")
	}

	order = nil
	cfg := config.Default()
	cfg.Analysis.StopOnError = true
	New(stage("a"), report(diagnostics.AnalyzerTypeMismatch)).Then(stage("b")).Run(NewPipelineContext("t", cfg))
	if strings.Join(order, "") != "a" {
		t.Errorf("stages ran %v, want only a", order)
	}
}

func TestDiagnosticCap(t *testing.T) {
	cfg := config.Default()
	cfg.Analysis.MaxDiagnostics = 2
	ctx := NewPipelineContext("cap", cfg)

	extra := diagnostics.NewCollection()
	for i := 0; i < 3; i++ {
		extra.AddError(diagnostics.AnalyzerTypeMismatch, "x", diagnostics.SourceSpan{})
	}
	ctx.Merge(extra)
	ctx.Merge(nil)
	if ctx.Diagnostics.Len() != 2 || !ctx.Full() {
		t.Errorf("Len = %d, Full = %v", ctx.Diagnostics.Len(), ctx.Full())
	}
}

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit([]byte(`
variables:
  - name: x
    type: int
constraints:
  - type: int
    interface: Eq
    span: {start: 1, end: 4}
`), "u.yaml")
	if err != nil {
		t.Fatalf("ParseUnit: %v", err)
	}
	if u.Label != "u.yaml" {
		t.Errorf("Label = %q, want the path", u.Label)
	}

	ctx := (&UnitProcessor{Unit: u}).Process(NewPipelineContext(u.Label, nil))
	if _, ok := ctx.Env.LookupVariable("x"); !ok {
		t.Error("x should be bound")
	}
	cs := ctx.Env.Constraints()
	if len(cs) != 1 || cs[0].Span != diagnostics.NewSpan(0, 1, 4) {
		t.Errorf("constraints = %+v", cs)
	}

	if _, err := ParseUnit([]byte("constraints:\n  - type: int\n"), "bad.yaml"); err == nil {
		t.Error("constraint without interface should be rejected")
	}
	if _, err := ParseUnit([]byte("variables: [unterminated"), "bad.yaml"); err == nil {
		t.Error("malformed YAML should be rejected")
	}
}

func TestPersistProcessor(t *testing.T) {
	store, err := diagnostics.OpenStore(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	ctx := New(report(diagnostics.AnalyzerUndefinedType), &PersistProcessor{Store: store}).
		Run(NewPipelineContext("persisted", nil))
	if len(ctx.Errors) != 0 {
		t.Fatalf("errors: %v", ctx.Errors)
	}
	if ctx.RunID == uuid.Nil {
		t.Fatal("RunID should be set")
	}

	loaded, err := store.LoadRun(ctx.Context, ctx.RunID)
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if loaded.Len() != 1 || loaded.Diagnostics()[0].Code != diagnostics.AnalyzerUndefinedType {
		t.Errorf("loaded = %v", loaded)
	}

	// No store configured: nothing happens.
	ctx = (&PersistProcessor{}).Process(NewPipelineContext("none", nil))
	if ctx.RunID != uuid.Nil || len(ctx.Errors) != 0 {
		t.Error("a nil store should be a no-op")
	}
}
