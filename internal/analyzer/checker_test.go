package analyzer

import (
	"strings"
	"testing"

	"github.com/funvibe/tjcore/internal/config"
	"github.com/funvibe/tjcore/internal/diagnostics"
	"github.com/funvibe/tjcore/internal/pipeline"
	"github.com/funvibe/tjcore/internal/symbols"
	"github.com/funvibe/tjcore/internal/typesystem"
)

func TestCheckType(t *testing.T) {
	tc := NewTypeChecker()
	tests := []struct {
		name string
		typ  typesystem.Type
		want bool
	}{
		{"primitive", typesystem.Int, true},
		{"variable", typesystem.TVar{Name: "T"}, true},
		{"nested", typesystem.MustParse("Map<str, Vec<Option<'T>>>"), true},
		{"function", typesystem.MustParse("(int, Point<str>) -> Result<int, str>"), true},
		{"nil", nil, false},
		{"unnamed generic", typesystem.TGeneric{}, false},
		{"unknown primitive", typesystem.TCon{Name: "int64"}, false},
		{"nil element", typesystem.TVec{}, false},
		{"deep unnamed generic", typesystem.TFunc{
			Params:     []typesystem.Type{typesystem.Int},
			ReturnType: typesystem.TOption{Inner: typesystem.TGeneric{Args: []typesystem.Type{typesystem.Int}}},
		}, false},
		{"sum with nil member", typesystem.TSum{Types: []typesystem.Type{typesystem.Int, nil}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tc.CheckType(tt.typ); got != tt.want {
				t.Errorf("CheckType(%v) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestCheckCompatibility(t *testing.T) {
	tc := NewTypeChecker()
	intOrStr := typesystem.MustParse("int | str")
	if !tc.CheckCompatibility(typesystem.Int, intOrStr) || !tc.CheckCompatibility(intOrStr, typesystem.Int) {
		t.Error("compatibility should be symmetric")
	}
	if !tc.CheckCompatibility(typesystem.Any, typesystem.Bool) {
		t.Error("any is compatible with everything")
	}
	if tc.CheckCompatibility(typesystem.Int, typesystem.Float) {
		t.Error("int and float are unrelated")
	}
}

func TestCheckerSolve(t *testing.T) {
	tc := NewTypeChecker()
	tc.Environment().AddConstraint(symbols.InterfaceConstraint{TypeVar: "int", Interface: "Addable"})
	if err := tc.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	tc.Environment().AddConstraint(symbols.InterfaceConstraint{TypeVar: "bool", Interface: "Order"})
	if diags := asCollection(t, tc.Solve()); diags.Len() != 1 {
		t.Errorf("got %d diagnostics, want 1", diags.Len())
	}
	if tc.Solver() == nil {
		t.Error("Solver() should not be nil")
	}
}

const sampleUnit = `
label: sample
file: 7
variables:
  - name: xs
    type: Vec<int>
  - name: xs
    type: Vec<str>
    scope: 1
functions:
  - name: add
    type: (int, int) -> int
declarations:
  - name: Good
    type: Map<str, Point>
  - name: Broken
    type: "Vec<"
constraints:
  - type: int
    interface: Addable
  - type: Point
    interface: Eq
    span: {start: 20, end: 25}
  - type: bool
    interface: Order
`

func runSample(t *testing.T, cfg *config.Config) *pipeline.PipelineContext {
	t.Helper()
	unit, err := pipeline.ParseUnit([]byte(sampleUnit), "sample.yaml")
	if err != nil {
		t.Fatalf("ParseUnit: %v", err)
	}
	ctx := pipeline.NewPipelineContext(unit.Label, cfg)
	// Front ends may hand over types no type expression can spell.
	declareBad := pipeline.ProcessorFunc(func(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
		ctx.Declare("Bad", typesystem.TCon{Name: "int64"}, diagnostics.NewSpan(7, 3, 8))
		return ctx
	})
	p := pipeline.New(&pipeline.UnitProcessor{Unit: unit}, declareBad).Then(Processors()...)
	return p.Run(ctx)
}

func TestPipeline(t *testing.T) {
	ctx := runSample(t, nil)
	if len(ctx.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}

	if got, _ := ctx.Env.LookupVariable("xs"); !typesystem.Equal(got, typesystem.MustParse("Vec<str>")) {
		t.Errorf("xs = %v, want the scoped binding", got)
	}
	if _, ok := ctx.Env.LookupFunction("add"); !ok {
		t.Error("add should be bound")
	}

	var codes []string
	for _, d := range ctx.Diagnostics.Diagnostics() {
		codes = append(codes, d.Code.String())
	}
	// Unit parse error, malformed declaration, then two unsatisfied constraints.
	want := []string{"P1005", "A2008", "A2004", "A2004"}
	if strings.Join(codes, ",") != strings.Join(want, ",") {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
	bad := ctx.Diagnostics.Diagnostics()[1]
	if bad.PrimarySpan != diagnostics.NewSpan(7, 3, 8) || !strings.Contains(bad.Message, "int64") {
		t.Errorf("malformed declaration diagnostic = %v at %v", bad, bad.PrimarySpan)
	}
	if span := ctx.Diagnostics.Diagnostics()[2].PrimarySpan; span != diagnostics.NewSpan(7, 20, 25) {
		t.Errorf("constraint span = %v", span)
	}
}

func TestPipelineConfiguredImplementations(t *testing.T) {
	cfg := config.Default()
	cfg.Analysis.VerifySignatures = true
	cfg.Implementations = []config.ImplementationSpec{
		{Type: "Point", Interface: "Eq", Methods: []config.MethodSpec{{Name: "eq", Params: []string{"Point", "Point"}, Returns: "str"}}},
		{Type: "bool", Interface: "Order", Methods: []config.MethodSpec{
			{Name: "lt", Params: []string{"bool", "bool"}, Returns: "bool"},
			{Name: "gt", Params: []string{"bool", "bool"}, Returns: "bool"},
		}},
	}
	ctx := runSample(t, cfg)

	// Both constraints are now satisfied nominally; only Point's eq
	// signature fails conformance.
	var codes []string
	for _, d := range ctx.Diagnostics.Diagnostics() {
		codes = append(codes, d.Code.String())
	}
	want := []string{"P1005", "A2008", "A2011"}
	if strings.Join(codes, ",") != strings.Join(want, ",") {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
}

func TestPipelineConfiguredBuiltinPair(t *testing.T) {
	cfg := config.Default()
	cfg.Analysis.VerifySignatures = true
	cfg.Implementations = []config.ImplementationSpec{
		{Type: "int", Interface: "Addable", Methods: []config.MethodSpec{{Name: "add", Params: []string{"int", "int"}, Returns: "str"}}},
	}
	ctx := runSample(t, cfg)

	// Later stages must not re-register the stock int implementation.
	methods, ok := ctx.Registry.Methods("int", "Addable")
	if !ok || len(methods) != 1 || !typesystem.Equal(methods[0].ReturnType, typesystem.Str) {
		t.Fatalf("int Addable methods = %v, want the configured add returning str", methods)
	}

	var codes []string
	for _, d := range ctx.Diagnostics.Diagnostics() {
		codes = append(codes, d.Code.String())
	}
	want := []string{"P1005", "A2008", "A2004", "A2004", "A2011"}
	if strings.Join(codes, ",") != strings.Join(want, ",") {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
	if last := ctx.Diagnostics.Diagnostics()[4]; !strings.Contains(last.Message, "for int") {
		t.Errorf("conformance diagnostic = %q", last.Message)
	}
}

func TestPipelineLimits(t *testing.T) {
	cfg := config.Default()
	cfg.Analysis.MaxDiagnostics = 2
	if ctx := runSample(t, cfg); ctx.Diagnostics.Len() != 2 {
		t.Errorf("max_diagnostics: got %d diagnostics, want 2", ctx.Diagnostics.Len())
	}

	cfg = config.Default()
	cfg.Analysis.StopOnError = true
	ctx := runSample(t, cfg)
	// The unit stage already reported a parse error, so nothing else ran.
	if ctx.Diagnostics.Len() != 1 || ctx.Diagnostics.Diagnostics()[0].Code != diagnostics.ParserInvalidType {
		t.Errorf("stop_on_error: got %v", ctx.Diagnostics)
	}
}
