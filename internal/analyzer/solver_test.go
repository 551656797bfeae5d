package analyzer

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/tjcore/internal/config"
	"github.com/funvibe/tjcore/internal/diagnostics"
	"github.com/funvibe/tjcore/internal/symbols"
	"github.com/funvibe/tjcore/internal/typesystem"
)

func asCollection(t *testing.T, err error) *diagnostics.Collection {
	t.Helper()
	var diags *diagnostics.Collection
	if !errors.As(err, &diags) {
		t.Fatalf("error %v (%T) is not a *diagnostics.Collection", err, err)
	}
	return diags
}

func TestSolverBuiltins(t *testing.T) {
	s := NewConstraintSolver()
	tests := []struct {
		typeName, iface string
		want            bool
	}{
		{"int", "Addable", true},
		{"float", "Addable", true},
		{"str", "Addable", true},
		{"bool", "Addable", false},
		{"int", "Order", false},
		{"int", "Eq", false},
	}
	for _, tt := range tests {
		if got := s.TypeImplementsInterface(tt.typeName, tt.iface); got != tt.want {
			t.Errorf("TypeImplementsInterface(%s, %s) = %v, want %v", tt.typeName, tt.iface, got, tt.want)
		}
	}

	methods, ok := s.Registry().Methods("float", "Addable")
	if !ok || len(methods) != 1 {
		t.Fatalf("float Addable methods = %v", methods)
	}
	want := typesystem.MustParse("(float, float) -> float")
	if !typesystem.Equal(methods[0].Type(), want) {
		t.Errorf("float add = %s, want %s", methods[0].Type(), want)
	}
}

func TestSolveConstraintsBatch(t *testing.T) {
	s := NewConstraintSolver()
	constraints := []symbols.InterfaceConstraint{
		{TypeVar: "bool", Interface: "Addable", Span: diagnostics.NewSpan(0, 1, 5)},
		{TypeVar: "int", Interface: "Addable", Span: diagnostics.NewSpan(0, 6, 9)},
		{TypeVar: "Point", Interface: "Eq", Span: diagnostics.NewSpan(0, 10, 15)},
	}

	diags := asCollection(t, s.SolveConstraints(constraints))
	if diags.Len() != 2 {
		t.Fatalf("got %d diagnostics, want 2: %v", diags.Len(), diags)
	}
	for i, want := range []symbols.InterfaceConstraint{constraints[0], constraints[2]} {
		d := diags.Diagnostics()[i]
		if d.Code != diagnostics.AnalyzerTraitNotImplemented || d.Severity != diagnostics.SeverityError {
			t.Errorf("diagnostic %d = %v", i, d)
		}
		if d.PrimarySpan != want.Span {
			t.Errorf("diagnostic %d span = %v, want %v", i, d.PrimarySpan, want.Span)
		}
		if !strings.Contains(d.Message, want.TypeVar) || !strings.Contains(d.Message, want.Interface) {
			t.Errorf("diagnostic %d message %q should name %s and %s", i, d.Message, want.TypeVar, want.Interface)
		}
	}

	if err := s.SolveConstraints(constraints[1:2]); err != nil {
		t.Errorf("satisfied constraints returned %v", err)
	}
	if err := s.SolveConstraints(nil); err != nil {
		t.Errorf("empty batch returned %v", err)
	}
}

func TestRegisterImplementationUpsert(t *testing.T) {
	s := NewConstraintSolver()
	s.RegisterImplementation("Point", "Eq", nil)
	if !s.TypeImplementsInterface("Point", "Eq") {
		t.Fatal("Point should implement Eq after registration")
	}
	eq := symbols.MethodSignature{Name: "eq", Params: []typesystem.Type{typesystem.TGeneric{Name: "Point"}, typesystem.TGeneric{Name: "Point"}}, ReturnType: typesystem.Bool}
	s.RegisterImplementation("Point", "Eq", []symbols.MethodSignature{eq})
	if m, _ := s.Registry().Methods("Point", "Eq"); len(m) != 1 {
		t.Errorf("re-registration should overwrite, got %v", m)
	}
	if impls := s.Implementations("Point"); len(impls) != 1 {
		t.Errorf("Implementations(Point) = %v", impls)
	}
}

func TestCheckConformance(t *testing.T) {
	s := NewConstraintSolver()
	if err := s.CheckConformance(); err != nil {
		t.Fatalf("built-ins should conform: %v", err)
	}

	point := typesystem.TGeneric{Name: "Point"}
	sig := func(name string, params []typesystem.Type, ret typesystem.Type) symbols.MethodSignature {
		return symbols.MethodSignature{Name: name, Params: params, ReturnType: ret}
	}

	// Conforming: Order on Point, Indexable on Vec<str> with T bound to str.
	s.RegisterImplementation("Point", "Order", []symbols.MethodSignature{
		sig("lt", []typesystem.Type{point, point}, typesystem.Bool),
		sig("gt", []typesystem.Type{point, point}, typesystem.Bool),
	})
	vecStr := typesystem.TVec{Elem: typesystem.Str}
	s.RegisterImplementation("Vec<str>", "Indexable", []symbols.MethodSignature{
		sig("index", []typesystem.Type{vecStr, typesystem.Int}, typesystem.Str),
	})
	if err := s.CheckConformance(); err != nil {
		t.Fatalf("conforming implementations rejected: %v", err)
	}

	// Missing method, wrong arity, wrong return type.
	s.RegisterImplementation("Point", "Order", []symbols.MethodSignature{
		sig("lt", []typesystem.Type{point}, typesystem.Bool),
	})
	s.RegisterImplementation("Point", "Eq", []symbols.MethodSignature{
		sig("eq", []typesystem.Type{point, point}, typesystem.Int),
	})
	s.RegisterImplementation("Point", "Show", nil)

	diags := asCollection(t, s.CheckConformance())
	errs := diags.BySeverity(diagnostics.SeverityError)
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(errs), diags)
	}
	for _, d := range errs {
		if d.Code != diagnostics.AnalyzerInvalidImplementation {
			t.Errorf("unexpected code %s: %v", d.Code, d)
		}
	}
	if warns := diags.BySeverity(diagnostics.SeverityWarning); len(warns) != 1 || !strings.Contains(warns[0].Message, "Show") {
		t.Errorf("warnings = %v", warns)
	}

	// Conformance is never consulted by the solver itself.
	if err := s.SolveConstraints([]symbols.InterfaceConstraint{{TypeVar: "Point", Interface: "Eq"}}); err != nil {
		t.Errorf("nominal satisfaction should still hold: %v", err)
	}
}

func TestRegisterConfigured(t *testing.T) {
	s := NewConstraintSolver()
	specs := []config.ImplementationSpec{
		{
			Type:      "Point",
			Interface: "Eq",
			Methods:   []config.MethodSpec{{Name: "eq", Params: []string{"Point", "Point"}, Returns: "bool"}},
		},
		{
			Type:      "Broken",
			Interface: "Eq",
			Methods:   []config.MethodSpec{{Name: "eq", Params: []string{"Vec<"}, Returns: "bool"}},
		},
		{Type: "Marker", Interface: "Order"},
	}
	err := RegisterConfigured(s, specs)
	var perr *typesystem.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want a ParseError, got %v", err)
	}
	if !s.TypeImplementsInterface("Point", "Eq") || !s.TypeImplementsInterface("Marker", "Order") {
		t.Error("valid implementations should be registered despite the bad one")
	}
	if s.TypeImplementsInterface("Broken", "Eq") {
		t.Error("implementation with a bad signature should not be registered")
	}
	methods, _ := s.Registry().Methods("Point", "Eq")
	want := typesystem.MustParse("(Point, Point) -> bool")
	if len(methods) != 1 || !typesystem.Equal(methods[0].Type(), want) {
		t.Errorf("Point eq = %v", methods)
	}
}
