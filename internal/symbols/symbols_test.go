package symbols

import (
	"testing"

	"github.com/funvibe/tjcore/internal/diagnostics"
	"github.com/funvibe/tjcore/internal/typesystem"
)

func assertLookup(t *testing.T, env *Environment, name string, want typesystem.Type) {
	t.Helper()
	got, ok := env.LookupVariable(name)
	if want == nil {
		if ok {
			t.Errorf("LookupVariable(%q) = %s, want not found", name, got)
		}
		return
	}
	if !ok || !typesystem.Equal(got, want) {
		t.Errorf("LookupVariable(%q) = %v, %v; want %s", name, got, ok, want)
	}
}

func TestEnvironmentScoping(t *testing.T) {
	env := NewEnvironment()
	env.BindVariable("x", typesystem.Int)

	env.EnterScope()
	env.BindVariable("x", typesystem.Str)
	env.BindVariable("y", typesystem.Bool)
	assertLookup(t, env, "x", typesystem.Str)
	assertLookup(t, env, "y", typesystem.Bool)

	env.EnterScope()
	assertLookup(t, env, "x", typesystem.Str)
	if env.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", env.Depth())
	}
	env.ExitScope()

	env.ExitScope()
	assertLookup(t, env, "x", typesystem.Int)
	assertLookup(t, env, "y", nil)

	// Extra exits are ignored.
	env.ExitScope()
	env.ExitScope()
	if env.Depth() != 0 {
		t.Errorf("Depth = %d after extra exits", env.Depth())
	}
	assertLookup(t, env, "x", typesystem.Int)
}

func TestEnvironmentRebinding(t *testing.T) {
	env := NewEnvironment()
	env.BindVariable("x", typesystem.Int)
	env.BindVariable("x", typesystem.Float)
	assertLookup(t, env, "x", typesystem.Float)

	fn := typesystem.TFunc{Params: []typesystem.Type{typesystem.Int}, ReturnType: typesystem.Int}
	env.EnterScope()
	env.BindFunction("inc", fn)
	env.ExitScope()
	// Functions are not scoped.
	if got, ok := env.LookupFunction("inc"); !ok || !typesystem.Equal(got, fn) {
		t.Errorf("LookupFunction(inc) = %v, %v", got, ok)
	}
	if _, ok := env.LookupFunction("dec"); ok {
		t.Error("dec should not be bound")
	}
	if _, ok := env.LookupVariable("inc"); ok {
		t.Error("functions and variables are separate namespaces")
	}
}

func TestEnvironmentConstraints(t *testing.T) {
	env := NewEnvironment()
	c := InterfaceConstraint{TypeVar: "int", Interface: "Eq", Span: diagnostics.NewSpan(0, 1, 2)}
	env.AddConstraint(c)
	env.AddConstraint(c)
	env.AddConstraint(InterfaceConstraint{TypeVar: "str", Interface: "Order"})

	got := env.Constraints()
	if len(got) != 3 {
		t.Fatalf("Constraints() has %d entries, want 3 (duplicates kept)", len(got))
	}
	if got[2].TypeVar != "str" {
		t.Errorf("constraints out of order: %+v", got)
	}

	env.ClearConstraints()
	if len(env.Constraints()) != 0 {
		t.Error("ClearConstraints should drop everything")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"Addable", "Eq", "Order", "Indexable"} {
		if _, ok := r.Interface(name); !ok {
			t.Errorf("built-in interface %s missing", name)
		}
	}
	order, _ := r.Interface("Order")
	if _, ok := order.Method("gt"); !ok {
		t.Error("Order should declare gt")
	}

	if r.Implements("Point", "Eq") {
		t.Fatal("nothing registered yet")
	}

	eq := MethodSignature{Name: "eq", Params: []typesystem.Type{typesystem.TGeneric{Name: "Point"}, typesystem.TGeneric{Name: "Point"}}, ReturnType: typesystem.Bool}
	r.RegisterImplementation("Point", "Eq", []MethodSignature{eq})
	r.RegisterImplementation("Point", "Order", nil)
	if !r.Implements("Point", "Eq") || !r.Implements("Point", "Order") {
		t.Fatal("registered implementations not found")
	}

	// Upsert replaces the method list.
	r.RegisterImplementation("Point", "Eq", nil)
	if m, ok := r.Methods("Point", "Eq"); !ok || len(m) != 0 {
		t.Errorf("Methods after upsert = %v, %v", m, ok)
	}

	impls := r.Implementations("Point")
	if len(impls) != 2 || impls[0] != "Eq" || impls[1] != "Order" {
		t.Errorf("Implementations(Point) = %v", impls)
	}
	if types := r.Types(); len(types) != 1 || types[0] != "Point" {
		t.Errorf("Types() = %v", types)
	}

	r.DefineInterface(&Interface{Name: "Show"})
	if names := r.InterfaceNames(); len(names) != 5 || names[4] != "Show" {
		t.Errorf("InterfaceNames() = %v", names)
	}
}
