package analyzer

import (
	"github.com/funvibe/tjcore/internal/config"
	"github.com/funvibe/tjcore/internal/diagnostics"
	"github.com/funvibe/tjcore/internal/symbols"
	"github.com/funvibe/tjcore/internal/typesystem"
)

// ConstraintSolver decides whether types satisfy interface constraints.
// Satisfaction is nominal: a type implements an interface iff an
// implementation has been registered under that (type, interface) pair.
type ConstraintSolver struct {
	registry *symbols.Registry
}

// NewConstraintSolver returns a solver over a fresh registry with the
// built-in implementations registered.
func NewConstraintSolver() *ConstraintSolver {
	return NewConstraintSolverWithRegistry(symbols.NewRegistry())
}

// NewConstraintSolverWithRegistry registers the built-in implementations into
// registry and returns a solver over it. Call it once per registry: seeding
// again overwrites any later registration of a built-in pair.
func NewConstraintSolverWithRegistry(registry *symbols.Registry) *ConstraintSolver {
	s := SolverFor(registry)
	s.registerBuiltins()
	return s
}

// SolverFor returns a solver over registry as it stands, registering nothing.
func SolverFor(registry *symbols.Registry) *ConstraintSolver {
	return &ConstraintSolver{registry: registry}
}

// int, float and str are Addable: add(T, T) -> T.
func (s *ConstraintSolver) registerBuiltins() {
	for _, prim := range []typesystem.TCon{typesystem.Int, typesystem.Float, typesystem.Str} {
		s.RegisterImplementation(prim.Name, config.AddableInterfaceName, []symbols.MethodSignature{{
			Name:       config.AddMethodName,
			Params:     []typesystem.Type{prim, prim},
			ReturnType: prim,
		}})
	}
}

func (s *ConstraintSolver) Registry() *symbols.Registry {
	return s.registry
}

// RegisterImplementation records that typeName implements iface via methods,
// replacing any earlier registration of the same pair.
func (s *ConstraintSolver) RegisterImplementation(typeName, iface string, methods []symbols.MethodSignature) {
	s.registry.RegisterImplementation(typeName, iface, methods)
}

func (s *ConstraintSolver) TypeImplementsInterface(typeName, iface string) bool {
	return s.registry.Implements(typeName, iface)
}

// Implementations lists the interfaces typeName implements.
func (s *ConstraintSolver) Implementations(typeName string) []string {
	return s.registry.Implementations(typeName)
}

// SolveConstraints checks every constraint and reports each unsatisfied one.
// It returns nil when all constraints hold; otherwise the error is a
// *diagnostics.Collection with one AnalyzerTraitNotImplemented per failure,
// in constraint order.
func (s *ConstraintSolver) SolveConstraints(constraints []symbols.InterfaceConstraint) error {
	diags := diagnostics.NewCollection()
	for _, c := range constraints {
		if s.canSatisfy(c) {
			continue
		}
		config.Debugf("constraint %s: %s unsatisfied", c.TypeVar, c.Interface)
		diags.Add(diagnostics.TraitNotImplemented(c.TypeVar, c.Interface, c.Span))
	}
	if diags.IsEmpty() {
		return nil
	}
	return diags
}

func (s *ConstraintSolver) canSatisfy(c symbols.InterfaceConstraint) bool {
	return s.registry.Implements(c.TypeVar, c.Interface)
}
