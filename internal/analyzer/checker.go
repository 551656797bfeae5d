package analyzer

import (
	"github.com/funvibe/tjcore/internal/symbols"
	"github.com/funvibe/tjcore/internal/typesystem"
)

// TypeChecker validates types and owns the environment and solver used
// while checking one unit.
type TypeChecker struct {
	env    *symbols.Environment
	solver *ConstraintSolver
}

func NewTypeChecker() *TypeChecker {
	return NewTypeCheckerWith(symbols.NewEnvironment(), NewConstraintSolver())
}

// NewTypeCheckerWith builds a checker around an existing environment and solver.
func NewTypeCheckerWith(env *symbols.Environment, solver *ConstraintSolver) *TypeChecker {
	return &TypeChecker{env: env, solver: solver}
}

func (tc *TypeChecker) Environment() *symbols.Environment { return tc.env }
func (tc *TypeChecker) Solver() *ConstraintSolver         { return tc.solver }

// CheckType reports whether t is well formed. Type variables are always
// accepted; a missing component, a generic without a name, or a primitive
// name outside the built-in set makes the whole type malformed.
func (tc *TypeChecker) CheckType(t typesystem.Type) bool {
	_, ok := firstMalformed(t)
	return !ok
}

// firstMalformed returns the first malformed node of t in depth-first order.
// A nil node is reported as nil with ok set.
func firstMalformed(t typesystem.Type) (typesystem.Type, bool) {
	switch typ := t.(type) {
	case nil:
		return nil, true
	case typesystem.TVar:
		return nil, false
	case typesystem.TCon:
		if !typesystem.IsPrimitive(typ.Name) {
			return typ, true
		}
		return nil, false
	case typesystem.TGeneric:
		if typ.Name == "" {
			return typ, true
		}
	}
	for _, c := range typesystem.Children(t) {
		if bad, ok := firstMalformed(c); ok {
			return bad, true
		}
	}
	return nil, false
}

// CheckCompatibility reports whether either type is a subtype of the other.
func (tc *TypeChecker) CheckCompatibility(left, right typesystem.Type) bool {
	return typesystem.IsSubtype(left, right) || typesystem.IsSubtype(right, left)
}

// Solve runs the solver over the constraints accumulated in the environment.
func (tc *TypeChecker) Solve() error {
	return tc.solver.SolveConstraints(tc.env.Constraints())
}
