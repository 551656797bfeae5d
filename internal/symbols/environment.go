package symbols

import (
	"github.com/funvibe/tjcore/internal/diagnostics"
	"github.com/funvibe/tjcore/internal/typesystem"
)

// InterfaceConstraint states that the type named TypeVar must implement Interface.
type InterfaceConstraint struct {
	TypeVar   string
	Interface string
	Span      diagnostics.SourceSpan
}

// Environment holds variable and function bindings for type checking.
// Variables live in a global map plus a stack of lexical scopes; functions
// share one flat namespace.
type Environment struct {
	variables   map[string]typesystem.Type
	functions   map[string]typesystem.Type
	scopes      []map[string]typesystem.Type
	constraints []InterfaceConstraint
}

func NewEnvironment() *Environment {
	return &Environment{
		variables: make(map[string]typesystem.Type),
		functions: make(map[string]typesystem.Type),
	}
}

// EnterScope pushes a fresh, empty scope.
func (e *Environment) EnterScope() {
	e.scopes = append(e.scopes, make(map[string]typesystem.Type))
}

// ExitScope pops the innermost scope. It does nothing when no scope is open.
func (e *Environment) ExitScope() {
	if len(e.scopes) == 0 {
		return
	}
	e.scopes[len(e.scopes)-1] = nil
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Depth returns the number of open scopes. Zero means global.
func (e *Environment) Depth() int {
	return len(e.scopes)
}

// BindVariable binds name in the innermost scope, or globally when no scope is open.
// Rebinding in the same scope replaces the previous type.
func (e *Environment) BindVariable(name string, t typesystem.Type) {
	if len(e.scopes) > 0 {
		e.scopes[len(e.scopes)-1][name] = t
		return
	}
	e.variables[name] = t
}

// LookupVariable searches scopes innermost first, then globals.
func (e *Environment) LookupVariable(name string) (typesystem.Type, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if t, ok := e.scopes[i][name]; ok {
			return t, true
		}
	}
	t, ok := e.variables[name]
	return t, ok
}

func (e *Environment) BindFunction(name string, t typesystem.Type) {
	e.functions[name] = t
}

func (e *Environment) LookupFunction(name string) (typesystem.Type, bool) {
	t, ok := e.functions[name]
	return t, ok
}

// AddConstraint records a pending constraint. Duplicates are kept.
func (e *Environment) AddConstraint(c InterfaceConstraint) {
	e.constraints = append(e.constraints, c)
}

// Constraints returns the accumulated constraints in insertion order.
func (e *Environment) Constraints() []InterfaceConstraint {
	return e.constraints
}

func (e *Environment) ClearConstraints() {
	e.constraints = nil
}
