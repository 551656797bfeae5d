package analyzer

import (
	"github.com/funvibe/tjcore/internal/config"
	"github.com/funvibe/tjcore/internal/diagnostics"
	"github.com/funvibe/tjcore/internal/symbols"
	"github.com/funvibe/tjcore/internal/typesystem"
)

// CheckConformance verifies every registered implementation against its
// interface definition: each interface method must be provided with the same
// arity and a signature matching the declared one once Self is replaced by
// the implementing type. Other type variables in the declaration (such as
// Indexable's element type) may be instantiated freely but consistently.
//
// This is stricter than SolveConstraints, which only looks up names, and is
// run only when analysis.verify_signatures is set. Implementations of
// interfaces the registry does not define are reported as warnings.
// Returns nil or a *diagnostics.Collection of AnalyzerInvalidImplementation.
func (s *ConstraintSolver) CheckConformance() error {
	diags := diagnostics.NewCollection()
	for _, typeName := range s.registry.Types() {
		self := implementingType(typeName)
		for _, ifaceName := range s.registry.Implementations(typeName) {
			methods, _ := s.registry.Methods(typeName, ifaceName)
			iface, ok := s.registry.Interface(ifaceName)
			if !ok {
				diags.AddWarning(diagnostics.AnalyzerInvalidImplementation,
					"implementation of unknown interface "+ifaceName+" for type "+typeName,
					diagnostics.SourceSpan{})
				continue
			}
			checkMethods(diags, typeName, self, iface, methods)
		}
	}
	if diags.IsEmpty() {
		return nil
	}
	return diags
}

func checkMethods(diags *diagnostics.Collection, typeName string, self typesystem.Type, iface *symbols.Interface, methods []symbols.MethodSignature) {
	provided := make(map[string]symbols.MethodSignature, len(methods))
	for _, m := range methods {
		provided[m.Name] = m
	}
	selfSubst := typesystem.Subst{config.SelfTypeVar: self}

	for _, want := range iface.Methods {
		got, ok := provided[want.Name]
		if !ok {
			diags.Add(diagnostics.NewError(diagnostics.AnalyzerInvalidImplementation, iface.Span,
				"type %s does not provide method %s required by interface %s", typeName, want.Name, iface.Name))
			continue
		}
		if len(got.Params) != len(want.Params) {
			diags.Add(diagnostics.NewError(diagnostics.AnalyzerInvalidImplementation, got.Span,
				"method %s of %s for %s takes %d parameter(s), interface declares %d",
				want.Name, iface.Name, typeName, len(got.Params), len(want.Params)))
			continue
		}
		expected := typesystem.Apply(want.Type(), selfSubst)
		if !typesystem.Match(expected, got.Type(), typesystem.Subst{}) {
			diags.Add(diagnostics.NewError(diagnostics.AnalyzerInvalidImplementation, got.Span,
				"method %s of %s for %s has signature `%s`, expected `%s`",
				want.Name, iface.Name, typeName, got.Type(), expected))
		}
	}
}

// implementingType turns a registry key back into a type. Keys that are not
// type expressions are treated as nominal names.
func implementingType(name string) typesystem.Type {
	if t, err := typesystem.Parse(name); err == nil {
		return t
	}
	return typesystem.TGeneric{Name: name}
}
