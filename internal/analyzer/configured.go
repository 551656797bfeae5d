package analyzer

import (
	"fmt"

	"github.com/funvibe/tjcore/internal/config"
	"github.com/funvibe/tjcore/internal/symbols"
	"github.com/funvibe/tjcore/internal/typesystem"
)

// RegisterConfigured registers the implementations declared in configuration.
// Method signatures are parsed as type expressions; the first parse error
// aborts registration of that implementation and is returned after the rest
// have been registered.
func RegisterConfigured(solver *ConstraintSolver, specs []config.ImplementationSpec) error {
	var firstErr error
	for _, spec := range specs {
		methods, err := methodsFromSpec(spec)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		solver.RegisterImplementation(spec.Type, spec.Interface, methods)
	}
	return firstErr
}

func methodsFromSpec(spec config.ImplementationSpec) ([]symbols.MethodSignature, error) {
	methods := make([]symbols.MethodSignature, 0, len(spec.Methods))
	for _, m := range spec.Methods {
		params := make([]typesystem.Type, len(m.Params))
		for i, p := range m.Params {
			t, err := typesystem.Parse(p)
			if err != nil {
				return nil, fmt.Errorf("implementation %s for %s: method %s parameter %d: %w",
					spec.Interface, spec.Type, m.Name, i, err)
			}
			params[i] = t
		}
		ret, err := typesystem.Parse(m.Returns)
		if err != nil {
			return nil, fmt.Errorf("implementation %s for %s: method %s return: %w",
				spec.Interface, spec.Type, m.Name, err)
		}
		methods = append(methods, symbols.MethodSignature{Name: m.Name, Params: params, ReturnType: ret})
	}
	return methods, nil
}
