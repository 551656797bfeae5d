package symbols

import (
	"github.com/funvibe/tjcore/internal/config"
	"github.com/funvibe/tjcore/internal/diagnostics"
	"github.com/funvibe/tjcore/internal/typesystem"
)

// MethodSignature is one method of an interface or of an implementation.
type MethodSignature struct {
	Name       string
	Params     []typesystem.Type
	ReturnType typesystem.Type
	Span       diagnostics.SourceSpan
}

// Type returns the signature as a function type.
func (m MethodSignature) Type() typesystem.TFunc {
	return typesystem.TFunc{Params: m.Params, ReturnType: m.ReturnType}
}

// Interface is a named set of method signatures. Self stands for the
// implementing type.
type Interface struct {
	Name    string
	Methods []MethodSignature
	Span    diagnostics.SourceSpan
}

// Method looks up a method by name.
func (i *Interface) Method(name string) (MethodSignature, bool) {
	for _, m := range i.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return MethodSignature{}, false
}

var (
	selfType = typesystem.TVar{Name: config.SelfTypeVar}
	elemType = typesystem.TVar{Name: "T"}
)

func binarySelf(name string, ret typesystem.Type) MethodSignature {
	return MethodSignature{Name: name, Params: []typesystem.Type{selfType, selfType}, ReturnType: ret}
}

// BuiltinInterfaces is the closed table of interfaces known to the toolchain.
var BuiltinInterfaces = map[string]*Interface{
	config.AddableInterfaceName: {
		Name:    config.AddableInterfaceName,
		Methods: []MethodSignature{binarySelf(config.AddMethodName, selfType)},
	},
	config.EqInterfaceName: {
		Name:    config.EqInterfaceName,
		Methods: []MethodSignature{binarySelf(config.EqMethodName, typesystem.Bool)},
	},
	config.OrderInterfaceName: {
		Name: config.OrderInterfaceName,
		Methods: []MethodSignature{
			binarySelf(config.LtMethodName, typesystem.Bool),
			binarySelf(config.GtMethodName, typesystem.Bool),
		},
	},
	config.IndexableInterfaceName: {
		Name: config.IndexableInterfaceName,
		Methods: []MethodSignature{{
			Name:       config.IndexMethodName,
			Params:     []typesystem.Type{selfType, typesystem.Int},
			ReturnType: elemType,
		}},
	},
}
