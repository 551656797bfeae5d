package evaluator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/funvibe/tjcore/internal/typesystem"
)

// ErrUnknownBuiltin is returned by Call for a name nothing is registered under.
var ErrUnknownBuiltin = errors.New("unknown builtin")

// Builtins is the name to native-function table consulted by the interpreter.
type Builtins struct {
	fns map[string]*Builtin
}

func NewBuiltins() *Builtins {
	return &Builtins{fns: make(map[string]*Builtin)}
}

// Register adds or replaces the builtin called name.
func (b *Builtins) Register(name string, typeInfo typesystem.Type, fn BuiltinFunction) {
	b.fns[name] = &Builtin{Name: name, Fn: fn, TypeInfo: typeInfo}
}

func (b *Builtins) Lookup(name string) (*Builtin, bool) {
	fn, ok := b.fns[name]
	return fn, ok
}

// Call invokes the builtin called name. Arity is checked against TypeInfo
// when it is a function type.
func (b *Builtins) Call(name string, args ...Value) (Value, error) {
	fn, ok := b.fns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBuiltin, name)
	}
	if sig, ok := fn.TypeInfo.(typesystem.TFunc); ok && len(sig.Params) != len(args) {
		return nil, fmt.Errorf("%s expects %d argument(s), got %d", name, len(sig.Params), len(args))
	}
	return fn.Fn(args...)
}

// Names returns the registered names in sorted order.
func (b *Builtins) Names() []string {
	names := make([]string, 0, len(b.fns))
	for name := range b.fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
