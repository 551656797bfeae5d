package typesystem

import (
	"fmt"
	"strings"

	"github.com/funvibe/tjcore/internal/config"
)

// Type is the interface for all types in our system.
// Types are immutable trees; two types are the same type iff Equal says so.
type Type interface {
	String() string
	Kind() Kind
}

// TCon represents a primitive type constant (int, float, bool, str, any).
type TCon struct {
	Name string
}

var (
	Int   = TCon{Name: config.IntTypeName}
	Float = TCon{Name: config.FloatTypeName}
	Bool  = TCon{Name: config.BoolTypeName}
	Str   = TCon{Name: config.StrTypeName}
	Any   = TCon{Name: config.AnyTypeName}
)

var primitives = map[string]TCon{
	config.IntTypeName:   Int,
	config.FloatTypeName: Float,
	config.BoolTypeName:  Bool,
	config.StrTypeName:   Str,
	config.AnyTypeName:   Any,
}

// IsPrimitive reports whether name is one of the built-in primitive names.
func IsPrimitive(name string) bool {
	_, ok := primitives[name]
	return ok
}

func (t TCon) String() string { return t.Name }
func (t TCon) Kind() Kind     { return Star }

// TProduct is a struct-like composition of ordered components.
type TProduct struct {
	Elements []Type
}

func (t TProduct) String() string { return "(" + joinTypes(t.Elements, ", ") + ")" }
func (t TProduct) Kind() Kind     { return Star }

// TSum is a union: a value of any member type.
type TSum struct {
	Types []Type
}

func (t TSum) String() string { return joinTypes(t.Types, " | ") }
func (t TSum) Kind() Kind     { return Star }

// TOption is an optional value.
type TOption struct {
	Inner Type
}

func (t TOption) String() string { return fmt.Sprintf("%s<%s>", config.OptionTypeName, typeString(t.Inner)) }
func (t TOption) Kind() Kind     { return unaryConstructor }

// TResult is either an Ok value or an Err value.
type TResult struct {
	Ok  Type
	Err Type
}

func (t TResult) String() string {
	return fmt.Sprintf("%s<%s, %s>", config.ResultTypeName, typeString(t.Ok), typeString(t.Err))
}
func (t TResult) Kind() Kind { return binaryConstructor }

// TVec is a growable sequence.
type TVec struct {
	Elem Type
}

func (t TVec) String() string { return fmt.Sprintf("%s<%s>", config.VecTypeName, typeString(t.Elem)) }
func (t TVec) Kind() Kind     { return unaryConstructor }

// TSet is an unordered collection of distinct elements.
type TSet struct {
	Elem Type
}

func (t TSet) String() string { return fmt.Sprintf("%s<%s>", config.SetTypeName, typeString(t.Elem)) }
func (t TSet) Kind() Kind     { return unaryConstructor }

// TMap is a key/value dictionary.
type TMap struct {
	Key   Type
	Value Type
}

func (t TMap) String() string {
	return fmt.Sprintf("%s<%s, %s>", config.MapTypeName, typeString(t.Key), typeString(t.Value))
}
func (t TMap) Kind() Kind { return binaryConstructor }

// TTuple represents a tuple type (e.g. tuple(int, bool)).
// Rendered with a prefix so it is never confused with a TProduct.
type TTuple struct {
	Elements []Type
}

func (t TTuple) String() string {
	return config.TupleTypeName + "(" + joinTypes(t.Elements, ", ") + ")"
}
func (t TTuple) Kind() Kind { return Star }

// TFunc represents a function type (params) -> return.
type TFunc struct {
	Params     []Type
	ReturnType Type
}

func (t TFunc) String() string {
	return fmt.Sprintf("(%s) -> %s", joinTypes(t.Params, ", "), typeString(t.ReturnType))
}
func (t TFunc) Kind() Kind { return unaryConstructor }

// TTask is the result of an asynchronous computation.
type TTask struct {
	Inner Type
}

func (t TTask) String() string { return fmt.Sprintf("%s<%s>", config.TaskTypeName, typeString(t.Inner)) }
func (t TTask) Kind() Kind     { return unaryConstructor }

// TGeneric is a named type, optionally applied to type arguments (Point, List<int>).
type TGeneric struct {
	Name string
	Args []Type
}

func (t TGeneric) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	return fmt.Sprintf("%s<%s>", t.Name, joinTypes(t.Args, ", "))
}

func (t TGeneric) Kind() Kind {
	if len(t.Args) == 0 {
		return Star
	}
	return unaryConstructor
}

// TVar represents an unresolved type variable (e.g. 'T', 'Self').
type TVar struct {
	Name string
}

func (t TVar) String() string { return t.Name }
func (t TVar) Kind() Kind     { return Star }

func typeString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func joinTypes(ts []Type, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = typeString(t)
	}
	return strings.Join(parts, sep)
}

// Children returns the direct component types of t in declaration order.
// For functions the parameters come first, then the return type.
func Children(t Type) []Type {
	switch typ := t.(type) {
	case TProduct:
		return typ.Elements
	case TSum:
		return typ.Types
	case TTuple:
		return typ.Elements
	case TOption:
		return []Type{typ.Inner}
	case TResult:
		return []Type{typ.Ok, typ.Err}
	case TVec:
		return []Type{typ.Elem}
	case TSet:
		return []Type{typ.Elem}
	case TMap:
		return []Type{typ.Key, typ.Value}
	case TFunc:
		out := make([]Type, 0, len(typ.Params)+1)
		out = append(out, typ.Params...)
		return append(out, typ.ReturnType)
	case TTask:
		return []Type{typ.Inner}
	case TGeneric:
		return typ.Args
	default:
		return nil
	}
}

// FreeTypeVariables returns the distinct type variables of t in first-occurrence order.
func FreeTypeVariables(t Type) []TVar {
	var vars []TVar
	seen := make(map[string]bool)
	var walk func(Type)
	walk = func(t Type) {
		if tv, ok := t.(TVar); ok {
			if !seen[tv.Name] {
				seen[tv.Name] = true
				vars = append(vars, tv)
			}
			return
		}
		for _, c := range Children(t) {
			walk(c)
		}
	}
	walk(t)
	return vars
}

// Subst maps type variable names to types.
type Subst map[string]Type

// Apply replaces every type variable bound in s. Substitution is not
// repeated on the replacement, so a binding that mentions its own variable
// cannot loop.
func Apply(t Type, s Subst) Type {
	if t == nil || len(s) == 0 {
		return t
	}
	switch typ := t.(type) {
	case TVar:
		if r, ok := s[typ.Name]; ok {
			return r
		}
		return typ
	case TProduct:
		return TProduct{Elements: applyAll(typ.Elements, s)}
	case TSum:
		return TSum{Types: applyAll(typ.Types, s)}
	case TTuple:
		return TTuple{Elements: applyAll(typ.Elements, s)}
	case TOption:
		return TOption{Inner: Apply(typ.Inner, s)}
	case TResult:
		return TResult{Ok: Apply(typ.Ok, s), Err: Apply(typ.Err, s)}
	case TVec:
		return TVec{Elem: Apply(typ.Elem, s)}
	case TSet:
		return TSet{Elem: Apply(typ.Elem, s)}
	case TMap:
		return TMap{Key: Apply(typ.Key, s), Value: Apply(typ.Value, s)}
	case TFunc:
		return TFunc{Params: applyAll(typ.Params, s), ReturnType: Apply(typ.ReturnType, s)}
	case TTask:
		return TTask{Inner: Apply(typ.Inner, s)}
	case TGeneric:
		return TGeneric{Name: typ.Name, Args: applyAll(typ.Args, s)}
	default:
		return t
	}
}

func applyAll(ts []Type, s Subst) []Type {
	if ts == nil {
		return nil
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = Apply(t, s)
	}
	return out
}
