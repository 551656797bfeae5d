package evaluator

import (
	"github.com/funvibe/tjcore/internal/typesystem"
)

type ValueType string

const (
	INTEGER_VAL   = "INTEGER"
	FLOAT_VAL     = "FLOAT"
	BOOLEAN_VAL   = "BOOLEAN"
	STRING_VAL    = "STRING"
	NONE_VAL      = "NONE"
	STRUCT_VAL    = "STRUCT"
	ENUM_VAL      = "ENUM"
	TUPLE_VAL     = "TUPLE"
	VEC_VAL       = "VEC"
	SET_VAL       = "SET"
	MAP_VAL       = "MAP"
	FUNCTION_VAL  = "FUNCTION"
	CLOSURE_VAL   = "CLOSURE"
	BUILTIN_VAL   = "BUILTIN"
	CHANNEL_VAL   = "CHANNEL"
	TASK_VAL      = "TASK"
	REFERENCE_VAL = "REFERENCE"
	TYPE_VAL      = "TYPE"
)

// ObjectID identifies an object on the managed heap. Ids are assigned from a
// monotonic counter and never reused.
type ObjectID uint64

// Value is a runtime value. Compound values hold other values inline; links
// between heap objects are expressed with Reference, never with pointers.
type Value interface {
	Type() ValueType
	Inspect() string
	RuntimeType() typesystem.Type // Returns the type system representation
}

// Heap is the managed object store seen by the interpreter. The interpreter
// allocates through it and registers roots; collection policy is the heap's
// own business.
type Heap interface {
	Allocate(v Value) ObjectID
	Get(id ObjectID) (Value, bool)
	AddRoot(id ObjectID)
	RemoveRoot(id ObjectID)
	ForceCollect()
	ObjectCount() int
	MemoryUsage() int
	Summary() string
}

// Equal compares values structurally. Functions, closures, builtins, channels
// and tasks compare by identity.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *Integer:
		y, ok := b.(*Integer)
		return ok && x.Value == y.Value
	case *Float:
		y, ok := b.(*Float)
		return ok && x.Value == y.Value
	case *Boolean:
		y, ok := b.(*Boolean)
		return ok && x.Value == y.Value
	case *String:
		y, ok := b.(*String)
		return ok && x.Value == y.Value
	case *None:
		_, ok := b.(*None)
		return ok
	case *Reference:
		y, ok := b.(*Reference)
		return ok && x.ID == y.ID
	case *TypeValue:
		y, ok := b.(*TypeValue)
		return ok && typesystem.Equal(x.T, y.T)
	case *Struct:
		y, ok := b.(*Struct)
		if !ok || x.Name != y.Name || len(x.Fields) != len(y.Fields) {
			return false
		}
		for k, v := range x.Fields {
			w, ok := y.Fields[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	case *Enum:
		y, ok := b.(*Enum)
		return ok && x.Name == y.Name && x.Variant == y.Variant && equalAll(x.Fields, y.Fields)
	case *Tuple:
		y, ok := b.(*Tuple)
		return ok && equalAll(x.Elements, y.Elements)
	case *Vec:
		y, ok := b.(*Vec)
		return ok && equalAll(x.Elements, y.Elements)
	case *Set:
		y, ok := b.(*Set)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for _, el := range x.Elements {
			if !y.Contains(el) {
				return false
			}
		}
		return true
	case *Map:
		y, ok := b.(*Map)
		if !ok || len(x.Entries) != len(y.Entries) {
			return false
		}
		for _, e := range x.Entries {
			w, ok := y.Get(e.Key)
			if !ok || !Equal(e.Value, w) {
				return false
			}
		}
		return true
	}
	return a == b
}

func equalAll(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// IsTruthy reports the boolean interpretation of v in conditions.
func IsTruthy(v Value) bool {
	switch x := v.(type) {
	case *Boolean:
		return x.Value
	case *None:
		return false
	case *Integer:
		return x.Value != 0
	case *Float:
		return x.Value != 0
	case *String:
		return x.Value != ""
	case *Vec:
		return len(x.Elements) > 0
	case *Set:
		return len(x.Elements) > 0
	case *Map:
		return len(x.Entries) > 0
	case nil:
		return false
	}
	return true
}
