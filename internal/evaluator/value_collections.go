package evaluator

import (
	"sort"
	"strings"

	"github.com/funvibe/tjcore/internal/typesystem"
)

func inspectAll(values []Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.Inspect()
	}
	return strings.Join(parts, ", ")
}

// elementType is the runtime type of the first element, or any when empty.
func elementType(values []Value) typesystem.Type {
	if len(values) == 0 {
		return typesystem.Any
	}
	return values[0].RuntimeType()
}

// Struct is a record with named fields.
type Struct struct {
	Name   string
	Fields map[string]Value
}

func (s *Struct) Type() ValueType { return STRUCT_VAL }

// FieldNames returns the field names in sorted order.
func (s *Struct) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Struct) Inspect() string {
	var out strings.Builder
	out.WriteString(s.Name)
	out.WriteString(" { ")
	for i, name := range s.FieldNames() {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(name)
		out.WriteString(": ")
		out.WriteString(s.Fields[name].Inspect())
	}
	out.WriteString(" }")
	return out.String()
}

func (s *Struct) RuntimeType() typesystem.Type { return typesystem.TGeneric{Name: s.Name} }

// Enum is one variant of a named sum type.
type Enum struct {
	Name    string
	Variant string
	Fields  []Value
}

func (e *Enum) Type() ValueType { return ENUM_VAL }
func (e *Enum) Inspect() string {
	if len(e.Fields) == 0 {
		return e.Name + "::" + e.Variant
	}
	return e.Name + "::" + e.Variant + " (" + inspectAll(e.Fields) + ")"
}
func (e *Enum) RuntimeType() typesystem.Type { return typesystem.TGeneric{Name: e.Name} }

// Tuple represents a heterogeneous fixed-size collection of values.
type Tuple struct {
	Elements []Value
}

func (t *Tuple) Type() ValueType { return TUPLE_VAL }
func (t *Tuple) Inspect() string { return "(" + inspectAll(t.Elements) + ")" }
func (t *Tuple) RuntimeType() typesystem.Type {
	elemTypes := make([]typesystem.Type, len(t.Elements))
	for i, el := range t.Elements {
		elemTypes[i] = el.RuntimeType()
	}
	return typesystem.TTuple{Elements: elemTypes}
}

// Vec is a growable sequence.
type Vec struct {
	Elements []Value
}

func (v *Vec) Type() ValueType              { return VEC_VAL }
func (v *Vec) Inspect() string              { return "[" + inspectAll(v.Elements) + "]" }
func (v *Vec) RuntimeType() typesystem.Type { return typesystem.TVec{Elem: elementType(v.Elements)} }

// Push appends elements.
func (v *Vec) Push(values ...Value) {
	v.Elements = append(v.Elements, values...)
}

// Set holds distinct values in insertion order.
type Set struct {
	Elements []Value
}

// NewSet builds a set, dropping duplicates.
func NewSet(values ...Value) *Set {
	s := &Set{}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func (s *Set) Type() ValueType              { return SET_VAL }
func (s *Set) Inspect() string              { return "{" + inspectAll(s.Elements) + "}" }
func (s *Set) RuntimeType() typesystem.Type { return typesystem.TSet{Elem: elementType(s.Elements)} }

func (s *Set) Contains(v Value) bool {
	for _, el := range s.Elements {
		if Equal(el, v) {
			return true
		}
	}
	return false
}

// Add inserts v and reports whether it was not already present.
func (s *Set) Add(v Value) bool {
	if s.Contains(v) {
		return false
	}
	s.Elements = append(s.Elements, v)
	return true
}

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   Value
	Value Value
}

// Map is a dictionary with structural key equality, iterated in insertion order.
type Map struct {
	Entries []MapEntry
}

func (m *Map) Type() ValueType { return MAP_VAL }
func (m *Map) Inspect() string {
	parts := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		parts[i] = e.Key.Inspect() + ": " + e.Value.Inspect()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (m *Map) RuntimeType() typesystem.Type {
	if len(m.Entries) == 0 {
		return typesystem.TMap{Key: typesystem.Any, Value: typesystem.Any}
	}
	return typesystem.TMap{Key: m.Entries[0].Key.RuntimeType(), Value: m.Entries[0].Value.RuntimeType()}
}

func (m *Map) Get(key Value) (Value, bool) {
	for _, e := range m.Entries {
		if Equal(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

// Set inserts or replaces the value at key.
func (m *Map) Set(key, value Value) {
	for i, e := range m.Entries {
		if Equal(e.Key, key) {
			m.Entries[i].Value = value
			return
		}
	}
	m.Entries = append(m.Entries, MapEntry{Key: key, Value: value})
}

func (m *Map) Len() int { return len(m.Entries) }
