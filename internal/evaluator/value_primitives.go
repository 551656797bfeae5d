package evaluator

import (
	"fmt"
	"strconv"

	"github.com/funvibe/tjcore/internal/typesystem"
)

// Integer
type Integer struct {
	Value int64
}

func (i *Integer) Type() ValueType              { return INTEGER_VAL }
func (i *Integer) Inspect() string              { return strconv.FormatInt(i.Value, 10) }
func (i *Integer) RuntimeType() typesystem.Type { return typesystem.Int }

// Float
type Float struct {
	Value float64
}

func (f *Float) Type() ValueType              { return FLOAT_VAL }
func (f *Float) Inspect() string              { return strconv.FormatFloat(f.Value, 'g', -1, 64) }
func (f *Float) RuntimeType() typesystem.Type { return typesystem.Float }

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ValueType              { return BOOLEAN_VAL }
func (b *Boolean) Inspect() string              { return strconv.FormatBool(b.Value) }
func (b *Boolean) RuntimeType() typesystem.Type { return typesystem.Bool }

// String
type String struct {
	Value string
}

func (s *String) Type() ValueType              { return STRING_VAL }
func (s *String) Inspect() string              { return s.Value }
func (s *String) RuntimeType() typesystem.Type { return typesystem.Str }

// None is the absent value.
type None struct{}

func (n *None) Type() ValueType              { return NONE_VAL }
func (n *None) Inspect() string              { return "None" }
func (n *None) RuntimeType() typesystem.Type { return typesystem.Any }

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	NONE  = &None{}
)

// Reference points at another heap object by id.
type Reference struct {
	ID ObjectID
}

func (r *Reference) Type() ValueType              { return REFERENCE_VAL }
func (r *Reference) Inspect() string              { return fmt.Sprintf("&#%d", r.ID) }
func (r *Reference) RuntimeType() typesystem.Type { return typesystem.Any }

// TypeValue carries a type as a first-class value.
type TypeValue struct {
	T typesystem.Type
}

func (t *TypeValue) Type() ValueType { return TYPE_VAL }
func (t *TypeValue) Inspect() string {
	if t.T == nil {
		return "type(<nil>)"
	}
	return "type(" + t.T.String() + ")"
}
func (t *TypeValue) RuntimeType() typesystem.Type {
	if t.T == nil {
		return typesystem.Any
	}
	return t.T
}
