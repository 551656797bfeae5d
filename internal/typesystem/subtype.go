package typesystem

import (
	"hash/fnv"
	"io"
	"strconv"
)

// Equal reports structural equality. Component order matters for every
// list-shaped type, including sums.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case TCon:
		y, ok := b.(TCon)
		return ok && x.Name == y.Name
	case TVar:
		y, ok := b.(TVar)
		return ok && x.Name == y.Name
	case TGeneric:
		y, ok := b.(TGeneric)
		return ok && x.Name == y.Name && equalAll(x.Args, y.Args)
	case TProduct:
		y, ok := b.(TProduct)
		return ok && equalAll(x.Elements, y.Elements)
	case TSum:
		y, ok := b.(TSum)
		return ok && equalAll(x.Types, y.Types)
	case TTuple:
		y, ok := b.(TTuple)
		return ok && equalAll(x.Elements, y.Elements)
	case TFunc:
		y, ok := b.(TFunc)
		return ok && equalAll(x.Params, y.Params) && Equal(x.ReturnType, y.ReturnType)
	case TOption:
		y, ok := b.(TOption)
		return ok && Equal(x.Inner, y.Inner)
	case TResult:
		y, ok := b.(TResult)
		return ok && Equal(x.Ok, y.Ok) && Equal(x.Err, y.Err)
	case TVec:
		y, ok := b.(TVec)
		return ok && Equal(x.Elem, y.Elem)
	case TSet:
		y, ok := b.(TSet)
		return ok && Equal(x.Elem, y.Elem)
	case TMap:
		y, ok := b.(TMap)
		return ok && Equal(x.Key, y.Key) && Equal(x.Value, y.Value)
	case TTask:
		y, ok := b.(TTask)
		return ok && Equal(x.Inner, y.Inner)
	}
	return false
}

func equalAll(a, b []Type) bool {
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

// IsSubtype reports whether a value of sub may be used where super is expected.
//
//	T <: any
//	T <: A | B          iff T <: A or T <: B
//	T <: T
//	(A1..An) <: (B1..Bn) iff Ai <: Bi for all i
//	(P1..Pn) -> R <: (Q1..Qn) -> S iff Qi <: Pi for all i and R <: S
//
// Everything else is a subtype only of a structurally equal type.
func IsSubtype(sub, super Type) bool {
	if con, ok := super.(TCon); ok && con.Name == Any.Name {
		return true
	}
	if sum, ok := super.(TSum); ok {
		for _, member := range sum.Types {
			if IsSubtype(sub, member) {
				return true
			}
		}
		// A sum on the left is still a subtype of an equal sum.
		return Equal(sub, super)
	}
	if Equal(sub, super) {
		return true
	}

	switch l := sub.(type) {
	case TProduct:
		r, ok := super.(TProduct)
		if !ok || len(l.Elements) != len(r.Elements) {
			return false
		}
		for i := range l.Elements {
			if !IsSubtype(l.Elements[i], r.Elements[i]) {
				return false
			}
		}
		return true
	case TFunc:
		r, ok := super.(TFunc)
		if !ok || len(l.Params) != len(r.Params) {
			return false
		}
		for i := range l.Params {
			if !IsSubtype(r.Params[i], l.Params[i]) {
				return false
			}
		}
		return IsSubtype(l.ReturnType, r.ReturnType)
	}
	return false
}

// Hash returns a structural hash: Equal types hash equal.
func Hash(t Type) uint32 {
	h := fnv.New32a()
	writeCanonical(h, t)
	return h.Sum32()
}

// writeCanonical writes a tag-prefixed, length-delimited encoding of t.
func writeCanonical(w io.Writer, t Type) {
	write := func(s string) { io.WriteString(w, s) }
	list := func(tag string, ts []Type) {
		write(tag + strconv.Itoa(len(ts)) + "[")
		for _, c := range ts {
			writeCanonical(w, c)
		}
		write("]")
	}
	name := func(tag, n string) {
		write(tag + strconv.Itoa(len(n)) + ":" + n)
	}

	switch typ := t.(type) {
	case nil:
		write("0")
	case TCon:
		name("c", typ.Name)
	case TVar:
		name("v", typ.Name)
	case TGeneric:
		name("g", typ.Name)
		list("a", typ.Args)
	case TProduct:
		list("p", typ.Elements)
	case TSum:
		list("s", typ.Types)
	case TTuple:
		list("t", typ.Elements)
	case TFunc:
		list("f", typ.Params)
		writeCanonical(w, typ.ReturnType)
	default:
		// Fixed-arity containers: the rendered constructor name is a
		// unique tag, followed by the components.
		write("k")
		switch typ.(type) {
		case TOption:
			write("O")
		case TResult:
			write("R")
		case TVec:
			write("V")
		case TSet:
			write("S")
		case TMap:
			write("M")
		case TTask:
			write("T")
		default:
			write("?")
		}
		list("", Children(t))
	}
}
