package typesystem

import "reflect"

// Match reports whether t is an instance of pattern. Type variables in
// pattern bind to the corresponding part of t; a variable seen twice must
// bind to equal types both times. Bindings are recorded in s, which must be
// non-nil. Variables in t are treated as ordinary leaves.
func Match(pattern, t Type, s Subst) bool {
	if v, ok := pattern.(TVar); ok {
		if bound, ok := s[v.Name]; ok {
			return Equal(bound, t)
		}
		s[v.Name] = t
		return true
	}
	if pattern == nil || t == nil {
		return pattern == nil && t == nil
	}
	if !sameConstructor(pattern, t) {
		return false
	}
	pc, tc := Children(pattern), Children(t)
	if len(pc) != len(tc) {
		return false
	}
	for i := range pc {
		if !Match(pc[i], tc[i], s) {
			return false
		}
	}
	return true
}

func sameConstructor(a, b Type) bool {
	switch x := a.(type) {
	case TCon:
		y, ok := b.(TCon)
		return ok && x.Name == y.Name
	case TGeneric:
		y, ok := b.(TGeneric)
		return ok && x.Name == y.Name
	}
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}
