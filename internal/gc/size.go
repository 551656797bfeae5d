package gc

import (
	"sort"

	"github.com/funvibe/tjcore/internal/evaluator"
)

const (
	wordSize      = 8
	containerBase = 8
	callableSize  = 16
)

// SizeOf estimates the bytes held by v, counting nested values inline.
//
//	int, float          8
//	bool                1
//	string              len + 8
//	none                0
//	struct, enum,
//	tuple, vec, set     sum of elements + 8
//	map                 sum of keys and values + 8
//	function, closure,
//	builtin, channel,
//	task                16
//	reference, type     8
func SizeOf(v evaluator.Value) int {
	switch x := v.(type) {
	case *evaluator.Integer, *evaluator.Float:
		return wordSize
	case *evaluator.Boolean:
		return 1
	case *evaluator.String:
		return len(x.Value) + containerBase
	case *evaluator.None, nil:
		return 0
	case *evaluator.Struct:
		size := containerBase
		for _, f := range x.Fields {
			size += SizeOf(f)
		}
		return size
	case *evaluator.Enum:
		return sumSizes(x.Fields) + containerBase
	case *evaluator.Tuple:
		return sumSizes(x.Elements) + containerBase
	case *evaluator.Vec:
		return sumSizes(x.Elements) + containerBase
	case *evaluator.Set:
		return sumSizes(x.Elements) + containerBase
	case *evaluator.Map:
		size := containerBase
		for _, e := range x.Entries {
			size += SizeOf(e.Key) + SizeOf(e.Value)
		}
		return size
	case *evaluator.Function, *evaluator.Closure, *evaluator.Builtin,
		*evaluator.Channel, *evaluator.Task:
		return callableSize
	case *evaluator.Reference, *evaluator.TypeValue:
		return wordSize
	}
	return wordSize
}

func sumSizes(values []evaluator.Value) int {
	size := 0
	for _, v := range values {
		size += SizeOf(v)
	}
	return size
}

// ReferencesOf returns the ids of every Reference held inside v, in
// traversal order. Struct fields and captured variables are visited in
// sorted name order so the result is deterministic.
func ReferencesOf(v evaluator.Value) []evaluator.ObjectID {
	var out []evaluator.ObjectID
	collectReferences(v, &out)
	return out
}

func collectReferences(v evaluator.Value, out *[]evaluator.ObjectID) {
	switch x := v.(type) {
	case *evaluator.Reference:
		*out = append(*out, x.ID)
	case *evaluator.Struct:
		for _, name := range x.FieldNames() {
			collectReferences(x.Fields[name], out)
		}
	case *evaluator.Enum:
		collectAll(x.Fields, out)
	case *evaluator.Tuple:
		collectAll(x.Elements, out)
	case *evaluator.Vec:
		collectAll(x.Elements, out)
	case *evaluator.Set:
		collectAll(x.Elements, out)
	case *evaluator.Map:
		for _, e := range x.Entries {
			collectReferences(e.Key, out)
			collectReferences(e.Value, out)
		}
	case *evaluator.Function:
		collectCaptured(x.Captured, out)
	case *evaluator.Closure:
		collectCaptured(x.Captured, out)
	}
}

func collectAll(values []evaluator.Value, out *[]evaluator.ObjectID) {
	for _, v := range values {
		collectReferences(v, out)
	}
}

func collectCaptured(captured map[string]evaluator.Value, out *[]evaluator.ObjectID) {
	if len(captured) == 0 {
		return
	}
	names := make([]string, 0, len(captured))
	for name := range captured {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		collectReferences(captured[name], out)
	}
}
