package evaluator

import (
	"github.com/funvibe/tjcore/internal/typesystem"
)

// RegisterGCBuiltins exposes the heap to programs as the gc module.
func RegisterGCBuiltins(b *Builtins, heap Heap) {
	noArgs := func(ret typesystem.Type) typesystem.Type {
		return typesystem.TFunc{ReturnType: ret}
	}

	b.Register("gc.collect", noArgs(typesystem.Int), func(args ...Value) (Value, error) {
		before := heap.ObjectCount()
		heap.ForceCollect()
		return &Integer{Value: int64(before - heap.ObjectCount())}, nil
	})
	b.Register("gc.count", noArgs(typesystem.Int), func(args ...Value) (Value, error) {
		return &Integer{Value: int64(heap.ObjectCount())}, nil
	})
	b.Register("gc.memory", noArgs(typesystem.Int), func(args ...Value) (Value, error) {
		return &Integer{Value: int64(heap.MemoryUsage())}, nil
	})
	b.Register("gc.stats", noArgs(typesystem.Str), func(args ...Value) (Value, error) {
		return &String{Value: heap.Summary()}, nil
	})
}
