package evaluator

import "fmt"

// Frame is a lexical scope whose bindings live on the heap. Every bound
// value is allocated and rooted for as long as the frame is open, so a
// collection can never reclaim something a running scope can still name.
type Frame struct {
	heap  Heap
	store map[string]ObjectID
	outer *Frame
}

func NewFrame(heap Heap) *Frame {
	return &Frame{heap: heap, store: make(map[string]ObjectID)}
}

func NewEnclosedFrame(outer *Frame) *Frame {
	f := NewFrame(outer.heap)
	f.outer = outer
	return f
}

// Outer returns the enclosing frame, or nil for the outermost one.
func (f *Frame) Outer() *Frame {
	return f.outer
}

// Bind allocates v, roots it and binds it to name in this frame. A previous
// binding of name in this frame is unrooted.
func (f *Frame) Bind(name string, v Value) ObjectID {
	id := f.heap.Allocate(v)
	f.heap.AddRoot(id)
	if prev, ok := f.store[name]; ok {
		f.heap.RemoveRoot(prev)
	}
	f.store[name] = id
	return id
}

// Lookup resolves name outward through enclosing frames.
func (f *Frame) Lookup(name string) (Value, bool) {
	id, ok := f.Resolve(name)
	if !ok {
		return nil, false
	}
	return f.heap.Get(id)
}

// Resolve returns the heap id bound to name, searching outward.
func (f *Frame) Resolve(name string) (ObjectID, bool) {
	for cur := f; cur != nil; cur = cur.outer {
		if id, ok := cur.store[name]; ok {
			return id, true
		}
	}
	return 0, false
}

// Deref follows a Reference to the value it points at.
func (f *Frame) Deref(v Value) (Value, error) {
	ref, ok := v.(*Reference)
	if !ok {
		return v, nil
	}
	target, ok := f.heap.Get(ref.ID)
	if !ok {
		return nil, fmt.Errorf("dangling reference #%d", ref.ID)
	}
	return target, nil
}

// Close unroots every binding of this frame. Enclosing frames are untouched.
func (f *Frame) Close() {
	for name, id := range f.store {
		f.heap.RemoveRoot(id)
		delete(f.store, name)
	}
}
