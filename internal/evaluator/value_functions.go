package evaluator

import (
	"fmt"
	"strings"

	"github.com/funvibe/tjcore/internal/typesystem"
)

func untypedFunction(arity int) typesystem.Type {
	params := make([]typesystem.Type, arity)
	for i := range params {
		params[i] = typesystem.Any
	}
	return typesystem.TFunc{Params: params, ReturnType: typesystem.Any}
}

// Function is a named user function. Captured holds the values the function
// closes over; the body belongs to the front end and is kept opaque.
type Function struct {
	Name     string
	Params   []string
	Body     interface{}
	Captured map[string]Value
}

func (f *Function) Type() ValueType { return FUNCTION_VAL }
func (f *Function) Inspect() string {
	return fmt.Sprintf("fn %s(%s)", f.Name, strings.Join(f.Params, ", "))
}
func (f *Function) RuntimeType() typesystem.Type { return untypedFunction(len(f.Params)) }

// Closure is an anonymous function with captured values.
type Closure struct {
	Params   []string
	Body     interface{}
	Captured map[string]Value
}

func (c *Closure) Type() ValueType { return CLOSURE_VAL }
func (c *Closure) Inspect() string {
	return fmt.Sprintf("|%s| <closure>", strings.Join(c.Params, ", "))
}
func (c *Closure) RuntimeType() typesystem.Type { return untypedFunction(len(c.Params)) }

// BuiltinFunction is the Go implementation of a native function.
type BuiltinFunction func(args ...Value) (Value, error)

// Builtin is a native function value.
type Builtin struct {
	Fn       BuiltinFunction
	Name     string          // Name of the builtin
	TypeInfo typesystem.Type // Type signature; nil when unknown
}

func (b *Builtin) Type() ValueType { return BUILTIN_VAL }
func (b *Builtin) Inspect() string { return "builtin " + b.Name }
func (b *Builtin) RuntimeType() typesystem.Type {
	if b.TypeInfo == nil {
		return typesystem.TFunc{ReturnType: typesystem.Any}
	}
	return b.TypeInfo
}

// Channel is a buffered conduit between tasks.
type Channel struct {
	Ch chan Value
}

// NewChannel makes a channel with the given buffer size.
func NewChannel(capacity int) *Channel {
	return &Channel{Ch: make(chan Value, capacity)}
}

func (c *Channel) Type() ValueType { return CHANNEL_VAL }
func (c *Channel) Inspect() string { return fmt.Sprintf("<channel %d/%d>", len(c.Ch), cap(c.Ch)) }
func (c *Channel) RuntimeType() typesystem.Type {
	return typesystem.TGeneric{Name: "Channel"}
}

// Task is a handle to an asynchronous computation. Result becomes available
// once Done is closed.
type Task struct {
	ID     uint64
	Done   chan struct{}
	Result Value
	Err    error
}

// Spawn runs fn on a new goroutine and returns its task handle.
func Spawn(id uint64, fn func() (Value, error)) *Task {
	t := &Task{ID: id, Done: make(chan struct{})}
	go func() {
		defer close(t.Done)
		t.Result, t.Err = fn()
	}()
	return t
}

// Wait blocks until the task finishes.
func (t *Task) Wait() (Value, error) {
	<-t.Done
	return t.Result, t.Err
}

func (t *Task) Type() ValueType { return TASK_VAL }
func (t *Task) Inspect() string { return fmt.Sprintf("<task %d>", t.ID) }
func (t *Task) RuntimeType() typesystem.Type {
	return typesystem.TTask{Inner: typesystem.Any}
}
