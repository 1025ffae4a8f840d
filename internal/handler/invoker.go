package handler

import (
	"fmt"
	"reflect"
	"runtime/debug"
)

// Invoker calls an entry's handler method with an event.
type Invoker interface {
	Invoke(e Entry, ev Event) error
}

// InvokerFunc adapts a function to Invoker.
type InvokerFunc func(e Entry, ev Event) error

// Invoke implements Invoker.
func (f InvokerFunc) Invoke(e Entry, ev Event) error { return f(e, ev) }

// PanicError wraps a value recovered from a panicking handler.
type PanicError struct {
	Value any
	Stack []byte
}

func (p *PanicError) Error() string { return fmt.Sprintf("handler panicked: %v", p.Value) }

// ReflectInvoker calls handler methods through reflect. A returned error is
// passed through, and a panic is recovered into a *PanicError.
type ReflectInvoker struct{}

// Invoke implements Invoker.
func (ReflectInvoker) Invoke(e Entry, ev Event) (err error) {
	arg := reflect.ValueOf(ev)
	if !arg.IsValid() || !arg.Type().AssignableTo(e.Descriptor.EventType) {
		return fmt.Errorf("%w: cannot pass %T to %s", ErrInvalidHandler, ev, e.Descriptor)
	}
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	out := e.Descriptor.Method.Func.Call([]reflect.Value{reflect.ValueOf(e.Listener), arg})
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}
