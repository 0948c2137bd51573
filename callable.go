package freight

import (
	"fmt"

	"github.com/dshills/freight/object"
)

// Callable is the invocation surface of a plugin function. Arguments
// and results cross the boundary as object handles.
type Callable interface {
	Call(args []*object.Object) (*object.Object, error)
}

// SimpleCallable wraps a bare function.
type SimpleCallable struct {
	Fn func(args []*object.Object) (*object.Object, error)
}

func (c SimpleCallable) Call(args []*object.Object) (*object.Object, error) {
	if c.Fn == nil {
		return nil, fmt.Errorf("%w: callable has no function bound", ErrNotImplemented)
	}
	return c.Fn(args)
}

// ConstArgsCallable binds a fixed argument prefix at declaration
// time; call-site arguments are passed alongside it.
type ConstArgsCallable struct {
	ConstArgs []*object.Object
	Fn        func(constArgs, args []*object.Object) (*object.Object, error)
}

func (c ConstArgsCallable) Call(args []*object.Object) (*object.Object, error) {
	if c.Fn == nil {
		return nil, fmt.Errorf("%w: callable has no function bound", ErrNotImplemented)
	}
	return c.Fn(c.ConstArgs, args)
}

// EmptyCallable is the placeholder occupying unset callable slots.
// Calling it always fails.
type EmptyCallable struct{}

func (EmptyCallable) Call([]*object.Object) (*object.Object, error) {
	return nil, fmt.Errorf("%w: called function is not implemented", ErrNotImplemented)
}
