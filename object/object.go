package object

import (
	"fmt"
	"reflect"
)

// Object is the owning handle to one boundary-crossing container. It
// holds the container directly rather than through a shared pointer:
// the reference count lives inside the container's control block, so
// the handle itself stays a plain, self-contained record.
//
// Clone shares the container; Drop releases one reference and frees
// the container when the last owner lets go. A dropped Object is
// permanently unusable.
//
// The container is internally synchronized, so handles may be used
// from any goroutine — but each handle has exactly one owner.
// Goroutines share a value by cloning the handle, never by calling
// Drop and the access methods concurrently on the same Object.
type Object struct {
	value Value
}

// New wraps a freshly constructed container. Ownership of the
// container's initial reference transfers to the returned Object;
// the caller must not retain direct access to v.
func New(v Value) (*Object, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil container", ErrRuntime)
	}
	return &Object{value: v}, nil
}

// Identity returns the container's type-erased identity.
func (o *Object) Identity() (reflect.Type, error) {
	if o.value == nil {
		return nil, fmt.Errorf("%w: object was dropped", ErrRuntime)
	}
	return o.value.Identity(), nil
}

// Refs reports the container's current reference count. Diagnostic
// only.
func (o *Object) Refs() (uint64, error) {
	if o.value == nil {
		return 0, fmt.Errorf("%w: object was dropped", ErrRuntime)
	}
	return refsOf(o.value), nil
}

// Clone adds an owner and returns a second handle to the same
// container. This is shallow, reference-sharing duplication; a deep
// copy requires going through Get/Set on a payload that implements
// duplication.
func (o *Object) Clone() (*Object, error) {
	if o.value == nil {
		return nil, fmt.Errorf("%w: object was dropped", ErrRuntime)
	}
	if _, err := o.value.Incref(); err != nil {
		return nil, err
	}
	return &Object{value: o.value}, nil
}

// Drop releases this handle's reference. The last owner to drop frees
// the container, running its Finalize hook if it has one. The handle
// is unusable afterwards regardless of whether other owners remain.
func (o *Object) Drop() error {
	if o.value == nil {
		return fmt.Errorf("%w: object was dropped", ErrRuntime)
	}
	n, err := o.value.Decref()
	if err != nil {
		return err
	}
	if n == 0 {
		if f, ok := o.value.(Finalizer); ok {
			f.Finalize()
		}
	}
	o.value = nil
	return nil
}

// Read acquires a shared lock on the container and returns a guard
// exposing read access. The guard must be Closed on every exit path.
func (o *Object) Read() (*ReadGuard, error) {
	if o.value == nil {
		return nil, fmt.Errorf("%w: object was dropped", ErrRuntime)
	}
	if err := o.value.LockShared(); err != nil {
		return nil, err
	}
	return &ReadGuard{value: o.value}, nil
}

// TryRead is the non-blocking variant of Read. It returns ok=false
// without a guard when an exclusive holder is present.
func (o *Object) TryRead() (*ReadGuard, bool, error) {
	if o.value == nil {
		return nil, false, fmt.Errorf("%w: object was dropped", ErrRuntime)
	}
	ok, err := o.value.TryLockShared()
	if err != nil || !ok {
		return nil, false, err
	}
	return &ReadGuard{value: o.value}, true, nil
}

// Write acquires the exclusive lock on the container and returns a
// guard exposing read and write access.
func (o *Object) Write() (*WriteGuard, error) {
	if o.value == nil {
		return nil, fmt.Errorf("%w: object was dropped", ErrRuntime)
	}
	if err := o.value.LockExclusive(); err != nil {
		return nil, err
	}
	return &WriteGuard{value: o.value}, nil
}

// TryWrite is the non-blocking variant of Write. It returns ok=false
// without a guard when any other holder, shared or exclusive, is
// present.
func (o *Object) TryWrite() (*WriteGuard, bool, error) {
	if o.value == nil {
		return nil, false, fmt.Errorf("%w: object was dropped", ErrRuntime)
	}
	ok, err := o.value.TryLockExclusive()
	if err != nil || !ok {
		return nil, false, err
	}
	return &WriteGuard{value: o.value}, true, nil
}

func refsOf(v Value) uint64 {
	type refCounter interface{ Refs() uint64 }
	if rc, ok := v.(refCounter); ok {
		return rc.Refs()
	}
	return 0
}
