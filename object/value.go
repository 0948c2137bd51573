package object

import "reflect"

// Value is the fixed capability set every boundary-crossing container
// implements: type-erased identity, default construction, reference
// counting, shared/exclusive locking, read/write access, and byte
// serialization. Plugins and hosts agree on nothing else about each
// other's values.
//
// The refcount and lock methods are normally contributed by an
// embedded *Core; implementors add the remaining six.
type Value interface {
	// Identity returns the payload's native type, the type-erased
	// identity used for catalog lookups and Set compatibility.
	Identity() reflect.Type

	// New default-constructs a fresh container of the same payload
	// type, with its own control block at one reference.
	New() (Value, error)

	// Incref and Decref manage ownership; see Core.
	Incref() (uint64, error)
	Decref() (uint64, error)

	// Lock protocol; see Core.
	LockShared() error
	TryLockShared() (bool, error)
	LockExclusive() error
	TryLockExclusive() (bool, error)
	UnlockShared() error
	UnlockExclusive() error

	// Get returns the payload's current value. What "the value" means
	// is the payload's own business: a true deep copy is how a
	// payload opts into duplication.
	Get() (Value, error)

	// Set replaces the payload's value from another container of the
	// same payload type. A mismatch is ErrType, never a coercion.
	Set(Value) error

	// Dump serializes the payload to bytes for persistence or
	// cross-process transfer; Load is its inverse. The byte form is
	// unrelated to the in-process lock/refcount sharing.
	Dump() ([]byte, error)
	Load([]byte) error
}

// Finalizer is an optional interface a payload may implement to
// observe the moment the last reference is dropped, e.g. to release
// plugin-side resources tied to the container.
type Finalizer interface {
	Finalize()
}
