package object

import "fmt"

// ReadGuard holds a shared lock on a container for its lifetime. It
// is the only supported way to read a boundary-crossing value:
// construct it through Object.Read or Object.TryRead and Close it on
// every exit path, normally with defer.
//
// A guard belongs to the goroutine that acquired it.
type ReadGuard struct {
	value  Value
	closed bool
}

// Get returns the payload's current value.
func (g *ReadGuard) Get() (Value, error) {
	if g.closed {
		return nil, fmt.Errorf("%w: guard already closed", ErrRuntime)
	}
	return g.value.Get()
}

// Dump serializes the payload under the shared lock.
func (g *ReadGuard) Dump() ([]byte, error) {
	if g.closed {
		return nil, fmt.Errorf("%w: guard already closed", ErrRuntime)
	}
	return g.value.Dump()
}

// Close releases the shared lock. Closing twice is ErrRuntime.
func (g *ReadGuard) Close() error {
	if g.closed {
		return fmt.Errorf("%w: guard already closed", ErrRuntime)
	}
	g.closed = true
	return g.value.UnlockShared()
}

// WriteGuard holds the exclusive lock on a container for its
// lifetime, exposing read and write access. Construct it through
// Object.Write or Object.TryWrite and Close it on every exit path.
type WriteGuard struct {
	value  Value
	closed bool
}

// Get returns the payload's current value.
func (g *WriteGuard) Get() (Value, error) {
	if g.closed {
		return nil, fmt.Errorf("%w: guard already closed", ErrRuntime)
	}
	return g.value.Get()
}

// Set replaces the payload's value. A payload type mismatch is
// ErrType; nothing is written in that case.
func (g *WriteGuard) Set(v Value) error {
	if g.closed {
		return fmt.Errorf("%w: guard already closed", ErrRuntime)
	}
	return g.value.Set(v)
}

// Dump serializes the payload under the exclusive lock.
func (g *WriteGuard) Dump() ([]byte, error) {
	if g.closed {
		return nil, fmt.Errorf("%w: guard already closed", ErrRuntime)
	}
	return g.value.Dump()
}

// Load replaces the payload's value from its serialized form.
func (g *WriteGuard) Load(data []byte) error {
	if g.closed {
		return fmt.Errorf("%w: guard already closed", ErrRuntime)
	}
	return g.value.Load(data)
}

// Close releases the exclusive lock. Closing twice is ErrRuntime.
func (g *WriteGuard) Close() error {
	if g.closed {
		return fmt.Errorf("%w: guard already closed", ErrRuntime)
	}
	g.closed = true
	return g.value.UnlockExclusive()
}
