package object

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

// Lock-state word values. 0 is unlocked, 1 is exclusively locked, and
// any positive even value means value/2 readers hold the shared lock.
// Odd values other than 1 never occur in a healthy control block.
const (
	lockFree      = 0
	lockExclusive = 1
	sharedStep    = 2
)

// maxRefs caps the reference count at the signed range so a count can
// survive translation through signed ABI fields.
const maxRefs = math.MaxInt64

// spinInterval is how long a blocking acquire sleeps between retries.
// Blocking acquires are best effort: there is no fairness and no
// timeout, so bounded waiting has to be built on the Try variants.
const spinInterval = 100 * time.Microsecond

// Core is the control block embedded in every boundary-crossing
// container: an atomic reference count and an atomic lock-state word.
// A Core must be created by NewCore; the zero value has a reference
// count of zero and is dead on arrival.
//
// Payload types embed *Core to satisfy the refcount and lock portion
// of the Value capability set.
type Core struct {
	refs atomic.Uint64
	lock atomic.Uint64
}

// NewCore returns a control block with the reference count at 1: the
// creating party owns the initial reference.
func NewCore() *Core {
	c := &Core{}
	c.refs.Store(1)
	return c
}

// Refs returns the current reference count. Diagnostic only; the
// value may be stale by the time the caller looks at it.
func (c *Core) Refs() uint64 {
	return c.refs.Load()
}

// Incref adds one owner and returns the new count. Incrementing past
// the signed-range cap fails with ErrOverflow, and incrementing a
// dead container (count already zero) fails with ErrRuntime.
func (c *Core) Incref() (uint64, error) {
	for {
		n := c.refs.Load()
		if n == 0 {
			return 0, fmt.Errorf("%w: incref on a dead container", ErrRuntime)
		}
		if n >= maxRefs {
			return n, fmt.Errorf("%w: %d references", ErrOverflow, n)
		}
		if c.refs.CompareAndSwap(n, n+1) {
			return n + 1, nil
		}
	}
}

// Decref removes one owner and returns the new count. A return of
// zero means the caller was the last owner and must free the
// container; any other value means other owners remain and the
// container is untouched. Decrementing past zero is ErrRuntime.
//
// Go's atomic operations are sequentially consistent, which subsumes
// the release-decrement/acquire-fence pairing the last-owner-frees
// protocol requires.
func (c *Core) Decref() (uint64, error) {
	for {
		n := c.refs.Load()
		if n == 0 {
			return 0, fmt.Errorf("%w: decref on a dead container", ErrRuntime)
		}
		if c.refs.CompareAndSwap(n, n-1) {
			return n - 1, nil
		}
	}
}

// TryLockShared attempts a non-blocking shared acquire. It returns
// false without error while an exclusive holder is present, and
// ErrRuntime if the lock word holds an invalid odd value.
func (c *Core) TryLockShared() (bool, error) {
	for {
		v := c.lock.Load()
		if v == lockExclusive {
			return false, nil
		}
		if v%2 == 1 {
			return false, fmt.Errorf("%w: lock word %d", ErrRuntime, v)
		}
		if c.lock.CompareAndSwap(v, v+sharedStep) {
			return true, nil
		}
	}
}

// TryLockExclusive attempts a non-blocking exclusive acquire, which
// succeeds only from the fully unlocked state.
func (c *Core) TryLockExclusive() (bool, error) {
	return c.lock.CompareAndSwap(lockFree, lockExclusive), nil
}

// LockShared blocks until a shared lock is acquired, sleeping a fixed
// short interval between attempts.
func (c *Core) LockShared() error {
	for {
		ok, err := c.TryLockShared()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		time.Sleep(spinInterval)
	}
}

// LockExclusive blocks until the exclusive lock is acquired, sleeping
// a fixed short interval between attempts.
func (c *Core) LockExclusive() error {
	for {
		ok, err := c.TryLockExclusive()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		time.Sleep(spinInterval)
	}
}

// UnlockShared releases one shared holder. Releasing an unlocked or
// exclusively locked control block is ErrRuntime.
func (c *Core) UnlockShared() error {
	for {
		v := c.lock.Load()
		if v == lockFree || v%2 == 1 {
			return fmt.Errorf("%w: shared unlock with lock word %d", ErrRuntime, v)
		}
		if c.lock.CompareAndSwap(v, v-sharedStep) {
			return nil
		}
	}
}

// UnlockExclusive releases the exclusive holder. Any lock-word value
// other than the exclusive state is ErrRuntime.
func (c *Core) UnlockExclusive() error {
	if !c.lock.CompareAndSwap(lockExclusive, lockFree) {
		return fmt.Errorf("%w: exclusive unlock with lock word %d", ErrRuntime, c.lock.Load())
	}
	return nil
}
