package object

import "errors"

// Object substrate errors.
var (
	// ErrOverflow is returned when the reference count would pass the
	// signed-range cap.
	ErrOverflow = errors.New("object: reference count overflow")

	// ErrRuntime is returned for invalid control-block transitions:
	// releasing an unlocked container, decrementing a dead one, or
	// using a handle after Drop.
	ErrRuntime = errors.New("object: invalid object state")

	// ErrType is returned when Set is given a payload of the wrong
	// type. Values are never silently coerced.
	ErrType = errors.New("object: payload type mismatch")
)
