package freight

import (
	"errors"
	"fmt"

	"github.com/dshills/freight/request"
)

// Loading and catalog errors.
var (
	// ErrLoading is returned when a plugin library cannot be opened
	// or its declaration symbol cannot be resolved.
	ErrLoading = errors.New("plugin loading failed")

	// ErrImport is returned for a malformed declaration: version
	// mismatch, empty entity name, or duplicate catalog id.
	ErrImport = errors.New("plugin import failed")

	// ErrValue is returned for a semantically invalid argument.
	ErrValue = errors.New("invalid value")

	// ErrIndex is returned when an id or name lookup misses.
	ErrIndex = errors.New("not found")

	// ErrNotImplemented is returned when a placeholder callable or
	// implementor is invoked.
	ErrNotImplemented = errors.New("not implemented")

	// ErrDependency is returned when an operation needs an
	// interplugin dependency resolved first. Usually wrapped in a
	// DependencyError naming the request.
	ErrDependency = errors.New("unresolved plugin dependency")
)

// DependencyError reports that a capability request must be resolved
// before the attempted operation can succeed. Callables whose
// function declares unmet Dependencies return it so the host knows
// what to resolve and retry.
type DependencyError struct {
	// Request identifies the dependency to resolve.
	Request request.Request
}

func (e *DependencyError) Error() string {
	if e.Request == nil {
		return ErrDependency.Error()
	}
	return fmt.Sprintf("%v: %s", ErrDependency, e.Request)
}

func (e *DependencyError) Unwrap() error { return ErrDependency }
