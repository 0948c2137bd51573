package freight

import (
	"reflect"

	"github.com/dshills/freight/object"
	"github.com/dshills/freight/request"
)

// Parameter describes one function parameter. It is an inert record:
// nothing in this package validates or enforces it.
type Parameter struct {
	// ArgType is the native type of the argument.
	ArgType reflect.Type

	// AnyType accepts any argument type; ArgType is ignored.
	AnyType bool

	// TraitOnly marks a parameter that is satisfied by a capability
	// resolution alone, with no value bound to it. Trait-only
	// parameters must lead the parameter list.
	TraitOnly bool

	// Implements optionally constrains an AnyType parameter to
	// types satisfying a capability request.
	Implements request.Request

	// Mutable allows the callee to modify the argument in place.
	Mutable bool

	// Keyword names the parameter for keyword-style call sites;
	// KeywordOnly forbids positional use.
	Keyword     string
	KeywordOnly bool

	// DefaultValue, when non-nil, makes the parameter optional.
	DefaultValue *object.Object

	// AllowMultiple groups repeated arguments for this parameter;
	// MaxCount bounds them, 0 meaning unlimited.
	AllowMultiple bool
	MaxCount      int
}

// Kwarg is a keyword argument handed through verbatim when a
// function declares NoCheckArgs.
type Kwarg struct {
	Keyword string
	Value   *object.Object
}

// Function describes one callable a plugin exposes: its name, the
// slot it occupies in the flattened function catalog, and the
// Callable used to invoke it.
type Function struct {
	// Name is the declared name; flattening qualifies it with the
	// ancestor module chain.
	Name string

	// Callable invokes the function.
	Callable Callable

	// ID is the slot this function claims in the function catalog.
	// Stable across plugin releases unless the plugin version is
	// bumped.
	ID int

	// Parameters describes the expected arguments.
	Parameters []Parameter

	// Returns is the native type of the result.
	Returns reflect.Type

	// NoCheckArgs passes arguments through without type or arity
	// checks; keyword arguments arrive as Kwarg values.
	NoCheckArgs bool

	// Dependencies lists capability requests that must be resolved
	// before this function is usable.
	Dependencies []request.Request
}
