package freight

import (
	"reflect"

	"github.com/dshills/freight/object"
)

// Type describes one boundary-crossing type a plugin exposes.
type Type struct {
	// Name is the declared name; flattening qualifies it with the
	// module chain.
	Name string

	// ID is the slot this type claims in the type catalog. Distinct
	// from Native, the in-process type identity.
	ID int

	// New constructs a default value of this type.
	New func() (object.Value, error)

	// Methods callable on values of this type. Their catalog ids
	// must be unique across the whole plugin.
	Methods []Function

	// Fields are accessor functions for the type's fields, one per
	// reachable field. Flattened names carry an "@" prefix.
	Fields []Function

	// TraitImpls are the trait implementations this type provides.
	TraitImpls []TraitImplementation

	// Native is the in-process identity of the implementing type.
	Native reflect.Type
}
