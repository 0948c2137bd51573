package freight

// Module is one node of a plugin's declared tree. Modules nest
// arbitrarily; flattening walks the whole tree and qualifies each
// contained name with the joined ancestor-module chain.
type Module struct {
	// Name is the declared name. Empty names are rejected during
	// flattening.
	Name string

	// ID is the slot this module claims in the module catalog.
	ID int

	// Types declared directly in this module.
	Types []Type

	// Functions declared directly in this module, not counting
	// constant accessors or type methods.
	Functions []Function

	// Submodules nested under this module.
	Submodules []Module

	// TraitDefs are the trait definitions this module declares.
	TraitDefs []TraitDefinition

	// Constants are accessor functions for the module's constants.
	// Their flattened names carry an "@" prefix.
	Constants []Function
}
