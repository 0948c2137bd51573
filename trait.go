package freight

import "reflect"

// TraitFunctionDefinition declares one method a trait requires.
// The id is trait-local, not a global catalog id.
type TraitFunctionDefinition struct {
	Name        string
	TraitID     int
	Parameters  []Parameter
	Returns     reflect.Type
	NoCheckArgs bool
}

// TraitDefinition declares a trait: a named method set other types
// can implement.
type TraitDefinition struct {
	// Name is the declared name; flattening qualifies it with the
	// module chain.
	Name string

	// ID is the slot this trait claims in the trait catalog.
	ID int

	// Methods are the required method definitions.
	Methods []TraitFunctionDefinition
}

// TraitFunction binds a trait-local method id to the concrete
// function implementing it.
type TraitFunction struct {
	TraitID  int
	Function Function
}

// TraitImplementation lists the concrete methods a type provides for
// one trait.
type TraitImplementation struct {
	// Name is the full path of the trait being implemented,
	// including the plugin it came from.
	Name string

	// Methods implementing the trait's definitions.
	Methods []TraitFunction
}
