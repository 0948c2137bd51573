package freight

import "github.com/dshills/freight/version"

// DeclarationSymbol is the exported symbol every plugin library must
// provide. The symbol resolves to a *Declaration.
const DeclarationSymbol = "FreightDeclaration"

// APIVersion identifies this ABI revision. A plugin compiled against
// a different revision is rejected before its code runs.
const APIVersion = "0.2.0"

// Registrar receives a plugin's Freight implementor during
// registration. A plugin's Register entry point must call
// RegisterFreight exactly once.
type Registrar interface {
	RegisterFreight(f Freight)
}

// Declaration is the handshake record a plugin exports at
// DeclarationSymbol. It is built once at plugin compile time and
// read once at load.
type Declaration struct {
	// CompilerVersion is the toolchain identity the plugin was
	// built with. Must exactly equal the loader's.
	CompilerVersion string

	// APIVersion is the ABI revision the plugin was built against.
	// Must exactly equal the loader's.
	APIVersion string

	// Name is the plugin's name.
	Name string

	// Version is the plugin's own version.
	Version version.Version

	// BackCompat is the earliest plugin version callers may have
	// been written against and still run correctly with this one.
	BackCompat version.Version

	// Register is the registration entry point. It is invoked with
	// a Registrar only after the version gate passes.
	Register func(r Registrar)
}
