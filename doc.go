// Package freight implements the host side of a native-plugin ABI:
// loading independently built plugins, verifying their declared
// compiler and API identity, and flattening their self-declared
// module trees into stable, ID-addressable catalogs.
//
// A plugin exports a single Declaration record at a well-known
// symbol. The Loader opens the plugin's library, reads that record,
// verifies version identity, and only then invokes the plugin's
// registration entry point, which installs a Freight implementor
// into a Proxy. All catalog queries (functions, types, traits,
// modules) go through the Proxy, which flattens the declared tree
// once and memoizes the result.
//
// Values crossing the plugin boundary travel as *object.Object
// handles; see the object subpackage for the refcount and lock
// protocol. Capability dependencies between plugins are described by
// the request subpackage and resolved by an external orchestrator.
package freight
