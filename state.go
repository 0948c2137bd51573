package freight

// State represents the lifecycle state of a plugin load attempt.
type State int

// Load states. A load walks the states in order; any failure moves
// to StateError and no partially ready Proxy is ever returned.
const (
	// StateUnloaded - nothing has happened yet.
	StateUnloaded State = iota

	// StateLibraryOpened - the shared library is mapped.
	StateLibraryOpened

	// StateDeclarationRead - the declaration symbol was resolved
	// and read.
	StateDeclarationRead

	// StateVersionChecked - compiler and API identity matched.
	StateVersionChecked

	// StateRegistered - the plugin's entry point installed its
	// implementor.
	StateRegistered

	// StateReady - a usable Proxy exists.
	StateReady

	// StateError - the load aborted.
	StateError
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLibraryOpened:
		return "library-opened"
	case StateDeclarationRead:
		return "declaration-read"
	case StateVersionChecked:
		return "version-checked"
	case StateRegistered:
		return "registered"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
