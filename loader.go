package freight

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/rs/zerolog"
)

// Loader discovers and loads plugin libraries from the filesystem.
type Loader struct {
	// Search paths for plugins (checked in order)
	paths []string

	// Discovered plugins cache
	discovered map[string]*PluginInfo

	opener LibraryOpener

	// Identity the loader asserts during the version gate.
	compilerVersion string
	apiVersion      string

	log zerolog.Logger
}

// PluginInfo contains discovery information about a plugin.
type PluginInfo struct {
	Name     string
	Path     string
	Manifest *Manifest
	State    State
	Error    error
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithPaths sets the plugin search paths.
func WithPaths(paths ...string) LoaderOption {
	return func(l *Loader) {
		l.paths = paths
	}
}

// WithOpener sets the library opener.
func WithOpener(o LibraryOpener) LoaderOption {
	return func(l *Loader) {
		l.opener = o
	}
}

// WithCompilerVersion overrides the compiler identity this loader
// requires of plugins. Defaults to the running toolchain's version.
func WithCompilerVersion(v string) LoaderOption {
	return func(l *Loader) {
		l.compilerVersion = v
	}
}

// WithAPIVersion overrides the API identity this loader requires of
// plugins. Hosts embedding more than one copy of this runtime carry
// independent identities this way.
func WithAPIVersion(v string) LoaderOption {
	return func(l *Loader) {
		l.apiVersion = v
	}
}

// WithLogger sets the loader's logger. Silent by default.
func WithLogger(log zerolog.Logger) LoaderOption {
	return func(l *Loader) {
		l.log = log
	}
}

// NewLoader creates a new plugin loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		paths:           DefaultPluginPaths(),
		discovered:      make(map[string]*PluginInfo),
		opener:          goOpener{},
		compilerVersion: runtime.Version(),
		apiVersion:      APIVersion,
		log:             zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// DefaultPluginPaths returns the default plugin search paths.
func DefaultPluginPaths() []string {
	paths := make([]string, 0, 2)

	// User plugins: ~/.local/share/freight/plugins/
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".local", "share", "freight", "plugins"))
	}

	// Project plugins: .freight/plugins/
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".freight", "plugins"))
	}

	return paths
}

// Paths returns the configured search paths.
func (l *Loader) Paths() []string {
	return l.paths
}

// AddPath adds a search path.
func (l *Loader) AddPath(path string) {
	l.paths = append(l.paths, path)
}

// Load opens the library at path, reads its declaration, verifies
// version identity and registers the plugin. On success the returned
// Proxy is the sole handle to the loaded plugin. No step's failure
// yields a partial result, and an incompatible plugin's code is
// never executed.
func (l *Loader) Load(path string) (*Proxy, error) {
	lib, err := l.opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoading, err)
	}
	l.log.Debug().Str("path", path).Stringer("state", StateLibraryOpened).Msg("library opened")

	sym, err := lib.Lookup(DeclarationSymbol)
	if err != nil {
		return nil, fmt.Errorf("%w: symbol %s: %v", ErrLoading, DeclarationSymbol, err)
	}
	decl, ok := sym.(*Declaration)
	if !ok {
		return nil, fmt.Errorf("%w: symbol %s is %T, not a plugin declaration", ErrLoading, DeclarationSymbol, sym)
	}
	l.log.Debug().Str("plugin", decl.Name).Stringer("state", StateDeclarationRead).Msg("declaration read")

	proxy, err := l.LoadDeclared(decl)
	if err != nil {
		return nil, err
	}
	proxy.lib = lib

	l.log.Info().
		Str("plugin", proxy.Name).
		Stringer("version", proxy.Version).
		Stringer("state", StateReady).
		Msg("plugin loaded")
	return proxy, nil
}

// LoadDeclared builds a Proxy from an already obtained declaration,
// for example one resolved from a statically linked plugin. The
// version gate still applies: a mismatch aborts before the plugin's
// registration entry point runs.
func (l *Loader) LoadDeclared(decl *Declaration) (*Proxy, error) {
	if decl == nil {
		return nil, fmt.Errorf("%w: nil declaration", ErrLoading)
	}
	if decl.CompilerVersion != l.compilerVersion {
		return nil, fmt.Errorf("%w: compiler version mismatch: plugin %q, host %q",
			ErrImport, decl.CompilerVersion, l.compilerVersion)
	}
	if decl.APIVersion != l.apiVersion {
		return nil, fmt.Errorf("%w: api version mismatch: plugin %q, host %q",
			ErrImport, decl.APIVersion, l.apiVersion)
	}
	l.log.Debug().Str("plugin", decl.Name).Stringer("state", StateVersionChecked).Msg("version gate passed")

	return l.LoadDeclaredUnchecked(decl)
}

// LoadDeclaredUnchecked builds a Proxy from a declaration without
// the version gate. Only for caller-asserted, trusted linkage; a
// mismatched plugin loaded this way has undefined behavior.
func (l *Loader) LoadDeclaredUnchecked(decl *Declaration) (*Proxy, error) {
	if decl == nil {
		return nil, fmt.Errorf("%w: nil declaration", ErrLoading)
	}

	proxy := &Proxy{
		Name:       decl.Name,
		Version:    decl.Version,
		BackCompat: decl.BackCompat,
		freight:    EmptyFreight{},
	}

	// The entry point calls back into the proxy exactly once,
	// replacing the placeholder implementor.
	decl.Register(proxy)

	l.log.Debug().Str("plugin", decl.Name).Stringer("state", StateRegistered).Msg("plugin registered")
	return proxy, nil
}

// Discover finds all plugins in the search paths.
// Returns plugins sorted by name.
func (l *Loader) Discover() ([]*PluginInfo, error) {
	l.discovered = make(map[string]*PluginInfo)

	for _, basePath := range l.paths {
		if err := l.discoverInPath(basePath); err != nil {
			// Missing paths are not errors
			continue
		}
	}

	plugins := make([]*PluginInfo, 0, len(l.discovered))
	for _, info := range l.discovered {
		plugins = append(plugins, info)
	}

	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Name < plugins[j].Name
	})

	return plugins, nil
}

// discoverInPath finds plugins in a single directory.
func (l *Loader) discoverInPath(basePath string) error {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		pluginPath := filepath.Join(basePath, entry.Name())
		info := l.inspectPlugin(entry.Name(), pluginPath)

		// Don't override earlier discoveries (first path wins)
		if _, exists := l.discovered[info.Name]; !exists {
			l.discovered[info.Name] = info
		}
	}

	return nil
}

// inspectPlugin examines a plugin directory and returns its info.
func (l *Loader) inspectPlugin(name, path string) *PluginInfo {
	info := &PluginInfo{
		Name:  name,
		Path:  path,
		State: StateUnloaded,
	}

	manifestPath := filepath.Join(path, "freight.json")
	if _, err := os.Stat(manifestPath); err != nil {
		info.Error = fmt.Errorf("%w: no freight.json in %s", ErrLoading, path)
		info.State = StateError
		return info
	}

	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		info.Error = fmt.Errorf("invalid manifest: %w", err)
		info.State = StateError
		return info
	}
	info.Manifest = manifest
	info.Name = manifest.Name
	return info
}

// Get returns info for a specific plugin by name.
func (l *Loader) Get(name string) (*PluginInfo, bool) {
	info, ok := l.discovered[name]
	return info, ok
}

// LoadByName discovers (if needed) and loads a plugin by its
// manifest name.
func (l *Loader) LoadByName(name string) (*Proxy, error) {
	info, ok := l.discovered[name]
	if !ok {
		if _, err := l.Discover(); err != nil {
			return nil, err
		}
		info, ok = l.discovered[name]
	}
	if !ok {
		return nil, fmt.Errorf("%w: plugin %q", ErrIndex, name)
	}
	if info.Error != nil {
		return nil, info.Error
	}
	return l.Load(info.Manifest.LibraryPath())
}
