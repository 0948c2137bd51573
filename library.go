package freight

import (
	"fmt"
	goplugin "plugin"
)

// Library is an opened plugin library. The one genuinely external
// native capability this package consumes is symbol lookup in a
// dynamically loaded object; everything else is pure data
// transformation.
type Library interface {
	// Lookup resolves an exported symbol by name.
	Lookup(symbol string) (any, error)

	// Close releases this handle. The OS mapping is dropped only
	// when no handle derived from the same load remains.
	Close() error
}

// LibraryOpener opens plugin libraries by path. The default opener
// uses the runtime's native plugin support; tests substitute an
// in-memory implementation.
type LibraryOpener interface {
	Open(path string) (Library, error)
}

// goOpener opens libraries through the runtime's plugin support.
type goOpener struct{}

func (goOpener) Open(path string) (Library, error) {
	p, err := goplugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return goLibrary{p: p}, nil
}

type goLibrary struct {
	p *goplugin.Plugin
}

func (l goLibrary) Lookup(symbol string) (any, error) {
	sym, err := l.p.Lookup(symbol)
	if err != nil {
		return nil, err
	}
	return sym, nil
}

// Close is a no-op: the runtime keeps loaded plugins mapped for the
// life of the process.
func (l goLibrary) Close() error { return nil }
