package freight

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/dshills/freight/version"
)

// Manifest is the sidecar record (freight.json) describing a plugin
// library on disk. It exists for discovery only; the authoritative
// identity is the Declaration inside the library itself.
type Manifest struct {
	// Name is the plugin's unique identifier.
	Name string `json:"name"`

	// Version is the plugin version as a dotted quad.
	Version string `json:"version"`

	// Library is the library file, relative to the manifest.
	Library string `json:"library"`

	// APIVersion is the ABI revision the plugin targets.
	APIVersion string `json:"apiVersion"`

	// Description and Author are informational.
	Description string `json:"description"`
	Author      string `json:"author"`

	// Internal: directory holding the manifest.
	path string
}

// Manifest validation errors.
var (
	ErrMissingName    = errors.New("manifest: name is required")
	ErrInvalidName    = errors.New("manifest: name must be alphanumeric with hyphens")
	ErrMissingVersion = errors.New("manifest: version is required")
	ErrInvalidVersion = errors.New("manifest: version must be a dotted quad")
	ErrMissingLibrary = errors.New("manifest: library is required")
)

// namePattern validates plugin names.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$|^[a-z]$`)

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	m.path = filepath.Dir(path)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for structural problems.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return ErrMissingName
	}
	if !namePattern.MatchString(m.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, m.Name)
	}
	if m.Version == "" {
		return ErrMissingVersion
	}
	if _, err := version.Parse(m.Version); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, m.Version)
	}
	if m.Library == "" {
		return ErrMissingLibrary
	}
	return nil
}

// Path returns the directory the manifest was loaded from.
func (m *Manifest) Path() string {
	return m.path
}

// LibraryPath returns the absolute path of the plugin library.
func (m *Manifest) LibraryPath() string {
	if filepath.IsAbs(m.Library) {
		return m.Library
	}
	return filepath.Join(m.path, m.Library)
}
