package freight

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestManifestValidate(t *testing.T) {
	tests := []struct {
		name     string
		manifest Manifest
		wantErr  error
	}{
		{
			name:     "valid",
			manifest: Manifest{Name: "my-plug", Version: "1.0.0.0", Library: "my-plug.so"},
		},
		{
			name:     "missing name",
			manifest: Manifest{Version: "1.0.0.0", Library: "a.so"},
			wantErr:  ErrMissingName,
		},
		{
			name:     "bad name",
			manifest: Manifest{Name: "My Plug!", Version: "1.0.0.0", Library: "a.so"},
			wantErr:  ErrInvalidName,
		},
		{
			name:     "missing version",
			manifest: Manifest{Name: "plug", Library: "a.so"},
			wantErr:  ErrMissingVersion,
		},
		{
			name:     "semver not dotted quad",
			manifest: Manifest{Name: "plug", Version: "1.0.0", Library: "a.so"},
			wantErr:  ErrInvalidVersion,
		},
		{
			name:     "missing library",
			manifest: Manifest{Name: "plug", Version: "1.0.0.0"},
			wantErr:  ErrMissingLibrary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.manifest.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "freight.json")
	data := `{"name":"plug","version":"2.1.0.0","library":"plug.so","description":"demo"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if m.Name != "plug" || m.Version != "2.1.0.0" {
		t.Errorf("manifest = %+v", m)
	}
	if m.Path() != dir {
		t.Errorf("Path() = %q, want %q", m.Path(), dir)
	}
	if m.LibraryPath() != filepath.Join(dir, "plug.so") {
		t.Errorf("LibraryPath() = %q", m.LibraryPath())
	}
}

func TestLoadManifestInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "freight.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadManifest(path); err == nil {
		t.Error("LoadManifest() on malformed JSON succeeded")
	}

	if _, err := LoadManifest(filepath.Join(dir, "absent.json")); err == nil {
		t.Error("LoadManifest() on missing file succeeded")
	}
}
