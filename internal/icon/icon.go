// Package icon provides the default result-item icons and validation of
// user-supplied icon overrides.
package icon

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed assets/file.svg assets/directory.svg
var assets embed.FS

// Kind selects one of the built-in icons.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// DefaultCacheDir returns the directory built-in icons are materialized to.
func DefaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to home directory if cache dir not available.
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "lumen", "icons"), nil
	}
	return filepath.Join(cacheDir, "lumen", "icons"), nil
}

// Set resolves icon paths for result items. Built-in icons are written to a
// cache directory on first use so the launcher can read them as plain files.
type Set struct {
	// CacheDir overrides the materialization directory. Empty means
	// DefaultCacheDir.
	CacheDir string

	// Overrides maps a kind to a user-supplied icon file. Override paths
	// are validated by Load before use.
	Overrides map[Kind]string

	paths map[Kind]string
}

// Path returns the file path for an icon kind, materializing the built-in
// asset if no valid override is configured.
func (s *Set) Path(kind Kind) (string, error) {
	if override, ok := s.Overrides[kind]; ok && override != "" {
		if err := Load(override); err != nil {
			return "", fmt.Errorf("invalid %s icon override: %w", kind, err)
		}
		return override, nil
	}

	if path, ok := s.paths[kind]; ok {
		return path, nil
	}

	dir := s.CacheDir
	if dir == "" {
		defaultDir, err := DefaultCacheDir()
		if err != nil {
			return "", err
		}
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create icon cache directory: %w", err)
	}

	data, err := assets.ReadFile("assets/" + string(kind) + ".svg")
	if err != nil {
		return "", fmt.Errorf("unknown icon kind %q: %w", kind, err)
	}

	path := filepath.Join(dir, string(kind)+".svg")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write icon file: %w", err)
	}

	if s.paths == nil {
		s.paths = make(map[Kind]string)
	}
	s.paths[kind] = path
	return path, nil
}
