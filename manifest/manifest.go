// Package manifest handles hollow.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents a hollow.toml configuration.
type Manifest struct {
	Fill  Fill  `toml:"fill"`
	Cache Cache `toml:"cache"`

	// Dir is the directory containing the hollow.toml file (set at load time).
	Dir string `toml:"-"`
}

// Fill configures the hole fill policy.
type Fill struct {
	// Checked selects the checkable sentinel: fills are validated and
	// is-set queries become available, at the cost of a comparison per
	// fill. Off by default.
	Checked bool `toml:"checked"`
}

// Cache configures the persistent layout cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Load parses a hollow.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "hollow.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.Cache.Enabled && m.Cache.Path == "" {
		m.Cache.Path = filepath.Join(".hollow", "layouts.db")
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a hollow.toml file, then loads
// and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "hollow.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// CachePath returns the absolute path of the configured layout cache
// database, or "" when the cache is disabled.
func (m *Manifest) CachePath() string {
	if !m.Cache.Enabled {
		return ""
	}
	if filepath.IsAbs(m.Cache.Path) {
		return m.Cache.Path
	}
	return filepath.Join(m.Dir, m.Cache.Path)
}
