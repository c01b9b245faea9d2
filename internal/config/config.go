package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the fixed config file name looked up under the per-user
// config directory.
const FileName = "keebprobe.toml"

// Keyboard identifies one monitored device by its USB identifiers.
type Keyboard struct {
	VendorID  uint16 `toml:"vendor_id"`
	ProductID uint16 `toml:"product_id"`
}

// Config is the immutable set of monitored keyboards, keyed by a
// human-readable name. The name is used only for diagnostics.
type Config struct {
	Keyboards map[string]Keyboard `toml:"keyboards"`
}

// DefaultPath returns the platform-standard per-user location of the
// config file, e.g. ~/.config/keebprobe.toml on Linux.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, FileName)
}

// Load reads and parses the config file at path. Any failure is fatal to
// startup; no partial or default configuration is synthesized. The returned
// error names the path that was attempted.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Names returns the configured keyboard names in sorted order, so scans
// over the set are deterministic.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Keyboards))
	for name := range c.Keyboards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
