package netlist

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Configuration keys understood by the netlist and its consumers. They can be
// set in a Config or with "define <key> ...;" in the input.
const (
	KeyDocURL = "doc-url"
	KeyMapURL = "map-url"
)

// Config controls how netlists are built and checked.
type Config struct {
	// DefaultDocURL is the documentation link template given to types that
	// have no doc clause. "%t" stands for the type name.
	DefaultDocURL string `toml:"doc_url"`
	// MapURL is the base link of the chip map viewer.
	MapURL string `toml:"map_url"`
	// WarningLimit caps the number of individually reported unconnected
	// ports; the rest are summarised in one warning (default: 5).
	WarningLimit int `toml:"warning_limit"`
	// Strings seeds the configuration strings of the netlist.
	Strings map[string]string `toml:"strings"`
}

// DefaultConfig returns a Config with the defaults used by the CLI.
func DefaultConfig() *Config {
	return &Config{
		WarningLimit: DefaultWarningLimit,
		Strings:      map[string]string{},
	}
}

// DefaultWarningLimit is used when Config.WarningLimit is zero.
const DefaultWarningLimit = 5

// Validate normalises the configuration. A zero WarningLimit becomes
// DefaultWarningLimit.
func (c *Config) Validate() error {
	if c.WarningLimit < 0 {
		return fmt.Errorf("netlist: warning limit must not be negative, got %d", c.WarningLimit)
	}
	if c.WarningLimit == 0 {
		c.WarningLimit = DefaultWarningLimit
	}
	if c.Strings == nil {
		c.Strings = map[string]string{}
	}
	return nil
}

// initialStrings returns the initial configuration strings of a netlist.
func (c *Config) initialStrings() map[string]string {
	m := make(map[string]string, len(c.Strings)+2)
	if c.DefaultDocURL != "" {
		m[KeyDocURL] = c.DefaultDocURL
	}
	if c.MapURL != "" {
		m[KeyMapURL] = c.MapURL
	}
	for k, v := range c.Strings {
		m[k] = v
	}
	return m
}

// LoadConfig reads a TOML configuration file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
