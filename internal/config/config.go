// Package config parses and validates the calyx.yaml project manifest.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the manifest file looked up in a project directory.
const FileName = "calyx.yaml"

// Config is the top-level calyx.yaml configuration.
type Config struct {
	// SourceDir is the directory holding module outlines, relative to the
	// manifest. Defaults to ".".
	SourceDir string `yaml:"source_dir,omitempty"`

	// Cache configures the on-disk signature cache. Disabled when omitted.
	Cache CacheConfig `yaml:"cache,omitempty"`

	// Serve configures the signature introspection service. Not served
	// when omitted.
	Serve ServeConfig `yaml:"serve,omitempty"`

	// Rewriters lists extension passes to register, in order. Unknown
	// names are rejected during validation.
	Rewriters []string `yaml:"rewriters,omitempty"`
}

// CacheConfig configures the sqlite signature cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`

	// Path is the database file, relative to the manifest. Defaults to
	// ".calyx/signatures.db" when the cache is enabled.
	Path string `yaml:"path,omitempty"`
}

// ServeConfig configures the gRPC signature service.
type ServeConfig struct {
	// Address is the listen address, e.g. "127.0.0.1:7463".
	Address string `yaml:"address,omitempty"`
}

// KnownRewriters are the pass names a manifest may register.
var KnownRewriters = []string{"trace"}

// ParseConfig parses and validates manifest bytes. The path is used only
// for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(path); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Load reads the manifest from dir. A missing manifest is not an error;
// the returned config then carries defaults only.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseConfig(data, path)
}

// Validate checks the manifest for conditions that would only surface
// later as confusing failures.
func (c *Config) Validate(path string) error {
	for _, name := range c.Rewriters {
		if !knownRewriter(name) {
			return fmt.Errorf("%s: unknown rewriter %q (known: %s)",
				path, name, strings.Join(KnownRewriters, ", "))
		}
	}
	if c.Serve.Address != "" && !strings.Contains(c.Serve.Address, ":") {
		return fmt.Errorf("%s: serve address %q has no port", path, c.Serve.Address)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.SourceDir == "" {
		c.SourceDir = "."
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		c.Cache.Path = filepath.Join(".calyx", "signatures.db")
	}
}

func knownRewriter(name string) bool {
	for _, known := range KnownRewriters {
		if known == name {
			return true
		}
	}
	return false
}
