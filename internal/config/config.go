// Package config loads the pipeline configuration file (typesbuilder.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/typesbuilder/internal/foundation/errors"
)

// DefaultFileName is the configuration file looked up in the working directory.
const DefaultFileName = "typesbuilder.yaml"

// Config is the pipeline configuration for one package.
type Config struct {
	// Cwd is the package source directory, relative to the config file.
	Cwd string `yaml:"cwd"`

	// Out is the package output directory, relative to Cwd.
	Out string `yaml:"out"`

	// Manifest is the package manifest read before building, relative to Cwd.
	Manifest string `yaml:"manifest"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `yaml:"metrics_file"`

	Watch WatchConfig `yaml:"watch"`

	// Plugins maps plugin names to their raw options.
	Plugins map[string]map[string]any `yaml:"plugins"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	// Debounce is a Go duration string collapsing bursts of file events.
	Debounce string `yaml:"debounce"`
}

// DebounceDuration returns the parsed debounce window.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d <= 0 {
		return defaultDebounce
	}
	return d
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands and validates the configuration at path. Relative
// paths in the file are resolved against the file's directory.
func Load(path string) (*Config, error) {
	dir := filepath.Dir(path)
	if _, err := LoadEnvFiles(dir); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "load environment files").Fatal().Build()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.ConfigError(fmt.Sprintf("configuration file not found: %s", path)).Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read configuration file").Fatal().Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.resolve(dir)
	return cfg, nil
}

// Parse decodes configuration bytes after expanding ${VAR} references, then
// applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Fatal().UserAction().Build()
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "configuration validation failed").Fatal().UserAction().Build()
	}
	return &cfg, nil
}

// PluginOptions returns the raw option map for the named plugin (never nil).
func (c *Config) PluginOptions(name string) map[string]any {
	if opts, ok := c.Plugins[name]; ok && opts != nil {
		return opts
	}
	return map[string]any{}
}

// SetPluginOption stores a raw option for the named plugin.
func (c *Config) SetPluginOption(name, key string, value any) {
	if c.Plugins == nil {
		c.Plugins = map[string]map[string]any{}
	}
	if c.Plugins[name] == nil {
		c.Plugins[name] = map[string]any{}
	}
	c.Plugins[name][key] = value
}

// OutDir returns Out resolved against Cwd.
func (c *Config) OutDir() string {
	return joinUnlessAbs(c.Cwd, c.Out)
}

// ManifestPath returns Manifest resolved against Cwd.
func (c *Config) ManifestPath() string {
	return joinUnlessAbs(c.Cwd, c.Manifest)
}

func (c *Config) resolve(dir string) {
	c.Cwd = joinUnlessAbs(dir, c.Cwd)
	if c.MetricsFile != "" {
		c.MetricsFile = joinUnlessAbs(dir, c.MetricsFile)
	}
}

func joinUnlessAbs(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
